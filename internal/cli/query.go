package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kennel-io/kennel/internal/manifest"
	"github.com/kennel-io/kennel/internal/repo"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	Class string
	ID    string
	Where []string
	Count bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	queryOpts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <manifest-dir>",
		Short: "Query objects of a class, including fanned-in descendants",
		Long: `Materialize a manifest directory and query one class's bucket.

Querying a class sees every object inserted at that class or at any
descendant that fans out into it. --where filters on declared object
fields; repeated --where flags must all match.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, queryOpts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&queryOpts.Class, "class", "", "class to query (required)")
	cmd.Flags().StringVar(&queryOpts.ID, "id", "", "fetch a single object by id")
	cmd.Flags().StringArrayVar(&queryOpts.Where, "where", nil,
		"field=value filter, repeatable")
	cmd.Flags().BoolVar(&queryOpts.Count, "count", false, "print the match count only")
	_ = cmd.MarkFlagRequired("class")

	return cmd
}

func runQuery(opts *RootOptions, queryOpts *QueryOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	pred, err := wherePredicate(queryOpts.Where)
	if err != nil {
		_ = formatter.Error(errCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	world, err := buildWorld(dir, formatter)
	if err != nil {
		return err
	}

	store, ok := world.Store(queryOpts.Class)
	if !ok {
		msg := fmt.Sprintf("no repository for %s has been found", queryOpts.Class)
		_ = formatter.Error(string(repo.ErrCodeNoRepository), msg, nil)
		return NewExitError(ExitFailure, msg)
	}
	opts.Logger.Debug("querying class",
		zap.String("class", queryOpts.Class), zap.String("id", queryOpts.ID))

	if queryOpts.ID != "" {
		obj, err := store.Get(repo.ID(queryOpts.ID))
		if err != nil {
			code := errCodeGeneric
			var rerr *repo.Error
			if errors.As(err, &rerr) {
				code = string(rerr.Code)
			}
			_ = formatter.Error(code, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		return outputObjects(formatter, []manifest.Object{obj})
	}

	matches, err := store.Filter(pred)
	if err != nil {
		_ = formatter.Error(errCodeGeneric, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	if queryOpts.Count {
		if formatter.Format != "text" {
			return formatter.Success(map[string]int{"count": len(matches)})
		}
		fmt.Fprintln(formatter.Writer, len(matches))
		return nil
	}
	return outputObjects(formatter, matches)
}

// wherePredicate compiles field=value clauses into a single predicate.
// Values compare against the string rendering of the declared field, so
// numeric fields match their literal form.
func wherePredicate(clauses []string) (repo.Predicate[manifest.Object], error) {
	preds := make([]repo.Predicate[manifest.Object], 0, len(clauses))
	for _, clause := range clauses {
		field, want, ok := strings.Cut(clause, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --where clause %q: expected field=value", clause)
		}
		preds = append(preds, func(o manifest.Object) bool {
			v := o.Field(field)
			return v != nil && fmt.Sprint(v) == want
		})
	}
	return repo.And(preds...), nil
}

func outputObjects(formatter *OutputFormatter, objects []manifest.Object) error {
	if formatter.Format != "text" {
		return formatter.Success(objects)
	}

	fmt.Fprintf(formatter.Writer, "%-8s %-12s %s\n", "ID", "CLASS", "FIELDS")
	for _, o := range objects {
		fmt.Fprintf(formatter.Writer, "%-8s %-12s %s\n", string(o.ID), o.Class, renderFields(o))
	}
	return nil
}

// renderFields renders an object's payload as sorted k=v pairs.
func renderFields(o manifest.Object) string {
	if len(o.Fields) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, o.Fields[k]))
	}
	return strings.Join(parts, " ")
}
