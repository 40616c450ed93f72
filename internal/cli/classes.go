package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ClassSummary describes one materialized class: its frozen ancestor
// lineage and how many objects its bucket holds (own plus fanned-in).
type ClassSummary struct {
	Name    string   `json:"name" yaml:"name"`
	Lineage []string `json:"lineage,omitempty" yaml:"lineage,omitempty"`
	Objects int      `json:"objects" yaml:"objects"`
}

// NewClassesCommand creates the classes command.
func NewClassesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes <manifest-dir>",
		Short: "List declared classes, their lineage, and object counts",
		Long: `Materialize a manifest directory and list every declared class.

Object counts include objects fanned in from descendant classes, so an
ancestor class counts every object inserted below it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runClasses(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	world, err := buildWorld(dir, formatter)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(world.Stores))
	for name := range world.Stores {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]ClassSummary, 0, len(names))
	for _, name := range names {
		lineage, _ := world.Registry.Lineage(world.Kinds[name])
		count, err := world.Stores[name].Count(nil)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("counting %s", name), err)
		}
		summaries = append(summaries, ClassSummary{Name: name, Lineage: lineage, Objects: count})
	}
	opts.Logger.Debug("materialized manifest", zap.Int("classes", len(summaries)))

	if formatter.Format != "text" {
		return formatter.Success(summaries)
	}

	fmt.Fprintf(formatter.Writer, "%-12s %-24s %s\n", "CLASS", "LINEAGE", "OBJECTS")
	for _, s := range summaries {
		lineage := "-"
		if len(s.Lineage) > 0 {
			lineage = strings.Join(s.Lineage, ", ")
		}
		fmt.Fprintf(formatter.Writer, "%-12s %-24s %d\n", s.Name, lineage, s.Objects)
	}
	return nil
}
