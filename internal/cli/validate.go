package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kennel-io/kennel/internal/manifest"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool                       `json:"valid" yaml:"valid"`
	Classes int                        `json:"classes" yaml:"classes"`
	Objects int                        `json:"objects" yaml:"objects"`
	Errors  []manifest.ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest-dir>",
		Short: "Validate a manifest directory without building it",
		Long: `Validate CUE class and object declarations without materializing them.

Checks hierarchy consistency (undeclared ancestors, inheritance cycles),
object class references, and duplicate ids within a class.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, err := loadManifest(dir, formatter)
	if err != nil {
		return err
	}

	errs := manifest.Validate(m)
	result := ValidationResult{
		Valid:   len(errs) == 0,
		Classes: len(m.Classes),
		Objects: len(m.Objects),
		Errors:  errs,
	}

	if result.Valid {
		opts.Logger.Debug("manifest valid",
			zap.Int("classes", result.Classes), zap.Int("objects", result.Objects))
		if formatter.Format != "text" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ manifest valid: %d class(es), %d object(s)\n",
			result.Classes, result.Objects)
		return nil
	}

	if formatter.Format != "text" {
		_ = formatter.Error(errs[0].Code, errs[0].Message, result)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
