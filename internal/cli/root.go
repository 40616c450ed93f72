package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kennel-io/kennel/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	Logger  *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the kennel CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "kennel",
		Short: "Kennel - class-scoped in-memory object store",
		Long:  "Inspect and query class hierarchies and their objects declared in CUE manifests.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig(cfgFile)

			// Flags win over config file and environment via the binding.
			opts.Format = viper.GetString("format")
			opts.Verbose = viper.GetBool("verbose")

			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logger, err := logging.New(opts.Verbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			opts.Logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/kennel/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	cmd.PersistentFlags().String("format", "text", "output format (text|json|yaml)")

	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", cmd.PersistentFlags().Lookup("format"))

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewClassesCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))

	return cmd
}

func initConfig(cfgFile string) {
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)

	viper.SetEnvPrefix("KENNEL")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .kennel/config.yaml (current directory)
		// 2. ~/.config/kennel/config.yaml (user config)
		if _, err := os.Stat(".kennel/config.yaml"); err == nil {
			viper.SetConfigFile(".kennel/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "kennel"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Missing config files are fine; defaults and flags carry the day.
	_ = viper.ReadInConfig()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
