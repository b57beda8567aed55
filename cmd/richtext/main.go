// Command richtext renders rich-text JSON documents from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/athapong/richtext/pkg/richtext"
	"github.com/athapong/richtext/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by all commands
type app struct {
	envFile     string
	logLevel    string
	escapeAttrs bool
	logger      *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "richtext",
		Short: "Render structured rich-text documents",
		Long: `richtext renders rich-text JSON documents (typed block nodes with inline
marks) to HTML, Markdown or plain text.

Usage:
  richtext render doc.json
  richtext batch --input ./content --output ./public
  richtext import notes.md --format html`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env", ".env", "Path to environment file")
	flags.StringVar(&a.logLevel, "log-level", "", "Logging level (debug, info, warn, error); defaults to RICHTEXT_LOG_LEVEL or info")
	flags.BoolVar(&a.escapeAttrs, "escape-attrs", false, "Escape attribute values (use for untrusted content)")

	root.AddCommand(
		a.renderCmd(),
		a.batchCmd(),
		a.diffCmd(),
		a.imageCmd(),
		a.importCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(a.envFile); err != nil && cmd.Flags().Changed("env") {
		return fmt.Errorf("loading env file %s: %w", a.envFile, err)
	}

	level := logrus.InfoLevel
	name := a.logLevel
	if name == "" {
		name = os.Getenv("RICHTEXT_LOG_LEVEL")
	}
	if name != "" {
		parsed, err := logrus.ParseLevel(name)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	a.logger = logrus.New()
	a.logger.SetLevel(level)
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}

// rendererOptions combines the environment configuration with the CLI flags.
func (a *app) rendererOptions() []richtext.Option {
	cfg := services.LoadRendererConfig()
	cfg.EscapeAttrs = cfg.EscapeAttrs || a.escapeAttrs
	return cfg.Options(a.logger)
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// writeOutput writes data to the named file, or the command output for "".
func writeOutput(cmd *cobra.Command, name string, data []byte) error {
	if name == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(name, data, 0644)
}
