package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muhammadolammi/cvmatch/internal/logging"
)

type rootOptions struct {
	logLevel string
	color    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cvmatch",
		Short: "Compare a CV against a job description with Gemini",
		Long: `cvmatch sends a job description and a candidate CV to Gemini and renders
the compatibility analysis it returns: overall summary, score, strengths,
gaps and a final recommendation.

Configuration is read from the environment and an optional .env file.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := opts.logLevel
			if !cmd.Flags().Changed("log-level") {
				level = envOr("LOG_LEVEL", level)
			}
			logging.SetLevel(level)

			switch opts.color {
			case "auto", "always", "never":
				return nil
			default:
				return fmt.Errorf("invalid --color %q: want auto, always or never", opts.color)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize terminal output: auto, always, never")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))

	return rootCmd
}

// colorEnabled resolves --color against the writer the output goes to.
func (o *rootOptions) colorEnabled(w io.Writer) bool {
	switch o.color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
