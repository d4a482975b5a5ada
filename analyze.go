package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/markdown"
	"github.com/muhammadolammi/cvmatch/internal/web"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		jdPath string
		cvPath string
		output string
	)

	cmd := &cobra.Command{
		Use:   "analyze --jd FILE --cv FILE",
		Short: "Analyze a CV against a job description and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case "terminal", "markdown", "html", "json":
			default:
				return fmt.Errorf("invalid --output %q: want terminal, markdown, html or json", output)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var jdSrc, cvSrc *documents.Source
			if jdPath != "" {
				jdSrc = documents.FileSource(jdPath)
			}
			if cvPath != "" {
				cvSrc = documents.FileSource(cvPath)
			}
			jd, cv, err := cfg.policy().ReadPair(ctx, jdSrc, cvSrc)
			if err != nil {
				return err
			}
			if jd == nil || cv == nil {
				return errors.New(web.MsgMissingDocuments)
			}

			if err := cfg.requireAPIKey(); err != nil {
				return err
			}
			analyzer, err := analysis.NewAgentAnalyzer(ctx, cfg.GoogleAPIKey, cfg.Model)
			if err != nil {
				return err
			}
			opts, cleanup, err := sideChannels(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := analysis.NewService(analyzer, opts...).Compare(ctx, jd, cv)
			if errors.Is(err, analysis.ErrAnalysisFailed) {
				// The cause is already logged by the service.
				return errors.New(web.MsgAnalysisFailed)
			}
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, output, root.colorEnabled(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVar(&jdPath, "jd", "", "job description document")
	cmd.Flags().StringVar(&cvPath, "cv", "", "candidate CV document")
	cmd.Flags().StringVarP(&output, "output", "o", "terminal", "output format: terminal, markdown, html, json")
	return cmd
}

func writeResult(w io.Writer, res *analysis.Result, format string, color bool) error {
	switch format {
	case "markdown":
		_, err := fmt.Fprintln(w, res.Markdown)
		return err
	case "html":
		return markdown.WriteHTML(w, res.Nodes)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		_, err := io.WriteString(w, markdown.RenderTerminal(res.Nodes, markdown.NewTerminalStyles(color)))
		return err
	}
}
