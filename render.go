package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/cvmatch/internal/markdown"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "render [FILE|-]",
		Short: "Render a saved analysis without calling the model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			nodes := markdown.Render(src)
			if asHTML {
				return markdown.WriteHTML(out, nodes)
			}
			_, err = io.WriteString(out, markdown.RenderTerminal(nodes, markdown.NewTerminalStyles(root.colorEnabled(out))))
			return err
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "write an HTML fragment instead of terminal text")
	return cmd
}

func readSource(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(b), nil
}
