package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/pkg/pipeline"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		path   string
		format string
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a rich-text JSON document",
		Long: `Render reads a rich-text JSON document (a node object or an array of nodes)
from a file or stdin and writes the rendering to stdout or --output.

Examples:
  richtext render doc.json
  richtext render story.json --path story.content.body --format markdown
  cat doc.json | richtext render --format text`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := extract.ParseFormat(format)
			if err != nil {
				return err
			}

			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			data, err := readInput(cmd, source)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			p := pipeline.NewPipeline(
				pipeline.WithLogger(a.logger),
				pipeline.WithRendererOptions(a.rendererOptions()...),
			)
			p.AddProcessor(pipeline.ConvertTo(f))

			doc := &pipeline.Document{Source: source, Data: data, Path: path}
			if err := p.Process(context.Background(), doc); err != nil {
				return err
			}

			if err := writeOutput(cmd, output, doc.Output); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if strict && len(doc.Diagnostics) > 0 {
				return fmt.Errorf("%d diagnostics reported", len(doc.Diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "gjson path of the rich-text field inside the input")
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: html, markdown or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the renderer reports diagnostics")
	return cmd
}
