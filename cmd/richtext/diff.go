package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/pkg/pipeline"
)

func (a *app) diffCmd() *cobra.Command {
	var (
		format string
		path   string
	)

	cmd := &cobra.Command{
		Use:   "diff <source> <target>",
		Short: "Show a semantic diff between two rendered documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := extract.ParseFormat(format)
			if err != nil {
				return err
			}

			p := pipeline.NewPipeline(
				pipeline.WithLogger(a.logger),
				pipeline.WithRendererOptions(a.rendererOptions()...),
			)
			p.AddProcessor(pipeline.ConvertTo(f))

			docs := make([]*pipeline.Document, len(args))
			for i, name := range args {
				data, err := readInput(cmd, name)
				if err != nil {
					return fmt.Errorf("reading %s: %w", name, err)
				}
				docs[i] = &pipeline.Document{Source: name, Data: data, Path: path}
				if err := p.Process(context.Background(), docs[i]); err != nil {
					return err
				}
			}

			source, target := string(docs[0].Output), string(docs[1].Output)
			if source == target {
				fmt.Fprintln(cmd.OutOrStdout(), "No differences found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), extract.Diff(source, target))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Format to compare in: html, markdown or text")
	cmd.Flags().StringVar(&path, "path", "", "gjson path of the rich-text field inside both inputs")
	return cmd
}
