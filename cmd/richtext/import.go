package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athapong/richtext/pkg/adf"
	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/pkg/markdown"
	"github.com/athapong/richtext/pkg/richtext"
)

func (a *app) importCmd() *cobra.Command {
	var (
		from   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert Markdown or ADF into rich-text",
		Long: `Import converts a Markdown file (with optional front matter) or an Atlassian
Document Format body into a rich-text document. With --format json the tree
itself is written; otherwise it is rendered.

The source type is taken from --from, or from the file extension
(.md/.markdown for Markdown, .json/.adf for ADF).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			kind := strings.ToLower(from)
			if kind == "" {
				kind = sourceKind(args[0])
			}

			var root *richtext.Node
			switch kind {
			case "md", "markdown":
				doc, err := markdown.Import(data)
				if err != nil {
					return err
				}
				if title := doc.Title(); title != "" {
					a.logger.WithField("title", title).Debug("Imported markdown")
				}
				root = doc.Root
			case "adf":
				node, err := adf.Decode(data)
				if err != nil {
					return err
				}
				root = adf.Convert(node)
			default:
				return fmt.Errorf("cannot tell the source type of %s; use --from md or --from adf", args[0])
			}

			if strings.EqualFold(format, "json") {
				out, err := json.MarshalIndent(root, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding document: %w", err)
				}
				return writeOutput(cmd, output, append(out, '\n'))
			}

			f, err := extract.ParseFormat(format)
			if err != nil {
				return err
			}
			html := richtext.New(a.rendererOptions()...).Render(root)
			out, err := extract.Convert(html, f)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(out))
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source type: md or adf (default: by file extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output: json (the rich-text tree), html, markdown or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func sourceKind(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return "md"
	case ".json", ".adf":
		return "adf"
	default:
		return ""
	}
}
