package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/athapong/richtext/pkg/extract"
)

// ConvertTo returns a processor that replaces the document output with the
// rendered HTML converted to format.
func ConvertTo(format extract.Format) Processor {
	return ProcessorFunc(func(_ context.Context, doc *Document) error {
		out, err := extract.Convert(doc.HTML, format)
		if err != nil {
			return err
		}
		doc.Output = []byte(out)
		return nil
	})
}

// WriteOutput returns a processor that writes the document output into dir.
// The file is named after doc.Name, or the base name of doc.Source when Name
// is empty, with ext appended. The written path is stored in doc.OutputPath.
func WriteOutput(dir, ext string) Processor {
	return ProcessorFunc(func(_ context.Context, doc *Document) error {
		name := outputName(doc)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("output name %q escapes the output directory", doc.Name)
		}

		path := filepath.Join(dir, name+ext)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, doc.Output, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		doc.OutputPath = path
		return nil
	})
}

func outputName(doc *Document) string {
	switch {
	case doc.Name != "":
		return filepath.FromSlash(doc.Name)
	case doc.Source != "":
		base := filepath.Base(doc.Source)
		return strings.TrimSuffix(base, filepath.Ext(base))
	default:
		return doc.ID
	}
}
