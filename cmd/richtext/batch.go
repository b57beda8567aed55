package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/pkg/pipeline"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		inputDir  string
		outputDir string
		format    string
		path      string
		manifest  string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render every JSON document in a directory",
		Long: `Batch walks --input for .json documents, renders them concurrently and writes
one output file per document into --output, plus a JSON manifest listing
diagnostics and failures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inputDir == "" {
				return fmt.Errorf("input directory must be specified")
			}
			f, err := extract.ParseFormat(format)
			if err != nil {
				return err
			}
			if manifest == "" {
				manifest = filepath.Join(outputDir, "manifest.json")
			}

			files, err := readInputFiles(inputDir)
			if err != nil {
				return fmt.Errorf("failed to read input directory: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no input files found in %s", inputDir)
			}

			a.logger.Infof("Rendering %d input files...", len(files))

			documents := make([]*pipeline.Document, 0, len(files))
			var unreadable []*pipeline.Document
			for _, file := range files {
				doc := &pipeline.Document{
					ID:     uuid.NewString(),
					Source: file,
					Name:   relativeName(inputDir, file),
					Path:   path,
				}
				content, err := os.ReadFile(file)
				if err != nil {
					a.logger.Errorf("Failed to read file %s: %v", file, err)
					doc.Err = fmt.Errorf("failed to read %s: %w", file, err)
					unreadable = append(unreadable, doc)
					continue
				}
				doc.Data = content
				documents = append(documents, doc)
			}

			p := pipeline.NewPipeline(
				pipeline.WithLogger(a.logger),
				pipeline.WithBatchSize(batchSize),
				pipeline.WithRendererOptions(a.rendererOptions()...),
			)
			p.AddProcessor(pipeline.ConvertTo(f))
			p.AddProcessor(pipeline.WriteOutput(outputDir, f.Extension()))

			ctx := context.Background()
			batchErr := p.BatchProcess(ctx, documents)

			if len(unreadable) > 0 {
				readErr := fmt.Errorf("%d input files could not be read", len(unreadable))
				if batchErr != nil {
					batchErr = fmt.Errorf("%v; %w", readErr, batchErr)
				} else {
					batchErr = readErr
				}
			}

			m := pipeline.NewManifest(string(f), append(documents, unreadable...))
			if err := pipeline.NewJSONManifestStore(manifest).StoreManifest(ctx, m); err != nil {
				return fmt.Errorf("failed to store manifest: %w", err)
			}
			a.logger.Infof("Rendered %d of %d documents into %s", len(m.Documents)-m.Failed(), len(m.Documents), outputDir)
			a.logger.Infof("Manifest saved to %s", manifest)

			return batchErr
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory containing rich-text JSON files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "out", "Directory for rendered files")
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: html, markdown or text")
	cmd.Flags().StringVar(&path, "path", "", "gjson path of the rich-text field inside each file")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Manifest path (default: <output>/manifest.json)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 10, "Number of documents rendered concurrently")
	return cmd
}

// readInputFiles returns the JSON files below inputDir
func readInputFiles(inputDir string) ([]string, error) {
	var files []string
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.ToLower(filepath.Ext(path)) == ".json" {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// relativeName returns file relative to inputDir without its extension, so
// same-named files in different subdirectories keep distinct outputs.
func relativeName(inputDir, file string) string {
	rel, err := filepath.Rel(inputDir, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}
