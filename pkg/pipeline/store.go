package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ManifestEntry records the outcome of one rendered document
type ManifestEntry struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Output      string   `json:"output,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Manifest summarizes a batch run
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Format      string          `json:"format"`
	Documents   []ManifestEntry `json:"documents"`
}

// NewManifest builds a manifest from processed documents.
func NewManifest(format string, docs []*Document) *Manifest {
	m := &Manifest{
		GeneratedAt: time.Now().UTC(),
		Format:      format,
		Documents:   make([]ManifestEntry, 0, len(docs)),
	}
	for _, doc := range docs {
		entry := ManifestEntry{
			ID:     doc.ID,
			Source: doc.Source,
			Output: doc.OutputPath,
		}
		for _, d := range doc.Diagnostics {
			entry.Diagnostics = append(entry.Diagnostics, d.String())
		}
		if doc.Err != nil {
			entry.Error = doc.Err.Error()
		}
		m.Documents = append(m.Documents, entry)
	}
	return m
}

// Failed counts the documents that did not render.
func (m *Manifest) Failed() int {
	n := 0
	for _, d := range m.Documents {
		if d.Error != "" {
			n++
		}
	}
	return n
}

// ManifestStore persists batch manifests
type ManifestStore interface {
	StoreManifest(ctx context.Context, m *Manifest) error
	LoadManifest(ctx context.Context) (*Manifest, error)
}

// JSONManifestStore implements ManifestStore using a JSON file
type JSONManifestStore struct {
	filePath string
}

// NewJSONManifestStore creates a new JSON manifest store
func NewJSONManifestStore(filePath string) *JSONManifestStore {
	return &JSONManifestStore{
		filePath: filePath,
	}
}

// StoreManifest stores the manifest as indented JSON
func (s *JSONManifestStore) StoreManifest(ctx context.Context, m *Manifest) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// LoadManifest loads a manifest from the JSON file
func (s *JSONManifestStore) LoadManifest(ctx context.Context) (*Manifest, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
