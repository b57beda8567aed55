package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/athapong/richtext/pkg/metrics"
	"github.com/athapong/richtext/pkg/richtext"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Document is a unit of work for the pipeline. Name is the slash-separated
// output name without extension, relative to the output directory; when
// empty, output processors fall back to the base name of Source.
type Document struct {
	ID          string
	Source      string
	Name        string
	Data        []byte
	Path        string
	HTML        string
	Output      []byte
	OutputPath  string
	Diagnostics []richtext.Diagnostic
	RenderedAt  time.Time
	Err         error
}

// Processor post-processes a rendered document, e.g. converting its HTML
type Processor interface {
	Process(ctx context.Context, doc *Document) error
}

// ProcessorFunc adapts a function to Processor
type ProcessorFunc func(ctx context.Context, doc *Document) error

func (f ProcessorFunc) Process(ctx context.Context, doc *Document) error {
	return f(ctx, doc)
}

// Pipeline renders documents and runs them through its processors
type Pipeline struct {
	processors []Processor
	mutex      sync.RWMutex
	logger     *logrus.Logger
	batchSize  int
	options    []richtext.Option
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithBatchSize sets how many documents are rendered concurrently.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithLogger replaces the default JSON logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRendererOptions passes options to the renderer built for each document.
func WithRendererOptions(opts ...richtext.Option) Option {
	return func(p *Pipeline) {
		p.options = append(p.options, opts...)
	}
}

// NewPipeline creates a new rendering pipeline
func NewPipeline(opts ...Option) *Pipeline {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	p := &Pipeline{
		processors: make([]Processor, 0),
		batchSize:  10,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddProcessor adds a new processor to the pipeline
func (p *Pipeline) AddProcessor(processor Processor) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.processors = append(p.processors, processor)
}

// BatchProcess renders multiple documents concurrently. Every document is
// attempted; failures are recorded on the document and summarized in the
// returned error.
func (p *Pipeline) BatchProcess(ctx context.Context, docs []*Document) error {
	p.logger.WithField("document_count", len(docs)).Info("Starting batch rendering")

	var failed int
	var firstErr error
	for i := 0; i < len(docs); i += p.batchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch rendering cancelled: %w", err)
		}

		end := i + p.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		metrics.PipelineQueueLength.Set(float64(len(docs) - i))

		batch := docs[i:end]
		errors := make(chan error, len(batch))
		var wg sync.WaitGroup

		for _, doc := range batch {
			wg.Add(1)
			go func(d *Document) {
				defer wg.Done()

				timer := prometheus.NewTimer(metrics.RenderDuration.WithLabelValues("batch"))
				err := p.Process(ctx, d)
				timer.ObserveDuration()

				if err != nil {
					p.logger.WithError(err).WithField("doc_id", d.ID).Error("Failed to render document")
					errors <- err
				}
			}(doc)
		}

		wg.Wait()
		close(errors)

		for err := range errors {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	metrics.PipelineQueueLength.Set(0)
	metrics.UpdateSystemMetrics()

	if failed > 0 {
		return fmt.Errorf("batch rendering failed for %d of %d documents: %w", failed, len(docs), firstErr)
	}

	p.logger.Info("Batch rendering completed successfully")
	return nil
}

// Process renders a single document and runs it through all processors
func (p *Pipeline) Process(ctx context.Context, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("cannot process nil document")
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	err := p.process(ctx, doc)
	doc.Err = err
	if err != nil {
		metrics.DocumentsRendered.WithLabelValues("error").Inc()
		return err
	}
	metrics.DocumentsRendered.WithLabelValues("success").Inc()
	return nil
}

func (p *Pipeline) process(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log := p.logger.WithFields(logrus.Fields{"doc_id": doc.ID, "source": doc.Source})
	log.Debug("Rendering document")

	data, err := richtext.Select(doc.Data, doc.Path)
	if err != nil {
		return fmt.Errorf("document %s: %w", doc.ID, err)
	}

	collector := &richtext.Collector{}
	opts := append([]richtext.Option{}, p.options...)
	opts = append(opts,
		richtext.WithDiagnostics(richtext.Tee(collector.Collect, p.logDiagnostic(log))),
		richtext.WithObserver(metrics.Observer()),
	)
	renderer := richtext.New(opts...)

	html, err := renderer.RenderJSON(data)
	if err != nil {
		return fmt.Errorf("document %s: %w", doc.ID, err)
	}
	doc.HTML = html
	doc.Output = []byte(html)
	doc.Diagnostics = collector.Diagnostics()
	doc.RenderedAt = time.Now()

	p.mutex.RLock()
	processors := make([]Processor, len(p.processors))
	copy(processors, p.processors)
	p.mutex.RUnlock()

	for i, processor := range processors {
		if err := processor.Process(ctx, doc); err != nil {
			return fmt.Errorf("document %s: processor %d failed: %w", doc.ID, i, err)
		}
	}

	log.WithField("diagnostics", len(doc.Diagnostics)).Debug("Document rendering completed")
	return nil
}

func (p *Pipeline) logDiagnostic(log *logrus.Entry) richtext.DiagnosticFunc {
	return func(d richtext.Diagnostic) {
		log.WithFields(logrus.Fields{
			"kind":      d.Kind,
			"node_type": d.Type,
			"path":      d.Path,
		}).Warn(d.Message)
	}
}
