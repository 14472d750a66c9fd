package report

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"data-reconciler/core/reconcile"

	"go.uber.org/zap"
)

// Sink persists the outcome of one run.
type Sink interface {
	// WriteFailures stores the failing keys with their mismatch summaries.
	WriteFailures(ctx context.Context, failures []reconcile.Failure) error
	// WriteSuccesses stores the passing local records, one column per name in columns.
	WriteSuccesses(ctx context.Context, columns []string, records []reconcile.Record) error
}

// Report kinds.
const (
	KindFailures  = "failures"
	KindSuccesses = "successes"
)

// Report describes one written report file.
type Report struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Object string `json:"object,omitempty"`
	Rows   int    `json:"rows"`
}

// Options configures an XLSXSink.
type Options struct {
	// Dir is the output directory. It is created if missing.
	Dir string
	// Profile and RunID make up the file names.
	Profile string
	RunID   string
	// Uploader, when set, publishes every workbook to object storage.
	Uploader *Uploader
	Logger   *zap.Logger
}

// XLSXSink writes reports as Excel workbooks.
type XLSXSink struct {
	opts Options
	log  *zap.Logger

	mu      sync.Mutex
	reports []Report
}

// NewXLSXSink prepares the output directory and returns the sink.
func NewXLSXSink(opts Options) (*XLSXSink, error) {
	if opts.Profile == "" || opts.RunID == "" {
		return nil, fmt.Errorf("report sink needs a profile and a run id")
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &XLSXSink{opts: opts, log: log}, nil
}

// WriteFailures implements Sink.
func (s *XLSXSink) WriteFailures(ctx context.Context, failures []reconcile.Failure) error {
	rows := make([][]string, len(failures))
	for i, f := range failures {
		rows[i] = []string{f.Key, f.Summary}
	}
	return s.write(ctx, KindFailures, []string{"Primary Key", "Mismatch Summary"}, rows)
}

// WriteSuccesses implements Sink.
func (s *XLSXSink) WriteSuccesses(ctx context.Context, columns []string, records []reconcile.Record) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns to write")
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = r[col]
		}
		rows[i] = row
	}
	return s.write(ctx, KindSuccesses, columns, rows)
}

// Reports returns the reports written so far.
func (s *XLSXSink) Reports() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// FileName returns the workbook name for kind.
func (s *XLSXSink) FileName(kind string) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", s.opts.Profile, kind, s.opts.RunID)
}

func (s *XLSXSink) write(ctx context.Context, kind string, header []string, rows [][]string) error {
	name := s.FileName(kind)
	target := filepath.Join(s.opts.Dir, name)

	if err := writeWorkbook(target, sheetTitle(kind), header, rows); err != nil {
		return fmt.Errorf("failed to write %s report: %w", kind, err)
	}

	rep := Report{Kind: kind, Path: target, Rows: len(rows)}
	s.log.Info("Report written", zap.String("kind", kind), zap.String("file", target), zap.Int("rows", len(rows)))

	if s.opts.Uploader != nil {
		object := path.Join(ObjectPrefix(s.opts.Profile), name)
		if err := s.upload(ctx, target, object); err != nil {
			s.record(rep)
			return err
		}
		rep.Object = object
		s.log.Info("Report uploaded", zap.String("bucket", s.opts.Uploader.Bucket()), zap.String("object", object))
	}

	s.record(rep)
	return nil
}

func (s *XLSXSink) upload(ctx context.Context, file, object string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s for upload: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}

	return s.opts.Uploader.Upload(ctx, object, f, info.Size(), ContentTypeXLSX)
}

func (s *XLSXSink) record(r Report) {
	s.mu.Lock()
	s.reports = append(s.reports, r)
	s.mu.Unlock()
}

func sheetTitle(kind string) string {
	switch kind {
	case KindFailures:
		return "Failures"
	case KindSuccesses:
		return "Successes"
	default:
		return kind
	}
}
