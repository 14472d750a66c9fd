package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DefaultPageSize is the fetch window used when a Spec does not set one.
const DefaultPageSize = 1000

// PageFetcher retrieves one page of remote records.
type PageFetcher interface {
	FetchPage(ctx context.Context, offset, limit int) (*Page, error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, offset, limit int) (*Page, error)

// FetchPage calls f.
func (f PageFetcherFunc) FetchPage(ctx context.Context, offset, limit int) (*Page, error) {
	return f(ctx, offset, limit)
}

// Spec bundles the inputs of one reconciliation run.
type Spec struct {
	// Dataset is the authoritative local data. It is only read.
	Dataset Dataset

	// Mapping is the ordered remote->local field mapping.
	Mapping FieldMapping

	// PrimaryKey is the primary-key field name (or path) in remote records.
	PrimaryKey string

	// TargetRecords caps the number of remote records validated.
	// If <= 0 the total-count hint of the first page is used instead.
	TargetRecords int

	// PageSize is the fetch window. Defaults to DefaultPageSize.
	PageSize int

	// Fetcher retrieves remote pages.
	Fetcher PageFetcher

	// Logger receives progress and mismatch logs. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (s *Spec) validate() error {
	if s.Dataset == nil {
		return ConfigurationError("reconcile", fmt.Errorf("dataset is nil"))
	}
	if len(s.Mapping) == 0 {
		return ConfigurationError("reconcile", fmt.Errorf("field mapping is empty"))
	}
	if s.PrimaryKey == "" {
		return ConfigurationError("reconcile", fmt.Errorf("remote primary key field is not set"))
	}
	if s.Fetcher == nil {
		return ConfigurationError("reconcile", fmt.Errorf("page fetcher is nil"))
	}
	if s.PageSize < 0 {
		return ConfigurationError("reconcile", fmt.Errorf("page size must be positive, got %d", s.PageSize))
	}
	return nil
}

// pagination is the loop state of one run.
type pagination struct {
	pageSize    int
	target      int
	offset      int
	recordsLeft int
	iterations  int
}

// advance recomputes the iteration bound and the records left for iteration i
// from the page just fetched, and returns how many of its records to validate.
//
// recordsLeft drops by a full page on every later iteration, not by the number
// of records validated. Both only differ on the last page, where the loop ends.
func (p *pagination) advance(i int, page *Page) (int, error) {
	if p.target <= 0 {
		// Only the first page must carry the hint; later pages may refresh the bound.
		if page.Total != nil {
			p.iterations = *page.Total/p.pageSize + 1
		} else if i == 0 {
			return 0, ProtocolError("reconcile", fmt.Errorf("first page has no total count and no target was given"))
		}
		if i == 0 {
			p.recordsLeft = *page.Total
		} else {
			p.recordsLeft -= p.pageSize
		}
	} else {
		p.iterations = p.target/p.pageSize + 1
		if i == 0 {
			p.recordsLeft = p.target
		} else {
			p.recordsLeft -= p.pageSize
		}
	}

	switch {
	case p.recordsLeft >= p.pageSize:
		return p.pageSize, nil
	case p.recordsLeft > 0:
		return p.recordsLeft, nil
	default:
		return 0, nil
	}
}

// Reconcile drives the pagination loop: it fetches pages sequentially, compares
// each remote record against the dataset and folds the outcomes into a RunAggregate.
//
// A fetch failure aborts the run and is returned together with the partial
// aggregate. Record mismatches never abort; they only flip OverallPass.
func Reconcile(ctx context.Context, spec Spec) (*RunAggregate, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	logger := spec.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pageSize := spec.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	agg := NewRunAggregate()
	state := &pagination{
		pageSize:   pageSize,
		target:     spec.TargetRecords,
		iterations: 1,
	}
	seen := make(map[string]struct{})

	for i := 0; i < state.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return agg, err
		}

		page, err := spec.Fetcher.FetchPage(ctx, state.offset, pageSize)
		if err != nil {
			return agg, err
		}
		if page == nil {
			return agg, ProtocolError("reconcile", fmt.Errorf("fetcher returned no page at offset %d", state.offset))
		}
		agg.Pages++

		limit, err := state.advance(i, page)
		if err != nil {
			return agg, err
		}

		if limit > len(page.Records) {
			logger.Warn("Page holds fewer records than expected",
				zap.Int("offset", state.offset),
				zap.Int("expected", limit),
				zap.Int("received", len(page.Records)),
			)
			limit = len(page.Records)
		}

		for idx := 0; idx < limit; idx++ {
			remote := page.Records[idx]

			outcome, err := Compare(remote, spec.Dataset, spec.PrimaryKey, spec.Mapping)
			if err != nil {
				return agg, err
			}

			if _, dup := seen[outcome.Key]; dup {
				return agg, DataIntegrityError("reconcile",
					fmt.Errorf("remote primary key %q appears more than once (offset %d, index %d)", outcome.Key, state.offset, idx))
			}
			seen[outcome.Key] = struct{}{}

			if !outcome.Pass {
				logMismatch(logger, outcome)
			}
			agg.add(outcome, spec.Dataset[outcome.Key])
		}

		state.offset += pageSize
		agg.Offset = state.offset

		logger.Info("Page validated",
			zap.Int("iteration", i),
			zap.Int("validated", agg.TotalValidated),
			zap.Int("pass", agg.TotalPass),
			zap.Int("fail", agg.TotalFail),
		)
	}

	return agg, nil
}

func logMismatch(logger *zap.Logger, outcome RecordOutcome) {
	for _, m := range outcome.Mismatches {
		if m.Field == KeyNotFoundField {
			logger.Warn("Primary key not present in local dataset", zap.String("key", outcome.Key))
			continue
		}
		logger.Warn("Value not matching",
			zap.String("key", outcome.Key),
			zap.String("field", m.Field),
			zap.String("expected", m.Expected),
			zap.String("actual", m.Actual),
		)
	}
}
