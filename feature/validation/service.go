package validation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"data-reconciler/core/database"
	"data-reconciler/core/mapping"
	"data-reconciler/core/profile"
	"data-reconciler/core/reconcile"
	"data-reconciler/core/remote"
	"data-reconciler/core/report"
	"data-reconciler/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Request selects a profile and optionally overrides its run parameters.
type Request struct {
	Profile string
	// TargetRecords overrides the configured target when positive.
	TargetRecords int
	// PageSize overrides the configured page size when positive.
	PageSize int
	// Upload publishes reports even when uploads are off in the configuration.
	Upload bool
}

// Options bundles the settings and collaborators of a Service.
type Options struct {
	Config Config
	API    remote.APIConfig
	Auth   remote.AuthConfig

	DB         *gorm.DB
	HTTPClient *http.Client

	// Storage is optional; without it reports stay local.
	Storage storage.Client
	Bucket  string
	Region  string

	Logger *zap.Logger
}

// Service runs reconciliations of validation profiles.
type Service struct {
	opts   Options
	logger *zap.Logger
	group  singleflight.Group
}

// NewService creates a new validation service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &Service{opts: opts, logger: logger}
}

// Run performs one complete reconciliation of req.Profile.
//
// The returned error is non-nil only for fatal conditions; a run with
// mismatches returns a Result whose aggregate has OverallPass unset.
func (s *Service) Run(ctx context.Context, req Request) (*report.Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.With(zap.String("profile", req.Profile), zap.String("run_id", runID))

	p, err := profile.Load(s.opts.Config.ResourceDir, req.Profile)
	if err != nil {
		return nil, err
	}
	fieldMapping, err := mapping.Load(p.MappingFile)
	if err != nil {
		return nil, err
	}
	query, err := p.ReadQuery()
	if err != nil {
		return nil, err
	}

	pageSize := firstPositive(req.PageSize, p.PageSize, s.opts.Config.PageSize, reconcile.DefaultPageSize)
	target := firstPositive(req.TargetRecords, p.TargetRecords, s.opts.Config.TargetRecords)

	if s.opts.DB == nil {
		return nil, reconcile.ConnectivityError("load dataset", fmt.Errorf("database is not connected"))
	}

	log.Info("Loading local dataset", zap.String("primary_key", p.PrimaryKey))
	dataset, err := database.LoadDataset(ctx, s.opts.DB, query, p.PrimaryKey, log)
	if err != nil {
		return nil, err
	}

	tokens, err := remote.NewTokenProvider(s.opts.Auth, s.opts.HTTPClient, log)
	if err != nil {
		return nil, err
	}
	token, err := tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := remote.NewHTTPFetcher(s.opts.API, s.opts.HTTPClient, p.Endpoint, token,
		remote.PageLayout{RecordsPath: p.RecordsPath, TotalPath: p.TotalPath}, log)
	if err != nil {
		return nil, err
	}

	log.Info("Starting reconciliation",
		zap.Int("dataset_size", len(dataset)),
		zap.Int("page_size", pageSize),
		zap.Int("target_records", target),
	)

	agg, err := reconcile.Reconcile(ctx, reconcile.Spec{
		Dataset:       dataset,
		Mapping:       fieldMapping,
		PrimaryKey:    p.ResponsePrimaryKey,
		TargetRecords: target,
		PageSize:      pageSize,
		Fetcher:       fetcher,
		Logger:        log,
	})
	if err != nil {
		if agg != nil {
			log.Error("Reconciliation aborted",
				zap.Int("validated", agg.TotalValidated),
				zap.Int("offset", agg.Offset),
				zap.Error(err),
			)
		}
		return nil, err
	}

	res := &report.Result{
		RunID:     runID,
		Profile:   p.Name,
		Aggregate: agg,
		Reports:   []report.Report{},
	}
	if s.opts.Config.Reports {
		res.Reports = s.writeReports(ctx, log, runID, p.Name, req.Upload, fieldMapping, agg)
	}
	res.Duration = time.Since(start)

	log.Info("Reconciliation completed",
		zap.Int("validated", agg.TotalValidated),
		zap.Int("pass", agg.TotalPass),
		zap.Int("fail", agg.TotalFail),
		zap.Bool("overall_pass", agg.OverallPass),
		zap.Duration("execution_time", res.Duration),
	)
	return res, nil
}

// RunShared is Run for concurrent callers: requests for the same profile that
// arrive while a run is in flight share its result.
func (s *Service) RunShared(ctx context.Context, req Request) (*report.Result, bool, error) {
	key := fmt.Sprintf("%s|%d|%d|%t", req.Profile, req.TargetRecords, req.PageSize, req.Upload)

	v, err, shared := s.group.Do(key, func() (any, error) {
		// The run outlives a caller that goes away while others still wait on it.
		return s.Run(context.WithoutCancel(ctx), req)
	})
	if err != nil {
		return nil, shared, err
	}
	return v.(*report.Result), shared, nil
}

// Profiles lists the available profile names.
func (s *Service) Profiles() ([]string, error) {
	return profile.List(s.opts.Config.ResourceDir)
}

// Profile loads one profile.
func (s *Service) Profile(name string) (*profile.Profile, error) {
	return profile.Load(s.opts.Config.ResourceDir, name)
}

// StoredReports lists the uploaded reports of a profile.
func (s *Service) StoredReports(ctx context.Context, name string) ([]storage.Object, error) {
	if s.opts.Storage == nil {
		return nil, ErrStorageDisabled
	}
	return storage.List(ctx, s.opts.Storage, s.opts.Bucket, report.ObjectPrefix(name))
}

// DatabaseReady reports whether a database connection is configured and alive.
func (s *Service) DatabaseReady(ctx context.Context) bool {
	if s.opts.DB == nil {
		return false
	}
	sqlDB, err := s.opts.DB.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

func (s *Service) writeReports(ctx context.Context, log *zap.Logger, runID, name string, upload bool, m reconcile.FieldMapping, agg *reconcile.RunAggregate) []report.Report {
	var uploader *report.Uploader
	if (upload || s.opts.Config.Upload) && s.opts.Storage != nil {
		uploader = report.NewUploader(s.opts.Storage, s.opts.Bucket, s.opts.Region)
	} else if upload || s.opts.Config.Upload {
		log.Warn("Report upload requested but storage is not configured")
	}

	sink, err := report.NewXLSXSink(report.Options{
		Dir:      s.opts.Config.OutputDir,
		Profile:  name,
		RunID:    runID,
		Uploader: uploader,
		Logger:   log,
	})
	if err != nil {
		log.Error("Failed to prepare reports", zap.Error(err))
		return []report.Report{}
	}

	if err := sink.WriteFailures(ctx, agg.OrderedFailures()); err != nil {
		log.Error("Failed to write failure report", zap.Error(err))
	}
	if err := sink.WriteSuccesses(ctx, m.LocalColumns(), agg.Successes); err != nil {
		log.Error("Failed to write success report", zap.Error(err))
	}
	return sink.Reports()
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
