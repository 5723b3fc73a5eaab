// Package service is the facade over the load pipeline and the queries a
// presentation layer runs against the current result file.
package service

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mat-analysis/internal/classifier"
	"github.com/mat-analysis/internal/parser"
	"github.com/mat-analysis/internal/parser/mat4"
	"github.com/mat-analysis/internal/repository"
	"github.com/mat-analysis/internal/statistics"
	"github.com/mat-analysis/internal/storage"
	"github.com/mat-analysis/pkg/config"
	"github.com/mat-analysis/pkg/utils"
)

// DefaultFormat is the parser used when a path has no recognised extension.
const DefaultFormat = "mat"

// Service loads result files and answers queries over the last successful
// load. Queries never block on a load in progress.
type Service struct {
	parsers      *parser.Registry
	parseOptions *parser.ParseOptions
	classifier   *classifier.Classifier
	summary      *statistics.SummaryCalculator
	workers      int
	history      repository.HistoryRepository
	storage      storage.Storage
	logger       utils.Logger
	clock        utils.Clock
	newID        func() string
	extra        []parser.Parser

	// loadMu serializes loads so snapshots are published in request order.
	loadMu  sync.Mutex
	current atomic.Pointer[Snapshot]

	closers []io.Closer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger utils.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used for load timestamps and durations.
func WithClock(clock utils.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithParser registers an additional parser. It replaces the built-in one
// for the formats it claims.
func WithParser(p parser.Parser) Option {
	return func(s *Service) {
		if p != nil {
			s.extra = append(s.extra, p)
		}
	}
}

// WithParseOptions sets the options of the built-in MAT parser.
func WithParseOptions(opts *parser.ParseOptions) Option {
	return func(s *Service) {
		if opts != nil {
			s.parseOptions = opts
		}
	}
}

// WithHistory records every load outcome in repo.
func WithHistory(repo repository.HistoryRepository) Option {
	return func(s *Service) {
		s.history = repo
	}
}

// WithStorage enables loading from and exporting to object storage.
func WithStorage(st storage.Storage) Option {
	return func(s *Service) {
		s.storage = st
	}
}

// WithClassifier replaces the default classifier.
func WithClassifier(c *classifier.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithWorkers sets how many goroutines compute summaries.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// WithIDGenerator sets the load ID source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a Service with the MAT v4 parser registered.
func New(opts ...Option) *Service {
	s := &Service{
		parsers:    parser.NewRegistry(),
		classifier: classifier.New(),
		logger:     &utils.NullLogger{},
		clock:      utils.NewRealClock(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parsers.Register(mat4.NewParser(s.parseOptions, s.logger.WithField("component", "mat4")))
	for _, p := range s.extra {
		s.parsers.Register(p)
	}

	s.summary = statistics.NewSummaryCalculator(statistics.WithWorkers(s.workers))
	return s
}

// NewFromConfig builds a Service from configuration, connecting the
// history database when it is enabled.
func NewFromConfig(cfg *config.Config, logger utils.Logger, opts ...Option) (*Service, error) {
	base := []Option{
		WithLogger(logger),
		WithWorkers(cfg.Analysis.MaxWorkers),
		WithParseOptions(&parser.ParseOptions{
			MaxElements: cfg.Analysis.MaxElements,
			Normalize:   cfg.Analysis.Normalize,
		}),
	}

	var closers []io.Closer
	if cfg.Database.Enabled {
		repos, err := repository.Connect(&repository.DBConfig{
			Type:     cfg.Database.Type,
			Path:     cfg.Database.Path,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			Database: cfg.Database.Database,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			MaxConns: cfg.Database.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		base = append(base, WithHistory(repos.History))
		closers = append(closers, repos)
	}

	s := New(append(base, opts...)...)
	s.closers = closers
	return s, nil
}

// Close releases the database connection, if any.
func (s *Service) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Snapshot returns the currently published load, or nil.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// Loaded reports whether a load has succeeded.
func (s *Service) Loaded() bool {
	return s.current.Load() != nil
}

// HasStorage reports whether object storage is configured.
func (s *Service) HasStorage() bool {
	return s.storage != nil
}
