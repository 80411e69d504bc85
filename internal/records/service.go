package records

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
	"github.com/ziadkadry99/string-analyzer/internal/filter"
	"github.com/ziadkadry99/string-analyzer/internal/logger"
	"github.com/ziadkadry99/string-analyzer/internal/metrics"
	"github.com/ziadkadry99/string-analyzer/internal/nlquery"
)

// Service ties the record store to the filter engine and the
// natural-language interpreter. It holds no mutable state of its own.
type Service struct {
	store   RecordStore
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service backed by store.
func NewService(store RecordStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create analyzes value and stores it. It returns ErrDuplicate when the
// value is already stored.
func (s *Service) Create(ctx context.Context, value string) (*analyzer.Record, error) {
	rec := analyzer.NewRecord(value, s.now())
	if err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.metrics.Duplicate()
		}
		return nil, err
	}

	s.metrics.StringCreated()
	s.log.Debug("string stored", zap.String(logger.FieldStringID, rec.ID))
	return &rec, nil
}

// Get returns the string whose hash or value equals key.
func (s *Service) Get(ctx context.Context, key string) (*analyzer.Record, error) {
	return s.store.Get(ctx, key)
}

// Delete removes the string whose hash or value equals key.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	s.metrics.StringDeleted()
	s.log.Debug("string deleted", zap.String("key", key))
	return nil
}

// Count returns the number of stored strings.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Filter applies fs to every stored string. Contradictory bounds fail with
// filter.ErrInvalidRange before the store is read.
func (s *Service) Filter(ctx context.Context, fs filter.FilterSet) (*FilterResponse, error) {
	data, err := s.apply(ctx, metrics.KindFilter, fs)
	if err != nil {
		return nil, err
	}
	return &FilterResponse{
		Data:           data,
		Count:          len(data),
		FiltersApplied: fs,
	}, nil
}

// Interpret parses query into filters and applies them. It returns
// nlquery.ErrUnparseable when no rule matches.
func (s *Service) Interpret(ctx context.Context, query string) (*NaturalLanguageResponse, error) {
	fs, err := nlquery.Interpret(query)
	if err != nil {
		s.metrics.QueryError(metrics.KindNaturalLanguage, "unparseable")
		return nil, err
	}
	s.log.Debug("interpreted query", zap.String(logger.FieldQuery, query), zap.Any("filters", fs))

	data, err := s.apply(ctx, metrics.KindNaturalLanguage, fs)
	if err != nil {
		return nil, err
	}
	return &NaturalLanguageResponse{
		Data:  data,
		Count: len(data),
		InterpretedQuery: InterpretedQuery{
			Original:      query,
			ParsedFilters: fs,
		},
	}, nil
}

func (s *Service) apply(ctx context.Context, kind string, fs filter.FilterSet) ([]analyzer.Record, error) {
	if err := fs.Validate(); err != nil {
		s.metrics.QueryError(kind, "invalid_range")
		return nil, err
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := filter.Apply(fs, all)
	if err != nil {
		return nil, err
	}
	s.metrics.Query(kind, len(data))
	return data, nil
}
