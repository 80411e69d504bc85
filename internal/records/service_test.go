package records

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
	"github.com/ziadkadry99/string-analyzer/internal/filter"
	"github.com/ziadkadry99/string-analyzer/internal/metrics"
	"github.com/ziadkadry99/string-analyzer/internal/nlquery"
)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func setupTestService(t *testing.T, values ...string) *Service {
	t.Helper()
	svc := NewService(setupTestStore(t),
		WithLogger(zaptest.NewLogger(t)),
		WithClock(steppingClock()),
	)
	for _, v := range values {
		_, err := svc.Create(context.Background(), v)
		require.NoError(t, err)
	}
	return svc
}

func recordValues(recs []analyzer.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Value
	}
	return out
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return w.Body.String()
}

func TestServiceCreate(t *testing.T) {
	m := metrics.New()
	svc := NewService(setupTestStore(t), WithMetrics(m))
	ctx := context.Background()

	rec, err := svc.Create(ctx, "racecar")
	require.NoError(t, err)
	assert.Equal(t, analyzer.Hash("racecar"), rec.ID)
	assert.True(t, rec.Properties.IsPalindrome)

	_, err = svc.Create(ctx, "racecar")
	assert.True(t, errors.Is(err, ErrDuplicate))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	body := scrape(t, m)
	assert.Contains(t, body, "stranalyzer_strings_created_total 1")
	assert.Contains(t, body, "stranalyzer_duplicates_total 1")
}

func TestServiceGetAndDelete(t *testing.T) {
	svc := setupTestService(t, "keep me", "drop me")
	ctx := context.Background()

	rec, err := svc.Get(ctx, "keep me")
	require.NoError(t, err)
	assert.Equal(t, analyzer.Hash("keep me"), rec.ID)

	require.NoError(t, svc.Delete(ctx, analyzer.Hash("drop me")))
	_, err = svc.Get(ctx, "drop me")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, "drop me"), ErrNotFound))
}

func TestServiceFilter(t *testing.T) {
	svc := setupTestService(t, "racecar", "hello world", "level", "a man a plan")
	ctx := context.Background()

	resp, err := svc.Filter(ctx, filter.FilterSet{IsPalindrome: filter.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{"level", "racecar"}, recordValues(resp.Data))
	assert.Equal(t, len(resp.Data), resp.Count)
	assert.Equal(t, true, *resp.FiltersApplied.IsPalindrome)
	assert.Nil(t, resp.FiltersApplied.MinLength)

	resp, err = svc.Filter(ctx, filter.FilterSet{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a man a plan", "level", "hello world", "racecar"}, recordValues(resp.Data))
}

func TestServiceFilterInvalidRange(t *testing.T) {
	m := metrics.New()
	svc := NewService(failingStore{}, WithMetrics(m))

	// The store is never read when bounds contradict.
	_, err := svc.Filter(context.Background(), filter.FilterSet{MinLength: filter.Int(3), MaxLength: filter.Int(2)})
	assert.True(t, errors.Is(err, filter.ErrInvalidRange))
	assert.Contains(t, scrape(t, m), `stranalyzer_query_errors_total{kind="filter",reason="invalid_range"} 1`)
}

func TestServiceInterpret(t *testing.T) {
	svc := setupTestService(t, "racecar", "hello world", "zoo", "level up now")
	ctx := context.Background()

	resp, err := svc.Interpret(ctx, "strings containing the letter z")
	require.NoError(t, err)
	assert.Equal(t, []string{"zoo"}, recordValues(resp.Data))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "strings containing the letter z", resp.InterpretedQuery.Original)
	assert.Equal(t, "z", *resp.InterpretedQuery.ParsedFilters.ContainsCharacter)

	resp, err = svc.Interpret(ctx, "three words")
	require.NoError(t, err)
	assert.Equal(t, []string{"level up now"}, recordValues(resp.Data))

	resp, err = svc.Interpret(ctx, "single word palindromic strings")
	require.NoError(t, err)
	assert.Equal(t, []string{"racecar"}, recordValues(resp.Data))
}

func TestServiceInterpretErrors(t *testing.T) {
	svc := setupTestService(t, "anything")
	ctx := context.Background()

	_, err := svc.Interpret(ctx, "gibberish xyz")
	assert.True(t, errors.Is(err, nlquery.ErrUnparseable))

	_, err = svc.Interpret(ctx, "longer than 10 and shorter than 5")
	assert.True(t, errors.Is(err, filter.ErrInvalidRange))
}

// failingStore fails every call.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Insert(context.Context, analyzer.Record) error { return errStoreDown }
func (failingStore) Get(context.Context, string) (*analyzer.Record, error) {
	return nil, errStoreDown
}
func (failingStore) List(context.Context) ([]analyzer.Record, error) { return nil, errStoreDown }
func (failingStore) Delete(context.Context, string) error            { return errStoreDown }
func (failingStore) Count(context.Context) (int, error)              { return 0, errStoreDown }
