package records

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/filter"
	"github.com/ziadkadry99/string-analyzer/internal/logger"
	"github.com/ziadkadry99/string-analyzer/internal/nlquery"
)

// errInvalidParam marks a malformed query parameter or request field.
var errInvalidParam = errors.New("invalid parameter")

// RegisterRoutes mounts the string API routes.
func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.Route("/strings", func(r chi.Router) {
		r.Post("/", handleCreate(svc, log))
		r.Get("/", handleFilter(svc, log))
		r.Get("/filter-by-natural-language", handleNaturalLanguage(svc, log))
		r.Get("/{value}", handleGet(svc, log))
		r.Delete("/{value}", handleDelete(svc, log))
	})
}

type createRequest struct {
	Value json.RawMessage `json:"value"`
}

func handleCreate(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.Value) == 0 || string(req.Value) == "null" {
			writeError(w, http.StatusBadRequest, `missing "value" field`)
			return
		}
		var value string
		if err := json.Unmarshal(req.Value, &value); err != nil {
			writeError(w, http.StatusUnprocessableEntity, `invalid data type for "value" (must be string)`)
			return
		}

		rec, err := svc.Create(r.Context(), value)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func handleGet(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Get(r.Context(), pathValue(r))
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleDelete(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), pathValue(r)); err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleFilter(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs, err := ParseFilterParams(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, err := svc.Filter(r.Context(), fs)
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleNaturalLanguage(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has("query") {
			writeError(w, http.StatusBadRequest, `missing "query" parameter`)
			return
		}

		resp, err := svc.Interpret(r.Context(), q.Get("query"))
		if err != nil {
			writeServiceError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ParseFilterParams reads the structured filter parameters. Each accepts
// its snake_case name or the camelCase alias.
func ParseFilterParams(q url.Values) (filter.FilterSet, error) {
	var fs filter.FilterSet

	if v, ok := param(q, "is_palindrome", "isPalindrome"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fs, errors.Wrapf(errInvalidParam, "is_palindrome must be a boolean, got %q", v)
		}
		fs.IsPalindrome = filter.Bool(b)
	}

	ints := []struct {
		name, alias string
		dst         **int
	}{
		{"min_length", "minLength", &fs.MinLength},
		{"max_length", "maxLength", &fs.MaxLength},
		{"word_count", "wordCount", &fs.WordCount},
	}
	for _, p := range ints {
		v, ok := param(q, p.name, p.alias)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fs, errors.Wrapf(errInvalidParam, "%s must be a non-negative integer, got %q", p.name, v)
		}
		*p.dst = filter.Int(n)
	}

	if v, ok := param(q, "contains_character", "containsCharacter"); ok {
		if utf8.RuneCountInString(v) != 1 {
			return fs, errors.Wrapf(errInvalidParam, "contains_character must be exactly one character, got %q", v)
		}
		fs.ContainsCharacter = filter.String(v)
	}

	return fs, nil
}

func param(q url.Values, names ...string) (string, bool) {
	for _, n := range names {
		if q.Has(n) {
			return q.Get(n), true
		}
	}
	return "", false
}

// pathValue returns the {value} segment, decoded when the router matched
// on the escaped path.
func pathValue(r *http.Request) string {
	v := chi.URLParam(r, "value")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(v); err == nil {
			return unescaped
		}
	}
	return v
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, filter.ErrInvalidRange), errors.Is(err, nlquery.ErrUnparseable):
		return http.StatusBadRequest
	case errors.Is(err, errInvalidParam):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing text for err. Internal failures
// are not described.
func ErrorMessage(err error) string {
	for _, known := range []error{ErrDuplicate, ErrNotFound, filter.ErrInvalidRange, nlquery.ErrUnparseable} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	if errors.Is(err, errInvalidParam) {
		return err.Error()
	}
	return "internal server error"
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String(logger.FieldRequestID, middleware.GetReqID(r.Context())),
			zap.String(logger.FieldPath, r.URL.Path),
			zap.Error(err),
		)
	}
	writeError(w, status, ErrorMessage(err))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
