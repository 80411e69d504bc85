package mcp

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
	"github.com/ziadkadry99/string-analyzer/internal/filter"
	"github.com/ziadkadry99/string-analyzer/internal/records"
)

// handleAnalyzeString computes properties without touching the store.
func (s *Server) handleAnalyzeString(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}
	return jsonResult(analyzer.Compute(value))
}

// handleCreateString analyzes and stores a string.
func (s *Server) handleCreateString(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}

	rec, err := s.svc.Create(ctx, value)
	if err != nil {
		return s.serviceError("create_string", err), nil
	}
	return jsonResult(rec)
}

// handleGetString looks up a stored string by value or hash.
func (s *Server) handleGetString(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}

	rec, err := s.svc.Get(ctx, value)
	if err != nil {
		return s.serviceError("get_string", err), nil
	}
	return jsonResult(rec)
}

// handleFilterStrings applies structured filters.
func (s *Server) handleFilterStrings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fs, err := filterArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := s.svc.Filter(ctx, fs)
	if err != nil {
		return s.serviceError("filter_strings", err), nil
	}
	return jsonResult(resp)
}

// handleQueryStrings interprets a natural language query.
func (s *Server) handleQueryStrings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	resp, err := s.svc.Interpret(ctx, query)
	if err != nil {
		return s.serviceError("query_strings", err), nil
	}
	return jsonResult(resp)
}

// serviceError turns a service failure into a tool error. Internal failures
// are logged and reported generically.
func (s *Server) serviceError(tool string, err error) *mcp.CallToolResult {
	if records.StatusFor(err) == http.StatusInternalServerError {
		s.log.Error("tool failed", zap.String("tool", tool), zap.Error(err))
	}
	return mcp.NewToolResultError(records.ErrorMessage(err))
}

// filterArgs builds a filter set from tool arguments. Absent arguments are
// left unset.
func filterArgs(args map[string]any) (filter.FilterSet, error) {
	var fs filter.FilterSet

	if v, ok := args["is_palindrome"]; ok {
		b, ok := v.(bool)
		if !ok {
			return fs, errors.Newf("is_palindrome must be a boolean, got %v", v)
		}
		fs.IsPalindrome = filter.Bool(b)
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"min_length", &fs.MinLength},
		{"max_length", &fs.MaxLength},
		{"word_count", &fs.WordCount},
	} {
		v, ok := args[p.name]
		if !ok {
			continue
		}
		n, err := nonNegativeInt(v)
		if err != nil {
			return fs, errors.Wrap(err, p.name)
		}
		*p.dst = filter.Int(n)
	}

	if v, ok := args["contains_character"]; ok {
		c, ok := v.(string)
		if !ok || utf8.RuneCountInString(c) != 1 {
			return fs, errors.Newf("contains_character must be exactly one character, got %v", v)
		}
		fs.ContainsCharacter = filter.String(c)
	}

	return fs, nil
}

// nonNegativeInt accepts JSON numbers that are whole and not negative.
func nonNegativeInt(v any) (int, error) {
	f, ok := v.(float64)
	if !ok {
		if n, isInt := v.(int); isInt {
			f = float64(n)
		} else {
			return 0, errors.Newf("must be a number, got %v", v)
		}
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, errors.Newf("must be a non-negative integer, got %v", v)
	}
	return int(f), nil
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding result")
	}
	return mcp.NewToolResultText(string(data)), nil
}
