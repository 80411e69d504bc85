package records

import (
	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
	"github.com/ziadkadry99/string-analyzer/internal/filter"
)

// FilterResponse is the envelope returned for structured filter queries.
type FilterResponse struct {
	Data           []analyzer.Record `json:"data"`
	Count          int               `json:"count"`
	FiltersApplied filter.FilterSet  `json:"filters_applied"`
}

// InterpretedQuery echoes a natural-language query and the filters parsed
// from it.
type InterpretedQuery struct {
	Original      string           `json:"original"`
	ParsedFilters filter.FilterSet `json:"parsed_filters"`
}

// NaturalLanguageResponse is the envelope returned for natural-language
// queries.
type NaturalLanguageResponse struct {
	Data             []analyzer.Record `json:"data"`
	Count            int               `json:"count"`
	InterpretedQuery InterpretedQuery  `json:"interpreted_query"`
}
