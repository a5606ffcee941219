package ui

import (
	"time"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
)

// ResultMsg carries a finished aggregation.
type ResultMsg struct {
	Result  domain.AggregationResult
	Elapsed time.Duration
}

// ErrorMsg is sent when the aggregation itself fails, not a single provider.
type ErrorMsg struct {
	Error error
}
