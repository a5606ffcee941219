package domain

import (
	"github.com/shopspring/decimal"

	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/money"
)

// RawQuote is a successful provider answer before any policy runs.
type RawQuote struct {
	ProviderID string
	Price      decimal.Decimal
	Currency   money.Currency
}

// NewRawQuote builds an EUR quote.
func NewRawQuote(providerID string, price decimal.Decimal) RawQuote {
	return RawQuote{ProviderID: providerID, Price: price, Currency: money.EUR}
}

// ProviderError records why one provider produced no quote.
type ProviderError struct {
	ProviderID string
	Message    string
	Kind       apperror.Code
}

// NewProviderError converts a call failure into a ProviderError.
func NewProviderError(providerID string, err error) ProviderError {
	return ProviderError{
		ProviderID: providerID,
		Message:    apperror.Describe(err),
		Kind:       apperror.GetCode(err),
	}
}

// PricedQuote is a RawQuote decorated by the discount and ranking policies.
// OriginalPrice and DiscountedPrice are either both set or both nil.
type PricedQuote struct {
	RawQuote
	IsCheapest      bool
	OriginalPrice   *decimal.Decimal
	DiscountedPrice *decimal.Decimal
}

// HasDiscount reports whether the quote carries a discount pair.
func (q PricedQuote) HasDiscount() bool {
	return q.OriginalPrice != nil && q.DiscountedPrice != nil
}

// EffectivePrice is the value ranking compares on.
func (q PricedQuote) EffectivePrice(campaignActive bool) decimal.Decimal {
	if campaignActive && q.DiscountedPrice != nil {
		return *q.DiscountedPrice
	}
	return q.Price
}

// AggregationResult is the envelope returned for every quote request.
type AggregationResult struct {
	RequestID          string
	CampaignActive     bool
	DiscountPercentage decimal.Decimal
	Quotes             []PricedQuote
	Errors             []ProviderError
}

// Cheapest returns the flagged quote, if any.
func (r AggregationResult) Cheapest() (PricedQuote, bool) {
	for _, q := range r.Quotes {
		if q.IsCheapest {
			return q, true
		}
	}
	return PricedQuote{}, false
}
