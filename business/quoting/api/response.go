package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
)

// CalculateResponse is the wire envelope of an aggregation result.
type CalculateResponse struct {
	CampaignActive     bool               `json:"campaign_active"`
	DiscountPercentage json.Number        `json:"discount_percentage"`
	Quotes             []QuoteDTO         `json:"quotes"`
	Errors             []ProviderErrorDTO `json:"errors"`
}

// QuoteDTO is one ranked quote. The discount pair is omitted when the
// campaign is inactive.
type QuoteDTO struct {
	Provider        string       `json:"provider"`
	Price           json.Number  `json:"price"`
	Currency        string       `json:"currency"`
	IsCheapest      bool         `json:"is_cheapest"`
	OriginalPrice   *json.Number `json:"original_price,omitempty"`
	DiscountedPrice *json.Number `json:"discounted_price,omitempty"`
}

// ProviderErrorDTO names a provider that produced no quote.
type ProviderErrorDTO struct {
	Provider string `json:"provider"`
	Error    string `json:"error"`
}

// ErrorResponse is the body of every non-200 answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewCalculateResponse maps a result onto its wire form.
func NewCalculateResponse(r domain.AggregationResult) CalculateResponse {
	resp := CalculateResponse{
		CampaignActive:     r.CampaignActive,
		DiscountPercentage: number(r.DiscountPercentage),
		Quotes:             make([]QuoteDTO, 0, len(r.Quotes)),
		Errors:             make([]ProviderErrorDTO, 0, len(r.Errors)),
	}

	for _, q := range r.Quotes {
		dto := QuoteDTO{
			Provider:   q.ProviderID,
			Price:      number(q.Price),
			Currency:   string(q.Currency),
			IsCheapest: q.IsCheapest,
		}
		if q.HasDiscount() {
			original, discounted := number(*q.OriginalPrice), number(*q.DiscountedPrice)
			dto.OriginalPrice = &original
			dto.DiscountedPrice = &discounted
		}
		resp.Quotes = append(resp.Quotes, dto)
	}

	for _, e := range r.Errors {
		resp.Errors = append(resp.Errors, ProviderErrorDTO{Provider: e.ProviderID, Error: e.Message})
	}

	return resp
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
