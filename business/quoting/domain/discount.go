package domain

import (
	"github.com/shopspring/decimal"

	"github.com/comparador/quote-aggregator/internal/money"
)

var (
	// CampaignDiscountRate is the fixed campaign reduction.
	CampaignDiscountRate = decimal.RequireFromString("0.05")

	hundred = decimal.NewFromInt(100)
)

// DiscountPercentage reports the percentage shown alongside the result.
func DiscountPercentage(campaignActive bool) decimal.Decimal {
	if !campaignActive {
		return decimal.Zero
	}
	return CampaignDiscountRate.Mul(hundred)
}

// ApplyDiscount decorates raw quotes. An inactive campaign leaves both
// discount fields unset; an active one sets the original price and the
// price reduced by the campaign rate, rounded half-up to cents.
func ApplyDiscount(quotes []RawQuote, campaignActive bool) []PricedQuote {
	priced := make([]PricedQuote, len(quotes))
	factor := decimal.NewFromInt(1).Sub(CampaignDiscountRate)

	for i, q := range quotes {
		priced[i] = PricedQuote{RawQuote: q}
		if !campaignActive {
			continue
		}
		original := q.Price
		discounted := money.RoundCents(q.Price.Mul(factor))
		priced[i].OriginalPrice = &original
		priced[i].DiscountedPrice = &discounted
	}
	return priced
}
