package domain

import "slices"

// Rank orders quotes by effective price ascending and flags the first one
// as cheapest. Equal prices keep their input order. The input is not
// modified.
func Rank(quotes []PricedQuote, campaignActive bool) []PricedQuote {
	ranked := slices.Clone(quotes)
	if ranked == nil {
		ranked = []PricedQuote{}
	}

	slices.SortStableFunc(ranked, func(a, b PricedQuote) int {
		return a.EffectivePrice(campaignActive).Cmp(b.EffectivePrice(campaignActive))
	})

	for i := range ranked {
		ranked[i].IsCheapest = i == 0
	}
	return ranked
}
