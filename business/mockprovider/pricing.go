// Package mockprovider simulates the two external quote providers for local
// runs and end to end tests.
package mockprovider

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/comparador/quote-aggregator/internal/money"
)

var commercialSurcharge = decimal.RequireFromString("1.15")

// PriceA is Provider A's tariff. carForm and carUse use the provider's own
// vocabulary (compact/suv, private/commercial).
func PriceA(driverAge int, carForm, carUse string) int64 {
	price := int64(217)

	switch {
	case driverAge >= 18 && driverAge <= 24:
		price += 70
	case driverAge >= 56:
		price += 90
	}

	switch strings.ToLower(carForm) {
	case "suv":
		price += 100
	case "compact":
		price += 10
	}

	if strings.ToLower(carUse) == "commercial" {
		price = money.RoundHalfUp(decimal.NewFromInt(price).Mul(commercialSurcharge), 0).IntPart()
	}

	return price
}

// PriceB is Provider B's tariff. The car type is the domain value
// (turismo/suv/compacto); car use does not affect the price.
func PriceB(driverAge int, carType string) int64 {
	price := int64(250)

	switch {
	case driverAge >= 18 && driverAge <= 29:
		price += 50
	case driverAge >= 30 && driverAge <= 59:
		price += 20
	default:
		price += 100
	}

	switch strings.ToLower(carType) {
	case "turismo":
		price += 30
	case "suv":
		price += 200
	}

	return price
}
