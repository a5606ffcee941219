// Package domain holds the quote aggregation value types and the pure
// discount and ranking policies.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/comparador/quote-aggregator/internal/apperror"
)

// MinimumDriverAge is the youngest age a quote can be requested for.
const MinimumDriverAge = 18

// CarType is the vehicle category in the domain vocabulary.
type CarType string

// Supported car types.
const (
	CarTypeTurismo  CarType = "turismo"
	CarTypeSUV      CarType = "suv"
	CarTypeCompacto CarType = "compacto"
)

// CarTypes lists the accepted car types in display order.
var CarTypes = []CarType{CarTypeTurismo, CarTypeSUV, CarTypeCompacto}

// CarUse is how the vehicle is used.
type CarUse string

// Supported car uses.
const (
	CarUsePrivado   CarUse = "privado"
	CarUseComercial CarUse = "comercial"
)

// CarUses lists the accepted car uses in display order.
var CarUses = []CarUse{CarUsePrivado, CarUseComercial}

var carUseAliases = map[string]CarUse{
	"privado":    CarUsePrivado,
	"private":    CarUsePrivado,
	"comercial":  CarUseComercial,
	"commercial": CarUseComercial,
}

// ParseCarType normalises and validates a car type.
func ParseCarType(s string) (CarType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, ct := range CarTypes {
		if string(ct) == v {
			return ct, nil
		}
	}
	return "", apperror.Validation(apperror.CodeInvalidCarType,
		fmt.Sprintf("Invalid car_type: %q. Valid values: %s", s, joinValues(CarTypes)))
}

// ParseCarUse normalises a car use, accepting the english aliases.
func ParseCarUse(s string) (CarUse, error) {
	if cu, ok := carUseAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return cu, nil
	}
	return "", apperror.Validation(apperror.CodeInvalidCarUse,
		fmt.Sprintf("Invalid car_use: %q. Valid values: %s", s, joinValues(CarUses)))
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// QuoteRequest is the validated input of one aggregation.
type QuoteRequest struct {
	DriverAge int
	CarType   CarType
	CarUse    CarUse
}

// NewQuoteRequest builds a request from raw values.
func NewQuoteRequest(driverAge int, carType, carUse string) (QuoteRequest, error) {
	if driverAge < 0 {
		return QuoteRequest{}, apperror.Validation(apperror.CodeInvalidInput, "driver age cannot be negative")
	}
	ct, err := ParseCarType(carType)
	if err != nil {
		return QuoteRequest{}, err
	}
	cu, err := ParseCarUse(carUse)
	if err != nil {
		return QuoteRequest{}, err
	}
	return QuoteRequest{DriverAge: driverAge, CarType: ct, CarUse: cu}, nil
}

// AgeOn returns the number of full years between birthday and today.
func AgeOn(birthday, today time.Time) int {
	by, bm, bd := birthday.Date()
	ty, tm, td := today.Date()

	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}
