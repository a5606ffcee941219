// Package providera implements the JSON provider adapter.
package providera

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/money"
)

// DefaultName is the id used when the provider is configured without one.
const DefaultName = "provider-a"

const contentType = "application/json"

// carForms maps domain car types to the provider vocabulary.
var carForms = map[domain.CarType]string{
	domain.CarTypeTurismo:  "compact",
	domain.CarTypeCompacto: "compact",
	domain.CarTypeSUV:      "suv",
}

// carUses maps domain car uses to the provider vocabulary.
var carUses = map[domain.CarUse]string{
	domain.CarUsePrivado:   "private",
	domain.CarUseComercial: "commercial",
}

// QuoteRequest is the provider's request body.
type QuoteRequest struct {
	DriverAge int    `json:"driver_age"`
	CarForm   string `json:"car_form"`
	CarUse    string `json:"car_use"`
}

// QuoteResponse is the provider's success body. Price is normally a string
// such as "350 EUR".
type QuoteResponse struct {
	Price json.RawMessage `json:"price"`
}

// Adapter translates quote requests to and from the JSON provider.
type Adapter struct {
	name string
}

var _ app.ProviderAdapter = (*Adapter)(nil)

// New creates an adapter reporting results under name.
func New(name string) *Adapter {
	if name == "" {
		name = DefaultName
	}
	return &Adapter{name: name}
}

// Name returns the provider id.
func (a *Adapter) Name() string {
	return a.name
}

// BuildRequest renders the JSON body.
func (a *Adapter) BuildRequest(req domain.QuoteRequest) (app.Payload, error) {
	form, ok := carForms[req.CarType]
	if !ok {
		return app.Payload{}, apperror.New(apperror.CodeInvalidCarType, apperror.WithContext(string(req.CarType)))
	}
	use, ok := carUses[req.CarUse]
	if !ok {
		return app.Payload{}, apperror.New(apperror.CodeInvalidCarUse, apperror.WithContext(string(req.CarUse)))
	}

	body, err := json.Marshal(QuoteRequest{
		DriverAge: req.DriverAge,
		CarForm:   form,
		CarUse:    use,
	})
	if err != nil {
		return app.Payload{}, apperror.Internal(apperror.CodeInternalError, "encode provider-a request", err)
	}
	return app.Payload{ContentType: contentType, Body: body}, nil
}

// ParseResponse extracts the price. A missing, null or non-numeric price is
// a malformed response rather than a zero-priced quote.
func (a *Adapter) ParseResponse(body []byte) (decimal.Decimal, error) {
	var resp QuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return decimal.Zero, malformed("Invalid JSON response", err)
	}

	raw := bytes.TrimSpace(resp.Price)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, malformed("Missing price in response", nil)
	}

	var price decimal.Decimal
	var err error
	if raw[0] == '"' {
		var s string
		if err = json.Unmarshal(raw, &s); err == nil {
			price, err = money.ParseAmount(s)
		}
	} else {
		price, err = money.ParseStrict(string(raw))
	}
	if err != nil {
		return decimal.Zero, malformed(fmt.Sprintf("Invalid price %s", raw), err)
	}
	return price, nil
}

func malformed(msg string, cause error) error {
	opts := []apperror.Option{apperror.WithMessage(msg)}
	if cause != nil {
		opts = append(opts, apperror.WithCause(cause))
	}
	return apperror.New(apperror.CodeProviderMalformedResponse, opts...)
}
