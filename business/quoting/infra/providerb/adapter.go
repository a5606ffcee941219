// Package providerb implements the XML provider adapter.
package providerb

import (
	"encoding/xml"

	"github.com/shopspring/decimal"

	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/money"
)

// DefaultName is the id used when the provider is configured without one.
const DefaultName = "provider-b"

const (
	contentType      = "application/xml"
	occasionalDriver = "NO"
)

// SolicitudCotizacion is the request document. Car type and use are sent
// untranslated.
type SolicitudCotizacion struct {
	XMLName            xml.Name `xml:"SolicitudCotizacion"`
	EdadConductor      int      `xml:"EdadConductor"`
	TipoCoche          string   `xml:"TipoCoche"`
	UsoCoche           string   `xml:"UsoCoche"`
	ConductorOcasional string   `xml:"ConductorOcasional"`
}

// RespuestaCotizacion is the success document.
type RespuestaCotizacion struct {
	XMLName xml.Name `xml:"RespuestaCotizacion"`
	Precio  *string  `xml:"Precio"`
	Moneda  string   `xml:"Moneda"`
}

// Adapter translates quote requests to and from the XML provider.
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

// BuildRequest renders the XML document with its declaration.
func (a *Adapter) BuildRequest(req domain.QuoteRequest) (app.Payload, error) {
	doc, err := xml.Marshal(SolicitudCotizacion{
		EdadConductor:      req.DriverAge,
		TipoCoche:          string(req.CarType),
		UsoCoche:           string(req.CarUse),
		ConductorOcasional: occasionalDriver,
	})
	if err != nil {
		return app.Payload{}, apperror.Internal(apperror.CodeInternalError, "encode provider-b request", err)
	}

	body := make([]byte, 0, len(xml.Header)+len(doc))
	body = append(body, xml.Header...)
	body = append(body, doc...)
	return app.Payload{ContentType: contentType, Body: body}, nil
}

// ParseResponse reads <Precio> from a RespuestaCotizacion document.
func (a *Adapter) ParseResponse(body []byte) (decimal.Decimal, error) {
	var resp RespuestaCotizacion
	if err := xml.Unmarshal(body, &resp); err != nil {
		return decimal.Zero, apperror.New(apperror.CodeProviderMalformedResponse,
			apperror.WithMessage("Invalid XML response"), apperror.WithCause(err))
	}
	if resp.Precio == nil {
		return decimal.Zero, apperror.New(apperror.CodeProviderMalformedResponse,
			apperror.WithMessage("Missing Precio in response"))
	}

	price, err := money.ParseStrict(*resp.Precio)
	if err != nil {
		return decimal.Zero, apperror.New(apperror.CodeProviderMalformedResponse,
			apperror.WithMessage("Invalid Precio in response"),
			apperror.WithContext(*resp.Precio),
			apperror.WithCause(err))
	}
	return price, nil
}
