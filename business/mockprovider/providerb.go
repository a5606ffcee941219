package mockprovider

import (
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/comparador/quote-aggregator/internal/logger"
)

// Any root element is accepted; only the children are inspected.
type providerBRequest struct {
	EdadConductor *string `xml:"EdadConductor"`
	TipoCoche     *string `xml:"TipoCoche"`
	UsoCoche      *string `xml:"UsoCoche"`
}

type providerBResponse struct {
	XMLName xml.Name `xml:"RespuestaCotizacion"`
	Precio  int64    `xml:"Precio"`
	Moneda  string   `xml:"Moneda"`
}

type providerBError struct {
	XMLName xml.Name `xml:"Error"`
	Mensaje string   `xml:"Mensaje"`
}

// ProviderB serves the XML provider: slow, and occasionally stalls far
// beyond any sensible client timeout.
type ProviderB struct {
	Latency   time.Duration
	StallRate float64
	Stall     time.Duration
	Chaos     Chaos
	Logger    logger.LoggerInterface
}

func (p *ProviderB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chaos := p.Chaos.withDefaults()

	wait := p.Latency
	if chaos.Rand() < p.StallRate {
		wait = p.Stall
		p.Logger.Info(ctx, "provider-b simulated stall", "stall", wait.String())
	}
	if err := chaos.Sleep(ctx, wait); err != nil {
		p.Logger.Debug(ctx, "provider-b client went away", "error", err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeXML(w, http.StatusBadRequest, providerBError{Mensaje: "Invalid XML"})
		return
	}

	var in providerBRequest
	if err := xml.Unmarshal(body, &in); err != nil {
		writeXML(w, http.StatusBadRequest, providerBError{Mensaje: "Invalid XML"})
		return
	}
	if in.EdadConductor == nil || in.TipoCoche == nil {
		writeXML(w, http.StatusBadRequest, providerBError{Mensaje: "Missing required fields: driver_age, car_form"})
		return
	}

	// Non-numeric ages count as 0 and land in the highest age band.
	age, _ := strconv.Atoi(strings.TrimSpace(*in.EdadConductor))
	price := PriceB(age, strings.TrimSpace(*in.TipoCoche))
	p.Logger.Info(ctx, "provider-b quoted", "driver_age", age, "car_type", *in.TipoCoche, "price", price)

	writeXML(w, http.StatusOK, providerBResponse{Precio: price, Moneda: "EUR"})
}

func writeXML(w http.ResponseWriter, status int, v any) {
	out, err := xml.MarshalIndent(v, "", "    ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, xml.Header)
	_, _ = w.Write(out)
}
