package mockprovider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/comparador/quote-aggregator/internal/logger"
)

type providerARequest struct {
	DriverAge *int    `json:"driver_age"`
	CarForm   *string `json:"car_form"`
	CarUse    *string `json:"car_use"`
}

type providerAError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ProviderA serves the JSON provider: fixed latency, a random share of 500s.
type ProviderA struct {
	Latency   time.Duration
	ErrorRate float64
	Chaos     Chaos
	Logger    logger.LoggerInterface
}

func (p *ProviderA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chaos := p.Chaos.withDefaults()

	if err := chaos.Sleep(ctx, p.Latency); err != nil {
		p.Logger.Debug(ctx, "provider-a client went away", "error", err)
		return
	}

	if chaos.Rand() < p.ErrorRate {
		p.Logger.Info(ctx, "provider-a simulated failure")
		writeJSON(w, http.StatusInternalServerError, providerAError{
			Error:   "Internal Server Error",
			Message: "Provider temporarily unavailable",
		})
		return
	}

	var in providerARequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.DriverAge == nil || in.CarForm == nil || in.CarUse == nil {
		writeJSON(w, http.StatusBadRequest, providerAError{
			Error:   "Bad Request",
			Message: "Missing required fields: driver_age, car_form, car_use",
		})
		return
	}

	price := PriceA(*in.DriverAge, *in.CarForm, *in.CarUse)
	p.Logger.Info(ctx, "provider-a quoted", "driver_age", *in.DriverAge, "car_form", *in.CarForm, "car_use", *in.CarUse, "price", price)

	writeJSON(w, http.StatusOK, map[string]string{"price": fmt.Sprintf("%d EUR", price)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
