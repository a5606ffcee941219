package providera

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
)

func TestAdapter_BuildRequest_MapsVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		carType  domain.CarType
		carUse   domain.CarUse
		wantForm string
		wantUse  string
	}{
		{"turismo_private", domain.CarTypeTurismo, domain.CarUsePrivado, "compact", "private"},
		{"compacto_commercial", domain.CarTypeCompacto, domain.CarUseComercial, "compact", "commercial"},
		{"suv_private", domain.CarTypeSUV, domain.CarUsePrivado, "suv", "private"},
	}

	a := New("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := a.BuildRequest(domain.QuoteRequest{DriverAge: 30, CarType: tt.carType, CarUse: tt.carUse})
			require.NoError(t, err)
			assert.Equal(t, "application/json", payload.ContentType)

			var got map[string]any
			require.NoError(t, json.Unmarshal(payload.Body, &got))
			assert.Equal(t, map[string]any{
				"driver_age": float64(30),
				"car_form":   tt.wantForm,
				"car_use":    tt.wantUse,
			}, got)
		})
	}
	assert.Equal(t, DefaultName, a.Name())
}

func TestAdapter_BuildRequest_UnknownVocabulary(t *testing.T) {
	_, err := New("x").BuildRequest(domain.QuoteRequest{DriverAge: 30, CarType: "moto", CarUse: domain.CarUsePrivado})
	assert.Equal(t, apperror.CodeInvalidCarType, apperror.GetCode(err))
}

func TestAdapter_ParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"string_with_currency", `{"price":"350 EUR"}`, "350", false},
		{"string_decimal", `{"price":"249.55 EUR"}`, "249.55", false},
		{"json_number", `{"price":217}`, "217", false},
		{"missing_price", `{}`, "", true},
		{"null_price", `{"price":null}`, "", true},
		{"non_numeric", `{"price":"free"}`, "", true},
		{"negative_number", `{"price":-5}`, "", true},
		{"negative_after_currency", `{"price":"EUR -350"}`, "", true},
		{"sign_before_suffix", `{"price":"350 -EUR"}`, "", true},
		{"error_body", `{"error":"Internal Server Error","message":"Provider temporarily unavailable"}`, "", true},
		{"not_json", `<html>`, "", true},
	}

	a := New("provider-a")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := a.ParseResponse([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.CodeProviderMalformedResponse, apperror.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, price.String())
		})
	}
}
