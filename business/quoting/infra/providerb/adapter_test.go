package providerb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
)

func TestAdapter_BuildRequest(t *testing.T) {
	payload, err := New("").BuildRequest(domain.QuoteRequest{
		DriverAge: 22,
		CarType:   domain.CarTypeTurismo,
		CarUse:    domain.CarUseComercial,
	})
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<SolicitudCotizacion><EdadConductor>22</EdadConductor><TipoCoche>turismo</TipoCoche>` +
		`<UsoCoche>comercial</UsoCoche><ConductorOcasional>NO</ConductorOcasional></SolicitudCotizacion>`
	assert.Equal(t, want, string(payload.Body))
	assert.Equal(t, "application/xml", payload.ContentType)
}

func TestAdapter_ParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantMsg string
	}{
		{
			name: "valid",
			body: `<?xml version="1.0"?><RespuestaCotizacion><Precio>300</Precio><Moneda>EUR</Moneda></RespuestaCotizacion>`,
			want: "300",
		},
		{
			name: "decimal_with_whitespace",
			body: "<RespuestaCotizacion><Precio>\n  272.65 </Precio></RespuestaCotizacion>",
			want: "272.65",
		},
		{
			name:    "missing_precio",
			body:    `<RespuestaCotizacion><Moneda>EUR</Moneda></RespuestaCotizacion>`,
			wantMsg: "Missing Precio in response",
		},
		{
			name:    "non_numeric_precio",
			body:    `<RespuestaCotizacion><Precio>mucho</Precio></RespuestaCotizacion>`,
			wantMsg: "Invalid Precio in response: mucho",
		},
		{
			name:    "empty_precio",
			body:    `<RespuestaCotizacion><Precio></Precio></RespuestaCotizacion>`,
			wantMsg: "Invalid Precio in response",
		},
		{
			name:    "error_document",
			body:    `<Error><Mensaje>Invalid XML</Mensaje></Error>`,
			wantMsg: "Invalid XML response",
		},
		{
			name:    "truncated",
			body:    `<RespuestaCotizacion><Precio>30`,
			wantMsg: "Invalid XML response",
		},
	}

	a := New("provider-b")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := a.ParseResponse([]byte(tt.body))
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, apperror.CodeProviderMalformedResponse, apperror.GetCode(err))
				assert.Equal(t, tt.wantMsg, apperror.Describe(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, price.String())
		})
	}
}
