package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testValidator() *Validator {
	return NewValidator(WithClock(func() time.Time { return fixedNow }))
}

func TestValidator_DecodeAndValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     domain.QuoteRequest
		wantCode apperror.Code
		wantMsg  string
	}{
		{
			name: "valid",
			body: `{"driver_birthday":"1995-01-01","car_type":"turismo","car_use":"privado"}`,
			want: domain.QuoteRequest{DriverAge: 30, CarType: domain.CarTypeTurismo, CarUse: domain.CarUsePrivado},
		},
		{
			name: "uppercase_and_english_alias",
			body: `{"driver_birthday":"1990-06-16","car_type":"SUV","car_use":"Commercial"}`,
			want: domain.QuoteRequest{DriverAge: 34, CarType: domain.CarTypeSUV, CarUse: domain.CarUseComercial},
		},
		{
			name: "birthday_today_turns_18",
			body: `{"driver_birthday":"2007-06-15","car_type":"compacto","car_use":"private"}`,
			want: domain.QuoteRequest{DriverAge: 18, CarType: domain.CarTypeCompacto, CarUse: domain.CarUsePrivado},
		},
		{
			name:     "missing_fields",
			body:     `{"car_type":"suv"}`,
			wantCode: apperror.CodeRequiredField,
			wantMsg:  "Missing required fields: driver_birthday, car_type, car_use",
		},
		{
			name:     "empty_body",
			body:     ``,
			wantCode: apperror.CodeRequiredField,
			wantMsg:  "Missing required fields: driver_birthday, car_type, car_use",
		},
		{
			name:     "not_json",
			body:     `driver_birthday=1990-01-01`,
			wantCode: apperror.CodeRequiredField,
		},
		{
			name:     "non_string_field",
			body:     `{"driver_birthday":"1990-01-01","car_type":3,"car_use":"privado"}`,
			wantCode: apperror.CodeInvalidInput,
			wantMsg:  "Invalid car_type: expected a string",
		},
		{
			name:     "invalid_car_type",
			body:     `{"driver_birthday":"1990-01-01","car_type":"moto","car_use":"privado"}`,
			wantCode: apperror.CodeInvalidCarType,
			wantMsg:  `Invalid car_type: "moto". Valid values: turismo, suv, compacto`,
		},
		{
			name:     "invalid_car_use",
			body:     `{"driver_birthday":"1990-01-01","car_type":"suv","car_use":"taxi"}`,
			wantCode: apperror.CodeInvalidCarUse,
			wantMsg:  `Invalid car_use: "taxi". Valid values: privado, comercial`,
		},
		{
			name:     "bad_birthday_format",
			body:     `{"driver_birthday":"01/01/1990","car_type":"suv","car_use":"privado"}`,
			wantCode: apperror.CodeInvalidBirthday,
		},
		{
			name:     "future_birthday",
			body:     `{"driver_birthday":"2030-01-01","car_type":"suv","car_use":"privado"}`,
			wantCode: apperror.CodeInvalidBirthday,
			wantMsg:  "driver_birthday cannot be in the future",
		},
		{
			name:     "underage",
			body:     `{"driver_birthday":"2007-06-16","car_type":"suv","car_use":"privado"}`,
			wantCode: apperror.CodeDriverUnderage,
			wantMsg:  "Driver must be at least 18 years old",
		},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.DecodeAndValidate([]byte(tt.body))
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperror.GetCode(err))
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, apperror.Describe(err))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidator_ErrorsAreValidation(t *testing.T) {
	_, err := testValidator().DecodeAndValidate([]byte(`{}`))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsValidation())
}
