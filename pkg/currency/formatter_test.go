package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/hubfare/pkg/currency"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"65.384615", "EUR", "EUR 65.38"},
		{"210.38", "eur", "EUR 210.38"},
		{"1234567.5", "EUR", "EUR 1 234 567.50"},
		{"17000", "DZD", "DZD 17 000"},
		{"7800.6", "DZD", "DZD 7 801"},
		{"999", "DZD", "DZD 999"},
		{"1500", "USD", "USD 1,500.00"},
		{"12.5", "XYZ", "XYZ 12.50"},
		{"-47.95", "EUR", "-EUR 47.95"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, currency.Format(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}
