package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	cases := map[string]string{
		"0":         "CERO LEMPIRAS CON 00/100",
		"1500.50":   "MIL QUINIENTOS LEMPIRAS CON 50/100",
		"21000":     "VEINTIÚN MIL LEMPIRAS CON 00/100",
		"101000":    "CIENTO UN MIL LEMPIRAS CON 00/100",
		"150000":    "CIENTO CINCUENTA MIL LEMPIRAS CON 00/100",
		"12500.75":  "DOCE MIL QUINIENTOS LEMPIRAS CON 75/100",
		"1000000":   "UN MILLÓN LEMPIRAS CON 00/100",
		"2345678.9": "DOS MILLONES TRESCIENTOS CUARENTA Y CINCO MIL SEISCIENTOS SETENTA Y OCHO LEMPIRAS CON 90/100",
		"31000000":  "TREINTA Y UN MILLONES LEMPIRAS CON 00/100",
		"21428.575": "VEINTIÚN MIL CUATROCIENTOS VEINTIOCHO LEMPIRAS CON 58/100",
	}
	for amount, want := range cases {
		assert.Equal(t, want, AmountToWords(decimal.RequireFromString(amount)), amount)
	}
}
