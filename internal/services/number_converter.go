package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountToWords spells an amount in lempiras the way contracts print it.
// Example: 1500.50 -> "MIL QUINIENTOS LEMPIRAS CON 50/100"
func AmountToWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	integerPart := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(integerPart)).Mul(decimal.NewFromInt(100)).IntPart()

	return fmt.Sprintf("%s LEMPIRAS CON %02d/100", numberToWords(integerPart), cents)
}

func numberToWords(n int64) string {
	switch {
	case n == 0:
		return "CERO"
	case n < 10:
		return units[n]
	case n < 30:
		return specials[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " Y " + units[n%10]
	case n < 1000:
		h, rest := n/100, n%100
		if rest == 0 {
			return hundreds[h]
		}
		if h == 1 {
			return "CIENTO " + numberToWords(rest)
		}
		return hundreds[h] + " " + numberToWords(rest)
	case n < 1_000_000:
		return scaled(n/1000, n%1000, "MIL", "MIL")
	case n < 1_000_000_000_000:
		return scaled(n/1_000_000, n%1_000_000, "UN MILLÓN", "MILLONES")
	default:
		return fmt.Sprintf("%d", n)
	}
}

// scaled renders count thousands or millions followed by the remainder
func scaled(count, rest int64, one, many string) string {
	var b strings.Builder
	if count == 1 {
		b.WriteString(one)
	} else {
		b.WriteString(apocope(numberToWords(count)))
		b.WriteString(" ")
		b.WriteString(many)
	}
	if rest > 0 {
		b.WriteString(" ")
		b.WriteString(numberToWords(rest))
	}
	return b.String()
}

// apocope shortens a trailing UNO before a noun (VEINTIUNO MIL -> VEINTIÚN MIL)
func apocope(words string) string {
	switch {
	case strings.HasSuffix(words, "VEINTIUNO"):
		return strings.TrimSuffix(words, "VEINTIUNO") + "VEINTIÚN"
	case strings.HasSuffix(words, "UNO"):
		return strings.TrimSuffix(words, "UNO") + "UN"
	}
	return words
}

var units = []string{
	"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE",
}

var specials = map[int64]string{
	10: "DIEZ", 11: "ONCE", 12: "DOCE", 13: "TRECE", 14: "CATORCE", 15: "QUINCE",
	16: "DIECISÉIS", 17: "DIECISIETE", 18: "DIECIOCHO", 19: "DIECINUEVE",
	20: "VEINTE", 21: "VEINTIUNO", 22: "VEINTIDÓS", 23: "VEINTITRÉS", 24: "VEINTICUATRO",
	25: "VEINTICINCO", 26: "VEINTISÉIS", 27: "VEINTISIETE", 28: "VEINTIOCHO", 29: "VEINTINUEVE",
}

var tens = []string{
	"", "", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA",
}

var hundreds = []string{
	"", "CIEN", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS",
}
