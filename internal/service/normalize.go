package service

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Input limits for an offer's ETA: one hour to thirty days.
const (
	MinETAHours = 1
	MaxETAHours = 720
)

// parseAmount accepts the numeric or string representations the mobile app
// sends. Strings come in the Argentine format: "." as thousands separator,
// "," as decimal comma ("15.000,50" -> 15000.50).
func parseAmount(v interface{}, field string) (decimal.Decimal, error) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, validationErr(field, "must be a finite number")
		}
		return decimal.NewFromFloat(t), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, validationErr(field, "not a number")
		}
		return d, nil
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		if s == "" {
			return decimal.Zero, validationErr(field, "is required")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, validationErr(field, "not a number")
		}
		return d, nil
	case nil:
		return decimal.Zero, validationErr(field, "is required")
	default:
		return decimal.Zero, validationErr(field, "must be a number or a numeric string")
	}
}

// ParsePriceARS normalizes an offer price: must be > 0, stored rounded
// half-up at the cent.
func ParsePriceARS(v interface{}) (float64, error) {
	d, err := parseAmount(v, "price_ars")
	if err != nil {
		return 0, err
	}
	r := d.Round(2)
	if !r.IsPositive() {
		return 0, validationErr("price_ars", "must be greater than zero")
	}
	return r.InexactFloat64(), nil
}

// ParseETAHours normalizes an offer ETA: must be > 0, rounded to the nearest
// whole hour and clamped to [MinETAHours, MaxETAHours].
func ParseETAHours(v interface{}) (int, error) {
	d, err := parseAmount(v, "eta_hours")
	if err != nil {
		return 0, err
	}
	if !d.IsPositive() {
		return 0, validationErr("eta_hours", "must be greater than zero")
	}
	h := d.Round(0).IntPart()
	if h < MinETAHours {
		h = MinETAHours
	}
	if h > MaxETAHours {
		h = MaxETAHours
	}
	return int(h), nil
}

// FormatARS renders a price the way the client apps show it: "$ 15.000,50".
func FormatARS(price float64) string {
	fixed := decimal.NewFromFloat(price).Round(2).StringFixed(2) // "15000.50"
	parts := strings.SplitN(fixed, ".", 2)
	intPart, frac := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	out := "$ " + strings.Join(grouped, ".") + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
