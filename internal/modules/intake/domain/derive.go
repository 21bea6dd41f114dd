package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ComputeAge returns completed years between dob and today. It does not
// reject future dates; they yield a negative age.
func ComputeAge(dob time.Time, hasDOB bool, today time.Time) int {
	if !hasDOB {
		return 0
	}
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// ComputeBMI takes weight in kilograms and height in centimetres as raw
// text and returns the body-mass index rounded to two decimals.
func ComputeBMI(weight, height string) float64 {
	w, ok := parse(weight)
	if !ok || w == 0 {
		return 0
	}
	h, ok := parse(height)
	if !ok || h == 0 {
		return 0
	}
	meters := h / 100
	return finiteOrZero(round2(w / (meters * meters)))
}

// ParseOrZero coerces form text to a number, yielding 0 for anything that
// does not parse to a finite value.
func ParseOrZero(text string) float64 {
	v, ok := parse(text)
	if !ok {
		return 0
	}
	return v
}

func parse(text string) (float64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
