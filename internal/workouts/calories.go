package workouts

import (
	"math"
	"strings"
)

const DefaultBodyWeight = 70.0

type CardioKind string

const (
	CardioRunning CardioKind = "Running"
	CardioCycling CardioKind = "Cycling"
	CardioWalking CardioKind = "Walking"
)

// ParseCardioKind matches exercise names case-insensitively.
func ParseCardioKind(name string) (CardioKind, bool) {
	for _, k := range []CardioKind{CardioRunning, CardioCycling, CardioWalking} {
		if strings.EqualFold(strings.TrimSpace(name), string(k)) {
			return k, true
		}
	}
	return "", false
}

// METs returns the metabolic equivalent for the activity at the given speed in km/h.
func METs(kind CardioKind, speedKmH float64) float64 {
	switch kind {
	case CardioRunning:
		switch {
		case speedKmH < 8:
			return 8
		case speedKmH < 11:
			return 10
		case speedKmH < 14:
			return 12
		default:
			return 14
		}
	case CardioCycling:
		switch {
		case speedKmH < 16:
			return 4
		case speedKmH < 20:
			return 6
		case speedKmH < 25:
			return 8
		default:
			return 10
		}
	case CardioWalking:
		switch {
		case speedKmH < 4:
			return 2.5
		case speedKmH < 6:
			return 3.5
		default:
			return 4.5
		}
	default:
		return 0
	}
}

// CalculateCalories = round(mets * weight * hours).
func CalculateCalories(mets, durationMinutes, weightKg float64) float64 {
	if weightKg <= 0 {
		weightKg = DefaultBodyWeight
	}
	return math.Round(mets * weightKg * (durationMinutes / 60))
}

// CalculateCardioCalories estimates burned calories from duration (min) and distance (km).
// Unknown activities and non-positive durations yield 0.
func CalculateCardioCalories(kind CardioKind, durationMinutes, distanceKm, weightKg float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	speed := distanceKm / (durationMinutes / 60)
	return CalculateCalories(METs(kind, speed), durationMinutes, weightKg)
}
