package service

import (
	"math"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

// Share of the reported manual hours assumed automatable.
const automatableShare = 0.8

// CalculateROI estimates savings for the landing-page calculator. Inputs
// are clamped to sane ranges rather than rejected.
func CalculateROI(req model.ROIRequest) model.ROIResponse {
	hours := clampFloat(req.HoursPerWeek, 1, 40)
	rate := clampFloat(req.HourlyCost, 10, 100)
	investment := clampFloat(req.Investment, 1000, 50000)

	weekly := hours * rate * automatableShare
	annual := weekly * 52
	roi := (annual - investment) / investment * 100

	payback := 999.0
	if weekly > 0 {
		payback = investment / (weekly * 4)
	}

	return model.ROIResponse{
		WeeklySavings:  round2(weekly),
		MonthlySavings: round2(weekly * 4),
		AnnualSavings:  round2(annual),
		ROIPercent:     round1(roi),
		PaybackMonths:  round1(payback),
		Profitable:     roi > 0,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
