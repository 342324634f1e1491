package view

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/fadilmartias/resume-scorecard/internal/model"
)

// Scorecard formats every field of result for display.
//
// Fractions are scaled to percentages with two decimals, the checks get a
// percent sign appended to their raw value, counts are shown as sent and the
// final score is already a percentage.
func Scorecard(result *model.AnalysisResult) []Binding {
	return []Binding{
		{KeywordScore, fraction(result.KeywordScore)},
		{ExperienceScore, fraction(result.ExperienceScore)},
		{SkillsScore, fraction(result.SkillsScore)},
		{EducationCheck, result.EducationCheck.String() + "%"},
		{FormatCheck, result.FormatCheck.String() + "%"},
		{Achievements, result.Achievements.String()},
		{MisspelledWords, result.MisspelledWords.String()},
		{GrammaticalErrors, result.GrammaticalErrors.String()},
		{DiversityMentions, result.DiversityMentions.String()},
		{FinalScore, percent(result.FinalScore)},
	}
}

func fraction(f float64) string {
	return percent(f * 100)
}

func percent(f float64) string {
	return toFixed2(f) + "%"
}

// toFixed2 prints f with two decimals. strconv breaks exact ties toward
// even; browsers break them away from zero, so ties are redone here.
// Magnitudes from 1e21 up print in shortest form, as browsers do.
func toFixed2(f float64) string {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return model.FormatNumber(f)
	case f == 0:
		return "0.00"
	case math.Abs(f) >= 1e21:
		return model.FormatNumber(f)
	}
	const prec = 256
	scaled := new(big.Float).SetPrec(prec).SetFloat64(f)
	scaled.Mul(scaled, big.NewFloat(100))
	cents, _ := scaled.Int(nil)
	rest := new(big.Float).SetPrec(prec).Sub(scaled, new(big.Float).SetPrec(prec).SetInt(cents))
	if rest.Abs(rest).Cmp(big.NewFloat(0.5)) != 0 {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	if f < 0 {
		cents.Sub(cents, big.NewInt(1))
	} else {
		cents.Add(cents, big.NewInt(1))
	}
	sign := ""
	if cents.Sign() < 0 {
		sign = "-"
		cents.Neg(cents)
	}
	whole, frac := new(big.Int).QuoRem(cents, big.NewInt(100), new(big.Int))
	return fmt.Sprintf("%s%s.%02d", sign, whole.String(), frac.Int64())
}
