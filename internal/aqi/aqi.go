// Package aqi converts PM2.5 concentrations to the EPA Air Quality Index
// scale and maps scores to a severity category, a display color, and a
// one-line health tip. All functions are pure and safe for concurrent use.
package aqi

import (
	"fmt"
	"math"
)

// Category is the qualitative AQI severity classification.
type Category string

const (
	Good            Category = "Good"
	Moderate        Category = "Moderate"
	SensitiveGroups Category = "Unhealthy for Sensitive Groups"
	Unhealthy       Category = "Unhealthy"
	VeryUnhealthy   Category = "Very Unhealthy"
	Hazardous       Category = "Hazardous"
	Unknown         Category = "Unknown"
)

// breakpoint maps one PM2.5 concentration band (µg/m³) to its AQI index range.
type breakpoint struct {
	cLow, cHigh float64
	iLow, iHigh int
}

// breakpoints is the EPA PM2.5 table. The published bands leave a 0.1 µg/m³
// gap between one upper bound and the next lower bound because the EPA
// truncates concentrations to one decimal; arbitrary floats can land inside
// a gap, so Score snaps those up to the next band's lower bound.
var breakpoints = []breakpoint{
	{0.0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 350.4, 301, 400},
	{350.5, 500.4, 401, 500},
}

// MaxScore is the ceiling of the AQI scale.
const MaxScore = 500

// Score converts a PM2.5 concentration in µg/m³ to an AQI score in [0, 500]
// by linear interpolation within the first breakpoint band whose upper bound
// the concentration does not exceed. Concentrations inside the 0.1-wide gaps
// between bands clamp to the next band's lower bound. Rounding is
// half-to-even. Negative concentrations clamp to the lowest band's lower
// bound; concentrations above the last band's upper bound return MaxScore
// without extrapolation.
func Score(concentration float64) int {
	if concentration < 0 {
		concentration = 0
	}
	for _, bp := range breakpoints {
		if concentration <= bp.cHigh {
			if concentration < bp.cLow {
				concentration = bp.cLow
			}
			slope := float64(bp.iHigh-bp.iLow) / (bp.cHigh - bp.cLow)
			return int(math.RoundToEven(slope*(concentration-bp.cLow) + float64(bp.iLow)))
		}
	}
	return MaxScore
}

// Categorize maps an AQI score to its severity category. Total over all
// integers: anything above 300 is Hazardous.
func Categorize(score int) Category {
	switch {
	case score <= 50:
		return Good
	case score <= 100:
		return Moderate
	case score <= 150:
		return SensitiveGroups
	case score <= 200:
		return Unhealthy
	case score <= 300:
		return VeryUnhealthy
	default:
		return Hazardous
	}
}

// Color returns the standard display hex color for the category.
// Unrecognized categories get the neutral gray used for Unknown.
func (c Category) Color() string {
	switch c {
	case Good:
		return "#00E400"
	case Moderate:
		return "#FFFF00"
	case SensitiveGroups:
		return "#FF7E00"
	case Unhealthy:
		return "#FF0000"
	case VeryUnhealthy:
		return "#8F3F97"
	case Hazardous:
		return "#7E0023"
	default:
		return "#9AA0A6"
	}
}

var advisories = map[Category]string{
	Good:            "Air quality is good. Keep windows open when possible.",
	Moderate:        "Sensitive groups should limit outdoor activity.",
	SensitiveGroups: "Use air purifier and avoid outdoor activity.",
	Unhealthy:       "Limit outdoor exposure.",
	VeryUnhealthy:   "Stay indoors and use air purifier.",
	Hazardous:       "Avoid outdoor activities completely.",
}

// Advisory returns the health recommendation for the category, falling back
// to a generic message for anything unmapped (including Unknown).
func (c Category) Advisory() string {
	if tip, ok := advisories[c]; ok {
		return tip
	}
	return "Monitor conditions and stay safe."
}

// Result is the full derived output for one concentration. Score is nil when
// the concentration was absent.
type Result struct {
	Score    *int     `json:"score"`
	Category Category `json:"category"`
	Color    string   `json:"color"`
	Advisory string   `json:"advisory"`
}

// Evaluate runs the Concentration -> Score -> Category -> (Color, Advisory)
// pipeline. A nil concentration yields an Unknown result rather than an error.
func Evaluate(concentration *float64) Result {
	if concentration == nil {
		return Result{
			Category: Unknown,
			Color:    Unknown.Color(),
			Advisory: Unknown.Advisory(),
		}
	}
	score := Score(*concentration)
	cat := Categorize(score)
	return Result{
		Score:    &score,
		Category: cat,
		Color:    cat.Color(),
		Advisory: cat.Advisory(),
	}
}

// String implements fmt.Stringer for log output.
func (r Result) String() string {
	if r.Score == nil {
		return string(r.Category)
	}
	return fmt.Sprintf("%d (%s)", *r.Score, r.Category)
}
