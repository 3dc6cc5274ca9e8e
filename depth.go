package uwcolor

import (
	"encoding/json"
	"math"
)

// Bracket maps a range of depths to a default Profile.
type Bracket struct {
	// MaxDepth is the inclusive upper bound in meters, +Inf for the last bracket.
	MaxDepth float64 `json:"max_depth"`
	Profile  Profile `json:"profile"`
}

// MarshalJSON encodes an open-ended bracket with a null max_depth.
func (b Bracket) MarshalJSON() ([]byte, error) {
	type bracket struct {
		MaxDepth *float64 `json:"max_depth"`
		Profile  Profile  `json:"profile"`
	}
	out := bracket{Profile: b.Profile}
	if !math.IsInf(b.MaxDepth, 1) {
		out.MaxDepth = &b.MaxDepth
	}
	return json.Marshal(out)
}

// Sorted by MaxDepth, the last bracket is open-ended.
var brackets = []Bracket{
	{
		MaxDepth: 10,
		Profile: Profile{
			Channels:  []Channel{Red},
			Strengths: [3]float64{Red: 1.5, Green: 1, Blue: 1},
			Threshold: 0.15,
		},
	},
	{
		MaxDepth: 20,
		Profile: Profile{
			Channels:  []Channel{Red, Green},
			Strengths: [3]float64{Red: 1.6, Green: 1.2, Blue: 1},
			Threshold: 0.12,
		},
	},
	{
		MaxDepth: math.Inf(1),
		Profile: Profile{
			Channels:  []Channel{Red, Green, Blue},
			Strengths: [3]float64{Red: 1.7, Green: 1.3, Blue: 1.1},
			Threshold: 0.1,
		},
	},
}

// Brackets returns a copy of the depth bracket table.
func Brackets() []Bracket {
	out := make([]Bracket, len(brackets))
	for i, b := range brackets {
		out[i] = Bracket{MaxDepth: b.MaxDepth, Profile: b.Profile.clone()}
	}
	return out
}

// ProfileForDepth returns a fresh default Profile for the bracket containing depth (meters).
// Depths at or below the first bound, including negative ones, use the first bracket.
func ProfileForDepth(depth float64) Profile {
	for _, b := range brackets {
		if depth <= b.MaxDepth {
			return b.Profile.clone()
		}
	}
	// NaN compares false everywhere.
	return brackets[len(brackets)-1].Profile.clone()
}
