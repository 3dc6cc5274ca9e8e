package uwcolor

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidImageShape is returned for images that are not height x width x 3 8-bit samples.
	ErrInvalidImageShape = errors.New("invalid image shape")
	// ErrInvalidParameter is returned for out of range thresholds, strengths or channel subsets.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Channel identifies a color component of an RGB pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

var channelNames = [3]string{"red", "green", "blue"}

func (c Channel) String() string {
	if c.valid() {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

func (c Channel) valid() bool {
	return c >= Red && c <= Blue
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: unknown channel %d", ErrInvalidParameter, int(c))
	}
	return []byte(channelNames[c]), nil
}

// ParseChannel parses a channel name, case-insensitive. Single letters r, g, b are accepted.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red, nil
	case "green", "g":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	}
	return 0, fmt.Errorf("%w: unknown channel %q", ErrInvalidParameter, s)
}

// Profile selects which channels are boosted, by how much, and above which normalized intensity.
type Profile struct {
	// Channels eligible for boosting, in application order.
	Channels []Channel `json:"channels"`
	// Strengths is indexed by Channel, entries for channels outside Channels are ignored.
	Strengths [3]float64 `json:"strengths"`
	// Threshold is the minimum normalized intensity (exclusive) for a channel to dominate.
	Threshold float64 `json:"threshold"`
}

// Has reports whether c is eligible for boosting.
func (p Profile) Has(c Channel) bool {
	for _, ch := range p.Channels {
		if ch == c {
			return true
		}
	}
	return false
}

// Strength returns the multiplier of c, or 1 if c is not eligible.
func (p Profile) Strength(c Channel) float64 {
	if !c.valid() || !p.Has(c) {
		return 1
	}
	return p.Strengths[c]
}

// Validate checks the profile without enforcing the interactive strength bounds.
func (p Profile) Validate() error {
	if len(p.Channels) == 0 {
		return fmt.Errorf("%w: empty channel subset", ErrInvalidParameter)
	}
	if math.IsNaN(p.Threshold) || p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidParameter, p.Threshold)
	}
	var seen [3]bool
	for _, c := range p.Channels {
		if !c.valid() {
			return fmt.Errorf("%w: unknown channel %d", ErrInvalidParameter, int(c))
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate channel %s", ErrInvalidParameter, c)
		}
		seen[c] = true
		s := p.Strengths[c]
		if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
			return fmt.Errorf("%w: %s strength %v must be positive", ErrInvalidParameter, c, s)
		}
	}
	return nil
}

// WithStrength returns a copy of p with an overridden strength for c.
// Overrides are limited to [MinStrength, MaxStrength] and to channels eligible in p.
func (p Profile) WithStrength(c Channel, s float64) (Profile, error) {
	if !p.Has(c) {
		return p, fmt.Errorf("%w: %s is not eligible for boosting", ErrInvalidParameter, c)
	}
	if math.IsNaN(s) || s < MinStrength || s > MaxStrength {
		return p, fmt.Errorf("%w: %s strength %v outside [%v,%v]", ErrInvalidParameter, c, s, MinStrength, MaxStrength)
	}
	out := p.clone()
	out.Strengths[c] = s
	return out, nil
}

func (p Profile) clone() Profile {
	p.Channels = append([]Channel(nil), p.Channels...)
	return p
}
