// Package seasons maps world time onto a yearly cycle and derives the
// global modifiers that drive breeding windows, spawn rates and migration.
package seasons

import "fmt"

// Season is one quarter of the year.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	}
	return fmt.Sprintf("Season(%d)", int(s))
}

// Clock maps a world-time counter onto a configurable year length divided
// into four equal seasons. One instance per simulated world; never reset,
// it wraps via modulo.
type Clock struct {
	yearLength int64
}

// NewClock creates a clock with the given year length in ticks.
func NewClock(yearLengthTicks int64) *Clock {
	if yearLengthTicks < 4 {
		yearLengthTicks = 4
	}
	return &Clock{yearLength: yearLengthTicks}
}

// YearProgress returns the position within the year in [0,1).
func (c *Clock) YearProgress(worldTime int64) float64 {
	t := worldTime % c.yearLength
	if t < 0 {
		t += c.yearLength
	}
	return float64(t) / float64(c.yearLength)
}

// Season returns the current season.
func (c *Clock) Season(worldTime int64) Season {
	s := int(c.YearProgress(worldTime) * 4)
	if s > 3 {
		s = 3
	}
	return Season(s)
}

// SeasonProgress returns the position within the current season in [0,1).
func (c *Clock) SeasonProgress(worldTime int64) float64 {
	yp := c.YearProgress(worldTime)
	sp := yp*4 - float64(int(yp*4))
	return sp
}

// Temperature returns the normalized seasonal temperature in [0,1],
// piecewise linear across the year: spring warms 0.3 to 0.7, summer peaks
// at 1.0, autumn cools to 0.5, winter falls to 0.0.
func (c *Clock) Temperature(worldTime int64) float64 {
	p := c.SeasonProgress(worldTime)
	switch c.Season(worldTime) {
	case Spring:
		return 0.3 + 0.4*p
	case Summer:
		return 0.7 + 0.3*p
	case Autumn:
		return 1.0 - 0.5*p
	default: // Winter
		return 0.5 - 0.5*p
	}
}

// SpawnRateModifier scales natural spawn probability per season.
func (c *Clock) SpawnRateModifier(worldTime int64) float64 {
	switch c.Season(worldTime) {
	case Spring:
		return 1.5
	case Summer:
		return 1.0
	case Autumn:
		return 0.7
	default:
		return 0.3
	}
}

// MigrationPressure returns the seasonal urge to migrate in [0,1].
// Spring pushes returns north early, autumn builds toward the southward
// move in its second half, winter urges stragglers out in its first fifth.
func (c *Clock) MigrationPressure(worldTime int64) float64 {
	p := c.SeasonProgress(worldTime)
	switch c.Season(worldTime) {
	case Spring:
		if p < 0.3 {
			return 1.0
		}
		return 0
	case Summer:
		return 0
	case Autumn:
		if p > 0.5 {
			return (p - 0.5) * 2
		}
		return 0
	default: // Winter
		if p < 0.2 {
			return 1.0
		}
		return 0
	}
}

// IsBreedingSeason reports whether year progress falls inside [start,end],
// handling windows that wrap across the year boundary.
func (c *Clock) IsBreedingSeason(worldTime int64, start, end float64) bool {
	p := c.YearProgress(worldTime)
	if start <= end {
		return p >= start && p <= end
	}
	return p >= start || p <= end
}
