package gridworld

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Terrain derives elevation, biome and temperature fields from layered
// simplex noise. Fields are pure functions of position, so nothing is
// stored per column.
type Terrain struct {
	elevation opensimplex.Noise
	detail    opensimplex.Noise
	moisture  opensimplex.Noise
}

const (
	elevationScale = 0.004
	detailScale    = 0.02
	moistureScale  = 0.0025

	maxElevation   = 48.0
	detailAmplitude = 4.0
	waterLevel      = 10.0
	mountainLevel   = 38.0
)

// NewTerrain creates terrain fields for a seed.
func NewTerrain(seed int64) *Terrain {
	return &Terrain{
		elevation: opensimplex.NewNormalized(seed),
		detail:    opensimplex.NewNormalized(seed + 1),
		moisture:  opensimplex.NewNormalized(seed + 2),
	}
}

// Elevation returns the surface height at a column.
func (t *Terrain) Elevation(x, z float64) float64 {
	base := t.elevation.Eval2(x*elevationScale, z*elevationScale) * maxElevation
	return base + t.detail.Eval2(x*detailScale, z*detailScale)*detailAmplitude
}

// IsWater reports whether a column is below the water level and therefore
// has no standable ground.
func (t *Terrain) IsWater(x, z float64) bool {
	return t.Elevation(x, z) < waterLevel
}

// Moisture returns the moisture field in [0,1].
func (t *Terrain) Moisture(x, z float64) float64 {
	return t.moisture.Eval2(x*moistureScale, z*moistureScale)
}

// Biome classifies a column by elevation and moisture.
func (t *Terrain) Biome(x, z float64) string {
	e := t.Elevation(x, z)
	if e < waterLevel {
		return "ocean"
	}
	if e > mountainLevel {
		return "mountain"
	}
	m := t.Moisture(x, z)
	switch {
	case m > 0.75:
		return "swamp"
	case m > 0.5:
		return "forest"
	case m < 0.25:
		return "desert"
	}
	return "plains"
}

// Temperature returns the ambient temperature at a column in degrees,
// falling with elevation and with distance from the equator at Z=0.
func (t *Terrain) Temperature(x, z float64) float64 {
	e := t.Elevation(x, z)
	if e < waterLevel {
		e = waterLevel
	}
	return 28 - (e-waterLevel)*0.4 - math.Abs(z)*0.005
}
