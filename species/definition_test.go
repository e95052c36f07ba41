package species

import "testing"

func TestInSeason(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		progress   float64
		want       bool
	}{
		{"inside simple window", 0.2, 0.6, 0.4, true},
		{"at window start", 0.2, 0.6, 0.2, true},
		{"at window end", 0.2, 0.6, 0.6, true},
		{"before window", 0.2, 0.6, 0.1, false},
		{"after window", 0.2, 0.6, 0.7, false},
		{"wraparound late year", 0.75, 0.15, 0.9, true},
		{"wraparound early year", 0.75, 0.15, 0.1, true},
		{"wraparound outside", 0.75, 0.15, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reproduction{SeasonStart: tt.start, SeasonEnd: tt.end}
			if got := r.InSeason(tt.progress); got != tt.want {
				t.Errorf("InSeason(%v) with [%v,%v] = %v, want %v", tt.progress, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestBiomeFactor(t *testing.T) {
	h := Habitat{
		PreferredBiomes: map[string]bool{"forest": true},
		AvoidedBiomes:   map[string]bool{"desert": true},
	}
	tests := []struct {
		biome string
		want  float64
	}{
		{"forest", 1.0},
		{"desert", 0.0},
		{"plains", 0.3}, // preference list exists but no match
	}
	for _, tt := range tests {
		if got := h.BiomeFactor(tt.biome); got != tt.want {
			t.Errorf("BiomeFactor(%s) = %v, want %v", tt.biome, got, tt.want)
		}
	}

	// No preferences at all: neutral.
	open := Habitat{}
	if got := open.BiomeFactor("anything"); got != 0.5 {
		t.Errorf("BiomeFactor with no preferences = %v, want 0.5", got)
	}
}

func TestTempFactor(t *testing.T) {
	h := Habitat{MinTemp: 0, MaxTemp: 20}
	tests := []struct {
		temp float64
		want float64
	}{
		{10, 1.0},
		{0, 1.0},
		{20, 1.0},
		{30, 0.5},  // 10 over, falloff 20
		{40, 0.0},  // 20 over
		{50, 0.0},  // clamped
		{-10, 0.5}, // 10 under
	}
	for _, tt := range tests {
		if got := h.TempFactor(tt.temp); got != tt.want {
			t.Errorf("TempFactor(%v) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}

func TestSuitabilityCombines(t *testing.T) {
	h := Habitat{
		PreferredBiomes: map[string]bool{"forest": true},
		MinTemp:         0,
		MaxTemp:         20,
	}
	if got := h.Suitability("forest", 10); got != 1.0 {
		t.Errorf("preferred biome, comfortable temp = %v, want 1.0", got)
	}
	if got := h.Suitability("forest", 30); got != 0.5 {
		t.Errorf("preferred biome, hot = %v, want 0.5", got)
	}
	if got := h.Suitability("plains", 10); got != 0.3 {
		t.Errorf("unlisted biome = %v, want 0.3", got)
	}
}
