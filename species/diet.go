package species

import "fmt"

// DietType classifies what a species can eat.
type DietType int

const (
	Herbivore DietType = iota
	Carnivore
	Omnivore
)

// CanHunt reports whether this diet permits hunting other animals.
func (d DietType) CanHunt() bool {
	return d == Carnivore || d == Omnivore
}

// CanForage reports whether this diet permits eating vegetation.
func (d DietType) CanForage() bool {
	return d == Herbivore || d == Omnivore
}

func (d DietType) String() string {
	switch d {
	case Herbivore:
		return "herbivore"
	case Carnivore:
		return "carnivore"
	case Omnivore:
		return "omnivore"
	}
	return fmt.Sprintf("DietType(%d)", int(d))
}

// ParseDietType parses a diet type name as it appears in species records.
func ParseDietType(s string) (DietType, error) {
	switch s {
	case "herbivore":
		return Herbivore, nil
	case "carnivore":
		return Carnivore, nil
	case "omnivore":
		return Omnivore, nil
	}
	return Herbivore, fmt.Errorf("unknown diet type %q", s)
}
