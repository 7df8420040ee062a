package bot

import "fmt"

// Personality tunes how a bot plays its hands
type Personality string

// personality constants
const (
	Aggressive   Personality = "aggressive"
	Conservative Personality = "conservative"
	Balanced     Personality = "balanced"
)

var validPersonalities = map[Personality]bool{
	Aggressive:   true,
	Conservative: true,
	Balanced:     true,
}

// IsValid returns true if the personality is known
func (p Personality) IsValid() bool {
	return validPersonalities[p]
}

// PersonalityFromString returns the personality from a string
func PersonalityFromString(s string) (Personality, error) {
	p := Personality(s)
	if p.IsValid() {
		return p, nil
	}

	return "", fmt.Errorf("invalid personality: %s", s)
}
