package util

import (
	"fmt"
	"math/rand"
)

var random = rand.New(rand.NewSource(rand.Int63())) // nolint:gosec

var adjectives = []string{
	"Lucky", "Golden", "Midnight", "Velvet", "Smoky", "Neon", "Silent", "Wild",
	"Crooked", "Slick", "Gilded", "Rusty", "High-Stakes", "Electric", "Dusty",
}

var nouns = []string{
	"River", "Flop", "Bluff", "Kicker", "Button", "Gutshot", "Cooler",
	"Shark", "Fish", "Nuts", "Boat", "Wheelhouse", "Showdown", "Stack",
}

// GetRandomTableName returns a random table name by combining an adjective with a poker noun
func GetRandomTableName() string {
	return fmt.Sprintf("%s %s", adjectives[random.Intn(len(adjectives))], nouns[random.Intn(len(nouns))])
}
