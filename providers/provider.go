package providers

import (
	"context"

	"poke-hand/providers/pokeapi"
)

// Provider ist das Interface für Quellen, die ein Pokémon-Dokument zu einer National-ID liefern.
type Provider interface {
	// Fetch holt das Dokument für eine National-ID.
	Fetch(ctx context.Context, idNational int) (*pokeapi.Document, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "pokeapi").
	Name() string
}

var _ Provider = (*pokeapi.Fetcher)(nil)
