package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"poke-hand/models"
	"poke-hand/providers"
	"poke-hand/providers/pokeapi"
	"poke-hand/storage"
)

// RecordCreator ist der Teil des Stores, den der Creator braucht.
type RecordCreator interface {
	CreatePokemon(ctx context.Context, name string, idNational int) (*models.Pokemon, error)
}

var _ RecordCreator = (*storage.PokemonStore)(nil)

// PokemonCreator holt ein Pokémon von einem Provider und legt es als Datensatz an.
type PokemonCreator struct {
	Provider providers.Provider
	Store    RecordCreator
	Logger   *zap.Logger

	// OnCreated wird nach jedem erfolgreich angelegten Datensatz aufgerufen (z.B. Metriken).
	OnCreated func(*models.Pokemon)
}

// NewPokemonCreator erstellt einen neuen Creator.
func NewPokemonCreator(provider providers.Provider, store RecordCreator, logger *zap.Logger) *PokemonCreator {
	return &PokemonCreator{Provider: provider, Store: store, Logger: logger}
}

// Name gibt den Namen aus dem Dokument mit großem Anfangsbuchstaben zurück, der Rest bleibt unverändert.
func (c *PokemonCreator) Name(doc *pokeapi.Document) (string, error) {
	if doc == nil || doc.Name == nil {
		return "", fmt.Errorf("%w: name", models.ErrMissingField)
	}
	return capitalize(*doc.Name), nil
}

// Create legt aus einem bereits geholten Dokument einen Datensatz an.
func (c *PokemonCreator) Create(ctx context.Context, doc *pokeapi.Document, idNational int) (*models.Pokemon, error) {
	name, err := c.Name(doc)
	if err != nil {
		return nil, err
	}

	pokemon, err := c.Store.CreatePokemon(ctx, name, idNational)
	if err != nil {
		return nil, err
	}

	c.Logger.Info("Pokemon created",
		zap.Uint("id", pokemon.ID),
		zap.String("name", name),
		zap.Int("id_national", idNational))
	if c.OnCreated != nil {
		c.OnCreated(pokemon)
	}
	return pokemon, nil
}

// FetchAndCreate holt das Dokument und legt den Datensatz an. Bei einem Fehler wird nichts gespeichert.
func (c *PokemonCreator) FetchAndCreate(ctx context.Context, idNational int) (*models.Pokemon, error) {
	log := c.Logger.With(zap.Int("id_national", idNational), zap.String("provider", c.Provider.Name()))

	doc, err := c.Provider.Fetch(ctx, idNational)
	if err != nil {
		log.Error("Provider-Abruf fehlgeschlagen", zap.Error(err))
		return nil, err
	}
	return c.Create(ctx, doc, idNational)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}
