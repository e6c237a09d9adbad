package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"poke-hand/models"
)

// PokemonStore kapselt den Datenbankzugriff auf die pokemons-Tabelle.
type PokemonStore struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewPokemonStore erstellt einen neuen Store.
func NewPokemonStore(db *gorm.DB, logger *zap.Logger) *PokemonStore {
	return &PokemonStore{DB: db, Logger: logger}
}

// Migrate legt das Schema per AutoMigrate an.
func (s *PokemonStore) Migrate() error {
	return s.DB.AutoMigrate(&models.Pokemon{})
}

// Create speichert einen beliebig befüllten Datensatz. Es gibt keine Validierung.
func (s *PokemonStore) Create(ctx context.Context, p *models.Pokemon) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		s.Logger.Error("Failed to create pokemon", zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}

// CreatePokemon legt einen Datensatz mit Name und National-ID an.
func (s *PokemonStore) CreatePokemon(ctx context.Context, name string, idNational int) (*models.Pokemon, error) {
	p := &models.Pokemon{Name: &name, IDNational: &idNational}
	if err := s.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get lädt einen Datensatz über seine ID.
func (s *PokemonStore) Get(ctx context.Context, id uint) (*models.Pokemon, error) {
	var p models.Pokemon
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pokemon %d", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return &p, nil
}

// List gibt alle Datensätze zurück.
func (s *PokemonStore) List(ctx context.Context) ([]models.Pokemon, error) {
	var pokemons []models.Pokemon
	if err := s.DB.WithContext(ctx).Order("id").Find(&pokemons).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return pokemons, nil
}

// Count zählt alle Datensätze.
func (s *PokemonStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Pokemon{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return count, nil
}

// ChosenYesterday liefert alle Pokémon mit chosen_at im Vortag von now.
// "Gestern" wird in now.Location() berechnet.
func (s *PokemonStore) ChosenYesterday(ctx context.Context, now time.Time) ([]models.Pokemon, error) {
	var pokemons []models.Pokemon
	err := s.DB.WithContext(ctx).
		Scopes(models.ChosenYesterday(now)).
		Order("chosen_at").
		Find(&pokemons).Error
	if err != nil {
		s.Logger.Error("Database query for chosen pokemons failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return pokemons, nil
}
