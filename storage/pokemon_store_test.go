package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poke-hand/models"
)

func chosenAt(t *testing.T, store *PokemonStore, name string, at time.Time) *models.Pokemon {
	t.Helper()
	p := &models.Pokemon{Name: models.StringPtr(name), IDNational: models.IntPtr(1), ChosenAt: &at}
	require.NoError(t, store.Create(context.Background(), p))
	return p
}

func names(pokemons []models.Pokemon) []string {
	out := make([]string, 0, len(pokemons))
	for _, p := range pokemons {
		out = append(out, *p.Name)
	}
	return out
}

func TestCreatePokemon(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	p, err := store.CreatePokemon(ctx, "Charizard", 6)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Nil(t, p.ChosenAt)

	loaded, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	fullName, ok := loaded.FullName()
	assert.True(t, ok)
	assert.Equal(t, "Charizard - 6", fullName)
}

func TestCreateAllowsDuplicatesAndEmptyRecords(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.CreatePokemon(ctx, "Charizard", 6)
	require.NoError(t, err)
	_, err = store.CreatePokemon(ctx, "Charizard", 6)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, &models.Pokemon{}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	_, ok := all[2].FullName()
	assert.False(t, ok)
}

func TestGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateStorageError(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.DB.Migrator().DropTable(&models.Pokemon{}))

	_, err := store.CreatePokemon(context.Background(), "Charizard", 6)
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestChosenYesterdayBoundaries(t *testing.T) {
	store := setupTestStore(t)
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2014, 3, 3, 12, 0, 0, 0, loc)

	chosenAt(t, store, "start-of-yesterday", time.Date(2014, 3, 2, 0, 0, 0, 0, loc))
	chosenAt(t, store, "end-of-yesterday", time.Date(2014, 3, 2, 23, 59, 59, 0, loc))
	chosenAt(t, store, "start-of-today", time.Date(2014, 3, 3, 0, 0, 0, 0, loc))
	chosenAt(t, store, "day-before-yesterday", time.Date(2014, 3, 1, 23, 59, 59, 0, loc))
	chosenAt(t, store, "next-year", time.Date(2015, 1, 2, 23, 59, 59, 0, loc))
	chosenAt(t, store, "january", time.Date(2014, 1, 2, 0, 0, 0, 0, loc))
	chosenAt(t, store, "long-ago", time.Date(2010, 3, 3, 23, 59, 59, 0, loc))
	require.NoError(t, store.Create(context.Background(), &models.Pokemon{Name: models.StringPtr("never-chosen")}))

	got, err := store.ChosenYesterday(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"start-of-yesterday", "end-of-yesterday"}, names(got))
}

func TestChosenYesterdayUsesCallerZone(t *testing.T) {
	store := setupTestStore(t)
	tokyo := time.FixedZone("JST", 9*60*60)

	// 2014-03-02 20:00 UTC ist in Tokio bereits der 3. März.
	chosenAt(t, store, "late-utc", time.Date(2014, 3, 2, 20, 0, 0, 0, time.UTC))

	inUTC, err := store.ChosenYesterday(context.Background(), time.Date(2014, 3, 3, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"late-utc"}, names(inUTC))

	inTokyo, err := store.ChosenYesterday(context.Background(), time.Date(2014, 3, 3, 12, 0, 0, 0, tokyo))
	require.NoError(t, err)
	assert.Empty(t, inTokyo)
}

func TestChosenYesterdayIsRelativeToNow(t *testing.T) {
	store := setupTestStore(t)
	chosenAt(t, store, "march-2", time.Date(2014, 3, 2, 8, 0, 0, 0, time.UTC))

	got, err := store.ChosenYesterday(context.Background(), time.Date(2014, 3, 3, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = store.ChosenYesterday(context.Background(), time.Date(2014, 3, 4, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, got)
}
