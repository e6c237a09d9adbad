package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"poke-hand/config"
	"poke-hand/models"
)

// Fetcher implementiert das Provider-Interface für PokeAPI.
type Fetcher struct {
	Config     *config.Config
	Logger     *zap.Logger
	httpClient *http.Client
}

// NewFetcher erstellt einen neuen PokeAPI-Fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		Config:     cfg,
		Logger:     logger,
		httpClient: &http.Client{Timeout: cfg.PokeAPITimeout},
	}
}

// Name gibt den Namen des Providers zurück.
func (f *Fetcher) Name() string {
	return "pokeapi"
}

// Endpoint baut die URL für eine National-ID.
func (f *Fetcher) Endpoint(idNational int) string {
	return fmt.Sprintf("%s/pokemon/%d/", strings.TrimRight(f.Config.PokeAPIBaseURL, "/"), idNational)
}

// Fetch holt das Dokument zu einer National-ID. Es gibt keinen Retry.
func (f *Fetcher) Fetch(ctx context.Context, idNational int) (*Document, error) {
	url := f.Endpoint(idNational)
	log := f.Logger.With(zap.Int("id_national", idNational), zap.String("url", url))
	log.Debug("Rufe PokeAPI auf.")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Warn("PokeAPI nicht erreichbar", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("PokeAPI antwortet mit Fehlerstatus", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: pokeapi request failed with status: %d", models.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", models.ErrNetwork, err)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		log.Warn("PokeAPI-Antwort ist kein gültiges JSON", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrParse, err)
	}

	log.Info("PokeAPI-Dokument geladen", zap.Strings("types", doc.TypeNames()))
	return &doc, nil
}
