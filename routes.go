package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poke-hand/config"
	"poke-hand/models"
	"poke-hand/services"
	"poke-hand/storage"
)

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

// errorStatus ordnet Fehlerarten HTTP-Statuscodes zu.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNetwork), errors.Is(err, models.ErrParse), errors.Is(err, models.ErrMissingField):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func setupHealthRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func setupPokemonRoutes(router gin.IRouter, store *storage.PokemonStore, creator *services.PokemonCreator, clock func() time.Time, log *zap.Logger) {
	rg := router.Group("/pokemons")

	rg.GET("/", func(c *gin.Context) {
		pokemons, err := store.List(c.Request.Context())
		if err != nil {
			log.Error("Database query for all pokemons failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, pokemons)
	})

	// Direktes Anlegen mit beliebigen Feldern, chosen_at eingeschlossen
	rg.POST("/", func(c *gin.Context) {
		var req struct {
			Name       *string    `json:"name"`
			IDNational *int       `json:"id_national"`
			ChosenAt   *time.Time `json:"chosen_at"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		pokemon := models.Pokemon{Name: req.Name, IDNational: req.IDNational, ChosenAt: req.ChosenAt}
		if err := store.Create(c.Request.Context(), &pokemon); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create pokemon"})
			return
		}
		c.JSON(http.StatusCreated, pokemon)
	})

	rg.GET("/chosen-yesterday", func(c *gin.Context) {
		pokemons, err := store.ChosenYesterday(c.Request.Context(), clock())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, pokemons)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		pokemon, err := store.Get(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "pokemon not found"})
				return
			}
			log.Error("DB error loading pokemon", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, pokemon)
	})

	rg.POST("/fetch/:id_national", func(c *gin.Context) {
		idNational, err := strconv.Atoi(c.Param("id_national"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id_national"})
			return
		}
		pokemon, err := creator.FetchAndCreate(c.Request.Context(), idNational)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, pokemon)
	})
}
