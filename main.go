package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"poke-hand/config"
	"poke-hand/models"
	"poke-hand/providers/pokeapi"
	"poke-hand/services"
	"poke-hand/storage"
)

var (
	pokemonsCreatedCounter prometheus.Counter
	chosenYesterdayGauge   prometheus.Gauge
)

func init() {
	pokemonsCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pokemons_created_total",
			Help: "Total number of pokemons created from PokeAPI.",
		},
	)
	chosenYesterdayGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pokemons_chosen_yesterday",
			Help: "Number of pokemons chosen on the previous day, as of the last report run.",
		},
	)
	prometheus.MustRegister(pokemonsCreatedCounter, chosenYesterdayGauge)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	loc, err := cfg.Location()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to pokemons database.")

	store := storage.NewPokemonStore(db, logging)
	logging.Info("Running database auto-migration...")
	if err := store.Migrate(); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Setup Services
	fetcher := pokeapi.NewFetcher(cfg, logging)
	creator := services.NewPokemonCreator(fetcher, store, logging)
	creator.OnCreated = func(*models.Pokemon) { pokemonsCreatedCounter.Inc() }

	reports := services.NewReportService(store, loc, logging)
	if cfg.S3Enabled() {
		s3Client, err := storage.NewS3Client(context.Background(), storage.S3Options{
			URL:    cfg.S3URL,
			Region: cfg.S3Region,
			Key:    cfg.S3Key,
			Secret: cfg.S3Secret,
		})
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		reports.WithUpload(s3Client, cfg.S3URL, cfg.S3Bucket)
	}

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	setupHealthRoutes(router)

	api := router.Group("/", apiKeyAuthMiddleware(cfg))
	clock := func() time.Time { return time.Now().In(loc) }
	setupPokemonRoutes(api, store, creator, clock, logging)

	// Setup Cron
	cronScheduler := cron.New(cron.WithLocation(loc))
	if _, err := cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled chosen-yesterday report...")
		report, _, err := reports.Run(context.Background())
		if err != nil {
			logging.Error("Cron job failed", zap.Error(err))
			return
		}
		chosenYesterdayGauge.Set(float64(report.Count))
		logging.Info("Cron job completed", zap.String("day", report.Day), zap.Int("chosen", report.Count))
	}); err != nil {
		logging.Fatal("Invalid CRON_SCHEDULE", zap.String("schedule", cfg.CronSchedule), zap.Error(err))
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort), zap.String("time_zone", loc.String()))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}
