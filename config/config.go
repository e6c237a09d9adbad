package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	PokeAPIBaseURL string        `envconfig:"POKEAPI_BASE_URL" default:"https://pokeapi.co/api/v2"`
	PokeAPITimeout time.Duration `envconfig:"POKEAPI_TIMEOUT" default:"30s"`

	// Zeitzone, in der "gestern" für chosen_at berechnet wird.
	TimeZone string `envconfig:"TIME_ZONE" default:"Local"`

	// Täglicher Report über die gestern gewählten Pokémon
	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"5 0 * * *"`

	// S3 ist optional; ohne Bucket wird kein Report hochgeladen.
	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket string `envconfig:"S3_BUCKET"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Location löst TIME_ZONE auf. "Local" und ein leerer Wert ergeben time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// S3Enabled meldet, ob genug S3-Konfiguration für Uploads vorhanden ist.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3URL != ""
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
