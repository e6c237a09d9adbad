package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"poke-hand/storage"
)

const backupPrefix = "backup-"

type BackupConfig struct {
	DBHost          string `envconfig:"DB_HOST" required:"true"`
	DBPort          int    `envconfig:"DB_PORT" default:"5432"`
	DBUser          string `envconfig:"DB_USER" required:"true"`
	DBPassword      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName          string `envconfig:"DB_NAME" required:"true"`
	BackupBucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string `envconfig:"BACKUP_S3_REGION" default:"us-east-1"`
	KeepBackups     int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	_ = godotenv.Load()
	var cfg BackupConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}
	ctx := context.Background()

	logging.Info("Starte Backup-Prozess...", zap.String("db", cfg.DBName))
	dumpData, err := createDump(ctx, cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des DB-Dumps", zap.Error(err))
	}

	s3Client, err := storage.NewS3Client(ctx, storage.S3Options{
		URL:    cfg.BackupEndpoint,
		Region: cfg.BackupRegion,
		Key:    cfg.BackupAccessKey,
		Secret: cfg.BackupSecretKey,
	})
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}

	key := backupKey(time.Now())
	link, err := storage.UploadFile(ctx, s3Client, cfg.BackupEndpoint, cfg.BackupBucket, key, "application/gzip", dumpData)
	if err != nil {
		logging.Fatal("Fehler beim Hochladen nach S3", zap.Error(err))
	}
	logging.Info("Backup hochgeladen", zap.String("link", link), zap.Int("bytes", len(dumpData)))

	deleted, err := storage.RotateObjects(ctx, s3Client, cfg.BackupBucket, backupPrefix, cfg.KeepBackups)
	if err != nil {
		logging.Fatal("Fehler bei der Rotation alter Backups", zap.Error(err))
	}
	logging.Info("Backup-Prozess erfolgreich abgeschlossen.", zap.Strings("deleted", deleted))
}

// backupKey erzeugt einen sortierbaren Objektnamen in UTC.
func backupKey(now time.Time) string {
	return fmt.Sprintf("%s%s.sql.gz", backupPrefix, now.UTC().Format("2006-01-02T15-04-05Z"))
}

func dumpArgs(cfg BackupConfig) []string {
	return []string{
		"-h", cfg.DBHost,
		"-p", fmt.Sprint(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-t", "pokemons",
		"-w", // Passwort kommt über PGPASSWORD
	}
}

func createDump(ctx context.Context, cfg BackupConfig) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump", dumpArgs(cfg)...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := compress(&buf, stdout); err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compress(dst io.Writer, src io.Reader) error {
	gzipWriter := gzip.NewWriter(dst)
	if _, err := io.Copy(gzipWriter, src); err != nil {
		return err
	}
	return gzipWriter.Close()
}
