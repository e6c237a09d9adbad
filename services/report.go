package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"poke-hand/models"
	"poke-hand/storage"
)

// ChosenLister liefert die gestern gewählten Pokémon relativ zu now.
type ChosenLister interface {
	ChosenYesterday(ctx context.Context, now time.Time) ([]models.Pokemon, error)
}

// ChosenReport ist der Inhalt eines Tagesreports.
type ChosenReport struct {
	Day         string           `json:"day"`
	GeneratedAt time.Time        `json:"generated_at"`
	Count       int              `json:"count"`
	Pokemons    []models.Pokemon `json:"pokemons"`
}

// ReportService erstellt den täglichen Report der gestern gewählten Pokémon.
type ReportService struct {
	Store    ChosenLister
	Objects  storage.ObjectAPI // nil deaktiviert den Upload
	S3URL    string
	Bucket   string
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewReportService erstellt einen ReportService ohne Upload.
func NewReportService(store ChosenLister, loc *time.Location, logger *zap.Logger) *ReportService {
	return &ReportService{Store: store, Location: loc, Logger: logger, Now: time.Now}
}

// WithUpload aktiviert den Upload nach S3.
func (r *ReportService) WithUpload(client storage.ObjectAPI, baseURL, bucket string) *ReportService {
	r.Objects = client
	r.S3URL = baseURL
	r.Bucket = bucket
	return r
}

// Build erstellt den Report für den Vortag von now.
func (r *ReportService) Build(ctx context.Context, now time.Time) (*ChosenReport, error) {
	now = now.In(r.Location)
	pokemons, err := r.Store.ChosenYesterday(ctx, now)
	if err != nil {
		return nil, err
	}
	from, _ := models.YesterdayWindow(now)
	return &ChosenReport{
		Day:         from.Format("2006-01-02"),
		GeneratedAt: now,
		Count:       len(pokemons),
		Pokemons:    pokemons,
	}, nil
}

// ReportKey ist der S3-Key eines Reports.
func ReportKey(day string) string {
	return fmt.Sprintf("reports/chosen-%s.json", day)
}

// Run erstellt den Report zum aktuellen Zeitpunkt und lädt ihn hoch, sofern S3 konfiguriert ist.
// Der Rückgabewert ist der Link, leer ohne Upload.
func (r *ReportService) Run(ctx context.Context) (*ChosenReport, string, error) {
	report, err := r.Build(ctx, r.Now())
	if err != nil {
		return nil, "", err
	}
	log := r.Logger.With(zap.String("day", report.Day), zap.Int("count", report.Count))

	if r.Objects == nil {
		log.Info("Report erstellt, S3 nicht konfiguriert.")
		return report, "", nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, "", err
	}
	link, err := storage.UploadFile(ctx, r.Objects, r.S3URL, r.Bucket, ReportKey(report.Day), "application/json", data)
	if err != nil {
		log.Error("Report-Upload fehlgeschlagen", zap.Error(err))
		return report, "", err
	}
	log.Info("Report nach S3 hochgeladen", zap.String("link", link))
	return report, link, nil
}
