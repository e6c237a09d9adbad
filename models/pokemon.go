package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Pokemon repräsentiert einen gespeicherten Pokémon-Datensatz.
type Pokemon struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       *string `json:"name"`
	IDNational *int    `json:"id_national" gorm:"column:id_national"`

	// Wird von außen gesetzt, beim Anlegen typischerweise leer.
	ChosenAt *time.Time `json:"chosen_at" gorm:"index"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Pokemon) TableName() string {
	return "pokemons"
}

// FullName liefert "{name} - {id_national}", falls beide Felder gesetzt sind.
func (p Pokemon) FullName() (string, bool) {
	if p.Name == nil || p.IDNational == nil {
		return "", false
	}
	return fmt.Sprintf("%s - %d", *p.Name, *p.IDNational), true
}

// MarshalJSON ergänzt full_name, null wenn nicht definiert.
func (p Pokemon) MarshalJSON() ([]byte, error) {
	type plain Pokemon
	var fullName *string
	if fn, ok := p.FullName(); ok {
		fullName = &fn
	}
	return json.Marshal(struct {
		plain
		FullName *string `json:"full_name"`
	}{plain(p), fullName})
}

// BeforeSave normalisiert chosen_at auf UTC, damit Bereichsabfragen auf jedem Backend gleich vergleichen.
func (p *Pokemon) BeforeSave(tx *gorm.DB) error {
	if p.ChosenAt != nil {
		utc := p.ChosenAt.UTC()
		p.ChosenAt = &utc
	}
	return nil
}

// YesterdayWindow gibt [Beginn von gestern, Beginn von heute) in der Zeitzone von ref zurück.
func YesterdayWindow(ref time.Time) (from, to time.Time) {
	to = now.With(ref).BeginningOfDay()
	from = now.With(ref.AddDate(0, 0, -1)).BeginningOfDay()
	return from, to
}

// ChosenBetween ist ein GORM-Scope für from <= chosen_at < to.
func ChosenBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("chosen_at >= ? AND chosen_at < ?", from.UTC(), to.UTC())
	}
}

// ChosenYesterday wählt alle Pokémon, die am Vortag von ref gewählt wurden.
func ChosenYesterday(ref time.Time) func(db *gorm.DB) *gorm.DB {
	from, to := YesterdayWindow(ref)
	return ChosenBetween(from, to)
}

// StringPtr und IntPtr erleichtern das Setzen der optionalen Felder.
func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }
