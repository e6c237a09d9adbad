package models

import "errors"

// Fehlerarten, die unverändert bis zum Aufrufer durchgereicht werden.
// Prüfung immer über errors.Is, die konkreten Fehler sind gewrappt.
var (
	// ErrNetwork: Transportfehler oder unerwarteter Status der externen API.
	ErrNetwork = errors.New("network error")
	// ErrParse: Antwort ist kein gültiges JSON.
	ErrParse = errors.New("parse error")
	// ErrMissingField: erwartetes Feld fehlt im Dokument.
	ErrMissingField = errors.New("missing field")
	// ErrStorage: die Datenbank hat den Schreib- oder Lesezugriff abgelehnt.
	ErrStorage  = errors.New("storage error")
	ErrNotFound = errors.New("not found")
)
