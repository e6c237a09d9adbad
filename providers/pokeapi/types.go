package pokeapi

// Document ist die Antwort von /api/v2/pokemon/{id}/, reduziert auf die Felder, die wir lesen.
// Name ist ein Pointer, damit ein fehlendes Feld von einem leeren String unterscheidbar bleibt.
type Document struct {
	ID      int        `json:"id"`
	Name    *string    `json:"name"`
	Height  int        `json:"height"`
	Weight  int        `json:"weight"`
	Sprites Sprites    `json:"sprites"`
	Types   []PokeType `json:"types"`
}

// Sprites enthält die Bild-URLs.
type Sprites struct {
	BackDefault  string `json:"back_default"`
	FrontDefault string `json:"front_default"`
}

// PokeType ist ein Typ-Slot eines Pokémon.
type PokeType struct {
	Slot int `json:"slot"`
	Type struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"type"`
}

// TypeNames liefert die Typnamen in Slot-Reihenfolge der API.
func (d *Document) TypeNames() []string {
	names := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		names = append(names, t.Type.Name)
	}
	return names
}
