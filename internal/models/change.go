package models

// Change actions found in the update list.
const (
	ActionAdded    = "Added"
	ActionModified = "Modified"
	ActionDeleted  = "Deleted"
)

// ChangeRecord is one municipality line of the update list.
type ChangeRecord struct {
	Action         string  `json:"action"`
	Grid           int     `json:"grid"`
	Kanji          string  `json:"kanji"`
	Hiragana       string  `json:"hiragana"`
	Romaji         string  `json:"romaji"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Classification string  `json:"classification"`
}

// ChangeSet indexes change records by action, then by kanji name.
type ChangeSet map[string]map[string]ChangeRecord

// Add stores r under its action and kanji, replacing any earlier record.
func (c ChangeSet) Add(r ChangeRecord) {
	byKanji, ok := c[r.Action]
	if !ok {
		byKanji = make(map[string]ChangeRecord)
		c[r.Action] = byKanji
	}
	byKanji[r.Kanji] = r
}

// Lookup returns the record for kanji under action.
func (c ChangeSet) Lookup(action, kanji string) (ChangeRecord, bool) {
	r, ok := c[action][kanji]
	return r, ok
}
