// Package scoring loads the static scoring-map asset: a JSON document
// mapping exact question text to per-option point values. The map is
// built once at startup and injected into the assessment service.
package scoring

import (
	"encoding/json"
	"fmt"
	"os"
)

type optionEntry struct {
	Points int `json:"points"`
}

type questionEntry struct {
	Text    string        `json:"text"`
	Options []optionEntry `json:"options"`
}

type categoryEntry struct {
	Name      string          `json:"name"`
	Questions []questionEntry `json:"questions"`
}

type document struct {
	Categories []categoryEntry `json:"categories"`
}

// Map is an immutable lookup from question text to option point values.
type Map struct {
	points map[string][]int
}

// LoadFile reads and parses the scoring-map JSON asset.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring map: %w", err)
	}
	return Parse(data)
}

// Parse builds a Map from raw JSON. Duplicate question text is an error
// because text is the lookup key during scoring.
func Parse(data []byte) (*Map, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scoring map: %w", err)
	}

	points := make(map[string][]int)
	for _, cat := range doc.Categories {
		for _, q := range cat.Questions {
			if _, exists := points[q.Text]; exists {
				return nil, fmt.Errorf("duplicate question text in scoring map: %q", q.Text)
			}
			opts := make([]int, len(q.Options))
			for i, o := range q.Options {
				opts[i] = o.Points
			}
			points[q.Text] = opts
		}
	}
	return &Map{points: points}, nil
}

// NewFromPoints builds a Map directly from a text -> points table.
// Used by tests and the seeder.
func NewFromPoints(table map[string][]int) *Map {
	points := make(map[string][]int, len(table))
	for text, opts := range table {
		cp := make([]int, len(opts))
		copy(cp, opts)
		points[text] = cp
	}
	return &Map{points: points}
}

// PointsFor returns the point value for the given question text and
// option index. ok is false when the text is unknown or the index has
// no entry; callers degrade to zero points rather than failing.
func (m *Map) PointsFor(questionText string, optionIndex int) (int, bool) {
	opts, found := m.points[questionText]
	if !found {
		return 0, false
	}
	if optionIndex < 0 || optionIndex >= len(opts) {
		return 0, false
	}
	return opts[optionIndex], true
}

// Len reports the number of question entries loaded.
func (m *Map) Len() int {
	return len(m.points)
}
