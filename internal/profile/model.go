// Package profile defines the profile entity model and its repository over a
// local key-value store. A profile is a named, independent collection of
// learning content: the 26 alphabet letters with visibility flags, words and
// sentences with proficiency stars, and per-letter pronunciation selections.
package profile

import (
	"time"

	"github.com/wordnest/wordnest/internal/alphabet"
)

// Letter is one of the 26 alphabet entries. Letters are never deleted, only
// hidden; the pronunciation list is derived from the static table and
// refreshed on every load.
type Letter struct {
	ID             string   `json:"id"`
	Uppercase      string   `json:"uppercase"`
	Lowercase      string   `json:"lowercase"`
	Pronunciations []string `json:"pronunciations"`
	IsVisible      bool     `json:"isVisible"`
}

// Word is a single vocabulary entry with a 1-5 proficiency star rating.
type Word struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	Star      int    `json:"star"`
}

// Sentence has the same shape and lifecycle as Word; its text is a full
// sentence rather than a single token.
type Sentence = Word

// Data holds the learning content of a profile.
type Data struct {
	Letters                []Letter            `json:"letters"`
	Words                  []Word              `json:"words"`
	Sentences              []Sentence          `json:"sentences"`
	SelectedPronunciations map[string][]string `json:"selectedPronunciations"`
}

// Profile is a named collection of learning content. Timestamps are ISO-8601
// strings; LastModified is stamped on every successful save and is the sole
// change-detection signal across contexts.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAt    string `json:"createdAt"`
	LastModified string `json:"lastModified"`
	Data         Data   `json:"data"`
}

// Summary is a read-only listing projection of a Profile. It is derived and
// never stored independently.
type Summary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CreatedAt     string `json:"createdAt"`
	LastModified  string `json:"lastModified"`
	LetterCount   int    `json:"letterCount"`
	WordCount     int    `json:"wordCount"`
	SentenceCount int    `json:"sentenceCount"`
}

// ISOTime formats a time the way the stored documents expect: UTC ISO-8601
// with millisecond precision.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// ParseISOTime parses a stored timestamp. The zero time and false are
// returned for values that are not ISO-8601.
func ParseISOTime(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05.000Z", time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NewLetters builds the canonical 26-letter set, all hidden, with each
// letter's pronunciations taken from the static table.
func NewLetters() []Letter {
	letters := make([]Letter, 0, len(alphabet.Letters))
	for _, r := range alphabet.Letters {
		id := string(r)
		letters = append(letters, Letter{
			ID:             id,
			Uppercase:      id,
			Lowercase:      string(r + ('a' - 'A')),
			Pronunciations: alphabet.Pronunciations(id),
			IsVisible:      false,
		})
	}
	return letters
}

// Summary derives the listing projection: letterCount counts only visible
// letters.
func (p *Profile) Summary() Summary {
	visible := 0
	for _, l := range p.Data.Letters {
		if l.IsVisible {
			visible++
		}
	}
	return Summary{
		ID:            p.ID,
		Name:          p.Name,
		CreatedAt:     p.CreatedAt,
		LastModified:  p.LastModified,
		LetterCount:   visible,
		WordCount:     len(p.Data.Words),
		SentenceCount: len(p.Data.Sentences),
	}
}

// Normalize repairs a loaded profile so the at-rest invariants hold:
//   - the letter set is rebuilt in canonical A-Z order, carrying over only
//     each letter's visibility; pronunciation lists always come from the
//     static table, discarding whatever was persisted
//   - selected pronunciations referencing variants no longer in the table
//     are pruned without touching still-valid selections
//   - hidden letters keep no selections
//   - nil slices and maps are replaced with empty ones
//
// Normalize never fails; corrupt or partial content degrades to the empty
// equivalent.
func (p *Profile) Normalize() {
	visible := make(map[string]bool, len(p.Data.Letters))
	for _, l := range p.Data.Letters {
		if alphabet.IsLetter(l.ID) {
			visible[l.ID] = l.IsVisible
		}
	}
	letters := NewLetters()
	for i := range letters {
		letters[i].IsVisible = visible[letters[i].ID]
	}
	p.Data.Letters = letters

	selections := make(map[string][]string, len(p.Data.SelectedPronunciations))
	for id, chosen := range p.Data.SelectedPronunciations {
		if !visible[id] {
			continue
		}
		var kept []string
		for _, pron := range chosen {
			if alphabet.HasPronunciation(id, pron) {
				kept = append(kept, pron)
			}
		}
		if len(kept) > 0 {
			selections[id] = kept
		}
	}
	p.Data.SelectedPronunciations = selections

	if p.Data.Words == nil {
		p.Data.Words = []Word{}
	}
	if p.Data.Sentences == nil {
		p.Data.Sentences = []Sentence{}
	}
}

// Clone returns a deep copy, so callers can mutate a loaded profile without
// aliasing repository-held data.
func (p *Profile) Clone() *Profile {
	clone := *p
	clone.Data.Letters = make([]Letter, len(p.Data.Letters))
	for i, l := range p.Data.Letters {
		clone.Data.Letters[i] = l
		clone.Data.Letters[i].Pronunciations = append([]string(nil), l.Pronunciations...)
	}
	clone.Data.Words = append([]Word(nil), p.Data.Words...)
	clone.Data.Sentences = append([]Sentence(nil), p.Data.Sentences...)
	clone.Data.SelectedPronunciations = make(map[string][]string, len(p.Data.SelectedPronunciations))
	for id, chosen := range p.Data.SelectedPronunciations {
		clone.Data.SelectedPronunciations[id] = append([]string(nil), chosen...)
	}
	return &clone
}
