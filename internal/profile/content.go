package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wordnest/wordnest/internal/alphabet"
)

var (
	// ErrDuplicateEntry is returned when a word or sentence with the same
	// text (case-insensitive) already exists in the profile.
	ErrDuplicateEntry = errors.New("entry already exists")
	// ErrEmptyText is returned when an added or edited entry has no text.
	ErrEmptyText = errors.New("text must not be empty")
	// ErrUnknownLetter is returned for letter IDs outside A-Z.
	ErrUnknownLetter = errors.New("unknown letter")
	// ErrUnknownEntry is returned when no word or sentence has the given ID.
	ErrUnknownEntry = errors.New("no such entry")
	// ErrInvalidStar is returned for star ratings outside 1-5.
	ErrInvalidStar = errors.New("star rating must be between 1 and 5")
	// ErrUnknownPronunciation is returned when a pronunciation is not in the
	// static table for the letter.
	ErrUnknownPronunciation = errors.New("pronunciation not valid for letter")
)

// SetLetterVisible shows or hides a letter. Hiding a letter always clears its
// pronunciation selections so a hidden letter never keeps selections at rest.
func (p *Profile) SetLetterVisible(letterID string, visible bool) error {
	if !alphabet.IsLetter(letterID) {
		return fmt.Errorf("%w: %s", ErrUnknownLetter, letterID)
	}
	for i := range p.Data.Letters {
		if p.Data.Letters[i].ID != letterID {
			continue
		}
		p.Data.Letters[i].IsVisible = visible
		if !visible {
			delete(p.Data.SelectedPronunciations, letterID)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownLetter, letterID)
}

// TogglePronunciation selects or deselects an IPA variant for a letter.
// Selecting a pronunciation for a hidden letter makes the letter visible
// first. Deselecting the last variant removes the letter's selection entry.
func (p *Profile) TogglePronunciation(letterID, pronunciation string) error {
	if !alphabet.IsLetter(letterID) {
		return fmt.Errorf("%w: %s", ErrUnknownLetter, letterID)
	}
	if !alphabet.HasPronunciation(letterID, pronunciation) {
		return fmt.Errorf("%w: %s for %s", ErrUnknownPronunciation, pronunciation, letterID)
	}

	if err := p.SetLetterVisible(letterID, true); err != nil {
		return err
	}
	if p.Data.SelectedPronunciations == nil {
		p.Data.SelectedPronunciations = map[string][]string{}
	}

	chosen := p.Data.SelectedPronunciations[letterID]
	for i, existing := range chosen {
		if existing == pronunciation {
			chosen = append(chosen[:i], chosen[i+1:]...)
			if len(chosen) == 0 {
				delete(p.Data.SelectedPronunciations, letterID)
			} else {
				p.Data.SelectedPronunciations[letterID] = chosen
			}
			return nil
		}
	}
	p.Data.SelectedPronunciations[letterID] = append(chosen, pronunciation)
	return nil
}

// AddWord appends a new word with the default star rating of 1.
func (p *Profile) AddWord(text string, now time.Time) (Word, error) {
	word, err := newEntry(p.Data.Words, "word", text, now)
	if err != nil {
		return Word{}, err
	}
	p.Data.Words = append(p.Data.Words, word)
	return word, nil
}

// AddSentence appends a new sentence with the default star rating of 1.
func (p *Profile) AddSentence(text string, now time.Time) (Sentence, error) {
	sentence, err := newEntry(p.Data.Sentences, "sentence", text, now)
	if err != nil {
		return Sentence{}, err
	}
	p.Data.Sentences = append(p.Data.Sentences, sentence)
	return sentence, nil
}

// RemoveWord deletes a word by ID.
func (p *Profile) RemoveWord(id string) error {
	return removeEntry(&p.Data.Words, id)
}

// RemoveSentence deletes a sentence by ID.
func (p *Profile) RemoveSentence(id string) error {
	return removeEntry(&p.Data.Sentences, id)
}

// SetWordStar updates a word's proficiency rating in place.
func (p *Profile) SetWordStar(id string, star int) error {
	return setEntryStar(p.Data.Words, id, star)
}

// SetSentenceStar updates a sentence's proficiency rating in place.
func (p *Profile) SetSentenceStar(id string, star int) error {
	return setEntryStar(p.Data.Sentences, id, star)
}

// UpdateWordText edits a word's text, keeping the case-insensitive
// uniqueness rule against the other words.
func (p *Profile) UpdateWordText(id, text string) error {
	return updateEntryText(p.Data.Words, id, text)
}

// UpdateSentenceText edits a sentence's text, keeping the case-insensitive
// uniqueness rule against the other sentences.
func (p *Profile) UpdateSentenceText(id, text string) error {
	return updateEntryText(p.Data.Sentences, id, text)
}

func newEntry(existing []Word, prefix, text string, now time.Time) (Word, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Word{}, ErrEmptyText
	}
	for _, entry := range existing {
		if strings.EqualFold(entry.Text, text) {
			return Word{}, fmt.Errorf("%w: %s", ErrDuplicateEntry, text)
		}
	}
	return Word{
		ID:        fmt.Sprintf("%s_%d", prefix, now.UnixNano()),
		Text:      text,
		CreatedAt: ISOTime(now),
		Star:      1,
	}, nil
}

func removeEntry(entries *[]Word, id string) error {
	for i, entry := range *entries {
		if entry.ID == id {
			*entries = append((*entries)[:i], (*entries)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEntry, id)
}

func setEntryStar(entries []Word, id string, star int) error {
	if star < 1 || star > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidStar, star)
	}
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Star = star
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEntry, id)
}

func updateEntryText(entries []Word, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	for _, entry := range entries {
		if entry.ID != id && strings.EqualFold(entry.Text, text) {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, text)
		}
	}
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Text = text
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEntry, id)
}

// SortKey selects a display ordering for words and sentences. Sorting is
// computed on a copy; the stored order is never mutated.
type SortKey string

const (
	SortStarAsc   SortKey = "star_asc"
	SortStarDesc  SortKey = "star_desc"
	SortAlphaAsc  SortKey = "alpha_asc"
	SortAlphaDesc SortKey = "alpha_desc"
	SortDateAsc   SortKey = "date_asc"
	SortDateDesc  SortKey = "date_desc"
)

// ParseSortKey validates a sort key string.
func ParseSortKey(value string) (SortKey, error) {
	switch key := SortKey(value); key {
	case SortStarAsc, SortStarDesc, SortAlphaAsc, SortAlphaDesc, SortDateAsc, SortDateDesc:
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key: %s", value)
}

// SortEntries returns the entries ordered by the given key, leaving the
// input slice untouched. An empty key keeps the stored order.
func SortEntries(entries []Word, key SortKey) []Word {
	sorted := append([]Word(nil), entries...)
	switch key {
	case SortStarAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Star < sorted[j].Star })
	case SortStarDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Star > sorted[j].Star })
	case SortAlphaAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Text) < strings.ToLower(sorted[j].Text)
		})
	case SortAlphaDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Text) > strings.ToLower(sorted[j].Text)
		})
	case SortDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return entryBefore(sorted[i], sorted[j]) })
	case SortDateDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return entryBefore(sorted[j], sorted[i]) })
	}
	return sorted
}

func entryBefore(a, b Word) bool {
	at, aok := ParseISOTime(a.CreatedAt)
	bt, bok := ParseISOTime(b.CreatedAt)
	if aok && bok {
		return at.Before(bt)
	}
	return a.CreatedAt < b.CreatedAt
}
