package profile

import (
	"fmt"
	"time"
)

// DemoProfileID and DemoProfileName identify the single demo profile created
// on first run when no profiles exist at all.
const (
	DemoProfileID   = "profile_default_austin"
	DemoProfileName = "Austin"
)

// New builds an empty profile: the full 26-letter set all hidden, no words,
// no sentences, no pronunciation selections. The caller must save it
// explicitly.
func New(name string, now time.Time) *Profile {
	iso := ISOTime(now)
	return &Profile{
		ID:           fmt.Sprintf("profile_%d", now.UnixMilli()),
		Name:         name,
		CreatedAt:    iso,
		LastModified: iso,
		Data: Data{
			Letters:                NewLetters(),
			Words:                  []Word{},
			Sentences:              []Sentence{},
			SelectedPronunciations: map[string][]string{},
		},
	}
}

// NewDemo builds the first-run demo profile: the first ten letters (A-J)
// visible with one pronunciation pre-selected each, ten starter words and
// eight starter sentences with varied star ratings.
func NewDemo(now time.Time) *Profile {
	iso := ISOTime(now)

	letters := NewLetters()
	for i := range letters {
		letters[i].IsVisible = i < 10
	}

	selections := map[string][]string{
		"A": {"/æ/"},
		"B": {"/b/"},
		"C": {"/k/"},
		"D": {"/d/"},
		"E": {"/e/"},
		"F": {"/f/"},
		"G": {"/g/"},
		"H": {"/h/"},
		"I": {"/aɪ/"},
		"J": {"/dʒ/"},
	}

	words := []Word{
		{ID: "word_1", Text: "apple", Star: 3, CreatedAt: iso},
		{ID: "word_2", Text: "banana", Star: 4, CreatedAt: iso},
		{ID: "word_3", Text: "cat", Star: 5, CreatedAt: iso},
		{ID: "word_4", Text: "dog", Star: 2, CreatedAt: iso},
		{ID: "word_5", Text: "elephant", Star: 1, CreatedAt: iso},
		{ID: "word_6", Text: "fish", Star: 4, CreatedAt: iso},
		{ID: "word_7", Text: "good", Star: 5, CreatedAt: iso},
		{ID: "word_8", Text: "hello", Star: 5, CreatedAt: iso},
		{ID: "word_9", Text: "ice", Star: 3, CreatedAt: iso},
		{ID: "word_10", Text: "jump", Star: 2, CreatedAt: iso},
	}

	sentences := []Sentence{
		{ID: "sentence_1", Text: "Hello, how are you?", Star: 4, CreatedAt: iso},
		{ID: "sentence_2", Text: "I like apples.", Star: 5, CreatedAt: iso},
		{ID: "sentence_3", Text: "The cat is cute.", Star: 3, CreatedAt: iso},
		{ID: "sentence_4", Text: "Good morning!", Star: 5, CreatedAt: iso},
		{ID: "sentence_5", Text: "Can you help me?", Star: 2, CreatedAt: iso},
		{ID: "sentence_6", Text: "I have a dog.", Star: 4, CreatedAt: iso},
		{ID: "sentence_7", Text: "The fish is swimming.", Star: 1, CreatedAt: iso},
		{ID: "sentence_8", Text: "Thank you very much.", Star: 3, CreatedAt: iso},
	}

	return &Profile{
		ID:           DemoProfileID,
		Name:         DemoProfileName,
		CreatedAt:    iso,
		LastModified: iso,
		Data: Data{
			Letters:                letters,
			Words:                  words,
			Sentences:              sentences,
			SelectedPronunciations: selections,
		},
	}
}
