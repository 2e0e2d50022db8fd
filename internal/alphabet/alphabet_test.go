package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPronunciations(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want []string
	}{
		{name: "letter with several variants", id: "A", want: []string{"/æ/", "/eɪ/", "/ɑː/"}},
		{name: "letter with one variant", id: "B", want: []string{"/b/"}},
		{name: "last letter", id: "Z", want: []string{"/z/"}},
		{name: "lowercase is not a letter id", id: "a", want: nil},
		{name: "unknown id", id: "AB", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pronunciations(tt.id))
		})
	}
}

func TestPronunciationsReturnsCopy(t *testing.T) {
	first := Pronunciations("A")
	first[0] = "/mutated/"
	assert.Equal(t, []string{"/æ/", "/eɪ/", "/ɑː/"}, Pronunciations("A"))
}

func TestEveryLetterHasPronunciations(t *testing.T) {
	assert.Len(t, Letters, 26)
	for _, r := range Letters {
		id := string(r)
		assert.True(t, IsLetter(id), "letter %s", id)
		assert.NotEmpty(t, Pronunciations(id), "letter %s", id)
	}
}

func TestHasPronunciation(t *testing.T) {
	assert.True(t, HasPronunciation("C", "/k/"))
	assert.True(t, HasPronunciation("C", "/s/"))
	assert.False(t, HasPronunciation("C", "/z/"))
	assert.False(t, HasPronunciation("?", "/k/"))
}
