package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordnest/wordnest/internal/profile"
	"github.com/wordnest/wordnest/internal/storage"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{rating: 0, want: "☆☆☆☆☆"},
		{rating: 3, want: "★★★☆☆"},
		{rating: 5, want: "★★★★★"},
		{rating: -1, want: "☆☆☆☆☆"},
		{rating: 9, want: "★★★★★"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.rating), "rating %d", tt.rating)
	}
}

func TestPrintSummaries(t *testing.T) {
	t.Run("empty list points at profile init", func(t *testing.T) {
		var buf bytes.Buffer
		PrintSummaries(&buf, nil, "")
		assert.Contains(t, buf.String(), "profile init")
	})

	t.Run("marks the current profile", func(t *testing.T) {
		summaries := []profile.Summary{
			{ID: "p1", Name: "Mia", WordCount: 2},
			{ID: "p2", Name: "Noah"},
		}
		var buf bytes.Buffer
		PrintSummaries(&buf, summaries, "p1")

		lines := strings.Split(buf.String(), "\n")
		assert.True(t, strings.HasPrefix(lines[0], "* Mia"))
		assert.True(t, strings.HasPrefix(lines[2], "  Noah"))
	})
}

func TestRenderProfile(t *testing.T) {
	p := profile.New("Mia", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderProfile(&buf, p, FormatJSON))
		assert.Contains(t, buf.String(), `"name": "Mia"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderProfile(&buf, p, FormatYAML))
		assert.Contains(t, buf.String(), "name: Mia")
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, RenderProfile(&buf, p, "xml"))
	})
}

func TestPrintEntries(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		PrintEntries(&buf, nil, "")
		assert.Equal(t, "(none)\n", buf.String())
	})

	t.Run("sorted output", func(t *testing.T) {
		entries := []profile.Word{
			{ID: "w1", Text: "banana", Star: 1},
			{ID: "w2", Text: "apple", Star: 5},
		}
		var buf bytes.Buffer
		PrintEntries(&buf, entries, profile.SortAlphaAsc)

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "apple")
		assert.Contains(t, lines[1], "banana")
	})
}

func TestPrintLetters(t *testing.T) {
	p := profile.New("Mia", time.Now())
	require.NoError(t, p.TogglePronunciation("A", "/æ/"))

	var buf bytes.Buffer
	PrintLetters(&buf, p)

	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines[0], "A a")
	assert.Contains(t, lines[0], "visible")
	assert.Contains(t, lines[0], "selected: /æ/")
	assert.Contains(t, lines[1], "hidden")
}

func TestPrintStorageInfo(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Write("english_learning_profiles", strings.Repeat("x", 100)))

	var buf bytes.Buffer
	require.NoError(t, PrintStorageInfo(&buf, store, 1000, 2))

	out := buf.String()
	assert.Contains(t, out, "profiles: 2")
	assert.Contains(t, out, "keys:     1")
	assert.Contains(t, out, "used:     100 bytes")
	assert.Contains(t, out, "(10.0% used)")
}
