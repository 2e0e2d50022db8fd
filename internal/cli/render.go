// Package cli implements the parent-management command logic on top of the
// profile repository and codec. Commands only parse flags and delegate here.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/wordnest/wordnest/internal/profile"
)

// Output formats for RenderProfile.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Stars renders a 1-5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	filled := color.YellowString(strings.Repeat("★", rating))
	return filled + strings.Repeat("☆", 5-rating)
}

// PrintSummaries writes one line per profile summary.
func PrintSummaries(w io.Writer, summaries []profile.Summary, currentID string) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No profiles found. Run `wordnest profile init` to create the demo profile.")
		return
	}
	for _, summary := range summaries {
		marker := "  "
		name := summary.Name
		if summary.ID == currentID {
			marker = color.GreenString("* ")
			name = color.New(color.Bold).Sprint(name)
		}
		fmt.Fprintf(w, "%s%s (%s)\n", marker, name, summary.ID)
		fmt.Fprintf(w, "    letters: %d visible, words: %d, sentences: %d, modified: %s\n",
			summary.LetterCount, summary.WordCount, summary.SentenceCount, summary.LastModified)
	}
}

// RenderProfile writes the full profile in the requested format.
func RenderProfile(w io.Writer, p *profile.Profile, format string) error {
	switch format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		fmt.Fprintln(w, string(encoded))
		return nil
	case FormatYAML:
		encoded, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		fmt.Fprint(w, string(encoded))
		return nil
	}
	return fmt.Errorf("unknown output format: %s", format)
}

// PrintEntries writes words or sentences one per line, ordered by the given
// sort key without touching the stored order.
func PrintEntries(w io.Writer, entries []profile.Word, key profile.SortKey) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, entry := range profile.SortEntries(entries, key) {
		fmt.Fprintf(w, "%s  %s  (%s, added %s)\n", Stars(entry.Star), entry.Text, entry.ID, entry.CreatedAt)
	}
}

// PrintLetters writes the 26 letters with visibility and selections.
func PrintLetters(w io.Writer, p *profile.Profile) {
	for _, letter := range p.Data.Letters {
		visibility := color.New(color.Faint).Sprint("hidden")
		if letter.IsVisible {
			visibility = color.GreenString("visible")
		}
		selected := p.Data.SelectedPronunciations[letter.ID]
		line := fmt.Sprintf("%s %s  %-7s  pronunciations: %s", letter.Uppercase, letter.Lowercase, visibility, strings.Join(letter.Pronunciations, " "))
		if len(selected) > 0 {
			line += "  selected: " + strings.Join(selected, " ")
		}
		fmt.Fprintln(w, line)
	}
}
