// Package alphabet defines the static A-Z pronunciation table shared by every
// profile. The table is the single source of truth for which IPA variants a
// letter can carry; persisted pronunciation lists are refreshed from it on
// every load.
package alphabet

// Letters lists the 26 letter IDs in canonical order.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var pronunciations = map[string][]string{
	"A": {"/æ/", "/eɪ/", "/ɑː/"},
	"B": {"/b/"},
	"C": {"/k/", "/s/"},
	"D": {"/d/"},
	"E": {"/e/", "/iː/"},
	"F": {"/f/"},
	"G": {"/g/", "/dʒ/"},
	"H": {"/h/"},
	"I": {"/aɪ/", "/i/"},
	"J": {"/dʒ/"},
	"K": {"/k/"},
	"L": {"/l/"},
	"M": {"/m/"},
	"N": {"/n/"},
	"O": {"/ɒ/", "/oʊ/"},
	"P": {"/p/"},
	"Q": {"/k/"},
	"R": {"/r/"},
	"S": {"/s/"},
	"T": {"/t/"},
	"U": {"/ʌ/", "/juː/"},
	"V": {"/v/"},
	"W": {"/w/"},
	"X": {"/ks/"},
	"Y": {"/j/"},
	"Z": {"/z/"},
}

// Pronunciations returns a copy of the IPA variants for a letter ID.
// Unknown IDs return nil.
func Pronunciations(id string) []string {
	variants, ok := pronunciations[id]
	if !ok {
		return nil
	}
	result := make([]string, len(variants))
	copy(result, variants)
	return result
}

// IsLetter reports whether id is one of the 26 canonical letter IDs.
func IsLetter(id string) bool {
	_, ok := pronunciations[id]
	return ok
}

// HasPronunciation reports whether the given IPA variant is valid for the
// letter ID according to the static table.
func HasPronunciation(id, pronunciation string) bool {
	for _, p := range pronunciations[id] {
		if p == pronunciation {
			return true
		}
	}
	return false
}
