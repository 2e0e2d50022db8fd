// Package datasync serializes profiles to and from the JSON interchange
// format: single-profile documents and multi-profile bundles. Importing
// re-keys every profile so it can never collide with an already-stored one;
// persisting the result stays the caller's job.
package datasync

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/wordnest/wordnest/internal/profile"
)

var (
	// ErrMalformedJSON means the import file is not valid JSON at all.
	ErrMalformedJSON = errors.New("import file is not valid JSON")
	// ErrInvalidProfileFormat means a single-profile document is missing a
	// required field (id, name or data).
	ErrInvalidProfileFormat = errors.New("invalid profile format")
	// ErrNoValidProfiles means no entry of a bundle survived validation.
	ErrNoValidProfiles = errors.New("no valid profiles in import file")
)

// Bundle is the multi-profile export document.
type Bundle struct {
	ExportDate   string            `json:"exportDate"`
	ProfileCount int               `json:"profileCount"`
	Profiles     []profile.Profile `json:"profiles"`
}

// ImportResult carries the re-keyed profiles plus a human-readable summary
// naming them.
type ImportResult struct {
	Profiles []profile.Profile
	Message  string
}

// profileDocument is the validated shape of an imported profile. Data is a
// pointer so a missing data object is distinguishable from an empty one.
type profileDocument struct {
	ID           string        `json:"id" validate:"required"`
	Name         string        `json:"name" validate:"required"`
	CreatedAt    string        `json:"createdAt"`
	LastModified string        `json:"lastModified"`
	Data         *profile.Data `json:"data" validate:"required"`
}

// Codec performs import and export of profile documents.
type Codec struct {
	validate *validator.Validate
	now      func() time.Time
}

// CodecOption configures optional Codec behavior.
type CodecOption func(*Codec)

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a Codec.
func NewCodec(opts ...CodecOption) *Codec {
	codec := &Codec{
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}
	return codec
}

// ExportOne serializes a single profile verbatim, pretty-printed.
func (c *Codec) ExportOne(p profile.Profile) ([]byte, error) {
	encoded, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profile %s: %w", p.ID, err)
	}
	return encoded, nil
}

// ExportAll serializes a bundle of profiles, pretty-printed.
func (c *Codec) ExportAll(profiles []profile.Profile) ([]byte, error) {
	bundle := Bundle{
		ExportDate:   profile.ISOTime(c.now()),
		ProfileCount: len(profiles),
		Profiles:     profiles,
	}
	encoded, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profile bundle: %w", err)
	}
	return encoded, nil
}

// Import parses either a bundle or a single-profile document. Bundle entries
// failing validation are skipped, not fatal; every surviving profile gets a
// fresh collision-free ID and a current lastModified stamp.
func (c *Codec) Import(contents []byte) (*ImportResult, error) {
	var document any
	if err := json.Unmarshal(contents, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if object, ok := document.(map[string]any); ok {
		if _, isBundle := object["profiles"]; isBundle {
			return c.importBundle(contents)
		}
	}
	return c.importSingle(contents)
}

func (c *Codec) importBundle(contents []byte) (*ImportResult, error) {
	var bundle struct {
		Profiles []json.RawMessage `json:"profiles"`
	}
	if err := json.Unmarshal(contents, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	now := c.now()
	var imported []profile.Profile
	for i, raw := range bundle.Profiles {
		p, err := c.parseProfile(raw)
		if err != nil {
			continue
		}
		p.ID = newProfileID(now, i)
		p.LastModified = profile.ISOTime(now)
		imported = append(imported, p)
	}
	if len(imported) == 0 {
		return nil, ErrNoValidProfiles
	}
	return &ImportResult{Profiles: imported, Message: importMessage(imported)}, nil
}

func (c *Codec) importSingle(contents []byte) (*ImportResult, error) {
	p, err := c.parseProfile(contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfileFormat, err)
	}

	now := c.now()
	p.ID = newProfileID(now, 0)
	p.LastModified = profile.ISOTime(now)
	imported := []profile.Profile{p}
	return &ImportResult{Profiles: imported, Message: importMessage(imported)}, nil
}

// parseProfile validates the three required fields (id, name, data) and
// converts the document into a Profile, carrying its data verbatim.
func (c *Codec) parseProfile(raw []byte) (profile.Profile, error) {
	var doc profileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return profile.Profile{}, fmt.Errorf("decode profile document: %w", err)
	}
	if err := c.validate.Struct(doc); err != nil {
		return profile.Profile{}, fmt.Errorf("validate profile document: %w", err)
	}
	return profile.Profile{
		ID:           doc.ID,
		Name:         doc.Name,
		CreatedAt:    doc.CreatedAt,
		LastModified: doc.LastModified,
		Data:         *doc.Data,
	}, nil
}

func importMessage(imported []profile.Profile) string {
	if len(imported) == 1 {
		return fmt.Sprintf("Imported profile: %s", imported[0].Name)
	}
	names := make([]string, len(imported))
	for i, p := range imported {
		names[i] = p.Name
	}
	return fmt.Sprintf("Imported %d profiles: %s", len(imported), strings.Join(names, ", "))
}

// newProfileID builds a collision-free ID from the import time, the entry's
// position in the bundle and a random suffix.
func newProfileID(now time.Time, index int) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("profile_%d_%d_%s", now.UnixMilli(), index, suffix)
}

// ExportFilename derives the download name for a single profile:
// <name>_<YYYY-MM-DD>.json.
func ExportFilename(p profile.Profile, now time.Time) string {
	return fmt.Sprintf("%s_%s.json", p.Name, now.UTC().Format("2006-01-02"))
}

// AutoExportFilename derives the timestamped name used by automatic backups:
// <name>_<YYYY-MM-DD>_<HH-MM-SS>.json.
func AutoExportFilename(p profile.Profile, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.json", p.Name, now.UTC().Format("2006-01-02"), now.UTC().Format("15-04-05"))
}

// BundleFilename derives the download name for an all-profiles export.
func BundleFilename(now time.Time) string {
	return fmt.Sprintf("profiles_%s.json", now.UTC().Format("2006-01-02"))
}
