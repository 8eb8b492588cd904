package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ImageEntry is one image in a manifest group, referenced by remote key.
type ImageEntry struct {
	Compressed string `json:"compressed"`
	Original   string `json:"original,omitempty"`
}

// GroupEntry is the manifest record for one group. Entries are fully
// rebuilt every run from the group directory's metadata and the images
// actually uploaded in that run.
type GroupEntry struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DateCaptured  string       `json:"date_captured"`
	Images        []ImageEntry `json:"images"`
	CoverImage    string       `json:"coverImage"`
	FeaturedImage string       `json:"featured_image"`
	URL           string       `json:"url,omitempty"`
}

// Manifest is the gallery description consumed by the website front end.
// It is owned exclusively by the manifest builder.
type Manifest struct {
	Groups []*GroupEntry `json:"groups"`
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{Groups: []*GroupEntry{}}
}

// Group returns the entry with the given id, or nil.
func (m *Manifest) Group(id string) *GroupEntry {
	for _, g := range m.Groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// NewGroupEntry derives a manifest entry from a group directory and its
// parsed config. The title falls back to the directory name; the
// description mentions the location only when one is configured.
func NewGroupEntry(g *Group, cfg *GroupConfig) *GroupEntry {
	title := cfg.Name
	if title == "" {
		title = g.ID
	}

	var description string
	if cfg.Location != "" {
		description = fmt.Sprintf("%s at %s on %s.", title, cfg.Location, g.DateCaptured)
	} else {
		description = fmt.Sprintf("%s on %s.", title, g.DateCaptured)
	}

	return &GroupEntry{
		ID:            g.ID,
		Title:         title,
		Description:   description,
		DateCaptured:  g.DateCaptured,
		Images:        []ImageEntry{},
		FeaturedImage: cfg.FeaturedImage,
		URL:           cfg.URL,
	}
}

// ResolveCover picks the group's cover image key. A configured featured
// image wins when its stem matches an uploaded image, regardless of
// position; otherwise the first uploaded image is used. With nothing
// uploaded the cover stays empty.
func ResolveCover(featured string, uploaded []UploadedImage) string {
	if featured != "" {
		stem := ParseImageName(featured).Stem
		for _, u := range uploaded {
			if u.Name.Stem == stem {
				return u.CompressedKey
			}
		}
	}
	if len(uploaded) > 0 {
		return uploaded[0].CompressedKey
	}
	return ""
}

// ManifestStore persists the manifest as JSON. Every save is a total
// replacement written to a temp file and renamed into place, so the front
// end never reads a half-written manifest.
type ManifestStore struct {
	path string
}

// NewManifestStore creates a store writing to the given file path.
func NewManifestStore(path string) *ManifestStore {
	return &ManifestStore{path: path}
}

// Path returns the manifest file path.
func (s *ManifestStore) Path() string {
	return s.path
}

// Save writes the manifest, creating the parent directory if absent.
func (s *ManifestStore) Save(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Load reads the manifest from disk.
func (s *ManifestStore) Load() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
