package gallery

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewGroupEntry(t *testing.T) {
	group := &Group{ID: "beach", DateCaptured: "2024-01-01"}

	tests := []struct {
		name            string
		cfg             GroupConfig
		wantTitle       string
		wantDescription string
	}{
		{
			name:            "with location",
			cfg:             GroupConfig{Name: "Beach Day", Location: "Santa Cruz"},
			wantTitle:       "Beach Day",
			wantDescription: "Beach Day at Santa Cruz on 2024-01-01.",
		},
		{
			name:            "without location",
			cfg:             GroupConfig{Name: "Beach Day"},
			wantTitle:       "Beach Day",
			wantDescription: "Beach Day on 2024-01-01.",
		},
		{
			name:            "title falls back to directory name",
			cfg:             GroupConfig{},
			wantTitle:       "beach",
			wantDescription: "beach on 2024-01-01.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewGroupEntry(group, &tt.cfg)
			if entry.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", entry.Title, tt.wantTitle)
			}
			if entry.Description != tt.wantDescription {
				t.Errorf("Description = %q, want %q", entry.Description, tt.wantDescription)
			}
			if entry.ID != "beach" || entry.DateCaptured != "2024-01-01" {
				t.Errorf("entry identity = %q/%q", entry.ID, entry.DateCaptured)
			}
			if entry.Images == nil {
				t.Error("Images = nil, want empty slice")
			}
		})
	}

	t.Run("carries url and featured image through", func(t *testing.T) {
		cfg := &GroupConfig{Name: "N", URL: "https://example.com", FeaturedImage: "DSC09592.jpg"}
		entry := NewGroupEntry(group, cfg)
		if entry.URL != "https://example.com" {
			t.Errorf("URL = %q", entry.URL)
		}
		if entry.FeaturedImage != "DSC09592.jpg" {
			t.Errorf("FeaturedImage = %q", entry.FeaturedImage)
		}
	})
}

func TestResolveCover(t *testing.T) {
	uploaded := []UploadedImage{
		{Name: ParseImageName("DSC09735.jpg"), CompressedKey: "photography/g/compressed/DSC09735-compressed.jpg"},
		{Name: ParseImageName("DSC09592.jpg"), CompressedKey: "photography/g/compressed/DSC09592-compressed.jpg"},
		{Name: ParseImageName("DSC09733.jpg"), CompressedKey: "photography/g/compressed/DSC09733-compressed.jpg"},
	}

	tests := []struct {
		name     string
		featured string
		uploaded []UploadedImage
		want     string
	}{
		{
			name:     "featured matches regardless of position",
			featured: "DSC09592.jpg",
			uploaded: uploaded,
			want:     "photography/g/compressed/DSC09592-compressed.jpg",
		},
		{
			name:     "featured without extension matches",
			featured: "DSC09733",
			uploaded: uploaded,
			want:     "photography/g/compressed/DSC09733-compressed.jpg",
		},
		{
			name:     "no match falls back to first entry",
			featured: "missing.jpg",
			uploaded: uploaded,
			want:     "photography/g/compressed/DSC09735-compressed.jpg",
		},
		{
			name:     "unset featured falls back to first entry",
			featured: "",
			uploaded: uploaded,
			want:     "photography/g/compressed/DSC09735-compressed.jpg",
		},
		{
			name:     "nothing uploaded keeps cover empty",
			featured: "DSC09592.jpg",
			uploaded: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCover(tt.featured, tt.uploaded); got != tt.want {
				t.Errorf("ResolveCover() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestManifestStore(t *testing.T) {
	t.Run("save creates the parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "gallery-config.json")
		s := NewManifestStore(path)

		if err := s.Save(NewManifest()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("manifest not written: %v", err)
		}
	})

	t.Run("round-trips groups", func(t *testing.T) {
		s := NewManifestStore(filepath.Join(t.TempDir(), "gallery-config.json"))
		m := NewManifest()
		m.Groups = append(m.Groups, &GroupEntry{
			ID:           "beach",
			Title:        "Beach Day",
			Description:  "Beach Day on 2024-01-01.",
			DateCaptured: "2024-01-01",
			Images: []ImageEntry{
				{Compressed: "photography/beach/compressed/a-compressed.jpg"},
			},
			CoverImage: "photography/beach/compressed/a-compressed.jpg",
		})

		if err := s.Save(m); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got.Groups) != 1 {
			t.Fatalf("Groups = %d, want 1", len(got.Groups))
		}
		g := got.Group("beach")
		if g == nil {
			t.Fatal("Group(beach) = nil")
		}
		if g.Title != "Beach Day" || len(g.Images) != 1 {
			t.Errorf("round-trip mismatch: %+v", g)
		}
	})

	t.Run("save is a byte-stable total replacement", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gallery-config.json")
		s := NewManifestStore(path)

		m := NewManifest()
		m.Groups = append(m.Groups, &GroupEntry{ID: "g", Title: "G", Images: []ImageEntry{}})
		if err := s.Save(m); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		first, _ := os.ReadFile(path)

		if err := s.Save(m); err != nil {
			t.Fatalf("second Save() error = %v", err)
		}
		second, _ := os.ReadFile(path)

		if !bytes.Equal(first, second) {
			t.Error("repeated saves produced different bytes")
		}
		if !strings.Contains(string(first), `"images": []`) {
			t.Errorf("empty image list should serialize as [], got:\n%s", first)
		}
	})

	t.Run("no temp files are left behind", func(t *testing.T) {
		dir := t.TempDir()
		s := NewManifestStore(filepath.Join(dir, "gallery-config.json"))
		if err := s.Save(NewManifest()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory entries = %d, want only the manifest", len(entries))
		}
	})
}
