package gallery

import "testing"

func TestParseImageName(t *testing.T) {
	tests := []struct {
		filename       string
		wantStem       string
		wantExt        string
		wantCompressed string
	}{
		{"DSC09592.jpg", "DSC09592", ".jpg", "DSC09592-compressed.jpg"},
		{"photo.PNG", "photo", ".png", "photo-compressed.jpg"},
		{"noext", "noext", "", "noext-compressed.jpg"},
		{"two.dots.webp", "two.dots", ".webp", "two.dots-compressed.jpg"},
		// A stem containing "compressed" must survive the round trip intact.
		{"compressed-view.jpg", "compressed-view", ".jpg", "compressed-view-compressed.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			n := ParseImageName(tt.filename)
			if n.Stem != tt.wantStem {
				t.Errorf("Stem = %q, want %q", n.Stem, tt.wantStem)
			}
			if n.Ext != tt.wantExt {
				t.Errorf("Ext = %q, want %q", n.Ext, tt.wantExt)
			}
			if got := n.Compressed(); got != tt.wantCompressed {
				t.Errorf("Compressed() = %q, want %q", got, tt.wantCompressed)
			}
		})
	}
}

func TestImageName_ContentType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.png", "image/png"},
		{"a.gif", "image/gif"},
		{"a.webp", "image/webp"},
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.tiff", "image/jpeg"}, // unmapped extensions default to JPEG
	}
	for _, tt := range tests {
		if got := ParseImageName(tt.filename).ContentType(); got != tt.want {
			t.Errorf("ContentType(%s) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestFormatSet(t *testing.T) {
	t.Run("defaults cover the recognized set", func(t *testing.T) {
		set := NewFormatSet(nil)
		for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.gif", "e.bmp", "f.tiff", "g.webp"} {
			if !set.Contains(name) {
				t.Errorf("Contains(%s) = false, want true", name)
			}
		}
		if set.Contains("notes.txt") || set.Contains("noext") {
			t.Error("non-image files must not match")
		}
	})

	t.Run("custom formats tolerate missing dots", func(t *testing.T) {
		set := NewFormatSet([]string{"jpg", ".PNG"})
		if !set.Contains("a.jpg") || !set.Contains("b.png") {
			t.Error("custom formats not recognized")
		}
		if set.Contains("c.gif") {
			t.Error("gif should not match the custom set")
		}
	})
}
