package gallery

import (
	"path/filepath"
	"strings"
)

// DefaultFormats is the recognized image extension set used when the run
// configuration does not override it.
var DefaultFormats = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"}

// compressedSuffix is appended to an image stem to name its compressed
// artifact. The artifact is always JPEG regardless of the source format.
const compressedSuffix = "-compressed"

// ImageName is the parsed identity of an image file: the filename stem and
// its original extension. Pairing an original with its compressed artifact
// goes through this type rather than substring surgery on filenames, so
// stems that themselves contain "compressed" stay unambiguous.
type ImageName struct {
	Stem string
	Ext  string // lowercase, with leading dot; may be empty
}

// ParseImageName splits a bare filename into stem and extension.
func ParseImageName(filename string) ImageName {
	ext := filepath.Ext(filename)
	return ImageName{
		Stem: strings.TrimSuffix(filename, ext),
		Ext:  strings.ToLower(ext),
	}
}

// Original returns the original filename.
func (n ImageName) Original() string {
	return n.Stem + n.Ext
}

// Compressed returns the filename of the compressed artifact.
func (n ImageName) Compressed() string {
	return n.Stem + compressedSuffix + ".jpg"
}

// ContentType returns the MIME type for the original file based on its
// extension. Unrecognized extensions default to JPEG.
func (n ImageName) ContentType() string {
	return contentTypeForExt(n.Ext)
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// FormatSet is the set of recognized image file extensions.
// Matching is case-insensitive.
type FormatSet map[string]bool

// NewFormatSet builds a FormatSet from extension strings. Extensions are
// lowercased and a missing leading dot is tolerated. A nil or empty slice
// yields the default set.
func NewFormatSet(exts []string) FormatSet {
	if len(exts) == 0 {
		exts = DefaultFormats
	}
	set := make(FormatSet, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}

// Contains reports whether the filename has a recognized image extension.
func (s FormatSet) Contains(filename string) bool {
	return s[strings.ToLower(filepath.Ext(filename))]
}
