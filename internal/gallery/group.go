package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GroupConfigFile is the per-group metadata file name.
	GroupConfigFile = "config.json"

	// CompressedDirName is the reserved subdirectory holding compressed
	// artifacts. It is skipped during discovery and exempt from the
	// no-subdirectories rule.
	CompressedDirName = "compressed"
)

// ImageRef is a discovered image file within a group directory.
type ImageRef struct {
	Name ImageName
	Path string // absolute path of the original file
}

// Group is one shoot/event directory: the unit of manifest entries and
// remote key prefixing.
type Group struct {
	ID           string // directory name
	DateCaptured string // parent date-bucket name, YYYY-MM-DD
	Path         string // absolute path of the group directory
	Images       []ImageRef
}

// CompressedDir returns the path of the group's compressed-artifact directory.
func (g *Group) CompressedDir() string {
	return filepath.Join(g.Path, CompressedDirName)
}

// GroupConfig is the parsed per-group config.json.
type GroupConfig struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	URL           string `json:"url"`
	FeaturedImage string `json:"featured_image"`
}

// LoadGroupConfig reads and parses the config.json inside a group directory.
func LoadGroupConfig(groupDir string) (*GroupConfig, error) {
	path := filepath.Join(groupDir, GroupConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading group config: %w", err)
	}
	var cfg GroupConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
