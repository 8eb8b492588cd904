package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the run-level configuration for photosync.
// Paths are resolved relative to the config file's own location unless
// absolute.
type Config struct {
	LogDir          string                `toml:"log_dir,omitempty"`
	S3              S3Config              `toml:"s3"`
	ImageProcessing ImageProcessingConfig `toml:"image_processing"`
	Paths           PathsConfig           `toml:"paths"`
}

// S3Config holds the remote store settings. This uses a tagged union
// pattern - the Type field determines which other fields are relevant.
type S3Config struct {
	Type     string `toml:"type,omitempty"` // "s3" (default), "filesystem", or "memory"
	Bucket   string `toml:"bucket"`
	Region   string `toml:"region"`
	BasePath string `toml:"base_path"`

	// Static credentials (optional; the default AWS chain is used otherwise)
	AccessKey string `toml:"access_key,omitempty"`
	SecretKey string `toml:"secret_key,omitempty"`

	// Filesystem-specific field (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`
}

// ImageProcessingConfig holds the codec settings.
type ImageProcessingConfig struct {
	MaxSize         int      `toml:"max_size"` // longest-edge cap in pixels
	Quality         int      `toml:"quality"`  // JPEG quality, 1-100
	Formats         []string `toml:"formats"`  // recognized extensions
	UploadOriginals bool     `toml:"upload_originals,omitempty"`
}

// PathsConfig holds the local file locations the pipeline reads and writes.
type PathsConfig struct {
	GalleryConfig         string `toml:"gallery_config"`         // manifest file
	PhotographyCollection string `toml:"photography_collection"` // collection root
}

// NewConfig creates a starter Config with sensible codec defaults rooted
// at the given base directory.
func NewConfig(bucket, region, baseDir string) *Config {
	return &Config{
		LogDir: filepath.Join(baseDir, "log"),
		S3: S3Config{
			Type:     "s3",
			Bucket:   bucket,
			Region:   region,
			BasePath: "photography",
		},
		ImageProcessing: ImageProcessingConfig{
			MaxSize: 1200,
			Quality: 85,
			Formats: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"},
		},
		Paths: PathsConfig{
			GalleryConfig:         filepath.Join(baseDir, "gallery-config.json"),
			PhotographyCollection: filepath.Join(baseDir, "photography"),
		},
	}
}

// Validate checks the required fields.
func (c *Config) Validate() error {
	switch c.S3.Type {
	case "", "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("missing required field: s3.bucket")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("missing required field: s3.region")
		}
	case "filesystem":
		if c.S3.FSRoot == "" {
			return fmt.Errorf("missing required field: s3.fs_root")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store type: %s", c.S3.Type)
	}
	if c.S3.BasePath == "" {
		return fmt.Errorf("missing required field: s3.base_path")
	}
	if c.ImageProcessing.MaxSize <= 0 {
		return fmt.Errorf("image_processing.max_size must be positive")
	}
	if c.ImageProcessing.Quality < 1 || c.ImageProcessing.Quality > 100 {
		return fmt.Errorf("image_processing.quality must be in 1..100")
	}
	if c.Paths.GalleryConfig == "" {
		return fmt.Errorf("missing required field: paths.gallery_config")
	}
	if c.Paths.PhotographyCollection == "" {
		return fmt.Errorf("missing required field: paths.photography_collection")
	}
	return nil
}

// ResolveRelativeTo rewrites relative paths against the given directory.
func (c *Config) ResolveRelativeTo(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.LogDir = resolve(c.LogDir)
	c.S3.FSRoot = resolve(c.S3.FSRoot)
	c.Paths.GalleryConfig = resolve(c.Paths.GalleryConfig)
	c.Paths.PhotographyCollection = resolve(c.Paths.PhotographyCollection)
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads, validates, and resolves a Config from the specified
// file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg.ResolveRelativeTo(filepath.Dir(absPath))
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
