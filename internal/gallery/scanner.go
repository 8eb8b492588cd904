package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// dateBucketPattern matches the YYYY-MM-DD directory naming contract.
// The name must additionally parse as a real calendar date.
var dateBucketPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Scanner discovers group directories under a collection root and validates
// the collection's structural contract.
type Scanner struct {
	formats FormatSet
}

// NewScanner creates a Scanner recognizing the given image extensions.
// A nil slice selects the default extension set.
func NewScanner(formats []string) *Scanner {
	return &Scanner{formats: NewFormatSet(formats)}
}

// DiscoverGroups walks the two-level collection layout (date bucket, then
// group directory) and returns the qualifying groups in sorted order.
//
// Every non-hidden directory directly under root must be named YYYY-MM-DD
// and denote a real date; the first violation fails the whole run. This is
// a structural contract on the collection, not a per-group concern.
func (s *Scanner) DiscoverGroups(root string) ([]*Group, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading collection root: %w", err)
	}

	var buckets []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.IsDir() {
			continue
		}
		if err := validateDateBucket(name); err != nil {
			return nil, fmt.Errorf("collection root %s: %w", root, err)
		}
		buckets = append(buckets, name)
	}
	sort.Strings(buckets)

	var groups []*Group
	for _, bucket := range buckets {
		bucketGroups, err := s.discoverBucket(root, bucket)
		if err != nil {
			return nil, err
		}
		groups = append(groups, bucketGroups...)
	}
	return groups, nil
}

// discoverBucket lists the group directories inside one date bucket.
// A directory only qualifies as a group if it holds at least one file with
// a recognized image extension.
func (s *Scanner) discoverBucket(root, bucket string) ([]*Group, error) {
	bucketPath := filepath.Join(root, bucket)
	entries, err := os.ReadDir(bucketPath)
	if err != nil {
		return nil, fmt.Errorf("reading date bucket %s: %w", bucketPath, err)
	}

	var groups []*Group
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.IsDir() || name == CompressedDirName {
			continue
		}
		groupPath := filepath.Join(bucketPath, name)
		images, err := s.listImages(groupPath)
		if err != nil {
			return nil, err
		}
		if len(images) == 0 {
			continue
		}
		groups = append(groups, &Group{
			ID:           name,
			DateCaptured: bucket,
			Path:         groupPath,
			Images:       images,
		})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// listImages returns the recognized image files in a group directory,
// sorted by filename.
func (s *Scanner) listImages(groupDir string) ([]ImageRef, error) {
	entries, err := os.ReadDir(groupDir)
	if err != nil {
		return nil, fmt.Errorf("reading group directory %s: %w", groupDir, err)
	}

	var images []ImageRef
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}
		if !s.formats.Contains(name) {
			continue
		}
		images = append(images, ImageRef{
			Name: ParseImageName(name),
			Path: filepath.Join(groupDir, name),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Name.Original() < images[j].Name.Original()
	})
	return images, nil
}

// validateDateBucket checks that a directory name is a well-formed, real
// calendar date.
func validateDateBucket(name string) error {
	if !dateBucketPattern.MatchString(name) {
		return fmt.Errorf("directory %q does not match the YYYY-MM-DD naming contract", name)
	}
	if _, err := time.Parse("2006-01-02", name); err != nil {
		return fmt.Errorf("directory %q is not a real calendar date", name)
	}
	return nil
}

// ValidationReport aggregates structural violations across the whole
// discovered group set. All groups are checked before any is reported so a
// malformed collection surfaces every problem in one run.
type ValidationReport struct {
	MissingConfig  []string // group paths lacking config.json
	Subdirectories []string // "<group path>: <subdir name>" for disallowed subdirectories
}

// OK reports whether the collection passed validation.
func (r *ValidationReport) OK() bool {
	return len(r.MissingConfig) == 0 && len(r.Subdirectories) == 0
}

// Err returns an error listing every violation, or nil when the collection
// is valid.
func (r *ValidationReport) Err() error {
	if r.OK() {
		return nil
	}
	var b strings.Builder
	b.WriteString("collection validation failed:")
	for _, p := range r.MissingConfig {
		fmt.Fprintf(&b, "\n  missing %s: %s", GroupConfigFile, p)
	}
	for _, p := range r.Subdirectories {
		fmt.Fprintf(&b, "\n  disallowed subdirectory: %s", p)
	}
	return fmt.Errorf("%s", b.String())
}

// ValidateGroups runs the full validation sweep over the discovered groups:
// each group must carry a config.json and must not contain any subdirectory
// other than the reserved compressed directory.
func (s *Scanner) ValidateGroups(groups []*Group) (*ValidationReport, error) {
	report := &ValidationReport{}
	for _, g := range groups {
		if _, err := os.Stat(filepath.Join(g.Path, GroupConfigFile)); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("checking %s in %s: %w", GroupConfigFile, g.Path, err)
			}
			report.MissingConfig = append(report.MissingConfig, g.Path)
		}

		entries, err := os.ReadDir(g.Path)
		if err != nil {
			return nil, fmt.Errorf("reading group directory %s: %w", g.Path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() && entry.Name() != CompressedDirName {
				report.Subdirectories = append(report.Subdirectories, g.Path+": "+entry.Name())
			}
		}
	}
	return report, nil
}
