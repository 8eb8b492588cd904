package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Collection builds a date-bucketed photo collection on disk for tests.
type Collection struct {
	Root string
}

// NewCollection creates an empty collection under a temp directory.
func NewCollection(t *testing.T) *Collection {
	t.Helper()
	return &Collection{Root: t.TempDir()}
}

// GroupDir returns the path of a group directory, creating it if absent.
func (c *Collection) GroupDir(t *testing.T, date, id string) string {
	t.Helper()
	dir := filepath.Join(c.Root, date, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating group dir: %v", err)
	}
	return dir
}

// AddImage writes an image file into a group directory.
func (c *Collection) AddImage(t *testing.T, date, id, name string, content []byte) string {
	t.Helper()
	dir := c.GroupDir(t, date, id)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing image: %v", err)
	}
	return path
}

// AddGroupConfig writes a config.json into a group directory.
func (c *Collection) AddGroupConfig(t *testing.T, date, id, body string) {
	t.Helper()
	dir := c.GroupDir(t, date, id)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0644); err != nil {
		t.Fatalf("writing group config: %v", err)
	}
}

// AddDir creates an arbitrary directory under the collection root.
func (c *Collection) AddDir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(append([]string{c.Root}, parts...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	return dir
}
