package testutil

import (
	"fmt"
	"path/filepath"

	"photosync/internal/gallery"
)

// StubCodec is a fake ImageCodec that records invocations and returns
// canned bytes, so cache behavior can be asserted without real images.
type StubCodec struct {
	// Calls holds the base filename of every Encode invocation, in order.
	Calls []string
	// FailFor marks base filenames whose encoding should fail.
	FailFor map[string]bool
	// Payload is returned on success. Defaults to a short marker.
	Payload []byte
}

// NewStubCodec creates a StubCodec.
func NewStubCodec() *StubCodec {
	return &StubCodec{
		FailFor: make(map[string]bool),
		Payload: []byte("stub-jpeg-bytes"),
	}
}

// Encode records the call and returns the canned payload or a failure.
func (c *StubCodec) Encode(inputPath string, maxSize, quality int) ([]byte, error) {
	name := filepath.Base(inputPath)
	c.Calls = append(c.Calls, name)
	if c.FailFor[name] {
		return nil, fmt.Errorf("stub codec failure for %s", name)
	}
	return c.Payload, nil
}

// CallCount returns how many times a given base filename was encoded.
func (c *StubCodec) CallCount(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call == name {
			n++
		}
	}
	return n
}

// Compile-time check that StubCodec implements gallery.ImageCodec
var _ gallery.ImageCodec = (*StubCodec)(nil)
