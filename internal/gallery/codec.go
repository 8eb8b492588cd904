package gallery

// ImageCodec produces the compressed rendition of an original image.
// Implementations must preserve aspect ratio, never upscale, flatten
// transparency onto an opaque background, and emit JPEG with a 1-100
// quality scale.
type ImageCodec interface {
	Encode(inputPath string, maxSize, quality int) ([]byte, error)
}
