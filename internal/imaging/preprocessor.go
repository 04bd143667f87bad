// Package imaging prepares visitor photos for story generation.
// Photos are downscaled to a bounded dimension and re-encoded as JPEG
// before transmission so the relay never receives full-resolution
// camera output.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"strings"

	"golang.org/x/image/draw"

	_ "image/gif"  // register GIF decoder
	_ "image/png"  // register PNG decoder
)

const (
	// MaxDimension is the upper bound for either image dimension after
	// preprocessing.
	MaxDimension = 1200

	// jpegQuality matches the fixed 0.8 encoding quality of the upload
	// flow (jpeg package quality is 1-100).
	jpegQuality = 80

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Preprocess decodes a photo, scales it so that neither dimension
// exceeds MaxDimension (preserving aspect ratio, never upscaling), and
// returns the result as a JPEG data URI.
func Preprocess(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("imaging: failed to decode photo: %w", err)
	}

	bounds := img.Bounds()
	w, h := scaledSize(bounds.Dx(), bounds.Dy())
	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("imaging: failed to encode photo: %w", err)
	}

	return EncodeDataURI(buf.Bytes()), nil
}

// scaledSize computes the bounded dimensions: the larger side is scaled
// down to MaxDimension and the other side proportionally. Images that
// already fit are left unchanged.
func scaledSize(w, h int) (int, int) {
	if w <= MaxDimension && h <= MaxDimension {
		return w, h
	}
	if w >= h {
		return MaxDimension, (h*MaxDimension + w/2) / w
	}
	return (w*MaxDimension + h/2) / h, MaxDimension
}

// EncodeDataURI wraps raw JPEG bytes in a base64 data URI.
func EncodeDataURI(jpegBytes []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(jpegBytes)
}

// StripDataURI removes a data-URI prefix from an image payload if
// present, returning the bare base64 data.
func StripDataURI(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}
