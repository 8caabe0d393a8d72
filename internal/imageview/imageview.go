// Package imageview is a debugging aid that downloads an image and opens it
// in the local viewer.
package imageview

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"

	"github.com/pkg/browser"
	_ "golang.org/x/image/webp"
)

// DefaultUserAgent mimics a browser; the asset CDN rejects bare clients.
const DefaultUserAgent = "Mozilla/5.0"

var ErrNotImage = errors.New("content is not a decodable image")

// Fetch downloads url and decodes it. It returns the image and the name of
// the format it was decoded from.
func Fetch(ctx context.Context, client *http.Client, url, userAgent string) (image.Image, string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image: status %s", resp.Status)
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return img, format, nil
}

// opener is swapped out in tests.
var opener = browser.OpenFile

// Show writes img to a temporary PNG and opens it with the platform viewer.
// The file is left behind for the viewer to read; its path is returned.
func Show(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "hoyox-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := opener(f.Name()); err != nil {
		return f.Name(), fmt.Errorf("failed to open viewer: %w", err)
	}
	return f.Name(), nil
}
