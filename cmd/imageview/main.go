// Command imageview downloads an image URL and opens it locally. It is a
// debugging aid for checking asset URLs built from the reference tables.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"hoyox/internal/config"
	"hoyox/internal/imageview"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: imageview <url>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	img, format, err := imageview.Fetch(context.Background(), nil, os.Args[1], cfg.ImageUserAgent)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	b := img.Bounds()
	fmt.Printf("Decoded %s image (%dx%d)\n", format, b.Dx(), b.Dy())

	path, err := imageview.Show(img)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	fmt.Printf("Opened %s\n", path)
}
