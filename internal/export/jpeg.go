package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
)

const (
	DefaultImageName = "paint-file.jpeg"
	DefaultQuality   = 100
	dataURIPrefix    = "data:image/jpeg;base64,"
)

// WriteJPEG encodes img to w. Quality outside 1..100 falls back to 100.
func WriteJPEG(w io.Writer, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("export: encode jpeg: %w", err)
	}
	return nil
}

// DataURI returns img as a "data:image/jpeg;base64," URI.
func DataURI(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := WriteJPEG(&buf, img, quality); err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// SaveJPEG writes img to path.
func SaveJPEG(path string, img image.Image, quality int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer file.Close()

	if err := WriteJPEG(file, img, quality); err != nil {
		return err
	}
	return file.Close()
}
