package common

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	// imaging registers png, jpeg, gif, bmp and tiff
	_ "golang.org/x/image/webp"
)

// Store is the load/save boundary of the icon pipeline
type Store interface {
	Load(path string) (image.Image, error)
	Save(path string, img image.Image) error
}

// FileStore reads source images from disk and writes PNG icons to disk
type FileStore struct {
	// Compression is the PNG compression level used by Save
	Compression png.CompressionLevel
}

// NewFileStore creates a file store that writes maximally compressed PNGs
func NewFileStore() *FileStore {
	return &FileStore{Compression: png.BestCompression}
}

// Load decodes the image at path. EXIF orientation is ignored so the
// crop is computed on the stored pixel grid.
func (s *FileStore) Load(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(false))
}

// alphaNRGBA always reports itself as translucent so the PNG encoder
// keeps the alpha channel (colour type 6) even for fully opaque icons.
type alphaNRGBA struct {
	*image.NRGBA
}

func (alphaNRGBA) Opaque() bool {
	return false
}

// Save encodes img as an RGBA PNG at path, replacing any existing file.
// The image is written to a dot-prefixed temp file in the same directory
// and renamed into place.
func (s *FileStore) Save(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = imaging.Clone(img)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	if err := imaging.Encode(f, alphaNRGBA{nrgba}, imaging.PNG, imaging.PNGCompressionLevel(s.Compression)); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	// CreateTemp opens with 0600
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
