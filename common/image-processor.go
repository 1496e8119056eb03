package common

// Image processor for icon set generation
//
// Responsibilities:
// 1. Load the source image and normalise it to NRGBA
// 2. Crop it to a centred square:
//    - FixedLayout: drop the caption band at the bottom first
//    - PassThrough: square the full frame
// 3. Resize the square to every icon size (Lanczos)
// 4. Write icon{size}.png for each size into the output directory

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// CropVariant selects how the source is cut down to a square
type CropVariant int

const (
	// PassThrough squares the full image
	PassThrough CropVariant = iota
	// FixedLayout strips a fraction of the height from the bottom before squaring
	FixedLayout
)

func (v CropVariant) String() string {
	switch v {
	case PassThrough:
		return "pass_through"
	case FixedLayout:
		return "fixed_layout"
	default:
		return fmt.Sprintf("CropVariant(%d)", int(v))
	}
}

// ParseCropVariant parses a variant name as used in config files
func ParseCropVariant(s string) (CropVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass_through", "pass-through", "passthrough":
		return PassThrough, nil
	case "fixed_layout", "fixed-layout", "fixed":
		return FixedLayout, nil
	default:
		return 0, fmt.Errorf("unknown crop variant '%s'", s)
	}
}

// DefaultStripFraction is the share of the height treated as caption
const DefaultStripFraction = 0.20

// DefaultSizes are the icon sizes generated when none are configured
var DefaultSizes = []int{16, 32, 48, 128}

// Options controls a single generation run
type Options struct {
	Variant       CropVariant
	StripFraction float64
	Sizes         []int
	OutputDir     string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Variant:       PassThrough,
		StripFraction: DefaultStripFraction,
		Sizes:         append([]int(nil), DefaultSizes...),
		OutputDir:     "icons",
	}
}

// Validate checks that the options describe a runnable icon set
func (o Options) Validate() error {
	if o.Variant != PassThrough && o.Variant != FixedLayout {
		return fmt.Errorf("unknown crop variant %v", o.Variant)
	}
	if o.StripFraction < 0 || o.StripFraction >= 1 || math.IsNaN(o.StripFraction) {
		return fmt.Errorf("strip fraction must be in [0, 1), got %v", o.StripFraction)
	}
	if len(o.Sizes) == 0 {
		return errors.New("at least one icon size is required")
	}
	seen := make(map[int]bool, len(o.Sizes))
	for _, size := range o.Sizes {
		if size <= 0 {
			return fmt.Errorf("icon size must be positive, got %d", size)
		}
		if seen[size] {
			return fmt.Errorf("duplicate icon size %d", size)
		}
		seen[size] = true
	}
	if o.OutputDir == "" {
		return errors.New("output directory is required")
	}
	return nil
}

// IconFile is one written icon
type IconFile struct {
	Size int
	Path string
}

// WorkRegion returns the part of bounds that is eligible for the square crop
func WorkRegion(bounds image.Rectangle, variant CropVariant, stripFraction float64) image.Rectangle {
	if variant != FixedLayout {
		return bounds
	}
	keep := int(math.Floor(float64(bounds.Dy()) * (1 - stripFraction)))
	return image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+keep)
}

// SquareRegion returns the centred square inside the work region.
// Odd leftovers go to the right/bottom side.
func SquareRegion(bounds image.Rectangle, variant CropVariant, stripFraction float64) image.Rectangle {
	work := WorkRegion(bounds, variant, stripFraction)
	w, h := work.Dx(), work.Dy()
	d := min(w, h)
	left := (w - d) / 2
	top := (h - d) / 2
	origin := work.Min.Add(image.Pt(left, top))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(d, d))}
}

// Normalize copies img into a 4-channel NRGBA image anchored at (0,0)
func Normalize(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Square normalises img and crops it to its centred square.
// The result is always a fresh copy, also when no pixels are trimmed.
func Square(img image.Image, variant CropVariant, stripFraction float64) (*image.NRGBA, error) {
	src := Normalize(img)
	rect := SquareRegion(src.Bounds(), variant, stripFraction)
	if rect.Empty() {
		return nil, ErrEmptyRegion
	}
	return imaging.Crop(src, rect), nil
}

// Resize scales a square image to size x size with a Lanczos filter
func Resize(square image.Image, size int) *image.NRGBA {
	return imaging.Resize(square, size, size, imaging.Lanczos)
}

// IconPath returns the output path for an icon of the given size
func IconPath(dir string, size int) string {
	return filepath.Join(dir, fmt.Sprintf("icon%d.png", size))
}

// Generator runs the icon pipeline against a Store
type Generator struct {
	store  Store
	report func(IconFile)
}

// NewGenerator creates a generator that reads and writes through store
func NewGenerator(store Store) *Generator {
	return &Generator{
		store: store,
		report: func(f IconFile) {
			log.Printf("🖼️  Created %s (%dx%d)", f.Path, f.Size, f.Size)
		},
	}
}

// SetReporter replaces the callback invoked after each written icon
func (g *Generator) SetReporter(report func(IconFile)) {
	if report == nil {
		report = func(IconFile) {}
	}
	g.report = report
}

// Generate writes one icon per configured size from the image at sourcePath.
// It stops at the first failed write; icons written before it are kept.
func (g *Generator) Generate(sourcePath string, opts Options) ([]IconFile, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	src, err := g.store.Load(sourcePath)
	if err != nil {
		return nil, &LoadError{Path: sourcePath, Err: err}
	}

	square, err := Square(src, opts.Variant, opts.StripFraction)
	if err != nil {
		return nil, fmt.Errorf("failed to crop %s: %w", sourcePath, err)
	}

	files := make([]IconFile, 0, len(opts.Sizes))
	for _, size := range opts.Sizes {
		path := IconPath(opts.OutputDir, size)
		if err := g.store.Save(path, Resize(square, size)); err != nil {
			return files, &WriteError{Path: path, Size: size, Err: err}
		}

		file := IconFile{Size: size, Path: path}
		files = append(files, file)
		g.report(file)
	}

	return files, nil
}
