// mksource writes a synthetic source image for trying out iconset:
// a gradient disc on a transparent canvas above an opaque caption band.
// Usage: go run ./cmd/mksource [-width 1024] [-height 1280] [-caption 0.2] <output.png>
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/disintegration/imaging"
)

func main() {
	width := flag.Int("width", 1024, "image width")
	height := flag.Int("height", 1280, "image height")
	caption := flag.Float64("caption", 0.2, "fraction of the height covered by the caption band")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: go run ./cmd/mksource [-width w] [-height h] [-caption f] <output.png>")
		os.Exit(1)
	}
	if *width <= 0 || *height <= 0 || *caption < 0 || *caption >= 1 {
		log.Fatalf("Invalid size %dx%d or caption fraction %v", *width, *height, *caption)
	}

	img := drawSource(*width, *height, *caption)
	if err := imaging.Save(img, flag.Arg(0)); err != nil {
		log.Fatalf("Failed to save %s: %v", flag.Arg(0), err)
	}

	fmt.Printf("✅ Wrote %dx%d source to %s\n", *width, *height, flag.Arg(0))
}

// drawSource paints the artwork into the top part and the caption band
// into the bottom captionFraction of the frame
func drawSource(width, height int, captionFraction float64) *image.NRGBA {
	captionH := int(float64(height) * captionFraction)
	artH := height - captionH

	art := image.NewNRGBA(image.Rect(0, 0, width, artH))
	cx, cy := float64(width)/2, float64(artH)/2
	r := min(cx, cy)
	for y := 0; y < artH; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			art.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * x / width),
				G: uint8(255 * y / artH),
				B: 0xC0,
				A: 0xFF,
			})
		}
	}

	img := imaging.New(width, height, color.Transparent)
	img = imaging.Paste(img, art, image.Pt(0, 0))
	if captionH > 0 {
		band := imaging.New(width, captionH, color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF})
		img = imaging.Overlay(img, band, image.Pt(0, artH), 1.0)
	}
	return img
}
