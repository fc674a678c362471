package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/kestrelrt/kestrel/pkg/core"
)

const gamma = 2.2

// ToImage converts a linear pixel buffer into an image.Image, applying
// clamping and gamma encoding. Row 0 of the buffer is the bottom of the
// image.
func ToImage(pixels []core.Vec3, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			c := pixels[j*width+i].Clamp(0, 1).GammaCorrect(gamma)
			img.Set(i, height-1-j, color.RGBA{
				R: uint8(255.99 * c.X),
				G: uint8(255.99 * c.Y),
				B: uint8(255.99 * c.Z),
				A: 255,
			})
		}
	}
	return img
}

// WritePPM encodes the pixel buffer as ASCII P3 PPM, rows top to bottom,
// with clamping and gamma encoding applied on the way out.
func WritePPM(w io.Writer, pixels []core.Vec3, width, height int) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	for j := height - 1; j >= 0; j-- {
		for i := 0; i < width; i++ {
			c := pixels[j*width+i].Clamp(0, 1).GammaCorrect(gamma)
			ir := int(255.99 * c.X)
			ig := int(255.99 * c.Y)
			ib := int(255.99 * c.Z)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", ir, ig, ib); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
