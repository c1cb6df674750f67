package qr

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Margin returns the padding applied around a single code cell of the given size
func Margin(size int) int {
	return size / 8
}

// Composite arranges the given equally sized bitmaps in a single-row grid on a white canvas.
// Every cell is padded with a margin of an eighth of the cell size on each side.
func Composite(images []image.Image, size int) *image.RGBA {
	margin := Margin(size)
	cell := size + 2*margin

	canvas := image.NewRGBA(image.Rect(0, 0, cell*len(images), cell))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, img := range images {
		target := image.Rect(margin+i*cell, margin, margin+i*cell+size, margin+size)
		draw.Draw(canvas, target, img, img.Bounds().Min, draw.Over)
	}
	return canvas
}

// WriteFile encodes the given image into the file at path, choosing the output format
// by the path's extension (.png, .jpg, .jpeg or .gif)
func WriteFile(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(writer io.Writer, img image.Image) error {
			return jpeg.Encode(writer, img, nil)
		}
	case ".gif":
		encode = func(writer io.Writer, img image.Image) error {
			return gif.Encode(writer, img, nil)
		}
	default:
		return fmt.Errorf("unsupported output format '%s'", filepath.Ext(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create the output file: %w", err)
	}
	if err := encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
