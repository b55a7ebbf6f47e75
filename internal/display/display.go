// Package display renders the CHIP-8 framebuffer for headless output.
package display

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/image/draw"
	"golang.org/x/term"
)

// Style selects the characters used for text output.
type Style int

const (
	// ASCII prints one line per display row using '#' and '.'.
	ASCII Style = iota
	// Blocks prints two display rows per line using Unicode half blocks.
	Blocks
)

// StyleFor returns Blocks if the writer is a terminal and ASCII otherwise.
func StyleFor(w io.Writer) Style {
	f, ok := w.(*os.File)
	if ok && term.IsTerminal(int(f.Fd())) {
		return Blocks
	}
	return ASCII
}

// WriteText writes the frame as text in the given style.
func WriteText(w io.Writer, frame chip8.Frame, style Style) error {
	buf := bufio.NewWriter(w)

	switch style {
	case Blocks:
		writeBlocks(buf, frame)
	default:
		writeASCII(buf, frame)
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func writeASCII(buf *bufio.Writer, frame chip8.Frame) {
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if isSet(frame, x, y) {
				_ = buf.WriteByte('#')
			} else {
				_ = buf.WriteByte('.')
			}
		}
		_ = buf.WriteByte('\n')
	}
}

func writeBlocks(buf *bufio.Writer, frame chip8.Frame) {
	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			upper, lower := isSet(frame, x, y), isSet(frame, x, y+1)
			switch {
			case upper && lower:
				_, _ = buf.WriteRune('█')
			case upper:
				_, _ = buf.WriteRune('▀')
			case lower:
				_, _ = buf.WriteRune('▄')
			default:
				_ = buf.WriteByte(' ')
			}
		}
		_ = buf.WriteByte('\n')
	}
}

// Image returns the frame as grayscale image, every display pixel is
// scaled to a square of scale×scale image pixels.
func Image(frame chip8.Frame, scale int) *image.Gray {
	src := image.NewGray(image.Rect(0, 0, chip8.DisplayWidth, chip8.DisplayHeight))
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if isSet(frame, x, y) {
				src.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, chip8.DisplayWidth*scale, chip8.DisplayHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled frame as PNG image.
func WritePNG(w io.Writer, frame chip8.Frame, scale int) error {
	if err := png.Encode(w, Image(frame, scale)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the scaled frame as PNG image to the given file.
func SavePNG(path string, frame chip8.Frame, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	if err := WritePNG(file, frame, scale); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	return nil
}

func isSet(frame chip8.Frame, x, y int) bool {
	if y >= chip8.DisplayHeight {
		return false
	}
	return frame[y*chip8.DisplayWidth+x] == chip8.PixelOn
}
