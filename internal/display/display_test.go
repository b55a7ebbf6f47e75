package display

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func testFrame() chip8.Frame {
	var frame chip8.Frame
	for _, pixel := range [][2]int{{0, 0}, {2, 0}, {1, 1}, {2, 1}, {63, 31}} {
		frame[pixel[1]*chip8.DisplayWidth+pixel[0]] = chip8.PixelOn
	}
	return frame
}

func TestWriteText_ASCII(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteText(&buf, testFrame(), ASCII))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, chip8.DisplayHeight)
	assert.True(t, strings.HasPrefix(lines[0], "#.#."))
	assert.True(t, strings.HasPrefix(lines[1], ".##."))
	assert.True(t, strings.HasSuffix(lines[31], ".#"))
	assert.Len(t, lines[0], chip8.DisplayWidth)
}

func TestWriteText_Blocks(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteText(&buf, testFrame(), Blocks))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, chip8.DisplayHeight/2)
	assert.True(t, strings.HasPrefix(lines[0], "▀▄█ "))
	assert.True(t, strings.HasSuffix(lines[15], "▄"))
}

func TestStyleFor(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ASCII, StyleFor(&buf))
}

func TestImage(t *testing.T) {
	img := Image(testFrame(), 4)

	assert.Equal(t, chip8.DisplayWidth*4, img.Bounds().Dx())
	assert.Equal(t, chip8.DisplayHeight*4, img.Bounds().Dy())
	assert.Equal(t, uint8(0xFF), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0xFF), img.GrayAt(3, 3).Y)
	assert.Equal(t, uint8(0x00), img.GrayAt(4, 0).Y)
	assert.Equal(t, uint8(0xFF), img.GrayAt(8, 0).Y)

	unscaled := Image(testFrame(), 1)
	assert.Equal(t, chip8.DisplayWidth, unscaled.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	assert.NoError(t, SavePNG(path, testFrame(), 2))

	var buf bytes.Buffer
	assert.NoError(t, WritePNG(&buf, testFrame(), 2))
	img, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, chip8.DisplayWidth*2, img.Bounds().Dx())
}
