package terminal

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/blackwell-systems/pulsebar/internal/config"
)

// Inline images are drawn two cells wide and one cell tall by default.
const (
	imageCellWidth  = 2
	imageCellHeight = 1
	imagePixelsW    = 32
	imagePixelsH    = 16
	imageInset      = 2
)

// stateColors holds the fill per state for dark and light backgrounds.
var stateColors = map[config.ColorMode]map[State]color.RGBA{
	config.ColorModeDark: {
		StateOK:       {R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
		StateWarn:     {R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
		StateCritical: {R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
	},
	config.ColorModeLight: {
		StateOK:       {R: 0x27, G: 0xae, B: 0x60, A: 0xff},
		StateWarn:     {R: 0xd3, G: 0x54, B: 0x00, A: 0xff},
		StateCritical: {R: 0xc0, G: 0x39, B: 0x2b, A: 0xff},
	},
}

// ImageGlyph returns the inline-image escape sequence (iTerm2 protocol) for
// state s in the given color mode, sized to cells columns.
func ImageGlyph(s State, mode config.ColorMode, cells int) string {
	if cells < 1 {
		cells = imageCellWidth
	}
	data := base64.StdEncoding.EncodeToString(statePNG(s, mode))
	return fmt.Sprintf("\x1b]1337;File=inline=1;width=%d;height=%d;preserveAspectRatio=0:%s\a",
		cells, imageCellHeight, data)
}

// statePNG draws a filled rectangle with a transparent inset border.
func statePNG(s State, mode config.ColorMode) []byte {
	palette, ok := stateColors[mode]
	if !ok {
		palette = stateColors[DefaultColorMode]
	}
	fill := palette[s]

	img := image.NewRGBA(image.Rect(0, 0, imagePixelsW, imagePixelsH))
	for y := imageInset; y < imagePixelsH-imageInset; y++ {
		for x := imageInset; x < imagePixelsW-imageInset; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	var buf bytes.Buffer
	// Encoding an in-memory RGBA image into a bytes.Buffer cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
