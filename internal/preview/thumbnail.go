package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

const upperHalfBlock = "▀"

// Thumbnail decodes data and renders it as half-block cells: each cell
// carries two vertically stacked pixels, top as foreground and bottom as
// background. The result fits inside width x height cells.
func Thumbnail(data []byte, width, height int) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	small := resize.Thumbnail(uint(width), uint(height*2), img, resize.Bilinear)
	bounds := small.Bounds()

	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := hexColor(small.At(x, y))
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = hexColor(small.At(x, y+1))
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render(upperHalfBlock))
		}
		if y+2 < bounds.Max.Y {
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
