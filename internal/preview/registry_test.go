package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/Veraticus/truelens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail(t *testing.T) {
	out, err := Thumbnail(pngBytes(t, 40, 20), 10, 5)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), 5)
	for _, line := range lines {
		assert.LessOrEqual(t, strings.Count(line, upperHalfBlock), 10)
	}

	_, err = Thumbnail([]byte("not an image"), 10, 5)
	require.Error(t, err)
}

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry(8, 4)

	uri, err := r.Create(model.NewSelectedImage("a.png", pngBytes(t, 16, 16)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, Scheme))
	assert.Equal(t, 1, r.Len())

	rendered, ok := r.Render(uri)
	require.True(t, ok)
	assert.Contains(t, rendered, upperHalfBlock)

	r.Revoke(uri)
	_, ok = r.Render(uri)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	r.Revoke("")
	r.Revoke(Scheme + "unknown")
}

func TestRegistry_UndecodablePlaceholder(t *testing.T) {
	r := NewRegistry(8, 4)

	uri, err := r.Create(model.NewSelectedImage("scan.webp", []byte("RIFF....WEBP")))
	require.NoError(t, err)

	rendered, ok := r.Render(uri)
	require.True(t, ok)
	assert.Equal(t, "[no preview for scan.webp]", rendered)
}

func TestRegistry_CloseAndConcurrency(t *testing.T) {
	r := NewRegistry(4, 2)
	data := pngBytes(t, 8, 8)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uri, err := r.Create(model.NewSelectedImage("x.png", data))
			assert.NoError(t, err)
			_, _ = r.Render(uri)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, r.Len())
	r.Close()
	assert.Equal(t, 0, r.Len())
}
