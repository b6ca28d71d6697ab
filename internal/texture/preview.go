package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"texture-replacer/internal/asset"
)

// ErrNoImage indicates a texture without decoded pixel data.
var ErrNoImage = errors.New("texture has no image data")

// Thumbnail scales img so its longest side is at most size, keeping the
// aspect ratio. Smaller images are returned unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}

	tw, th := size, size
	if w > h {
		th = max(1, h*size/w)
	} else {
		tw = max(1, w*size/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePreview encodes a WebP preview of tex, downscaled to size.
func WritePreview(w io.Writer, tex *asset.Texture, size int) error {
	if tex.Image == nil {
		return fmt.Errorf("texture: preview %s: %w", tex.Name, ErrNoImage)
	}
	if err := nativewebp.Encode(w, Thumbnail(tex.Image, size), nil); err != nil {
		return fmt.Errorf("texture: encode %s: %w", tex.Name, err)
	}
	return nil
}

// ExportPreviews writes <dir>/<key>.webp for every indexed replacement and
// the NavBall slot. It returns the files written.
func ExportPreviews(dir string, idx *Index, size int) ([]string, error) {
	type entry struct {
		key string
		tex *asset.Texture
	}
	var entries []entry
	for _, k := range idx.Keys() {
		tex, _ := idx.Lookup(k)
		entries = append(entries, entry{k, tex})
	}
	if nb := idx.NavBall(); nb != nil {
		entries = append(entries, entry{NavBallKey, nb})
	}

	var written []string
	for _, e := range entries {
		if e.tex.Image == nil {
			continue
		}
		out := filepath.Join(dir, filepath.FromSlash(e.key)+".webp")
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return written, fmt.Errorf("texture: mkdir %s: %w", filepath.Dir(out), err)
		}
		if err := writePreviewFile(out, e.tex, size); err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}

func writePreviewFile(path string, tex *asset.Texture, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("texture: create %s: %w", path, err)
	}
	if err := WritePreview(f, tex, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
