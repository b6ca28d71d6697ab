package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"texture-replacer/internal/asset"
)

// ErrUnsupported indicates a file extension no decoder handles.
var ErrUnsupported = errors.New("unsupported texture format")

type decodeFunc func(r *bytes.Reader) (image.Image, error)

// decoders is keyed by lowercase extension. TGA has no magic number, so
// formats are chosen by extension rather than sniffed.
var decoders = map[string]decodeFunc{
	".png":  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
	".jpg":  func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
	".jpeg": func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
	".tga":  func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) },
	".bmp":  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	".webp": func(r *bytes.Reader) (image.Image, error) { return nativewebp.Decode(r) },
}

// Supported reports whether path has a decodable extension.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LoadTexture decodes one image file into a texture called name.
func LoadTexture(path, name string, mipmaps bool) (*asset.Texture, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: %s: %w", path, ErrUnsupported)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return asset.TextureFromImage(name, img, mipmaps), nil
}

// PackOptions controls LoadPack.
type PackOptions struct {
	Workers int  // decode goroutines, NumCPU when <= 0
	Mipmaps bool // give textures a full mip chain
}

// LoadError records one file that could not be decoded.
type LoadError struct {
	Path string
	Err  error
}

// NameFor derives the pool name of a file under root: its slash-separated
// relative path without extension, e.g. "TextureReplacer/Default/kerbalHead".
func NameFor(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}

// LoadPack decodes every supported image under root using a worker pool.
// Textures are returned sorted by relative path, which fixes the pool's
// enumeration order. Files that fail to decode are reported, not fatal.
func LoadPack(root string, opt PackOptions) ([]*asset.Texture, []LoadError, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("texture: pack %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("texture: pack %s: not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("texture: walk %s: %w", root, err)
	}
	sort.Slice(paths, func(i, j int) bool {
		return NameFor(root, paths[i]) < NameFor(root, paths[j])
	})

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	textures := make([]*asset.Texture, len(paths))
	errs := make([]error, len(paths))

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				textures[i], errs[i] = LoadTexture(paths[i], NameFor(root, paths[i]), opt.Mipmaps)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := make([]*asset.Texture, 0, len(paths))
	var failed []LoadError
	for i, tex := range textures {
		if errs[i] != nil {
			failed = append(failed, LoadError{Path: paths[i], Err: errs[i]})
			continue
		}
		out = append(out, tex)
	}
	return out, failed, nil
}
