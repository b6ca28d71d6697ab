// Package asset models the host's loaded-asset pool: textures, shaders,
// an arena of materials addressed by handle, renderers and the scene graph.
package asset

import "image"

// FilterMode determines how the host samples a texture.
type FilterMode int

const (
	FilterPoint     FilterMode = iota // Nearest texel
	FilterBilinear                    // Bilinear within one mip level
	FilterTrilinear                   // Bilinear blended across mip levels
)

func (f FilterMode) String() string {
	switch f {
	case FilterPoint:
		return "point"
	case FilterBilinear:
		return "bilinear"
	case FilterTrilinear:
		return "trilinear"
	}
	return "unknown"
}

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

func (w WrapMode) String() string {
	if w == WrapClamp {
		return "clamp"
	}
	return "repeat"
}

// Texture is a loaded image plus the sampling state the host applies to it.
type Texture struct {
	Name       string
	Width      int
	Height     int
	MipCount   int
	Filter     FilterMode
	Wrap       WrapMode
	AnisoLevel int
	Image      image.Image // nil for host-internal textures

	destroyed bool
}

// NewTexture creates a single-mip, bilinear, repeating texture.
func NewTexture(name string, width, height int) *Texture {
	return &Texture{
		Name:       name,
		Width:      width,
		Height:     height,
		MipCount:   1,
		Filter:     FilterBilinear,
		Wrap:       WrapRepeat,
		AnisoLevel: 1,
	}
}

// TextureFromImage wraps a decoded image. mipmaps selects between a full
// mip chain and a single level.
func TextureFromImage(name string, img image.Image, mipmaps bool) *Texture {
	b := img.Bounds()
	t := NewTexture(name, b.Dx(), b.Dy())
	t.Image = img
	if mipmaps {
		t.MipCount = MipChainLength(t.Width, t.Height)
	}
	return t
}

// Destroyed reports whether the registry has released this texture.
func (t *Texture) Destroyed() bool {
	return t.destroyed
}

// MipChainLength returns the number of levels in a full mip chain for a
// width x height image: floor(log2(max(w, h))) + 1.
func MipChainLength(width, height int) int {
	size := max(width, height)
	if size <= 0 {
		return 1
	}
	n := 1
	for size > 1 {
		size >>= 1
		n++
	}
	return n
}
