package asset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDestroyed indicates a texture was released more than once.
	ErrDestroyed = errors.New("texture already destroyed")

	// ErrUnknownTexture indicates a texture that was never added to the registry.
	ErrUnknownTexture = errors.New("texture not in registry")

	// ErrUnknownSkinQuality indicates an unparseable skinning quality setting.
	ErrUnknownSkinQuality = errors.New("unknown skinning quality")
)

// MaterialHandle addresses a material in a Registry's arena.
type MaterialHandle int32

// NoMaterial marks a renderer without an assigned material.
const NoMaterial MaterialHandle = -1

// Valid reports whether h can refer to a material.
func (h MaterialHandle) Valid() bool {
	return h >= 0
}

// Registry is the loaded-asset pool. Textures are enumerated in insertion
// order; materials are owned by an arena and never move.
type Registry struct {
	textures  []*Texture
	materials []*Material
	renderers []*Renderer
	destroyed int
}

// NewRegistry creates an empty pool.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddTexture adds t to the pool and returns it.
func (r *Registry) AddTexture(t *Texture) *Texture {
	r.textures = append(r.textures, t)
	return t
}

// Textures returns the live textures in enumeration order. The slice is a
// copy; destroying textures while iterating it is safe.
func (r *Registry) Textures() []*Texture {
	out := make([]*Texture, len(r.textures))
	copy(out, r.textures)
	return out
}

// FindTexture returns the first live texture called name.
func (r *Registry) FindTexture(name string) (*Texture, bool) {
	for _, t := range r.textures {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Destroy releases t: it leaves the pool and its image data is dropped.
// Destroying twice returns ErrDestroyed.
func (r *Registry) Destroy(t *Texture) error {
	if t == nil {
		return fmt.Errorf("asset: destroy: %w", ErrUnknownTexture)
	}
	if t.destroyed {
		return fmt.Errorf("asset: destroy %q: %w", t.Name, ErrDestroyed)
	}
	for i, cur := range r.textures {
		if cur == t {
			r.textures = append(r.textures[:i], r.textures[i+1:]...)
			t.destroyed = true
			t.Image = nil
			r.destroyed++
			return nil
		}
	}
	return fmt.Errorf("asset: destroy %q: %w", t.Name, ErrUnknownTexture)
}

// DestroyedCount returns how many textures have been released.
func (r *Registry) DestroyedCount() int {
	return r.destroyed
}

// AddMaterial moves m into the arena and returns its handle.
func (r *Registry) AddMaterial(m *Material) MaterialHandle {
	r.materials = append(r.materials, m)
	return MaterialHandle(len(r.materials) - 1)
}

// Material returns the material behind h, or nil for NoMaterial and
// out-of-range handles.
func (r *Registry) Material(h MaterialHandle) *Material {
	if h < 0 || int(h) >= len(r.materials) {
		return nil
	}
	return r.materials[h]
}

// Materials returns every handle in the arena.
func (r *Registry) Materials() []MaterialHandle {
	out := make([]MaterialHandle, len(r.materials))
	for i := range out {
		out[i] = MaterialHandle(i)
	}
	return out
}

// MaterialCount returns the number of materials in the arena.
func (r *Registry) MaterialCount() int {
	return len(r.materials)
}

// AddRenderer registers rd with the pool and returns it.
func (r *Registry) AddRenderer(rd *Renderer) *Renderer {
	r.renderers = append(r.renderers, rd)
	return rd
}

// Renderers returns every registered renderer, in registration order. The
// slice is a copy; the renderers are shared.
func (r *Registry) Renderers() []*Renderer {
	out := make([]*Renderer, len(r.renderers))
	copy(out, r.renderers)
	return out
}

// MaterialOf returns the material rd currently references, or nil.
func (r *Registry) MaterialOf(rd *Renderer) *Material {
	if rd == nil {
		return nil
	}
	return r.Material(rd.Material)
}

// SkinQuality is the number of bone influences per vertex the host uses
// for skinned meshes.
type SkinQuality int

const (
	SkinAuto SkinQuality = iota
	SkinLow
	SkinMedium
	SkinHigh
)

func (q SkinQuality) String() string {
	switch q {
	case SkinLow:
		return "low"
	case SkinMedium:
		return "medium"
	case SkinHigh:
		return "high"
	}
	return "auto"
}

// ParseSkinQuality parses auto, low, medium or high (case-insensitive).
// An empty string means auto.
func ParseSkinQuality(s string) (SkinQuality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SkinAuto, nil
	case "low":
		return SkinLow, nil
	case "medium":
		return SkinMedium, nil
	case "high":
		return SkinHigh, nil
	}
	return SkinAuto, fmt.Errorf("asset: %q: %w", s, ErrUnknownSkinQuality)
}

// Renderer draws a mesh with one shared material.
type Renderer struct {
	Name     string
	Material MaterialHandle
	Skinned  bool
	Quality  SkinQuality
}

// NewRenderer creates a renderer bound to h.
func NewRenderer(name string, h MaterialHandle) *Renderer {
	return &Renderer{Name: name, Material: h}
}

// ApplySkinQuality sets q on every skinned renderer. SkinAuto leaves the
// host's choice untouched. It returns the number of renderers changed.
func (r *Registry) ApplySkinQuality(q SkinQuality) int {
	if q == SkinAuto {
		return 0
	}
	n := 0
	for _, rd := range r.renderers {
		if rd.Skinned {
			rd.Quality = q
			n++
		}
	}
	return n
}
