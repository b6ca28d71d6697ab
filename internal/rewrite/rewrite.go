// Package rewrite swaps the textures bound to live materials for their
// indexed replacements.
package rewrite

import (
	"strings"

	"texture-replacer/internal/asset"
	"texture-replacer/internal/logging"
)

// TempPrefix marks transient textures the host regenerates on its own.
const TempPrefix = "Temp"

// Textures resolves replacement textures by original name and recognises
// textures that already are replacements.
type Textures interface {
	Lookup(name string) (*asset.Texture, bool)
	IsReplacement(tex *asset.Texture) bool
}

// Stats counts what a pass did.
type Stats struct {
	Materials int // materials visited
	Replaced  int // slot bindings swapped
	Destroyed int // originals released
	Upgraded  int // bilinear -> trilinear
	Failed    int // destroy calls the registry refused
}

// Rewriter walks every material in Registry and binds replacements from
// Index. Running it twice over the same state changes nothing the second
// time.
type Rewriter struct {
	Registry    *asset.Registry
	Index       Textures
	LogTextures bool
}

type slot struct {
	name string
	get  func(*asset.Material) *asset.Texture
	set  func(*asset.Material, *asset.Texture)
	has  func(*asset.Material) bool
}

var slots = []slot{
	{"main", (*asset.Material).MainTexture, (*asset.Material).SetMainTexture, (*asset.Material).HasMainTexture},
	{"normal", (*asset.Material).NormalMap, (*asset.Material).SetNormalMap, (*asset.Material).HasNormalMap},
}

// Run performs one pass over all materials.
func (rw *Rewriter) Run() Stats {
	var st Stats
	if rw.Registry == nil {
		return st
	}
	for _, h := range rw.Registry.Materials() {
		mat := rw.Registry.Material(h)
		if mat == nil || !mat.HasMainTexture() {
			continue
		}
		st.Materials++
		for _, s := range slots {
			if s.has(mat) {
				rw.rewriteSlot(mat, s, &st)
			}
		}
	}
	logging.Logger().Info("material rewrite done", "materials", st.Materials,
		"replaced", st.Replaced, "destroyed", st.Destroyed, "upgraded", st.Upgraded)
	return st
}

func (rw *Rewriter) rewriteSlot(mat *asset.Material, s slot, st *Stats) {
	log := logging.Logger()

	tex := s.get(mat)
	if tex == nil || tex.Name == "" || strings.HasPrefix(tex.Name, TempPrefix) {
		return
	}
	if rw.LogTextures {
		log.Info("material texture", "material", mat.Name, "slot", s.name, "texture", tex.Name)
	}

	var repl *asset.Texture
	if rw.Index != nil {
		if rw.Index.IsReplacement(tex) {
			return
		}
		repl, _ = rw.Index.Lookup(tex.Name)
	}

	if repl == nil {
		if tex.Filter == asset.FilterBilinear {
			tex.Filter = asset.FilterTrilinear
			st.Upgraded++
		}
		return
	}
	if repl == tex {
		return
	}

	repl.AnisoLevel = tex.AnisoLevel
	repl.Wrap = tex.Wrap
	s.set(mat, repl)
	st.Replaced++
	log.Debug("texture replaced", "material", mat.Name, "slot", s.name, "texture", tex.Name)

	// Originals shared by several materials are released on first sight.
	if tex.Destroyed() {
		return
	}
	if err := rw.Registry.Destroy(tex); err != nil {
		st.Failed++
		log.Warn("texture destroy failed", "texture", tex.Name, "err", err)
		return
	}
	st.Destroyed++
}
