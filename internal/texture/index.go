package texture

import (
	"sort"
	"strings"

	"texture-replacer/internal/asset"
	"texture-replacer/internal/logging"
)

const (
	// DefaultPrefix marks a pool texture as a replacement; the rest of its
	// name is the name of the texture it replaces.
	DefaultPrefix = "TextureReplacer/Default/"

	// NavBallKey is held outside the general map for the NavBall updater.
	NavBallKey = "NavBall"
)

// defaultClampPrefixes are texture families that show seams when tiled.
var defaultClampPrefixes = []string{"GalaxyTex_"}

// Pool enumerates loaded textures.
type Pool interface {
	Textures() []*asset.Texture
}

// Options controls index construction.
type Options struct {
	// Prefix overrides DefaultPrefix.
	Prefix string
	// ClampPrefixes lists key prefixes forced to clamp wrapping.
	// Nil means the built-in list.
	ClampPrefixes []string
}

func (o *Options) normalize() Options {
	if o == nil {
		return Options{Prefix: DefaultPrefix, ClampPrefixes: defaultClampPrefixes}
	}
	out := *o
	if out.Prefix == "" {
		out.Prefix = DefaultPrefix
	}
	if out.ClampPrefixes == nil {
		out.ClampPrefixes = defaultClampPrefixes
	}
	return out
}

// Index maps original texture names to replacement textures.
// It is read-only once Build returns.
type Index struct {
	entries      map[string]*asset.Texture // original name → replacement
	navBall      *asset.Texture
	replacements map[*asset.Texture]struct{} // every mapped texture, NavBall included
}

// Build scans pool once. Every bilinear texture is upgraded to trilinear.
// Textures whose name contains the prefix become replacements keyed by the
// text after it; on collision the first one enumerated wins. Pool names are
// left as they are, so a later Build over the same pool finds the same
// replacements.
func Build(pool Pool, opt *Options) *Index {
	o := opt.normalize()
	log := logging.Logger()
	idx := &Index{
		entries:      make(map[string]*asset.Texture),
		replacements: make(map[*asset.Texture]struct{}),
	}

	for _, tex := range pool.Textures() {
		if tex == nil || tex.Name == "" {
			continue
		}
		if tex.Filter == asset.FilterBilinear {
			tex.Filter = asset.FilterTrilinear
		}

		i := strings.Index(tex.Name, o.Prefix)
		if i < 0 {
			continue
		}
		key := tex.Name[i+len(o.Prefix):]
		if key == "" {
			continue
		}
		if _, exists := idx.entries[key]; exists {
			log.Debug("duplicate replacement ignored", "key", key, "texture", tex.Name)
			continue
		}
		if hasAnyPrefix(key, o.ClampPrefixes) {
			tex.Wrap = asset.WrapClamp
		}

		log.Debug("mapped texture", "key", key, "texture", tex.Name)
		idx.entries[key] = tex
		idx.replacements[tex] = struct{}{}
	}

	if nb, ok := idx.entries[NavBallKey]; ok {
		delete(idx.entries, NavBallKey)
		idx.navBall = nb
		if nb.MipCount > 1 {
			log.Warn("NavBall texture has mipmaps, expect a seam on the ball",
				"texture", nb.Name, "mips", nb.MipCount)
		}
	}

	return idx
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Lookup returns the replacement for a texture called name.
func (idx *Index) Lookup(name string) (*asset.Texture, bool) {
	if idx == nil {
		return nil, false
	}
	tex, ok := idx.entries[name]
	return tex, ok
}

// IsReplacement reports whether tex is one of the indexed replacements,
// the NavBall included. A slot already holding one needs no rewrite.
func (idx *Index) IsReplacement(tex *asset.Texture) bool {
	if idx == nil || tex == nil {
		return false
	}
	_, ok := idx.replacements[tex]
	return ok
}

// NavBall returns the reserved NavBall replacement, or nil.
func (idx *Index) NavBall() *asset.Texture {
	if idx == nil {
		return nil
	}
	return idx.navBall
}

// Len returns the number of general mappings.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Keys returns the general mapping keys in sorted order.
func (idx *Index) Keys() []string {
	if idx == nil {
		return nil
	}
	keys := make([]string, 0, len(idx.entries))
	for k := range idx.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
