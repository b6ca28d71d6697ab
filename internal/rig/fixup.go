package rig

import (
	"texture-replacer/internal/asset"
	"texture-replacer/internal/logging"
)

// Shaders forced onto the repaired slots.
var (
	EyeShader   = asset.ShaderDiffuse
	HeadShader  = asset.ShaderBumpedSpecular
	VisorShader = asset.ShaderTranslucentSpecular
)

// Textures resolves replacement textures by original name.
type Textures interface {
	Lookup(name string) (*asset.Texture, bool)
}

// VisorTable holds the Variant A visor material of each sub-variant.
type VisorTable [SubVariantCount]asset.MaterialHandle

// NewVisorTable returns a table with every entry absent.
func NewVisorTable() VisorTable {
	var t VisorTable
	for i := range t {
		t[i] = asset.NoMaterial
	}
	return t
}

// Get returns the visor material recorded for sub-variant i.
func (t *VisorTable) Get(i int) (asset.MaterialHandle, bool) {
	if i < 0 || i >= len(t) || !t[i].Valid() {
		return asset.NoMaterial, false
	}
	return t[i], true
}

func (t *VisorTable) set(i int, h asset.MaterialHandle) {
	if i >= 0 && i < len(t) {
		t[i] = h
	}
}

// Result reports what a fixup pass captured and changed.
type Result struct {
	HeadMaterial asset.MaterialHandle // captured from Variant A
	Visors       VisorTable
	Changed      int // renderers whose material or binding was touched
}

type fixer struct {
	reg      *asset.Registry
	textures Textures
	res      Result
}

// Fixup repairs the shared materials of both variants in place: Variant A
// first, recording its head and visor materials, then Variant B, which
// borrows them. Absent sub-variants and untagged renderers are skipped.
func Fixup(reg *asset.Registry, textures Textures, pair *Pair) Result {
	f := &fixer{
		reg:      reg,
		textures: textures,
		res:      Result{HeadMaterial: asset.NoMaterial, Visors: NewVisorTable()},
	}
	if pair == nil {
		return f.res
	}

	f.run(&pair.Reference, referenceActions)
	f.run(&pair.Dependent, dependentActions)

	logging.Logger().Info("rig fixup done", "changed", f.res.Changed,
		"head", f.res.HeadMaterial, "visors", f.res.Visors)
	return f.res
}

func (f *fixer) lookup(name string) (*asset.Texture, bool) {
	if f.textures == nil {
		return nil, false
	}
	return f.textures.Lookup(name)
}

// action repairs one slot of sub-variant sub and reports whether it
// changed anything.
type action func(f *fixer, sub int, s Slot) bool

// referenceActions and dependentActions map each role to its repair.
// Roles missing from a table are left untouched.
var (
	referenceActions = map[Role]action{
		RoleEyeballLeft:  (*fixer).fixEye,
		RoleEyeballRight: (*fixer).fixEye,
		RolePupilLeft:    (*fixer).fixEye,
		RolePupilRight:   (*fixer).fixEye,
		RoleHead:         (*fixer).captureHead,
		RoleVisor:        (*fixer).captureVisor,
	}
	dependentActions = map[Role]action{
		RoleEyeballLeft:  (*fixer).fixEye,
		RoleEyeballRight: (*fixer).fixEye,
		RolePupilLeft:    (*fixer).fixEye,
		RolePupilRight:   (*fixer).fixEye,
		RoleHead:         (*fixer).fixHead,
		RoleTeeth:        (*fixer).borrowHead,
		RoleVisor:        (*fixer).borrowVisor,
	}
)

func (f *fixer) run(v *Variant, actions map[Role]action) {
	for i, sv := range v.SubVariants {
		if sv == nil {
			continue
		}
		for _, s := range sv.Slots {
			if s.Renderer == nil {
				continue
			}
			// Variant B slots without a material have nothing to repair.
			if v.Kind == VariantDependent && !s.Renderer.Material.Valid() {
				continue
			}
			act, ok := actions[s.Role]
			if !ok || !act(f, i, s) {
				continue
			}
			f.res.Changed++
			logging.Logger().Debug("fixed slot", "variant", v.Kind, "sub", i,
				"renderer", s.Renderer.Name, "role", s.Role)
		}
	}
}

// fixEye forces the eye shader and binds the slot's replacement. A pupil
// with a replacement loses its tint.
func (f *fixer) fixEye(_ int, s Slot) bool {
	mat := f.reg.MaterialOf(s.Renderer)
	if mat == nil {
		return false
	}
	mat.Shader = EyeShader
	tex, ok := f.lookup(eyeTextures[s.Role])
	if ok {
		mat.SetMainTexture(tex)
		if s.Role.IsPupil() {
			mat.Color = asset.White
		}
	}
	return true
}

func (f *fixer) fixHead(_ int, s Slot) bool {
	mat := f.reg.MaterialOf(s.Renderer)
	if mat == nil {
		return false
	}
	mat.Shader = HeadShader
	return true
}

func (f *fixer) captureHead(sub int, s Slot) bool {
	if !f.fixHead(sub, s) {
		return false
	}
	f.res.HeadMaterial = s.Renderer.Material
	return true
}

// captureVisor textures the in-vehicle and extravehicular visors, aliases
// the first alternate to the extravehicular one and records every visor.
func (f *fixer) captureVisor(sub int, s Slot) bool {
	r := s.Renderer
	changed := false

	var key string
	switch sub {
	case SubVariantIVA:
		key = VisorIVATexture
	case SubVariantEVA:
		key = VisorEVATexture
	case SubVariantEVAGround:
		if h, ok := f.res.Visors.Get(SubVariantEVA); ok {
			r.Material = h
			changed = true
		}
	}

	if key != "" {
		if mat := f.reg.MaterialOf(r); mat != nil {
			if tex, ok := f.lookup(key); ok {
				mat.Shader = VisorShader
				mat.Color = asset.White
				mat.SetMainTexture(tex)
				changed = true
			}
		}
	}

	f.res.Visors.set(sub, r.Material)
	return changed
}

func (f *fixer) borrowHead(_ int, s Slot) bool {
	if !f.res.HeadMaterial.Valid() {
		return false
	}
	s.Renderer.Material = f.res.HeadMaterial
	return true
}

func (f *fixer) borrowVisor(sub int, s Slot) bool {
	h, ok := f.res.Visors.Get(sub)
	if !ok {
		return false
	}
	s.Renderer.Material = h
	return true
}
