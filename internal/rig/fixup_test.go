package rig

import (
	"testing"

	"texture-replacer/internal/asset"
)

type mapTextures map[string]*asset.Texture

func (m mapTextures) Lookup(name string) (*asset.Texture, bool) {
	t, ok := m[name]
	return t, ok
}

var pupilTint = asset.Color{0.2, 0.3, 0.4, 1}

// rendererWith adds a renderer with its own fresh material.
func rendererWith(reg *asset.Registry, name string, opts ...asset.MaterialOption) *asset.Renderer {
	h := reg.AddMaterial(asset.NewMaterial(append([]asset.MaterialOption{asset.WithName(name)}, opts...)...))
	return reg.AddRenderer(asset.NewRenderer(name, h))
}

func referenceSub(reg *asset.Registry, name string) *SubVariant {
	return NewSubVariant(VariantReference, name,
		rendererWith(reg, "eyeballLeft"),
		rendererWith(reg, "eyeballRight"),
		rendererWith(reg, "pupilLeft", asset.WithColor(pupilTint)),
		rendererWith(reg, "pupilRight", asset.WithColor(pupilTint)),
		rendererWith(reg, "headMesh01"),
		rendererWith(reg, "visor"),
		rendererWith(reg, "jetpack"),
	)
}

func dependentSub(reg *asset.Registry, name string) *SubVariant {
	const p = "mesh_female_kerbalAstronaut01_kerbalGirl_mesh_"
	return NewSubVariant(VariantDependent, name,
		rendererWith(reg, p+"pupilLeft", asset.WithColor(pupilTint)),
		rendererWith(reg, p+"polySurface51"),
		rendererWith(reg, p+"upTeeth01"),
		rendererWith(reg, p+"downTeeth01"),
		rendererWith(reg, "mesh_female_kerbalAstronaut01_visor"),
	)
}

func fullPair(reg *asset.Registry) *Pair {
	pair := NewPair()
	for i, name := range []string{"iva", "eva", "evaGround", "alternate"} {
		pair.Reference.Set(i, referenceSub(reg, name))
		pair.Dependent.Set(i, dependentSub(reg, name))
	}
	return pair
}

func slotMaterial(t *testing.T, reg *asset.Registry, sv *SubVariant, role Role) *asset.Material {
	t.Helper()
	s, ok := sv.Find(role)
	if !ok {
		t.Fatalf("%s has no %v slot", sv.Name, role)
	}
	return reg.MaterialOf(s.Renderer)
}

func TestRoleFor(t *testing.T) {
	if RoleFor(VariantReference, "headMesh02") != RoleHead {
		t.Error("headMesh02 is a reference head")
	}
	if RoleFor(VariantDependent, "headMesh02") != RoleNone {
		t.Error("reference names must not match dependent templates")
	}
	if RoleFor(VariantDependent, "mesh_female_kerbalAstronaut01_kerbalGirl_mesh_downTeeth01") != RoleTeeth {
		t.Error("downTeeth01 is a dependent teeth slot")
	}
	if RoleFor(VariantReference, "jetpack") != RoleNone {
		t.Error("unknown names have no role")
	}
}

func TestFixupTeethAliasHeadMaterial(t *testing.T) {
	reg := asset.NewRegistry()
	pair := fullPair(reg)
	res := Fixup(reg, mapTextures{}, pair)

	head, _ := pair.Reference.At(SubVariantAlternate).Find(RoleHead)
	if res.HeadMaterial != head.Renderer.Material {
		t.Fatalf("captured head %v, want %v", res.HeadMaterial, head.Renderer.Material)
	}
	for i, sv := range pair.Dependent.SubVariants {
		for _, s := range sv.Slots {
			if s.Role == RoleTeeth && s.Renderer.Material != res.HeadMaterial {
				t.Errorf("sub %d teeth %s references %v, want head %v", i, s.Renderer.Name, s.Renderer.Material, res.HeadMaterial)
			}
		}
	}
	if reg.Material(res.HeadMaterial).Shader != HeadShader {
		t.Error("head material should use the normal-map shader")
	}
}

func TestFixupVisorAliasing(t *testing.T) {
	reg := asset.NewRegistry()
	ivaVisor := asset.NewTexture(VisorIVATexture, 8, 8)
	evaVisor := asset.NewTexture(VisorEVATexture, 8, 8)
	pair := fullPair(reg)

	alt, _ := pair.Reference.At(SubVariantAlternate).Find(RoleVisor)
	altBefore := alt.Renderer.Material

	res := Fixup(reg, mapTextures{VisorIVATexture: ivaVisor, VisorEVATexture: evaVisor}, pair)

	eva, _ := pair.Reference.At(SubVariantEVA).Find(RoleVisor)
	ground, _ := pair.Reference.At(SubVariantEVAGround).Find(RoleVisor)
	if ground.Renderer.Material != eva.Renderer.Material {
		t.Errorf("sub 2 visor %v should alias sub 1 visor %v", ground.Renderer.Material, eva.Renderer.Material)
	}
	if alt.Renderer.Material != altBefore {
		t.Error("sub 3 visor must be left as authored")
	}

	evaMat := reg.Material(eva.Renderer.Material)
	if evaMat.MainTexture() != evaVisor || evaMat.Shader != VisorShader || evaMat.Color != asset.White {
		t.Error("EVA visor should get the EVA texture, translucent shader and white tint")
	}
	ivaMat := slotMaterial(t, reg, pair.Reference.At(SubVariantIVA), RoleVisor)
	if ivaMat.MainTexture() != ivaVisor {
		t.Error("IVA visor should get the IVA texture")
	}

	for i := 0; i < SubVariantCount; i++ {
		want, ok := res.Visors.Get(i)
		if !ok {
			t.Fatalf("visor %d not recorded", i)
		}
		s, _ := pair.Dependent.At(i).Find(RoleVisor)
		if s.Renderer.Material != want {
			t.Errorf("dependent sub %d visor %v, want %v", i, s.Renderer.Material, want)
		}
	}
}

func TestFixupVisorWithoutTextures(t *testing.T) {
	reg := asset.NewRegistry()
	pair := fullPair(reg)
	ivaMat := slotMaterial(t, reg, pair.Reference.At(SubVariantIVA), RoleVisor)
	shaderBefore := ivaMat.Shader

	Fixup(reg, mapTextures{}, pair)

	if ivaMat.Shader != shaderBefore || ivaMat.MainTexture() != nil {
		t.Error("visors are only changed when a replacement exists")
	}
	eva, _ := pair.Reference.At(SubVariantEVA).Find(RoleVisor)
	ground, _ := pair.Reference.At(SubVariantEVAGround).Find(RoleVisor)
	if ground.Renderer.Material != eva.Renderer.Material {
		t.Error("sub 2 visor aliases sub 1 even without a texture")
	}
}

func TestFixupPupilTint(t *testing.T) {
	t.Run("with replacement", func(t *testing.T) {
		reg := asset.NewRegistry()
		pupil := asset.NewTexture("pupilLeft", 4, 4)
		pair := fullPair(reg)
		Fixup(reg, mapTextures{"pupilLeft": pupil}, pair)

		mat := slotMaterial(t, reg, pair.Reference.At(SubVariantIVA), RolePupilLeft)
		if mat.Color != asset.White {
			t.Errorf("pupil tint = %v, want white", mat.Color)
		}
		if mat.MainTexture() != pupil || mat.Shader != EyeShader {
			t.Error("pupil should get the eye shader and replacement texture")
		}
		dep := slotMaterial(t, reg, pair.Dependent.At(SubVariantIVA), RolePupilLeft)
		if dep.Color != asset.White || dep.MainTexture() != pupil {
			t.Error("dependent pupils mirror the reference logic")
		}
		right := slotMaterial(t, reg, pair.Reference.At(SubVariantIVA), RolePupilRight)
		if right.Color != pupilTint {
			t.Error("pupilRight has no replacement and keeps its tint")
		}
	})

	t.Run("without replacement", func(t *testing.T) {
		reg := asset.NewRegistry()
		pair := fullPair(reg)
		Fixup(reg, mapTextures{}, pair)

		mat := slotMaterial(t, reg, pair.Reference.At(SubVariantIVA), RolePupilLeft)
		if mat.Color != pupilTint {
			t.Errorf("pupil tint = %v, want unchanged %v", mat.Color, pupilTint)
		}
		if mat.Shader != EyeShader {
			t.Error("the eye shader is forced regardless of replacements")
		}
	})
}

func TestFixupEyeballKeepsTextureWhenMissing(t *testing.T) {
	reg := asset.NewRegistry()
	orig := asset.NewTexture("eyeStock", 4, 4)
	left := rendererWith(reg, "eyeballLeft", asset.WithMainTexture(orig))
	right := rendererWith(reg, "eyeballRight", asset.WithMainTexture(orig))
	pair := NewPair()
	pair.Reference.Set(SubVariantIVA, NewSubVariant(VariantReference, "iva", left, right))

	replacement := asset.NewTexture("eyeballRight", 4, 4)
	Fixup(reg, mapTextures{"eyeballRight": replacement}, pair)

	if reg.MaterialOf(left).MainTexture() != orig {
		t.Error("missing replacement leaves the previous texture")
	}
	if reg.MaterialOf(right).MainTexture() != replacement {
		t.Error("eyeballRight should be replaced")
	}
}

func TestFixupSkipsAbsentAndUnassigned(t *testing.T) {
	reg := asset.NewRegistry()
	pair := NewPair()
	pair.Reference.Set(SubVariantEVA, referenceSub(reg, "eva"))

	bare := reg.AddRenderer(asset.NewRenderer("mesh_female_kerbalAstronaut01_kerbalGirl_mesh_upTeeth01", asset.NoMaterial))
	pair.Dependent.Set(SubVariantIVA, NewSubVariant(VariantDependent, "iva", bare))

	res := Fixup(reg, mapTextures{}, pair)

	if bare.Material != asset.NoMaterial {
		t.Error("dependent renderers without a material are skipped")
	}
	if _, ok := res.Visors.Get(SubVariantIVA); ok {
		t.Error("absent sub-variants record nothing")
	}
	if _, ok := res.Visors.Get(SubVariantEVA); !ok {
		t.Error("present sub-variant visor should be recorded")
	}

	jet, _ := pair.Reference.At(SubVariantEVA).Find(RoleNone)
	if reg.MaterialOf(jet.Renderer).Shader != asset.ShaderDiffuse {
		t.Error("untagged renderers are untouched")
	}
}

func TestFixupDependentVisorWithoutReference(t *testing.T) {
	reg := asset.NewRegistry()
	pair := NewPair()
	pair.Dependent.Set(SubVariantIVA, dependentSub(reg, "iva"))
	visor, _ := pair.Dependent.At(SubVariantIVA).Find(RoleVisor)
	before := visor.Renderer.Material

	res := Fixup(reg, nil, pair)

	if visor.Renderer.Material != before {
		t.Error("dependent visor keeps its material when no reference visor exists")
	}
	teeth, _ := pair.Dependent.At(SubVariantIVA).Find(RoleTeeth)
	if res.HeadMaterial.Valid() || !teeth.Renderer.Material.Valid() {
		t.Error("teeth keep their material when no head was captured")
	}
}

func TestFixupNilPair(t *testing.T) {
	res := Fixup(asset.NewRegistry(), nil, nil)
	if res.HeadMaterial.Valid() || res.Changed != 0 {
		t.Error("nil pair is a no-op")
	}
}
