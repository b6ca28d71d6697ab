package rewrite

import (
	"testing"

	"texture-replacer/internal/asset"
	"texture-replacer/internal/texture"
)

type fixture struct {
	reg  *asset.Registry
	idx  *texture.Index
	orig *asset.Texture
	repl *asset.Texture
	mat  *asset.Material
}

func newFixture(origName string) *fixture {
	reg := asset.NewRegistry()
	orig := reg.AddTexture(asset.NewTexture(origName, 64, 64))
	orig.AnisoLevel = 4
	orig.Wrap = asset.WrapClamp
	repl := reg.AddTexture(asset.NewTexture(texture.DefaultPrefix+"kerbalHead", 128, 128))
	h := reg.AddMaterial(asset.NewMaterial(asset.WithName("head"), asset.WithMainTexture(orig)))
	return &fixture{
		reg:  reg,
		idx:  texture.Build(reg, nil),
		orig: orig,
		repl: repl,
		mat:  reg.Material(h),
	}
}

func TestRunReplacesAndDestroys(t *testing.T) {
	f := newFixture("kerbalHead")
	rw := &Rewriter{Registry: f.reg, Index: f.idx}
	st := rw.Run()

	if f.mat.MainTexture() != f.repl {
		t.Fatal("main texture should be the replacement")
	}
	if f.repl.AnisoLevel != 4 || f.repl.Wrap != asset.WrapClamp {
		t.Error("anisotropy and wrap are copied from the original")
	}
	if !f.orig.Destroyed() || st.Destroyed != 1 || st.Replaced != 1 {
		t.Errorf("original should be destroyed once, stats %+v", st)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	f := newFixture("kerbalHead")
	rw := &Rewriter{Registry: f.reg, Index: f.idx}
	rw.Run()
	destroyed := f.reg.DestroyedCount()

	st := rw.Run()
	if st.Replaced != 0 || st.Destroyed != 0 || st.Failed != 0 {
		t.Errorf("second pass changed state: %+v", st)
	}
	if f.reg.DestroyedCount() != destroyed {
		t.Error("second pass destroyed more textures")
	}
	if f.mat.MainTexture() != f.repl {
		t.Error("binding should be stable")
	}
}

func TestRunIsIdempotentAcrossRebuiltIndex(t *testing.T) {
	f := newFixture("kerbalHead")
	(&Rewriter{Registry: f.reg, Index: f.idx}).Run()

	rebuilt := texture.Build(f.reg, nil)
	if got, ok := rebuilt.Lookup("kerbalHead"); !ok || got != f.repl {
		t.Fatal("a rebuilt index should still map kerbalHead")
	}
	st := (&Rewriter{Registry: f.reg, Index: rebuilt}).Run()

	if st.Replaced != 0 || st.Destroyed != 0 || st.Failed != 0 {
		t.Errorf("pass with a rebuilt index changed state: %+v", st)
	}
	if f.mat.MainTexture() != f.repl || f.repl.Destroyed() {
		t.Error("the bound replacement must stay bound and alive")
	}
}

func TestRunSharedOriginalDestroyedOnce(t *testing.T) {
	f := newFixture("kerbalHead")
	other := f.reg.Material(f.reg.AddMaterial(asset.NewMaterial(asset.WithMainTexture(f.orig))))

	st := (&Rewriter{Registry: f.reg, Index: f.idx}).Run()

	if other.MainTexture() != f.repl {
		t.Error("every material holding the original is rebound")
	}
	if st.Destroyed != 1 || st.Failed != 0 || f.reg.DestroyedCount() != 1 {
		t.Errorf("shared original must be destroyed exactly once, stats %+v", st)
	}
}

func TestRunSkipsTempTextures(t *testing.T) {
	reg := asset.NewRegistry()
	tmp := reg.AddTexture(asset.NewTexture("TempRenderTarget", 8, 8))
	reg.AddTexture(asset.NewTexture(texture.DefaultPrefix+"TempRenderTarget", 8, 8))
	mat := reg.Material(reg.AddMaterial(asset.NewMaterial(asset.WithMainTexture(tmp))))
	idx := texture.Build(reg, nil)
	tmp.Filter = asset.FilterBilinear

	(&Rewriter{Registry: reg, Index: idx}).Run()

	if mat.MainTexture() != tmp || tmp.Destroyed() {
		t.Error("Temp-prefixed textures are never replaced")
	}
	if tmp.Filter != asset.FilterBilinear {
		t.Error("Temp-prefixed textures are skipped entirely")
	}
}

func TestRunUpgradesUnreplacedBilinear(t *testing.T) {
	reg := asset.NewRegistry()
	tex := reg.AddTexture(asset.NewTexture("fuelTank", 8, 8))
	mat := reg.Material(reg.AddMaterial(asset.NewMaterial(asset.WithMainTexture(tex))))

	st := (&Rewriter{Registry: reg, Index: texture.Build(asset.NewRegistry(), nil)}).Run()

	if mat.MainTexture() != tex {
		t.Fatal("binding must stay on the same texture")
	}
	if tex.Filter != asset.FilterTrilinear || st.Upgraded != 1 {
		t.Errorf("filter = %v, stats %+v", tex.Filter, st)
	}
}

func TestRunNormalMap(t *testing.T) {
	reg := asset.NewRegistry()
	nrm := reg.AddTexture(asset.NewTexture("kerbalHeadNRM", 8, 8))
	repl := reg.AddTexture(asset.NewTexture(texture.DefaultPrefix+"kerbalHeadNRM", 8, 8))
	main := reg.AddTexture(asset.NewTexture("kerbalHead", 8, 8))
	bumped := reg.Material(reg.AddMaterial(asset.NewMaterial(
		asset.WithShader(asset.ShaderBumpedSpecular), asset.WithMainTexture(main), asset.WithNormalMap(nrm))))
	flat := reg.Material(reg.AddMaterial(asset.NewMaterial(asset.WithNormalMap(nrm))))
	idx := texture.Build(reg, nil)

	(&Rewriter{Registry: reg, Index: idx}).Run()

	if bumped.NormalMap() != repl {
		t.Error("normal map slot should be rewritten")
	}
	if flat.NormalMap() != nrm {
		t.Error("shaders without a normal map slot are left alone")
	}
}

func TestRunSkipsMaterialsWithoutMainSlot(t *testing.T) {
	f := newFixture("kerbalHead")
	f.mat.Shader = asset.ShaderUnlitColor

	st := (&Rewriter{Registry: f.reg, Index: f.idx}).Run()

	if f.mat.MainTexture() != f.orig || st.Materials != 0 {
		t.Error("materials without a main texture slot are skipped")
	}
}

func TestRunNilTexturesAndIndex(t *testing.T) {
	reg := asset.NewRegistry()
	reg.AddMaterial(asset.NewMaterial())
	anon := reg.AddTexture(asset.NewTexture("", 8, 8))
	reg.AddMaterial(asset.NewMaterial(asset.WithMainTexture(anon)))

	st := (&Rewriter{Registry: reg}).Run()
	if st.Replaced != 0 || st.Upgraded != 0 {
		t.Errorf("nothing to do, got %+v", st)
	}
	if (&Rewriter{}).Run() != (Stats{}) {
		t.Error("nil registry is a no-op")
	}
}
