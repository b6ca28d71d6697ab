// Package replacer ties the texture index and the three passes to the host
// lifecycle. A Replacer lives for one load cycle; a reload creates a new one.
package replacer

import (
	"texture-replacer/internal/asset"
	"texture-replacer/internal/logging"
	"texture-replacer/internal/navball"
	"texture-replacer/internal/rewrite"
	"texture-replacer/internal/rig"
	"texture-replacer/internal/texture"
)

// Options configures a Replacer.
type Options struct {
	Skinning    asset.SkinQuality
	LogTextures bool
	Index       *texture.Options // nil uses the default prefix and clamp families
}

// Replacer holds the state shared by the lifecycle triggers.
type Replacer struct {
	reg *asset.Registry
	opt Options

	index    *texture.Index
	fixup    rig.Result
	skinned  int
	rewrites []rewrite.Stats
	navball  navball.Result
}

// New creates a Replacer over the host pool reg.
func New(reg *asset.Registry, opt Options) *Replacer {
	return &Replacer{
		reg:   reg,
		opt:   opt,
		fixup: rig.Result{HeadMaterial: asset.NoMaterial, Visors: rig.NewVisorTable()},
	}
}

// OnAssetsLoaded builds the texture index, applies the skinning override and
// repairs the rig templates in pair. pair may be nil.
func (r *Replacer) OnAssetsLoaded(pair *rig.Pair) {
	log := logging.Logger()

	r.index = texture.Build(r.reg, r.opt.Index)
	log.Info("texture index built", "replacements", r.index.Len(), "navball", r.index.NavBall() != nil)

	r.skinned = r.reg.ApplySkinQuality(r.opt.Skinning)
	if r.skinned > 0 {
		log.Info("skinning quality applied", "quality", r.opt.Skinning, "renderers", r.skinned)
	}

	r.fixup = rig.Fixup(r.reg, r.index, pair)
}

// OnSceneEntered rewrites every live material. Before OnAssetsLoaded there
// is no index, so only filtering is upgraded.
func (r *Replacer) OnSceneEntered() rewrite.Stats {
	rw := &rewrite.Rewriter{Registry: r.reg, LogTextures: r.opt.LogTextures}
	if r.index != nil {
		rw.Index = r.index
	}
	st := rw.Run()
	r.rewrites = append(r.rewrites, st)
	return st
}

// OnFlightStart binds the NavBall replacement in scene.
func (r *Replacer) OnFlightStart(scene *asset.Scene) navball.Result {
	r.navball = navball.Update(r.reg, r.index, scene)
	return r.navball
}

// Index returns the index built by OnAssetsLoaded, or nil.
func (r *Replacer) Index() *texture.Index {
	return r.index
}

// Fixup returns the result of the last rig fixup.
func (r *Replacer) Fixup() rig.Result {
	return r.fixup
}
