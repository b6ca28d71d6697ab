// Package navball binds the replacement NavBall texture to the flight
// scene's attitude indicators.
package navball

import (
	"texture-replacer/internal/asset"
	"texture-replacer/internal/logging"
)

// InternalSpace is the scene subtree holding the in-cockpit props.
const InternalSpace = "InternalSpace"

// Source provides the dedicated NavBall replacement.
type Source interface {
	NavBall() *asset.Texture
}

// Result reports which indicators were updated.
type Result struct {
	Exterior bool
	Interior bool
}

// Update binds the NavBall replacement to the exterior indicator and to the
// interior one inside InternalSpace. The interior sphere is seen from the
// other side, so its texture is mirrored horizontally. Missing indicators
// are skipped; without a replacement nothing happens.
func Update(reg *asset.Registry, src Source, scene *asset.Scene) Result {
	var res Result
	if src == nil || reg == nil {
		return res
	}
	tex := src.NavBall()
	if tex == nil {
		return res
	}
	log := logging.Logger()

	if mat := materialAt(reg, scene.Find(asset.ComponentNavBall)); mat != nil {
		mat.SetMainTexture(tex)
		res.Exterior = true
		log.Debug("navball bound", "material", mat.Name)
	}

	if mat := materialAt(reg, scene.FindIn(InternalSpace, asset.ComponentInternalNavBall)); mat != nil {
		mat.SetMainTexture(tex)
		mat.SetMainTextureScale(-1, 1)
		res.Interior = true
		log.Debug("internal navball bound", "material", mat.Name)
	}
	return res
}

func materialAt(reg *asset.Registry, n *asset.Node) *asset.Material {
	if n == nil || n.Renderer == nil {
		return nil
	}
	return reg.MaterialOf(n.Renderer)
}
