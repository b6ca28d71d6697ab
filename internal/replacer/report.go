package replacer

import (
	"encoding/json"
	"os"

	"texture-replacer/internal/rig"
	"texture-replacer/internal/texture"
)

// ReportEntry describes one replacement in the index.
type ReportEntry struct {
	Key    string `json:"key"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mips   int    `json:"mips"`
	Filter string `json:"filter"`
	Wrap   string `json:"wrap"`
}

// Report summarises one load cycle.
type Report struct {
	Replacements []ReportEntry `json:"replacements"`
	NavBall      *ReportEntry  `json:"navball,omitempty"`

	SkinnedRenderers int   `json:"skinned_renderers"`
	HeadMaterial     int   `json:"head_material"`
	Visors           []int `json:"visors"`
	FixedSlots       int   `json:"fixed_slots"`

	Materials int `json:"materials"`
	Replaced  int `json:"replaced"`
	Destroyed int `json:"destroyed"`
	Upgraded  int `json:"upgraded"`

	NavBallExterior bool `json:"navball_exterior"`
	NavBallInterior bool `json:"navball_interior"`
}

// Report collects the state of every pass run so far.
func (r *Replacer) Report() Report {
	rep := Report{
		SkinnedRenderers: r.skinned,
		HeadMaterial:     int(r.fixup.HeadMaterial),
		FixedSlots:       r.fixup.Changed,
		NavBallExterior:  r.navball.Exterior,
		NavBallInterior:  r.navball.Interior,
	}

	for i := 0; i < rig.SubVariantCount; i++ {
		h, _ := r.fixup.Visors.Get(i)
		rep.Visors = append(rep.Visors, int(h))
	}

	for _, key := range r.index.Keys() {
		tex, _ := r.index.Lookup(key)
		rep.Replacements = append(rep.Replacements, ReportEntry{
			Key:    key,
			Width:  tex.Width,
			Height: tex.Height,
			Mips:   tex.MipCount,
			Filter: tex.Filter.String(),
			Wrap:   tex.Wrap.String(),
		})
	}
	if nb := r.index.NavBall(); nb != nil {
		rep.NavBall = &ReportEntry{
			Key:    texture.NavBallKey,
			Width:  nb.Width,
			Height: nb.Height,
			Mips:   nb.MipCount,
			Filter: nb.Filter.String(),
			Wrap:   nb.Wrap.String(),
		}
	}

	for _, st := range r.rewrites {
		rep.Materials += st.Materials
		rep.Replaced += st.Replaced
		rep.Destroyed += st.Destroyed
		rep.Upgraded += st.Upgraded
	}
	return rep
}

// WriteReport writes rep as indented JSON to path.
func WriteReport(path string, rep Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
