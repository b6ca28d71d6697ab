package rig

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"texture-replacer/internal/asset"
)

// ErrManifest reports a rig manifest that parses but cannot be used.
var ErrManifest = errors.New("rig: invalid manifest")

// xmlRig matches the rig manifest schema:
//
//	<Rig>
//	  <Variant Kind="reference">
//	    <SubVariant Index="0" Name="iva" Model="kerbal_iva.gltf"/>
//	  </Variant>
//	  <Scene Model="flight.gltf">
//	    <Component Kind="NavBall" Node="NavBallMesh"/>
//	  </Scene>
//	</Rig>
type xmlRig struct {
	Variants []xmlVariant `xml:"Variant"`
	Scene    *xmlScene    `xml:"Scene"`
}

type xmlVariant struct {
	Kind        string          `xml:"Kind,attr"`
	SubVariants []xmlSubVariant `xml:"SubVariant"`
}

type xmlSubVariant struct {
	Index string `xml:"Index,attr"`
	Name  string `xml:"Name,attr"`
	Model string `xml:"Model,attr"`
}

type xmlScene struct {
	Model      string         `xml:"Model,attr"`
	Components []xmlComponent `xml:"Component"`
}

type xmlComponent struct {
	Kind string `xml:"Kind,attr"`
	Node string `xml:"Node,attr"`
}

// TemplateDef is one sub-variant template listed in a manifest.
type TemplateDef struct {
	Kind  VariantKind
	Index int
	Name  string
	Model string // absolute path to the glTF file
}

// Manifest lists the rig templates and the flight scene to load.
type Manifest struct {
	Templates  []TemplateDef
	SceneModel string                         // empty when no scene is listed
	Components map[string]asset.ComponentKind // node name -> component
}

// ParseVariantKind maps the manifest spelling to a VariantKind.
func ParseVariantKind(s string) (VariantKind, bool) {
	switch strings.ToLower(s) {
	case "reference", "a":
		return VariantReference, true
	case "dependent", "b":
		return VariantDependent, true
	}
	return 0, false
}

func parseComponentKind(s string) (asset.ComponentKind, bool) {
	switch asset.ComponentKind(s) {
	case asset.ComponentNavBall, asset.ComponentInternalNavBall:
		return asset.ComponentKind(s), true
	}
	return asset.ComponentNone, false
}

// LoadManifest reads a rig manifest. Model paths are resolved against the
// manifest's directory. Rows with a bad kind, index or missing model are
// skipped.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rig: read %s: %w", path, err)
	}

	var doc xmlRig
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("rig: parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, filepath.FromSlash(p))
	}

	m := &Manifest{Components: map[string]asset.ComponentKind{}}
	for _, v := range doc.Variants {
		kind, ok := ParseVariantKind(v.Kind)
		if !ok {
			continue
		}
		for _, sv := range v.SubVariants {
			if sv.Model == "" {
				continue
			}
			idx, err := strconv.Atoi(sv.Index)
			if err != nil || idx < 0 || idx >= SubVariantCount {
				continue
			}
			m.Templates = append(m.Templates, TemplateDef{
				Kind:  kind,
				Index: idx,
				Name:  sv.Name,
				Model: resolve(sv.Model),
			})
		}
	}

	if doc.Scene != nil && doc.Scene.Model != "" {
		m.SceneModel = resolve(doc.Scene.Model)
		for _, c := range doc.Scene.Components {
			kind, ok := parseComponentKind(c.Kind)
			if !ok || c.Node == "" {
				continue
			}
			m.Components[c.Node] = kind
		}
	}

	if len(m.Templates) == 0 && m.SceneModel == "" {
		return nil, fmt.Errorf("%w: %s lists no templates or scene", ErrManifest, path)
	}
	return m, nil
}

// Load imports every listed template into reg and assembles the variant
// pair, then the flight scene when one is listed (nil otherwise).
func (m *Manifest) Load(reg *asset.Registry) (*Pair, *asset.Scene, error) {
	pair := NewPair()
	for _, def := range m.Templates {
		sv, err := LoadTemplate(reg, def.Kind, def.Name, def.Model)
		if err != nil {
			return nil, nil, err
		}
		if def.Kind == VariantDependent {
			pair.Dependent.Set(def.Index, sv)
		} else {
			pair.Reference.Set(def.Index, sv)
		}
	}

	if m.SceneModel == "" {
		return pair, nil, nil
	}
	scene, err := LoadScene(reg, m.SceneModel, m.Components)
	if err != nil {
		return nil, nil, err
	}
	return pair, scene, nil
}
