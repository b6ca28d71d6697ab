package rig

import (
	"fmt"
	"path"
	"strings"

	"github.com/qmuntal/gltf"

	"texture-replacer/internal/asset"
	"texture-replacer/internal/logging"
)

// importer converts one glTF document into registry objects. Materials and
// textures referenced from several meshes map to one handle / one texture,
// so sharing in the file becomes aliasing in the registry.
type importer struct {
	reg       *asset.Registry
	doc       *gltf.Document
	materials map[int]asset.MaterialHandle
	textures  map[int]*asset.Texture
}

func newImporter(reg *asset.Registry, doc *gltf.Document) *importer {
	return &importer{
		reg:       reg,
		doc:       doc,
		materials: make(map[int]asset.MaterialHandle),
		textures:  make(map[int]*asset.Texture),
	}
}

// LoadTemplate reads a glTF rig template and returns its renderers tagged
// with the roles of kind.
func LoadTemplate(reg *asset.Registry, kind VariantKind, name, file string) (*SubVariant, error) {
	doc, err := gltf.Open(file)
	if err != nil {
		return nil, fmt.Errorf("rig: open %s: %w", file, err)
	}
	return ImportTemplate(reg, kind, name, doc), nil
}

// ImportTemplate converts every mesh node of doc into a renderer, in node
// order, and tags them with the roles of kind.
func ImportTemplate(reg *asset.Registry, kind VariantKind, name string, doc *gltf.Document) *SubVariant {
	im := newImporter(reg, doc)
	var renderers []*asset.Renderer
	for i := range doc.Nodes {
		if r := im.renderer(i); r != nil {
			renderers = append(renderers, r)
		}
	}
	sv := NewSubVariant(kind, name, renderers...)
	logging.Logger().Debug("rig template imported", "name", name, "kind", kind,
		"renderers", len(renderers), "materials", len(im.materials))
	return sv
}

// LoadScene reads a glTF scene. components marks nodes, by name, with the
// host component they carry.
func LoadScene(reg *asset.Registry, file string, components map[string]asset.ComponentKind) (*asset.Scene, error) {
	doc, err := gltf.Open(file)
	if err != nil {
		return nil, fmt.Errorf("rig: open %s: %w", file, err)
	}
	return ImportScene(reg, doc, components), nil
}

// ImportScene builds the node hierarchy of the document's default scene,
// or of every root node when no scene is declared.
func ImportScene(reg *asset.Registry, doc *gltf.Document, components map[string]asset.ComponentKind) *asset.Scene {
	im := newImporter(reg, doc)

	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		roots = rootNodes(doc)
	}

	scene := asset.NewScene()
	seen := make(map[int]bool)
	for _, i := range roots {
		if n := im.node(i, components, seen); n != nil {
			scene.Root.Children = append(scene.Root.Children, n)
		}
	}
	return scene
}

// rootNodes returns the nodes no other node lists as a child.
func rootNodes(doc *gltf.Document) []int {
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (im *importer) node(i int, components map[string]asset.ComponentKind, seen map[int]bool) *asset.Node {
	if i < 0 || i >= len(im.doc.Nodes) || seen[i] {
		return nil
	}
	seen[i] = true

	src := im.doc.Nodes[i]
	n := asset.NewNode(src.Name)
	n.Kind = components[src.Name]
	n.Renderer = im.renderer(i)
	for _, c := range src.Children {
		if child := im.node(c, components, seen); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// renderer creates the renderer of node i, or nil when it has no mesh.
// Unnamed nodes fall back to the mesh name.
func (im *importer) renderer(i int) *asset.Renderer {
	src := im.doc.Nodes[i]
	if src.Mesh == nil || *src.Mesh >= len(im.doc.Meshes) {
		return nil
	}
	mesh := im.doc.Meshes[*src.Mesh]

	name := src.Name
	if name == "" {
		name = mesh.Name
	}

	h := asset.NoMaterial
	for _, p := range mesh.Primitives {
		if p.Material != nil {
			h = im.material(*p.Material)
			break
		}
	}

	r := asset.NewRenderer(name, h)
	r.Skinned = src.Skin != nil
	return im.reg.AddRenderer(r)
}

func (im *importer) material(i int) asset.MaterialHandle {
	if h, ok := im.materials[i]; ok {
		return h
	}
	if i < 0 || i >= len(im.doc.Materials) {
		return asset.NoMaterial
	}
	src := im.doc.Materials[i]

	opts := []asset.MaterialOption{asset.WithName(src.Name)}
	color := asset.White
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			for c, v := range pbr.BaseColorFactor {
				color[c] = float32(v)
			}
		}
		if pbr.BaseColorTexture != nil {
			if t := im.texture(pbr.BaseColorTexture.Index); t != nil {
				opts = append(opts, asset.WithMainTexture(t))
			}
		}
	}
	opts = append(opts, asset.WithColor(color))

	shader := asset.ShaderDiffuse
	if src.NormalTexture != nil && src.NormalTexture.Index != nil {
		shader = asset.ShaderBumped
		if t := im.texture(*src.NormalTexture.Index); t != nil {
			opts = append(opts, asset.WithNormalMap(t))
		}
	}
	if src.AlphaMode == gltf.AlphaBlend {
		shader = asset.ShaderTranslucentSpecular
	}
	if s, ok := asset.FindShader(src.Name); ok {
		shader = s
	}
	opts = append(opts, asset.WithShader(shader))

	h := im.reg.AddMaterial(asset.NewMaterial(opts...))
	im.materials[i] = h
	return h
}

// texture registers the texture at index i in the pool. Its name is the
// source image's name, or its URI without extension.
func (im *importer) texture(i int) *asset.Texture {
	if t, ok := im.textures[i]; ok {
		return t
	}
	if i < 0 || i >= len(im.doc.Textures) {
		return nil
	}
	src := im.doc.Textures[i]

	name := src.Name
	if src.Source != nil && *src.Source < len(im.doc.Images) {
		img := im.doc.Images[*src.Source]
		switch {
		case img.Name != "":
			name = img.Name
		case img.URI != "" && !strings.HasPrefix(img.URI, "data:"):
			name = strings.TrimSuffix(img.URI, path.Ext(img.URI))
		}
	}

	t := asset.NewTexture(name, 0, 0)
	if src.Sampler != nil && *src.Sampler < len(im.doc.Samplers) {
		applySampler(t, im.doc.Samplers[*src.Sampler])
	}
	im.reg.AddTexture(t)
	im.textures[i] = t
	return t
}

func applySampler(t *asset.Texture, s *gltf.Sampler) {
	switch {
	case s.MagFilter == gltf.MagNearest:
		t.Filter = asset.FilterPoint
	case s.MinFilter == gltf.MinLinearMipMapLinear:
		t.Filter = asset.FilterTrilinear
	}
	if s.WrapS == gltf.WrapClampToEdge {
		t.Wrap = asset.WrapClamp
	}
}
