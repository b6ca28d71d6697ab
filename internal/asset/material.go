package asset

// Color is a linear RGBA tint.
type Color [4]float32

// White is the neutral tint.
var White = Color{1, 1, 1, 1}

// Shader describes which texture slots a material bound to it exposes.
type Shader struct {
	Name        string
	MainTexture bool
	NormalMap   bool
}

// Shaders the fixup passes assign.
var (
	ShaderDiffuse             = &Shader{Name: "KSP/Diffuse", MainTexture: true}
	ShaderSpecular            = &Shader{Name: "KSP/Specular", MainTexture: true}
	ShaderBumped              = &Shader{Name: "KSP/Bumped", MainTexture: true, NormalMap: true}
	ShaderBumpedSpecular      = &Shader{Name: "KSP/Bumped Specular", MainTexture: true, NormalMap: true}
	ShaderTranslucentSpecular = &Shader{Name: "KSP/Alpha/Translucent Specular", MainTexture: true}
	ShaderUnlitColor          = &Shader{Name: "KSP/Unlit Color"}
)

var shadersByName = map[string]*Shader{
	ShaderDiffuse.Name:             ShaderDiffuse,
	ShaderSpecular.Name:            ShaderSpecular,
	ShaderBumped.Name:              ShaderBumped,
	ShaderBumpedSpecular.Name:      ShaderBumpedSpecular,
	ShaderTranslucentSpecular.Name: ShaderTranslucentSpecular,
	ShaderUnlitColor.Name:          ShaderUnlitColor,
}

// FindShader looks up a known shader by name.
func FindShader(name string) (*Shader, bool) {
	s, ok := shadersByName[name]
	return s, ok
}

// Material is a shader plus its bound textures and tint. Materials live in
// a Registry and are shared by every renderer holding the same handle.
type Material struct {
	Name   string
	Shader *Shader
	Color  Color

	mainTexture *Texture
	normalMap   *Texture
	mainScale   [2]float32
}

// MaterialOption configures a material during construction.
type MaterialOption func(*Material)

// WithName sets the material name.
func WithName(name string) MaterialOption {
	return func(m *Material) {
		m.Name = name
	}
}

// WithShader sets the material shader.
func WithShader(s *Shader) MaterialOption {
	return func(m *Material) {
		m.Shader = s
	}
}

// WithColor sets the material tint.
func WithColor(c Color) MaterialOption {
	return func(m *Material) {
		m.Color = c
	}
}

// WithMainTexture binds the main texture.
func WithMainTexture(t *Texture) MaterialOption {
	return func(m *Material) {
		m.mainTexture = t
	}
}

// WithNormalMap binds the normal map.
func WithNormalMap(t *Texture) MaterialOption {
	return func(m *Material) {
		m.normalMap = t
	}
}

// NewMaterial creates a white, diffuse material configured by options.
func NewMaterial(options ...MaterialOption) *Material {
	m := &Material{
		Shader:    ShaderDiffuse,
		Color:     White,
		mainScale: [2]float32{1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// HasMainTexture reports whether the shader exposes a main texture slot.
func (m *Material) HasMainTexture() bool {
	return m.Shader != nil && m.Shader.MainTexture
}

// HasNormalMap reports whether the shader exposes a normal map slot.
func (m *Material) HasNormalMap() bool {
	return m.Shader != nil && m.Shader.NormalMap
}

func (m *Material) MainTexture() *Texture {
	return m.mainTexture
}

func (m *Material) SetMainTexture(t *Texture) {
	m.mainTexture = t
}

func (m *Material) NormalMap() *Texture {
	return m.normalMap
}

func (m *Material) SetNormalMap(t *Texture) {
	m.normalMap = t
}

// MainTextureScale returns the texture coordinate scale of the main slot.
func (m *Material) MainTextureScale() [2]float32 {
	return m.mainScale
}

func (m *Material) SetMainTextureScale(x, y float32) {
	m.mainScale = [2]float32{x, y}
}
