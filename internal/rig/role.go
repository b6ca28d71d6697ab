package rig

// Role is the semantic slot a renderer fills in a rig template.
type Role int

const (
	RoleNone Role = iota
	RoleEyeballLeft
	RoleEyeballRight
	RolePupilLeft
	RolePupilRight
	RoleHead
	RoleTeeth
	RoleVisor
)

func (r Role) String() string {
	switch r {
	case RoleEyeballLeft:
		return "eyeball-left"
	case RoleEyeballRight:
		return "eyeball-right"
	case RolePupilLeft:
		return "pupil-left"
	case RolePupilRight:
		return "pupil-right"
	case RoleHead:
		return "head"
	case RoleTeeth:
		return "teeth"
	case RoleVisor:
		return "visor"
	}
	return "none"
}

// IsEye reports whether r is an eyeball or pupil slot.
func (r Role) IsEye() bool {
	return r >= RoleEyeballLeft && r <= RolePupilRight
}

// IsPupil reports whether r is a pupil slot.
func (r Role) IsPupil() bool {
	return r == RolePupilLeft || r == RolePupilRight
}

// eyeTextures names the replacement bound to each eye slot.
var eyeTextures = map[Role]string{
	RoleEyeballLeft:  "eyeballLeft",
	RoleEyeballRight: "eyeballRight",
	RolePupilLeft:    "pupilLeft",
	RolePupilRight:   "pupilRight",
}

// Replacement keys for visors, by sub-variant.
const (
	VisorIVATexture = "kerbalVisor"
	VisorEVATexture = "EVAvisor"
)

// referenceRoles tags Variant A renderers by their authored names.
var referenceRoles = map[string]Role{
	"eyeballLeft":  RoleEyeballLeft,
	"eyeballRight": RoleEyeballRight,
	"pupilLeft":    RolePupilLeft,
	"pupilRight":   RolePupilRight,
	"headMesh01":   RoleHead,
	"headMesh02":   RoleHead,
	"visor":        RoleVisor,
}

// dependentRoles tags Variant B renderers. Its meshes were exported with
// full hierarchy paths baked into the names.
var dependentRoles = map[string]Role{
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_eyeballLeft":   RoleEyeballLeft,
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_eyeballRight":  RoleEyeballRight,
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_pupilLeft":     RolePupilLeft,
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_pupilRight":    RolePupilRight,
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_polySurface51": RoleHead,
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_headMesh":      RoleHead,
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_upTeeth01":     RoleTeeth,
	"mesh_female_kerbalAstronaut01_kerbalGirl_mesh_downTeeth01":   RoleTeeth,
	"mesh_female_kerbalAstronaut01_visor":                         RoleVisor,
	"mesh_female_kerbalAstronaut01_helmetVisor":                   RoleVisor,
}

// RoleFor returns the role of a renderer called name in a template of the
// given variant kind. Unknown names are RoleNone.
func RoleFor(kind VariantKind, name string) Role {
	table := referenceRoles
	if kind == VariantDependent {
		table = dependentRoles
	}
	return table[name]
}
