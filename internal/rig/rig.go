// Package rig describes the two character rig variants and repairs their
// materials so both variants render consistently.
package rig

import "texture-replacer/internal/asset"

// VariantKind distinguishes the donor rig from the rig patched to match it.
type VariantKind int

const (
	VariantReference VariantKind = iota // Variant A, source of truth
	VariantDependent                    // Variant B, patched from A
)

func (k VariantKind) String() string {
	if k == VariantDependent {
		return "dependent"
	}
	return "reference"
}

// Sub-variant indices within a variant.
const (
	SubVariantIVA       = 0 // in-vehicle
	SubVariantEVA       = 1 // extravehicular
	SubVariantEVAGround = 2 // cosmetic alternate sharing the EVA visor
	SubVariantAlternate = 3 // cosmetic alternate left as authored
	SubVariantCount     = 4
)

// Slot is a renderer tagged with its role when the template was built.
type Slot struct {
	Role     Role
	Renderer *asset.Renderer
}

// SubVariant is one template hierarchy of a variant.
type SubVariant struct {
	Name  string
	Slots []Slot
}

// NewSubVariant tags renderers with the roles of the given variant kind.
func NewSubVariant(kind VariantKind, name string, renderers ...*asset.Renderer) *SubVariant {
	sv := &SubVariant{Name: name, Slots: make([]Slot, 0, len(renderers))}
	for _, r := range renderers {
		sv.Slots = append(sv.Slots, Slot{Role: RoleFor(kind, r.Name), Renderer: r})
	}
	return sv
}

// Find returns the first slot with the given role.
func (sv *SubVariant) Find(role Role) (Slot, bool) {
	if sv == nil {
		return Slot{}, false
	}
	for _, s := range sv.Slots {
		if s.Role == role {
			return s, true
		}
	}
	return Slot{}, false
}

// Variant is a sequence of optional sub-variants indexed by SubVariant*.
// Nil entries are absent templates.
type Variant struct {
	Kind        VariantKind
	SubVariants []*SubVariant
}

// NewVariant creates a variant with SubVariantCount empty entries.
func NewVariant(kind VariantKind) Variant {
	return Variant{Kind: kind, SubVariants: make([]*SubVariant, SubVariantCount)}
}

// Set stores sv at index i, growing the sequence if needed.
func (v *Variant) Set(i int, sv *SubVariant) {
	for len(v.SubVariants) <= i {
		v.SubVariants = append(v.SubVariants, nil)
	}
	v.SubVariants[i] = sv
}

// At returns the sub-variant at i, or nil when absent.
func (v *Variant) At(i int) *SubVariant {
	if i < 0 || i >= len(v.SubVariants) {
		return nil
	}
	return v.SubVariants[i]
}

// Pair holds both variants of a rig.
type Pair struct {
	Reference Variant
	Dependent Variant
}

// NewPair creates a pair with all sub-variants absent.
func NewPair() *Pair {
	return &Pair{
		Reference: NewVariant(VariantReference),
		Dependent: NewVariant(VariantDependent),
	}
}
