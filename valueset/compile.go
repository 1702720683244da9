package valueset

import (
	"fmt"

	"github.com/omopkit/semantics/semantic"
)

// UnitDef is a declarative semantic unit: named enumerations, groups, and
// single concepts grouped under one name.
type UnitDef struct {
	Name     string
	Enums    []semantic.EnumRef
	Groups   []semantic.GroupRef
	Concepts []semantic.ConceptRef
}

// SetDef is a declarative value set over semantic units.
type SetDef struct {
	Name  string
	Units []UnitDef
}

// SetSpec is the raw, name-based form of a value set before interpolation:
// members reference semantic units by name.
type SetSpec struct {
	Name    string
	Members []string
}

// IndexUnits flattens unit definitions into a name -> reference index.
// Unnamed entries are skipped.
func IndexUnits(defs ...UnitDef) map[string]semantic.Reference {
	index := make(map[string]semantic.Reference)
	for _, def := range defs {
		for _, e := range def.Enums {
			if e.Name != "" {
				index[e.Name] = e
			}
		}
		for _, g := range def.Groups {
			if g.Name != "" {
				index[g.Name] = g
			}
		}
		for _, c := range def.Concepts {
			if c.Name != "" {
				index[c.Name] = c
			}
		}
	}
	return index
}

// Interpolate replaces name-based unit references in set specs with their
// definitions from the index. Unknown names fail with NotFoundError;
// reference variants outside the known three fail with
// UnsupportedVariantError.
func Interpolate(specs []SetSpec, index map[string]semantic.Reference) ([]SetDef, error) {
	out := make([]SetDef, 0, len(specs))

	for _, spec := range specs {
		def := SetDef{Name: spec.Name}

		for _, name := range spec.Members {
			ref, ok := index[name]
			if !ok {
				return nil, &NotFoundError{Kind: "unit", Name: name}
			}

			unit := UnitDef{Name: name}
			switch v := ref.(type) {
			case semantic.EnumRef:
				unit.Enums = []semantic.EnumRef{v}
			case semantic.GroupRef:
				unit.Groups = []semantic.GroupRef{v}
			case semantic.ConceptRef:
				unit.Concepts = []semantic.ConceptRef{v}
			default:
				return nil, &semantic.UnsupportedVariantError{Variant: fmt.Sprintf("%T", ref)}
			}
			def.Units = append(def.Units, unit)
		}

		out = append(out, def)
	}

	return out, nil
}

// Compile builds the read-only lookup namespace from value-set definitions.
// Enumeration members and group anchors missing a label or identifier are
// dropped. Groups with exactly one surviving anchor collapse to a scalar
// under the group name.
func Compile(defs []SetDef) *Namespace {
	sets := make(map[string]Set, len(defs))

	for _, def := range defs {
		units := make(map[string]Unit, len(def.Units))
		for _, ud := range def.Units {
			name := ud.Name
			if name == "" {
				name = "[unlabelled]"
			}
			units[name] = compileUnit(name, ud)
		}
		sets[def.Name] = Set{name: def.Name, units: units}
	}

	return &Namespace{sets: sets}
}

func compileUnit(name string, def UnitDef) Unit {
	unit := Unit{
		name:     name,
		enums:    make(map[string]Enum),
		groups:   make(map[string]Group),
		concepts: make(map[string]semantic.ConceptRef),
		scalars:  make(map[string]int),
	}

	for _, e := range def.Enums {
		if e.Name == "" {
			continue
		}
		unit.enums[e.Name] = Enum{name: e.Name, byLabel: labelIndex(e.Members)}
	}

	for _, g := range def.Groups {
		if g.Name == "" {
			continue
		}
		byLabel := labelIndex(g.Anchors)
		if len(byLabel) == 1 {
			for _, id := range byLabel {
				unit.scalars[g.Name] = id
			}
			continue
		}
		unit.groups[g.Name] = Group{name: g.Name, byLabel: byLabel}
	}

	for _, c := range def.Concepts {
		if c.Name == "" {
			continue
		}
		unit.concepts[c.Name] = c
	}

	return unit
}

func labelIndex(members []semantic.Member) map[string]int {
	byLabel := make(map[string]int, len(members))
	for _, m := range members {
		if m.ID != nil && m.Label != "" {
			byLabel[m.Label] = *m.ID
		}
	}
	return byLabel
}
