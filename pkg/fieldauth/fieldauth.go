// Package fieldauth answers field-level visibility and editability questions
// for participant records. Verdicts come from a static per-role table of
// dotted field paths; matching is literal string membership, not path-tree
// expansion. A role hiding "parentInfo" does not implicitly hide
// "parentInfo.email" unless that path is listed too.
package fieldauth

import "sort"

// Role names a permission profile.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleParent     Role = "parent"
	RoleGuest      Role = "guest"
)

type profile struct {
	visible  map[string]struct{}
	editable map[string]struct{}
	hidden   map[string]struct{}
}

func newProfile(visible, editable, hidden []string) *profile {
	return &profile{
		visible:  toSet(visible),
		editable: toSet(editable),
		hidden:   toSet(hidden),
	}
}

func toSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// profileFor resolves a role to its profile. Unknown roles get the guest
// profile, the most restrictive one.
func profileFor(role Role) *profile {
	if p, ok := profiles[role]; ok {
		return p
	}
	return profiles[RoleGuest]
}

// CanViewField reports whether the role may read the field. Hidden is
// checked before visible and always wins; a path absent from both sets is
// denied.
func CanViewField(role Role, path string) bool {
	p := profileFor(role)
	if _, denied := p.hidden[path]; denied {
		return false
	}
	_, ok := p.visible[path]
	return ok
}

// CanEditField reports whether the role may write the field. Editability is
// an independent set; the hidden list is not consulted here.
func CanEditField(role Role, path string) bool {
	_, ok := profileFor(role).editable[path]
	return ok
}

// VisibleFields returns the role's visible paths in sorted order.
func VisibleFields(role Role) []string {
	return sorted(profileFor(role).visible)
}

// EditableFields returns the role's editable paths in sorted order.
func EditableFields(role Role) []string {
	return sorted(profileFor(role).editable)
}

// HiddenFields returns the role's hidden paths in sorted order.
func HiddenFields(role Role) []string {
	return sorted(profileFor(role).hidden)
}

func sorted(set map[string]struct{}) []string {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Redact returns a copy of record with every field the role may not view
// removed. Nested maps are walked with dotted paths; a map-valued node whose
// own path is hidden is dropped whole, which is how a bare "parentInfo" entry
// in a hidden list blanks the subtree without any tree-matching in the
// membership checks.
func Redact(role Role, record map[string]interface{}) map[string]interface{} {
	return redact(role, record, "")
}

func redact(role Role, node map[string]interface{}, prefix string) map[string]interface{} {
	out := make(map[string]interface{}, len(node))
	p := profileFor(role)
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if _, denied := p.hidden[path]; denied {
			continue
		}
		if child, ok := value.(map[string]interface{}); ok {
			kept := redact(role, child, path)
			if len(kept) > 0 {
				out[key] = kept
			}
			continue
		}
		if _, ok := p.visible[path]; ok {
			out[key] = value
		}
	}
	return out
}
