package state

import (
	"fmt"
	"sort"
	"strings"
)

// attribEntry pairs an attribute with the priority it was set at.
type attribEntry struct {
	attrib   Attrib
	priority int
}

// RenderState is an immutable collection of render attributes, at most one per
// kind, each carrying a priority. States are never modified in place; With,
// Without, and Compose return new states sharing nothing with the receiver.
// A nil *RenderState behaves like the empty state.
type RenderState struct {
	entries map[AttribKind]attribEntry
}

// Empty returns a state with no attributes set.
//
// Returns:
//   - *RenderState: the empty state
func Empty() *RenderState {
	return &RenderState{}
}

// With returns a copy of the state with the given attribute set at the given
// priority. An existing attribute of the same kind is replaced regardless of
// its priority. A nil attribute returns the receiver unchanged.
//
// Parameters:
//   - a: the attribute to set
//   - priority: the priority recorded for the attribute, consulted during composition
//
// Returns:
//   - *RenderState: a new state containing the attribute
func (rs *RenderState) With(a Attrib, priority int) *RenderState {
	if a == nil {
		return rs
	}
	entries := make(map[AttribKind]attribEntry, rs.Len()+1)
	if rs != nil {
		for k, e := range rs.entries {
			entries[k] = e
		}
	}
	entries[a.Kind()] = attribEntry{attrib: a, priority: priority}
	return &RenderState{entries: entries}
}

// Without returns a copy of the state with the attribute of the given kind
// removed. If the kind is not present the receiver is returned unchanged.
//
// Parameters:
//   - kind: the attribute kind to remove
//
// Returns:
//   - *RenderState: a state without the given kind
func (rs *RenderState) Without(kind AttribKind) *RenderState {
	if !rs.Has(kind) {
		return rs
	}
	entries := make(map[AttribKind]attribEntry, len(rs.entries)-1)
	for k, e := range rs.entries {
		if k == kind {
			continue
		}
		entries[k] = e
	}
	return &RenderState{entries: entries}
}

// Attrib retrieves the attribute of the given kind.
//
// Parameters:
//   - kind: the attribute kind to look up
//
// Returns:
//   - Attrib: the attribute, or nil if not present
//   - bool: true if an attribute of the kind is present
func (rs *RenderState) Attrib(kind AttribKind) (Attrib, bool) {
	if rs == nil {
		return nil, false
	}
	e, ok := rs.entries[kind]
	if !ok {
		return nil, false
	}
	return e.attrib, true
}

// Priority retrieves the priority the attribute of the given kind was set at.
//
// Parameters:
//   - kind: the attribute kind to look up
//
// Returns:
//   - int: the priority, or 0 if the kind is not present
func (rs *RenderState) Priority(kind AttribKind) int {
	if rs == nil {
		return 0
	}
	return rs.entries[kind].priority
}

// Has reports whether an attribute of the given kind is present.
//
// Parameters:
//   - kind: the attribute kind to check
//
// Returns:
//   - bool: true if present
func (rs *RenderState) Has(kind AttribKind) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.entries[kind]
	return ok
}

// Len returns the number of attributes in the state.
//
// Returns:
//   - int: the attribute count
func (rs *RenderState) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.entries)
}

// IsEmpty reports whether the state has no attributes.
//
// Returns:
//   - bool: true if no attribute is set
func (rs *RenderState) IsEmpty() bool {
	return rs.Len() == 0
}

// Kinds returns the attribute kinds present in the state in ascending order.
//
// Returns:
//   - []AttribKind: the sorted kinds
func (rs *RenderState) Kinds() []AttribKind {
	if rs.Len() == 0 {
		return nil
	}
	kinds := make([]AttribKind, 0, len(rs.entries))
	for k := range rs.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Compose merges a layer state on top of the receiver and returns the result.
// For kinds present in both states the layer's attribute wins unless the
// receiver holds it at a strictly higher priority. Neither input is modified.
//
// Parameters:
//   - layer: the state layered on top of the receiver
//
// Returns:
//   - *RenderState: the composed state
func (rs *RenderState) Compose(layer *RenderState) *RenderState {
	if layer.Len() == 0 {
		if rs == nil {
			return Empty()
		}
		return rs
	}
	if rs.Len() == 0 {
		return layer
	}
	entries := make(map[AttribKind]attribEntry, len(rs.entries)+len(layer.entries))
	for k, e := range rs.entries {
		entries[k] = e
	}
	for k, e := range layer.entries {
		if base, ok := entries[k]; ok && base.priority > e.priority {
			continue
		}
		entries[k] = e
	}
	return &RenderState{entries: entries}
}

// Key returns a canonical string encoding of the state. Two states with the
// same attributes at the same priorities produce the same key, independent of
// the order the attributes were set. Used for deduplication and pipeline
// cache lookups.
//
// Returns:
//   - string: the canonical key, e.g. "shader=shadow_depth@25|color_write=0x0@10000"
func (rs *RenderState) Key() string {
	if rs.Len() == 0 {
		return "empty"
	}
	kinds := rs.Kinds()
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		e := rs.entries[k]
		parts = append(parts, fmt.Sprintf("%s@%d", e.attrib.Key(), e.priority))
	}
	return strings.Join(parts, "|")
}

// Equal reports whether two states hold the same attributes at the same
// priorities.
//
// Parameters:
//   - other: the state to compare against
//
// Returns:
//   - bool: true if the states are equivalent
func (rs *RenderState) Equal(other *RenderState) bool {
	if rs.Len() != other.Len() {
		return false
	}
	return rs.Key() == other.Key()
}
