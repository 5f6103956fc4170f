// Package domain defines the event model shared by the dispatcher and its collaborators.
// Events are addressed by name; concrete event records are expanded into several names
// through their static type metadata.
package domain

import "strings"

// EventName is the string key under which listeners are looked up at fire time.
type EventName string

// String returns the event name as a string.
func (n EventName) String() string {
	return string(n)
}

// Pattern is a subscription key. It is either an exact event name or a wildcard
// pattern ending in WildcardSuffix.
type Pattern string

const (
	// Separator splits hierarchical event names into segments.
	Separator = "."

	// Wildcard is the terminal segment that turns a pattern into a prefix match.
	Wildcard = "*"

	// WildcardSuffix is the separator plus the wildcard segment.
	WildcardSuffix = Separator + Wildcard
)

// String returns the pattern as a string.
func (p Pattern) String() string {
	return string(p)
}

// IsWildcard reports whether the pattern ends in the wildcard segment.
func (p Pattern) IsWildcard() bool {
	return strings.HasSuffix(string(p), WildcardSuffix)
}

// Prefix returns the literal prefix of a wildcard pattern, separator included.
// For "foo.*" it returns "foo.". Exact patterns return themselves.
func (p Pattern) Prefix() string {
	if !p.IsWildcard() {
		return string(p)
	}
	return strings.TrimSuffix(string(p), Wildcard)
}

// Payload is the ordered argument tuple handed to listeners.
type Payload []any

// TypeInfo is the statically declared metadata of an event record type.
// Name is the record's own type name, Tags the capability interfaces it satisfies
// (directly or transitively) and Ancestors its base abstractions, nearest first.
type TypeInfo struct {
	Name      EventName
	Tags      []EventName
	Ancestors []EventName
}

// Names returns the lookup keys of the record in derivation order:
// own name, then capability tags, then ancestors. Duplicates are dropped.
func (ti TypeInfo) Names() []EventName {
	names := make([]EventName, 0, 1+len(ti.Tags)+len(ti.Ancestors))
	seen := make(map[EventName]struct{}, cap(names))

	add := func(n EventName) {
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}

	add(ti.Name)
	for _, tag := range ti.Tags {
		add(tag)
	}
	for _, ancestor := range ti.Ancestors {
		add(ancestor)
	}
	return names
}

// Described is implemented by event records that carry their own metadata.
type Described interface {
	EventType() TypeInfo
}
