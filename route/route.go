// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package route implements the first three pipeline stages of the route
// table: constraint parsing, pattern parsing, and segment compilation. It
// produces immutable Route values that the tree package inserts and its
// matcher walks.
package route

// SegmentKind tags a compiled RouteSegment.
type SegmentKind uint8

const (
	Static SegmentKind = iota
	Dynamic
	Wildcard
	CatchAll
)

func (k SegmentKind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Wildcard:
		return "wildcard"
	case CatchAll:
		return "catchall"
	default:
		return "unknown"
	}
}

// Segment is a single compiled element of a route pattern.
type Segment struct {
	Kind        SegmentKind
	Literal     string // Static only; lower-cased
	Name        string // Dynamic / CatchAll; lower-cased
	Constraints []Constraint
	Optional    bool   // Dynamic only
	Default     string // Dynamic only
	HasDefault  bool   // Dynamic only

	// tailable is true when this segment may be omitted from a truncation:
	// it is Optional or carries a Default. Computed once at compile time.
	tailable bool
}

// Route is an immutable, compiled route: a pattern, the opaque handler
// identity the caller associated with it, its tie-break priority, and its
// compiled segment list. Routes are created once at registration and never
// mutated afterward; the tree holds identity references into them, never
// copies that could drift.
type Route struct {
	ID       uint64
	Pattern  string
	Handler  any
	Priority int
	Roles    []string

	Segments []Segment
}

// Compile parses, compiles, and structurally validates pattern, returning an
// immutable Route on success. On failure the returned error is one of
// *PatternSyntaxError, *StructuralError, or *ConstraintFormatError; no
// partial state escapes, a rejected pattern never reaches the tree.
func Compile(id uint64, pattern string, handler any, priority int, roles []string) (*Route, error) {
	rawSegments, err := splitSegments(pattern)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(rawSegments))
	for _, raw := range rawSegments {
		seg, err := compileSegment(pattern, raw)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	if err := validateStructure(pattern, segments); err != nil {
		return nil, err
	}

	return &Route{
		ID:       id,
		Pattern:  pattern,
		Handler:  handler,
		Priority: priority,
		Roles:    roles,
		Segments: segments,
	}, nil
}

// validateStructure enforces the pattern's structural invariants: a
// Wildcard or CatchAll, if present, must be the final segment; a required
// segment cannot follow an optional or defaulted one. An optional CatchAll
// is not checked here; compileParam already rejects it.
func validateStructure(pattern string, segments []Segment) error {
	seenTailable := false
	for i, seg := range segments {
		if seenTailable && !seg.tailable {
			return &StructuralError{Pattern: pattern, Message: "a required segment cannot follow an optional or defaulted segment"}
		}
		if seg.tailable {
			seenTailable = true
		}
		if seg.Kind == Wildcard || seg.Kind == CatchAll {
			if i != len(segments)-1 {
				return &StructuralError{Pattern: pattern, Message: "wildcard or catch-all must be the final segment"}
			}
		}
	}
	return nil
}

// TailStart returns the index of the first segment in a maximal tailable
// (optional-or-default) suffix of r.Segments. Truncation lengths range over
// [TailStart, len(Segments)] inclusive; see Truncations.
func (r *Route) TailStart() int {
	n := len(r.Segments)
	tailStart := n
	for i := n - 1; i >= 0; i-- {
		if !r.Segments[i].tailable {
			break
		}
		tailStart = i
	}
	return tailStart
}

// Truncations returns every prefix length at which this route may terminate
// in the tree: one real tree path per omittable tail length, so that a
// request ending early on an optional or defaulted segment still resolves.
// The full route (len(Segments)) is always included.
func (r *Route) Truncations() []int {
	tailStart := r.TailStart()
	n := len(r.Segments)
	lengths := make([]int, 0, n-tailStart+1)
	for l := tailStart; l <= n; l++ {
		lengths = append(lengths, l)
	}
	return lengths
}
