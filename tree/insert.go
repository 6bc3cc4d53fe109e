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

package tree

import (
	"sort"

	"rivaas.dev/routetable/route"
)

// Insert adds rt to the tree, expanding it into every truncation it permits
// and wiring each one as its own terminal path.
//
// Insert is not safe for concurrent use with itself or with Match; callers
// serialize writes and publish the result to readers under their own lock
// (the façade uses a reader-writer lock around the tree for this).
func (root *Node) Insert(rt *route.Route) {
	for _, length := range rt.Truncations() {
		node := root
		for i := 0; i < length; i++ {
			node = node.child(rt, rt.Segments[i])
		}
		node.setTerminal(rt)
	}
}

// child resolves (creating on miss) the Node reached by traversing seg from
// n.
func (n *Node) child(rt *route.Route, seg route.Segment) *Node {
	switch seg.Kind {
	case route.Static:
		if n.static == nil {
			n.static = make(map[string]*Node)
		}
		child, ok := n.static[seg.Literal]
		if !ok {
			child = &Node{}
			n.static[seg.Literal] = child
		}
		return child

	case route.Dynamic:
		if seg.HasDefault {
			// The default belongs on n, the node the matcher stops at when
			// this segment is omitted (a shorter truncation never descends
			// into the child dynamicChild returns below).
			n.defaultName = seg.Name
			n.defaultValue = seg.Default
			n.hasDefault = true
		}
		return n.dynamicChild(rt, seg)

	case route.CatchAll:
		if n.catchAll == nil {
			n.catchAll = &catchAllChild{
				paramName:   seg.Name,
				constraints: seg.Constraints,
				node:        &Node{},
			}
		}
		return n.catchAll.node

	case route.Wildcard:
		if n.wildcard == nil {
			n.wildcard = &Node{}
		}
		return n.wildcard

	default:
		panic("tree: unknown segment kind")
	}
}

func (n *Node) dynamicChild(rt *route.Route, seg route.Segment) *Node {
	if n.dynamic == nil {
		n.dynamic = make(map[string][]*dynamicCandidate)
	}
	key := route.ConstraintSetKey(seg.Constraints)
	candidates := n.dynamic[seg.Name]

	for _, cand := range candidates {
		if cand.constraintKey == key {
			if rt.Priority > cand.priority {
				cand.priority = rt.Priority
			}
			resortCandidates(candidates)
			return cand.node
		}
	}

	cand := &dynamicCandidate{
		paramName:     seg.Name,
		constraints:   seg.Constraints,
		constraintKey: key,
		node:          &Node{},
		priority:      rt.Priority,
	}
	if len(candidates) == 0 {
		n.dynamicOrder = append(n.dynamicOrder, seg.Name)
	}
	candidates = append(candidates, cand)
	resortCandidates(candidates)
	n.dynamic[seg.Name] = candidates
	return cand.node
}

// resortCandidates re-sorts a param name's candidate list in place by the
// dynamic tie-break ordering:
//  1. lower type priority first,
//  2. among equal type priority, higher route priority first,
//  3. remaining ties: insertion order (stable).
//
// sort.SliceStable preserves the relative order of elements the comparator
// considers equal, so repeatedly stable-sorting a slice that only grows by
// appending at the tail preserves true insertion order across candidates
// that have never been distinguished by the first two keys.
func resortCandidates(candidates []*dynamicCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := typePriority(candidates[i].constraints), typePriority(candidates[j].constraints)
		if pi != pj {
			return pi < pj
		}
		return candidates[i].priority > candidates[j].priority
	})
}

func typePriority(constraints []route.Constraint) int {
	const none = int(^uint(0) >> 1) // max int, representing infinity
	best := none
	for _, c := range constraints {
		if p := c.Kind.TypePriority(); p < best {
			best = p
		}
	}
	return best
}
