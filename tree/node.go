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

// Package tree implements the radix-style routing tree and its
// depth-first-search-with-backtracking matcher.
//
// The tree is a strict DAG rooted at a sentinel Node. Parents own children
// exclusively; there are no back-pointers, so backtracking during a match is
// encoded entirely in the recursive call stack, never in the tree itself.
package tree

import "rivaas.dev/routetable/route"

// Node is one vertex of the routing tree. A Node may be any mix of: a
// static-literal parent, a dynamic-candidate parent, a wildcard parent, a
// catch-all parent, and a terminal (routable) node. These are independent
// facets, not mutually exclusive, since e.g. "/products/{category}" and
// "/products/{category}/{id}" share the same dynamic-candidate Node as both
// a terminal and a further dynamic parent.
type Node struct {
	static   map[string]*Node
	dynamic  map[string][]*dynamicCandidate
	// dynamicOrder records the insertion order of distinct param names in
	// dynamic, so matching iterates buckets deterministically instead of in
	// Go's unspecified map order.
	dynamicOrder []string
	wildcard     *Node
	catchAll     *catchAllChild

	term *terminal

	// defaultName/defaultValue/hasDefault record a defaulted Dynamic child's
	// default, attached here on the parent because a shorter truncation that
	// omits that child stops exactly at this Node. matchNode must bind the
	// default the moment it visits n, before ever looking at the child.
	defaultName  string
	defaultValue string
	hasDefault   bool
}

// dynamicCandidate is one entry in the ordered list of Dynamic children
// sharing a param name but differing by constraint set.
type dynamicCandidate struct {
	paramName     string
	constraints   []route.Constraint
	constraintKey string
	node          *Node
	priority      int // highest Priority of any route that has defined this candidate
}

// catchAllChild is the single CatchAll branch a Node may have.
type catchAllChild struct {
	paramName   string
	constraints []route.Constraint
	node        *Node
}

// terminal records the single highest-priority route registered to end at
// a Node. A Node is routable if and only if term is non-nil.
type terminal struct {
	route    *route.Route
	priority int
}

// NewRoot returns an empty root Node.
func NewRoot() *Node { return &Node{} }

// Routable reports whether n is terminal for at least one inserted route.
func (n *Node) Routable() bool { return n.term != nil }

// Route returns the highest-priority route terminating at n, or nil.
func (n *Node) Route() *route.Route {
	if n.term == nil {
		return nil
	}
	return n.term.route
}

// setTerminal applies the terminal replacement rule: a lower priority than
// the existing terminal is ignored; an equal-or-higher priority replaces it
// (last-writer-wins at equal priority).
func (n *Node) setTerminal(rt *route.Route) {
	if n.term == nil || rt.Priority >= n.term.priority {
		n.term = &terminal{route: rt, priority: rt.Priority}
	}
}
