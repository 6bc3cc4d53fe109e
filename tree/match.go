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

import "rivaas.dev/routetable/route"

// MatchResult is the outcome of walking the tree against a request's
// segment array.
type MatchResult struct {
	IsMatch     bool
	Route       *route.Route
	Params      map[string]string
	BestPartial *route.Route
}

// matchState carries the parts of a single Match call that must be threaded
// through every recursive step but don't belong in the recursive call's own
// signature: the request itself, and the running best_partial.
type matchState struct {
	segments []string

	bestPartialSeen    bool
	bestPartialPriority int
	bestPartial         *route.Route

	matched *route.Route
}

// Match walks root against segments using depth-first search with
// backtracking. segments must already be split on `/`, have empty elements
// removed, and be lower-cased by the caller (the façade does this).
func Match(root *Node, segments []string) MatchResult {
	params := make(map[string]string, 4)
	st := &matchState{segments: segments}

	ok := matchNode(root, 0, params, st)

	result := MatchResult{Params: params}
	if ok {
		result.IsMatch = true
		result.Route = st.matched
	}
	result.BestPartial = st.bestPartial
	return result
}

// matchNode visits n: it binds any default this node carries, records n as
// the new best_partial if it is terminal and outranks the current one,
// then either resolves (segments exhausted) or tries each branch kind in
// priority order: static, dynamic, catch-all, wildcard, backtracking into
// the next candidate whenever a branch's subtree fails to produce an exact
// match. It returns true iff an exact (fully-consumed, routable) match was
// found somewhere in n's subtree; on false, every binding this call made
// (a default, a dynamic capture) has already been undone, so a caller
// trying its next sibling candidate sees params exactly as it found them.
func matchNode(n *Node, i int, params map[string]string, st *matchState) bool {
	wroteDefault := false
	if n.hasDefault {
		if _, exists := params[n.defaultName]; !exists {
			params[n.defaultName] = n.defaultValue
			wroteDefault = true
		}
	}

	if n.term != nil {
		if !st.bestPartialSeen || n.term.priority > st.bestPartialPriority {
			st.bestPartialSeen = true
			st.bestPartialPriority = n.term.priority
			st.bestPartial = n.term.route
		}
	}

	if i == len(st.segments) {
		if n.Routable() {
			st.matched = n.term.route
			return true
		}
		if wroteDefault {
			delete(params, n.defaultName)
		}
		return false
	}

	seg := st.segments[i]

	// a. Static: exact literal match.
	if child, ok := n.static[seg]; ok {
		if matchNode(child, i+1, params, st) {
			return true
		}
	}

	// b. Dynamic: every param-name bucket, each already ordered by the
	// candidate tie-break rule.
	for _, name := range n.dynamicOrder {
		for _, cand := range n.dynamic[name] {
			if !evaluateAll(cand.constraints, seg) {
				continue
			}
			prev, existed := params[cand.paramName]
			params[cand.paramName] = seg
			if matchNode(cand.node, i+1, params, st) {
				return true
			}
			if existed {
				params[cand.paramName] = prev
			} else {
				delete(params, cand.paramName)
			}
		}
	}

	// c. CatchAll: consumes every remaining segment as one string.
	if n.catchAll != nil {
		remainder := buildCatchAllRemainder(st.segments[i:])
		if evaluateAll(n.catchAll.constraints, remainder) {
			prev, existed := params[n.catchAll.paramName]
			params[n.catchAll.paramName] = remainder
			if matchNode(n.catchAll.node, len(st.segments), params, st) {
				return true
			}
			if existed {
				params[n.catchAll.paramName] = prev
			} else {
				delete(params, n.catchAll.paramName)
			}
		}
	}

	// d. Wildcard: consumes every remaining segment, unconditionally.
	if n.wildcard != nil {
		capture := buildWildcardCapture(st.segments[i:])
		prev, existed := params["wildcard"]
		params["wildcard"] = capture
		if matchNode(n.wildcard, len(st.segments), params, st) {
			return true
		}
		if existed {
			params["wildcard"] = prev
		} else {
			delete(params, "wildcard")
		}
	}

	if wroteDefault {
		delete(params, n.defaultName)
	}
	return false
}

func evaluateAll(constraints []route.Constraint, candidate string) bool {
	for _, c := range constraints {
		if !c.Evaluate(candidate) {
			return false
		}
	}
	return true
}
