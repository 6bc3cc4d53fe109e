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

package routetable

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/routetable/internal/bloom"
	"rivaas.dev/routetable/route"
	"rivaas.dev/routetable/tree"
)

// Router is the top-level façade: it owns the routing tree and a flat list
// of registered routes, accepts additions, and answers match queries.
//
// A Router is safe for concurrent use. Writes (AddRoute, AddController,
// SetIndexRoute) are serialized under an exclusive lock; Match takes only a
// read lock, so reads never block each other and never observe a partially
// inserted route.
//
// The zero value is not usable; construct with New.
type Router struct {
	mu     sync.RWMutex
	root   *tree.Node
	routes []*route.Route

	controllers map[string]struct{}
	indexRoute  *route.Route

	// staticBloom/staticIndex are a fast path for the full paths of
	// pure-static routes (no Dynamic/Wildcard/CatchAll segments). Every
	// entry is re-resolved through the tree on each registration and kept
	// only while the tree walk answers its path with a match and no
	// parameters, so a hit there is exactly what a full tree walk would
	// have produced.
	staticBloom *bloom.Filter
	staticIndex map[string]*route.Route

	nextID atomic.Uint64

	diagnostics    DiagnosticHandler
	bloomSize      uint64
	bloomHashFuncs int
}

// New constructs a Router. Construction never fails: a Router is a plain
// in-memory data structure with no I/O, so there is nothing to report an
// error about at this stage (bad options are defensively clamped, never
// rejected).
func New(opts ...Option) *Router {
	r := &Router{
		root:           tree.NewRoot(),
		controllers:    make(map[string]struct{}),
		staticIndex:    make(map[string]*route.Route),
		bloomSize:      1024,
		bloomHashFuncs: 3,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.staticBloom = bloom.New(r.bloomSize, r.bloomHashFuncs)
	return r
}

// AddRoute compiles pattern and inserts it into the tree. It is equivalent
// to AddRouteContext(context.Background(), ...).
func (r *Router) AddRoute(pattern string, handler any, opts ...RouteOption) (*route.Route, error) {
	return r.AddRouteContext(context.Background(), pattern, handler, opts...)
}

// AddRouteContext compiles pattern and inserts it into the tree, returning
// the immutable Route on success. On failure (a *route.PatternSyntaxError,
// *route.StructuralError, or *route.ConstraintFormatError) the tree is left
// completely unchanged.
//
// ctx is used only to read an already-active trace.SpanContext for
// DiagnosticEvents; no span is ever started here.
func (r *Router) AddRouteContext(ctx context.Context, pattern string, handler any, opts ...RouteOption) (*route.Route, error) {
	cfg := routeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := r.nextID.Add(1)
	rt, err := route.Compile(id, pattern, handler, cfg.priority, cfg.roles)
	if err != nil {
		r.emit(ctx, DiagnosticEvent{
			Kind:    DiagnosticPatternRejected,
			Message: err.Error(),
			Fields:  map[string]any{"pattern": pattern},
		})
		return nil, err
	}

	if name, unknown := firstUnknownConstraint(rt); unknown {
		r.emit(ctx, DiagnosticEvent{
			Kind:    DiagnosticUnknownConstraint,
			Message: "route registered with an unrecognized constraint name; matches against it will always fail",
			Fields:  map[string]any{"pattern": pattern, "param": name},
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.root.Insert(rt)
	r.routes = append(r.routes, rt)

	if literal, ok := staticFullPath(rt); ok {
		r.staticBloom.Add([]byte(literal))
		r.staticIndex[literal] = rt
	}
	// Re-resolve every fast-path entry through the tree: rt may have added a
	// higher-priority terminal or a default on one of those paths.
	for literal := range r.staticIndex {
		res := tree.Match(r.root, strings.Split(literal, "/"))
		if res.IsMatch && len(res.Params) == 0 {
			r.staticIndex[literal] = res.Route
		} else {
			delete(r.staticIndex, literal)
		}
	}

	return rt, nil
}

// AddController registers name so that a single-segment, otherwise
// unmatched request for "<name>" is retried once against "<name>/index"
// before being reported as a miss.
func (r *Router) AddController(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[strings.ToLower(name)] = struct{}{}
}

// SetIndexRoute configures the handler returned for an empty-path request.
func (r *Router) SetIndexRoute(handler any, opts ...RouteOption) {
	cfg := routeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := r.nextID.Add(1)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexRoute = &route.Route{ID: id, Pattern: "/", Handler: handler, Priority: cfg.priority, Roles: cfg.roles}
}

// Match resolves path against the registered routes. It is equivalent to
// MatchContext(context.Background(), path).
func (r *Router) Match(path string) tree.MatchResult {
	return r.MatchContext(context.Background(), path)
}

// MatchContext splits path on `/`, drops empties, lower-cases it, resolves
// an empty path to the index route, runs the matcher, and retries once
// against "<name>/index" when the first attempt is a clean NoMatch against
// a single known controller segment.
func (r *Router) MatchContext(ctx context.Context, path string) tree.MatchResult {
	segments := splitPath(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(segments) == 0 {
		if r.indexRoute == nil {
			return tree.MatchResult{Params: map[string]string{}}
		}
		return tree.MatchResult{IsMatch: true, Route: r.indexRoute, Params: map[string]string{}}
	}

	joined := strings.Join(segments, "/")
	if r.staticBloom.Test([]byte(joined)) {
		if rt, ok := r.staticIndex[joined]; ok {
			return tree.MatchResult{IsMatch: true, Route: rt, Params: map[string]string{}}
		}
	}

	result := tree.Match(r.root, segments)

	// A clean NoMatch: no exact match and no best_partial either.
	if !result.IsMatch && result.BestPartial == nil && len(segments) == 1 {
		if _, ok := r.controllers[segments[0]]; ok {
			retry := tree.Match(r.root, []string{segments[0], "index"})
			if retry.IsMatch {
				return retry
			}
		}
	}

	if result.IsMatch && hasWildcardOrCatchAll(result.Route) && result.BestPartial != nil && result.BestPartial != result.Route {
		r.emit(ctx, DiagnosticEvent{
			Kind:    DiagnosticWildcardFallback,
			Message: "matched via wildcard or catch-all with a more specific near-miss available",
			Fields:  map[string]any{"path": path},
		})
	}

	return result
}

// Routes returns a priority-sorted snapshot of every live route. Mutating
// the returned slice has no effect on the router; its elements are the
// router's own *route.Route values, shared with the tree.
func (r *Router) Routes() []*route.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*route.Route, len(r.routes))
	copy(out, r.routes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

func (r *Router) emit(ctx context.Context, e DiagnosticEvent) {
	if r.diagnostics == nil {
		return
	}
	e.Span = trace.SpanContextFromContext(ctx)
	r.diagnostics.HandleDiagnostic(e)
}

// splitPath lower-cases path and splits it on `/`, dropping empty
// segments.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	rawParts := strings.Split(trimmed, "/")
	segments := make([]string, 0, len(rawParts))
	for _, p := range rawParts {
		if p == "" {
			continue
		}
		segments = append(segments, strings.ToLower(p))
	}
	return segments
}

// staticFullPath reports the full lower-cased, "/"-joined literal path for
// rt if rt is pure-static (every segment is route.Static); such paths are
// the candidates for the bloom-filtered fast path.
func staticFullPath(rt *route.Route) (string, bool) {
	if len(rt.Segments) == 0 {
		return "", false
	}
	parts := make([]string, len(rt.Segments))
	for i, seg := range rt.Segments {
		if seg.Kind != route.Static {
			return "", false
		}
		parts[i] = seg.Literal
	}
	return strings.Join(parts, "/"), true
}

func hasWildcardOrCatchAll(rt *route.Route) bool {
	if len(rt.Segments) == 0 {
		return false
	}
	last := rt.Segments[len(rt.Segments)-1]
	return last.Kind == route.Wildcard || last.Kind == route.CatchAll
}

func firstUnknownConstraint(rt *route.Route) (string, bool) {
	for _, seg := range rt.Segments {
		for _, c := range seg.Constraints {
			if c.Kind == route.KindUnknown {
				return seg.Name, true
			}
		}
	}
	return "", false
}
