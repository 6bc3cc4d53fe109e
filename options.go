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

// Option configures a Router at construction time.
type Option func(*Router)

// WithDiagnostics sets a handler for the router's DiagnosticEvents.
//
// Example with logging:
//
//	import "log/slog"
//
//	h := routetable.DiagnosticHandlerFunc(func(e routetable.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := routetable.New(routetable.WithDiagnostics(h))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithBloomFilterSize sets the bit-array size of the static-path fast-path
// bloom filter. Larger sizes reduce false positives at the cost of memory.
//
// Default: 1024. Recommended: 2-3x the expected number of pure-static
// routes.
func WithBloomFilterSize(size uint64) Option {
	return func(r *Router) {
		r.bloomSize = size
	}
}

// WithBloomFilterHashFunctions sets the number of hash functions used by
// the static-path fast-path bloom filter. Values outside [1, 10] are
// clamped.
//
// Default: 3.
func WithBloomFilterHashFunctions(n int) Option {
	return func(r *Router) {
		r.bloomHashFuncs = max(1, min(n, 10))
	}
}

// RouteOption configures a single route at registration time.
type RouteOption func(*routeConfig)

type routeConfig struct {
	priority int
	roles    []string
}

// WithPriority sets a route's tie-break priority. Higher wins; equal
// priorities resolve last-writer-wins. Default 0.
func WithPriority(priority int) RouteOption {
	return func(c *routeConfig) {
		c.priority = priority
	}
}

// WithRoles attaches an opaque list of authorization roles to a route. The
// router never interprets this list; it is passed through for the
// caller's own authorization collaborator to read back off the matched
// Route.
func WithRoles(roles ...string) RouteOption {
	return func(c *routeConfig) {
		c.roles = roles
	}
}
