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

// Package routetable implements a URL route matcher: given a registry of
// declarative route patterns and an incoming request path, it returns the
// single handler that best matches, together with the extracted path
// parameters.
//
// # Pattern grammar
//
// A pattern is a sequence of `/`-separated segments. A segment is a literal
// (case-insensitive), a `{name}` dynamic capture, a `{**name}` catch-all, or
// a bare `*` wildcard as the final segment:
//
//	r := routetable.New()
//	r.AddRoute("/users/{id:int}", handler)
//	r.AddRoute("/users/{id:int}/posts/{slug}", handler)
//	r.AddRoute("/files/{**path}", handler)
//	r.AddRoute("/assets/*", handler)
//
// Dynamic segments may carry one or more colon-separated constraints
// (`{id:int:range(1,1000)}`), an optional marker (`{id?}`), or a default
// value (`{id=0}`), but never both on the same segment.
//
// # Matching
//
//	result := r.Match("/users/42/posts/hello-world")
//	if result.IsMatch {
//	    handler := result.Route.Handler
//	    id := result.Params["id"]      // "42"
//	    slug := result.Params["slug"]  // "hello-world"
//	}
//
// # Concurrency
//
// A *Router is safe for concurrent use. Registration (AddRoute,
// AddController, SetIndexRoute) is serialized under an exclusive lock;
// Match takes only a read lock, so concurrent matches never block each
// other and never observe a partially inserted route.
//
// # Scope
//
// This package implements route matching only: no HTTP semantics, no
// route reversal / URL building, and no parameter binding to typed struct
// fields. Those concerns belong to a caller built on top of this package.
package routetable
