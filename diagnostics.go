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

import "go.opentelemetry.io/otel/trace"

// DiagnosticKind tags a DiagnosticEvent. The router's matching behavior
// never depends on whether a diagnostic was observed; diagnostics are
// pure, optional instrumentation.
type DiagnosticKind string

const (
	// DiagnosticPatternRejected fires when AddRoute rejects a pattern at
	// registration (PatternSyntaxError, StructuralError, or
	// ConstraintFormatError).
	DiagnosticPatternRejected DiagnosticKind = "pattern_rejected"

	// DiagnosticUnknownConstraint fires when a pattern is accepted even
	// though one of its constraint specifiers names an unrecognized kind.
	// The route is still registered; every match against the affected node
	// will simply fail.
	DiagnosticUnknownConstraint DiagnosticKind = "unknown_constraint"

	// DiagnosticWildcardFallback fires when Match resolves a request via a
	// Wildcard or CatchAll node while a best_partial from a more specific,
	// non-matching route was also seen along the way.
	DiagnosticWildcardFallback DiagnosticKind = "wildcard_fallback"
)

// DiagnosticEvent is a single informational event surfaced by the router.
// Span carries whatever trace.SpanContext was active on the context.Context
// passed to AddRouteContext/MatchContext, if any, so a caller's handler can
// correlate the event with a request trace without this module depending on
// a tracer or exporter itself.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
	Span    trace.SpanContext
}

// DiagnosticHandler receives DiagnosticEvents. The router calls it
// synchronously and never retries or buffers; a handler that blocks, blocks
// the caller of AddRoute or Match.
type DiagnosticHandler interface {
	HandleDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc adapts a plain function to DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

// HandleDiagnostic implements DiagnosticHandler.
func (f DiagnosticHandlerFunc) HandleDiagnostic(e DiagnosticEvent) { f(e) }
