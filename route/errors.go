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

package route

import (
	"errors"
	"strconv"
)

var (
	// ErrPatternSyntax is the family sentinel for PatternSyntaxError. Match
	// against it with errors.Is when the specific offset/message don't matter.
	ErrPatternSyntax = errors.New("pattern syntax error")

	// ErrStructural is the family sentinel for StructuralError.
	ErrStructural = errors.New("structural error")

	// ErrConstraintFormat is the family sentinel for ConstraintFormatError.
	ErrConstraintFormat = errors.New("constraint format error")
)

// PatternSyntaxError reports a malformed pattern string: brace mismatch,
// empty parameter name, an unknown marker, or a bad `=`/`?` combination.
// Raised only at registration time, never at match time.
type PatternSyntaxError struct {
	Pattern string
	Offset  int
	Message string
}

func (e *PatternSyntaxError) Error() string {
	return "pattern syntax error at offset " + strconv.Itoa(e.Offset) + " in " + quote(e.Pattern) + ": " + e.Message
}

func (e *PatternSyntaxError) Unwrap() error { return ErrPatternSyntax }

// StructuralError reports a compiled segment list that violates a structural
// invariant: optional before required, wildcard/catch-all not last, or a
// catch-all marked optional.
type StructuralError struct {
	Pattern string
	Message string
}

func (e *StructuralError) Error() string {
	return "structural error in " + quote(e.Pattern) + ": " + e.Message
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

// ConstraintFormatError reports an unparseable constraint specifier (wrong
// argument count, non-numeric bound). Unknown constraint *names* are not an
// error here; they are accepted and simply reject every candidate at match
// time.
type ConstraintFormatError struct {
	Pattern string
	Spec    string
	Message string
}

func (e *ConstraintFormatError) Error() string {
	return "constraint format error for " + quote(e.Spec) + " in " + quote(e.Pattern) + ": " + e.Message
}

func (e *ConstraintFormatError) Unwrap() error { return ErrConstraintFormat }

func quote(s string) string { return strconv.Quote(s) }
