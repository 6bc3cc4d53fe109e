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
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Kind is a closed tagged variant over every constraint a Dynamic segment
// may carry. Unlike the boxed name→function-pointer table this replaces,
// Kind is exhaustively switched over in Evaluate; there is no way for a
// caller to register a new kind at runtime.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInt
	KindLong
	KindBool
	KindDateTime
	KindDecimal
	KindDouble
	KindFloat
	KindGUID
	KindMinLength
	KindMaxLength
	KindLength
	KindMin
	KindMax
	KindRange
	KindAlpha
	KindRegex
	KindRequired
)

var kindNames = map[string]Kind{
	"int":        KindInt,
	"long":       KindLong,
	"bool":       KindBool,
	"datetime":   KindDateTime,
	"decimal":    KindDecimal,
	"double":     KindDouble,
	"float":      KindFloat,
	"guid":       KindGUID,
	"minlength":  KindMinLength,
	"maxlength":  KindMaxLength,
	"length":     KindLength,
	"min":        KindMin,
	"max":        KindMax,
	"range":      KindRange,
	"alpha":      KindAlpha,
	"regex":      KindRegex,
	"required":   KindRequired,
}

// TypePriority is the minimum "type priority" this constraint contributes to
// a dynamic candidate's tie-break key: int -> 1, guid -> 2, long -> 3,
// anything else -> 10. Lower priority wins ties ahead of less specific
// constraints.
func (k Kind) TypePriority() int {
	switch k {
	case KindInt:
		return 1
	case KindGUID:
		return 2
	case KindLong:
		return 3
	default:
		return 10
	}
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Constraint is a single parsed predicate attached to a Dynamic segment.
// The zero value (KindUnknown) always rejects: an unrecognized constraint
// name makes its node reject every candidate.
type Constraint struct {
	Kind Kind
	Raw  string // the original specifier text, e.g. "range(1,100)"
	Arg1 string
	Arg2 string

	re *regexp.Regexp // compiled at parse time for KindRegex; nil if compile failed
}

// Evaluate reports whether candidate (the raw text captured for a path
// segment) satisfies this constraint. It never panics and never returns an
// error: a malformed regex, an unknown kind, or a candidate that simply
// doesn't parse are all reported as false.
func (c Constraint) Evaluate(candidate string) bool {
	switch c.Kind {
	case KindInt:
		_, err := strconv.ParseInt(candidate, 10, 32)
		return err == nil
	case KindLong:
		_, err := strconv.ParseInt(candidate, 10, 64)
		return err == nil
	case KindBool:
		return strings.EqualFold(candidate, "true") || strings.EqualFold(candidate, "false")
	case KindDateTime:
		return parsesAsDateTime(candidate)
	case KindFloat:
		_, err := strconv.ParseFloat(candidate, 32)
		return err == nil
	case KindDouble, KindDecimal:
		_, err := strconv.ParseFloat(candidate, 64)
		return err == nil
	case KindGUID:
		return isCanonicalGUID(candidate)
	case KindMinLength:
		n, err := strconv.Atoi(c.Arg1)
		return err == nil && len(candidate) >= n
	case KindMaxLength:
		n, err := strconv.Atoi(c.Arg1)
		return err == nil && len(candidate) <= n
	case KindLength:
		if c.Arg2 == "" {
			n, err := strconv.Atoi(c.Arg1)
			return err == nil && len(candidate) == n
		}
		lo, err1 := strconv.Atoi(c.Arg1)
		hi, err2 := strconv.Atoi(c.Arg2)
		return err1 == nil && err2 == nil && len(candidate) >= lo && len(candidate) <= hi
	case KindMin:
		v, err := strconv.ParseInt(candidate, 10, 64)
		bound, berr := strconv.ParseInt(c.Arg1, 10, 64)
		return err == nil && berr == nil && v >= bound
	case KindMax:
		v, err := strconv.ParseInt(candidate, 10, 64)
		bound, berr := strconv.ParseInt(c.Arg1, 10, 64)
		return err == nil && berr == nil && v <= bound
	case KindRange:
		v, err := strconv.ParseInt(candidate, 10, 64)
		lo, lerr := strconv.ParseInt(c.Arg1, 10, 64)
		hi, herr := strconv.ParseInt(c.Arg2, 10, 64)
		return err == nil && lerr == nil && herr == nil && v >= lo && v <= hi
	case KindAlpha:
		if candidate == "" {
			return false
		}
		for _, r := range candidate {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	case KindRegex:
		if c.re == nil {
			return false
		}
		return c.re.MatchString(candidate)
	case KindRequired:
		return candidate != ""
	default:
		return false
	}
}

func parsesAsDateTime(candidate string) bool {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, candidate); err == nil {
			return true
		}
	}
	return false
}

func isCanonicalGUID(candidate string) bool {
	if len(candidate) != 36 {
		return false
	}
	_, err := uuid.Parse(candidate)
	return err == nil
}

// constraintCache memoizes parsed constraints by their textual specifier.
// It is append-only and safe for concurrent use without external locking:
// entries are written once with LoadOrStore and never deleted.
var constraintCache sync.Map // map[string]constraintCacheEntry

type constraintCacheEntry struct {
	constraint Constraint
	err        error
}

// ParseConstraint parses a single constraint specifier, e.g. "int",
// "range(1,100)", or "regex(^[a-z]+$)". spec is the raw text; pattern is
// only used to annotate a returned ConstraintFormatError with the owning
// route pattern for diagnostics.
//
// Unknown constraint names are never an error: they parse successfully into
// a KindUnknown constraint that always evaluates false.
func ParseConstraint(pattern, spec string) (Constraint, error) {
	if v, ok := constraintCache.Load(spec); ok {
		entry := v.(constraintCacheEntry)
		return entry.constraint, entry.err
	}
	c, err := doParseConstraint(pattern, spec)
	if err != nil {
		// Not cached, so each rejected pattern is named in its own error.
		return Constraint{}, err
	}
	actual, _ := constraintCache.LoadOrStore(spec, constraintCacheEntry{constraint: c, err: err})
	entry := actual.(constraintCacheEntry)
	return entry.constraint, entry.err
}

func doParseConstraint(pattern, spec string) (Constraint, error) {
	name := spec
	args := ""
	if open := strings.IndexByte(spec, '('); open >= 0 {
		close := strings.LastIndexByte(spec, ')')
		if close < open {
			return Constraint{}, &ConstraintFormatError{Pattern: pattern, Spec: spec, Message: "unbalanced parentheses"}
		}
		name = spec[:open]
		args = spec[open+1 : close]
	}
	lowerName := strings.ToLower(name)
	kind, known := kindNames[lowerName]
	if !known {
		return Constraint{Kind: KindUnknown, Raw: spec}, nil
	}

	if kind == KindRegex {
		c := Constraint{Kind: KindRegex, Raw: spec, Arg1: args}
		if re, err := regexp.Compile(args); err == nil {
			c.re = re
		}
		return c, nil
	}

	var arg1, arg2 string
	if args != "" {
		parts := strings.SplitN(args, ",", 2)
		arg1 = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			arg2 = strings.TrimSpace(parts[1])
		}
	}

	switch kind {
	case KindInt, KindLong, KindBool, KindDateTime, KindDecimal, KindDouble, KindFloat, KindGUID, KindAlpha, KindRequired:
		if args != "" {
			return Constraint{}, &ConstraintFormatError{Pattern: pattern, Spec: spec, Message: "constraint takes no arguments"}
		}
	case KindMinLength, KindMaxLength, KindMin, KindMax:
		if err := requireInt(arg1); err != nil {
			return Constraint{}, &ConstraintFormatError{Pattern: pattern, Spec: spec, Message: "argument must be an integer"}
		}
	case KindLength:
		if err := requireInt(arg1); err != nil {
			return Constraint{}, &ConstraintFormatError{Pattern: pattern, Spec: spec, Message: "argument must be an integer"}
		}
		if arg2 != "" {
			if err := requireInt(arg2); err != nil {
				return Constraint{}, &ConstraintFormatError{Pattern: pattern, Spec: spec, Message: "second argument must be an integer"}
			}
		}
	case KindRange:
		if err := requireInt(arg1); err != nil || arg2 == "" {
			return Constraint{}, &ConstraintFormatError{Pattern: pattern, Spec: spec, Message: "range requires two integer arguments"}
		}
		if err := requireInt(arg2); err != nil {
			return Constraint{}, &ConstraintFormatError{Pattern: pattern, Spec: spec, Message: "range requires two integer arguments"}
		}
	}

	return Constraint{Kind: kind, Raw: spec, Arg1: arg1, Arg2: arg2}, nil
}

func requireInt(s string) error {
	_, err := strconv.Atoi(s)
	return err
}

// ConstraintSetKey returns a canonical, order-preserving string key for a
// list of constraints, used to decide whether two Dynamic segments sharing a
// param name describe an identical constraint set and should therefore
// collapse onto the same tree candidate.
func ConstraintSetKey(constraints []Constraint) string {
	if len(constraints) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range constraints {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(c.Raw)
	}
	return b.String()
}
