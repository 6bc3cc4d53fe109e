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

import "strings"

// compileSegment turns one raw segment string (the text between two `/`
// separators, as produced by splitSegments) into a typed Segment: a bare
// `*` is a Wildcard, a `{...}` span is a parameter, everything else is a
// lower-cased Static literal.
func compileSegment(pattern, raw string) (Segment, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "*" {
		return Segment{Kind: Wildcard}, nil
	}

	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		return compileParam(pattern, raw[1:len(raw)-1])
	}

	return Segment{Kind: Static, Literal: strings.ToLower(raw)}, nil
}

// compileParam compiles the interior of a `{...}` segment: name, optional
// default, optional marker, and a colon-delimited constraint list where a
// trailing regex(...) constraint is allowed to contain embedded colons.
func compileParam(pattern, inner string) (Segment, error) {
	namePart, constraintsText := splitNameAndConstraints(inner)

	optional := false
	if strings.HasSuffix(namePart, "?") {
		optional = true
		namePart = strings.TrimSuffix(namePart, "?")
	}
	if constraintsText != "" && strings.HasSuffix(constraintsText, "?") {
		if optional {
			return Segment{}, &PatternSyntaxError{Pattern: pattern, Message: "optional marker cannot appear on both the name and the constraint list"}
		}
		optional = true
		constraintsText = strings.TrimSuffix(constraintsText, "?")
	}

	hasDefault := false
	defaultValue := ""
	if eq := strings.IndexByte(namePart, '='); eq >= 0 {
		hasDefault = true
		defaultValue = namePart[eq+1:]
		namePart = namePart[:eq]
	}

	if hasDefault && optional {
		return Segment{}, &PatternSyntaxError{Pattern: pattern, Message: "a parameter cannot combine a default value with the optional marker"}
	}

	if strings.HasPrefix(namePart, "**") {
		name := strings.TrimPrefix(namePart, "**")
		if name == "" {
			return Segment{}, &PatternSyntaxError{Pattern: pattern, Message: "catch-all parameter must be named"}
		}
		if optional {
			return Segment{}, &StructuralError{Pattern: pattern, Message: "catch-all parameter cannot be optional"}
		}
		constraints, err := parseConstraintList(pattern, constraintsText)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: CatchAll, Name: strings.ToLower(name), Constraints: constraints}, nil
	}

	if namePart == "" {
		return Segment{}, &PatternSyntaxError{Pattern: pattern, Message: "empty parameter name"}
	}

	constraints, err := parseConstraintList(pattern, constraintsText)
	if err != nil {
		return Segment{}, err
	}

	return Segment{
		Kind:        Dynamic,
		Name:        strings.ToLower(namePart),
		Constraints: constraints,
		Optional:    optional,
		Default:     defaultValue,
		HasDefault:  hasDefault,
		tailable:    optional || hasDefault,
	}, nil
}

// splitNameAndConstraints splits a parameter's interior text on the first
// top-level `:`. "Top-level" means not the `:` that may appear inside a
// regex(...) constraint's own argument; since only a name (never containing
// `(`) precedes the constraint list, a plain first-colon split is exact.
func splitNameAndConstraints(inner string) (name, constraints string) {
	if idx := strings.IndexByte(inner, ':'); idx >= 0 {
		return inner[:idx], inner[idx+1:]
	}
	return inner, ""
}

// parseConstraintList splits a constraint-specifier list on `:`, except
// that once a `regex(` specifier begins, everything remaining is consumed as
// that single specifier, since a regex may legally contain colons of its
// own (the entire span between the first `(` and the last `)` belongs to
// that one constraint).
func parseConstraintList(pattern, text string) ([]Constraint, error) {
	if text == "" {
		return nil, nil
	}

	var tokens []string
	for len(text) > 0 {
		if isRegexSpecifier(text) {
			tokens = append(tokens, text)
			break
		}
		idx := strings.IndexByte(text, ':')
		if idx < 0 {
			tokens = append(tokens, text)
			break
		}
		tokens = append(tokens, text[:idx])
		text = text[idx+1:]
	}

	constraints := make([]Constraint, 0, len(tokens))
	for _, tok := range tokens {
		c, err := ParseConstraint(pattern, tok)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}

func isRegexSpecifier(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "regex(")
}
