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

// splitSegments lexes a raw pattern string into the text between its `/`
// separators, respecting brace nesting and the `{{`/`}}` escape.
//
// Segment boundaries are only recognized at brace depth zero; doubled braces
// at depth zero are literal and don't change depth. An unmatched brace is a
// PatternSyntaxError.
func splitSegments(pattern string) ([]string, error) {
	p := strings.TrimPrefix(pattern, "/")

	var segments []string
	var cur strings.Builder
	depth := 0
	n := len(p)

	for i := 0; i < n; i++ {
		c := p[i]
		switch {
		case c == '{' && depth == 0 && i+1 < n && p[i+1] == '{':
			cur.WriteByte('{')
			i++
		case c == '}' && depth == 0 && i+1 < n && p[i+1] == '}':
			cur.WriteByte('}')
			i++
		case c == '{':
			depth++
			cur.WriteByte(c)
		case c == '}':
			if depth == 0 {
				return nil, &PatternSyntaxError{Pattern: pattern, Offset: i, Message: "unmatched closing brace"}
			}
			depth--
			cur.WriteByte(c)
		case c == '/' && depth == 0:
			if cur.Len() > 0 {
				segments = append(segments, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}

	if depth != 0 {
		return nil, &PatternSyntaxError{Pattern: pattern, Offset: n, Message: "unmatched opening brace"}
	}
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}
	return segments, nil
}
