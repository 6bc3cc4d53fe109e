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

import "sync"

// wildcardBufferPool draws the []byte used to assemble a wildcard or
// catch-all capture, avoiding a per-match allocation for the common case.
// It is deliberately untiered: a capture is a single flat buffer, not a
// variable-size structure that would benefit from size classes.
var wildcardBufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 64)
		return &buf
	},
}

// buildWildcardCapture formats the remaining request segments as
// "/<remaining>/", each segment separated by a single slash, or the bare
// string "/" when nothing remains.
//
// The scratch buffer is returned to wildcardBufferPool on every exit path.
func buildWildcardCapture(remaining []string) string {
	if len(remaining) == 0 {
		return "/"
	}

	bufPtr := wildcardBufferPool.Get().(*[]byte)
	buf := (*bufPtr)[:0]
	defer func() {
		*bufPtr = buf[:0]
		wildcardBufferPool.Put(bufPtr)
	}()

	buf = append(buf, '/')
	for i, seg := range remaining {
		if i > 0 {
			buf = append(buf, '/')
		}
		buf = append(buf, seg...)
	}
	buf = append(buf, '/')

	return string(buf)
}

// buildCatchAllRemainder joins the remaining request segments with "/", the
// text validated against a CatchAll's constraints and then bound as its
// parameter value. Unlike the wildcard capture this text carries no
// leading or trailing slash.
func buildCatchAllRemainder(remaining []string) string {
	if len(remaining) == 0 {
		return ""
	}

	bufPtr := wildcardBufferPool.Get().(*[]byte)
	buf := (*bufPtr)[:0]
	defer func() {
		*bufPtr = buf[:0]
		wildcardBufferPool.Put(bufPtr)
	}()

	for i, seg := range remaining {
		if i > 0 {
			buf = append(buf, '/')
		}
		buf = append(buf, seg...)
	}

	return string(buf)
}
