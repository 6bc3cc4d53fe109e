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
	"testing"

	"github.com/stretchr/testify/suite"
)

// RouteTestSuite tests Route and SegmentKind behavior.
type RouteTestSuite struct {
	suite.Suite
}

func (s *RouteTestSuite) TestSegmentKindString() {
	s.Equal("static", Static.String())
	s.Equal("dynamic", Dynamic.String())
	s.Equal("wildcard", Wildcard.String())
	s.Equal("catchall", CatchAll.String())
}

func (s *RouteTestSuite) TestRouteTruncationsNoTailableSegments() {
	r, err := Compile(1, "/users/{id:int}", nil, 0, nil)
	s.Require().NoError(err)
	s.Equal(2, r.TailStart())
	s.Equal([]int{2}, r.Truncations())
}

func (s *RouteTestSuite) TestRouteTruncationsTrailingTailableChain() {
	r, err := Compile(1, "/search/{q?}/{page=1:int}", nil, 0, nil)
	s.Require().NoError(err)
	s.Equal(1, r.TailStart())
	s.Equal([]int{1, 2, 3}, r.Truncations())
}

func (s *RouteTestSuite) TestCompilePreservesHandlerPriorityAndRoles() {
	handler := func() {}
	r, err := Compile(7, "/admin/{id:int}", handler, 42, []string{"admin", "ops"})
	s.Require().NoError(err)
	s.Equal(uint64(7), r.ID)
	s.Equal(42, r.Priority)
	s.Equal([]string{"admin", "ops"}, r.Roles)
	s.NotNil(r.Handler)
}

func (s *RouteTestSuite) TestCompileRejectsUnbalancedBraces() {
	_, err := Compile(1, "/users/{id", nil, 0, nil)
	s.Require().Error(err)
	var syntaxErr *PatternSyntaxError
	s.ErrorAs(err, &syntaxErr)
}

func (s *RouteTestSuite) TestCompileWildcardAfterStaticPrefix() {
	r, err := Compile(1, "/files/*", nil, 0, nil)
	s.Require().NoError(err)
	s.Require().Len(r.Segments, 2)
	s.Equal(Wildcard, r.Segments[1].Kind)
}

func (s *RouteTestSuite) TestDynamicSegmentCarriesMultipleConstraints() {
	r, err := Compile(1, "/search/{page:int:min(1)}", nil, 0, nil)
	s.Require().NoError(err)
	s.Require().Len(r.Segments, 2)
	s.Require().Len(r.Segments[1].Constraints, 2)
	s.Equal(KindInt, r.Segments[1].Constraints[0].Kind)
	s.Equal(KindMin, r.Segments[1].Constraints[1].Kind)
}

//nolint:paralleltest // Test suites manage their own parallelization
func TestRouteSuite(t *testing.T) {
	suite.Run(t, new(RouteTestSuite))
}
