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

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"rivaas.dev/routetable/route"
)

func mustCompile(t *testing.T, id uint64, pattern string, priority int) *route.Route {
	t.Helper()
	rt, err := route.Compile(id, pattern, pattern, priority, nil)
	require.NoError(t, err)
	return rt
}

// InsertTestSuite tests tree insertion and truncation wiring.
type InsertTestSuite struct {
	suite.Suite
}

func (s *InsertTestSuite) TestInsertWiresEachTruncationAsItsOwnTerminal() {
	root := NewRoot()
	rt := mustCompile(s.T(), 1, "/archive/{year:int}/{month:int?}", 0)
	root.Insert(rt)

	year := root.static["archive"].dynamic["year"][0].node
	s.True(year.Routable(), "the shorter truncation must be routable")
	month := year.dynamic["month"][0].node
	s.True(month.Routable())
}

func (s *InsertTestSuite) TestInsertCollapsesIdenticalConstraintSetsOntoOneCandidate() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/items/{id:int}", 0))
	root.Insert(mustCompile(s.T(), 2, "/items/{id:int}/edit", 0))

	bucket := root.static["items"].dynamic["id"]
	s.Require().Len(bucket, 1, "same param name + same constraint set must share one candidate node")
}

func (s *InsertTestSuite) TestInsertKeepsDistinctConstraintSetsAsSiblingCandidates() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/products/{id:int}", 0))
	root.Insert(mustCompile(s.T(), 2, "/products/{id:guid}", 0))

	bucket := root.static["products"].dynamic["id"]
	s.Require().Len(bucket, 2)
}

func (s *InsertTestSuite) TestDynamicCandidatesSortByTypePriorityThenRoutePriority() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/x/{v:long}", 0))
	root.Insert(mustCompile(s.T(), 2, "/x/{v:guid}", 0))
	root.Insert(mustCompile(s.T(), 3, "/x/{v:int}", 0))
	root.Insert(mustCompile(s.T(), 4, "/x/{v}", 0))

	bucket := root.static["x"].dynamic["v"]
	s.Require().Len(bucket, 4)
	s.Equal("int", bucket[0].constraintKey[:3])
	s.Equal("guid", bucket[1].constraintKey[:4])
	s.Equal("long", bucket[2].constraintKey[:4])
	s.Equal("", bucket[3].constraintKey, "no-constraint candidate sorts last")
}

func (s *InsertTestSuite) TestDynamicCandidateTieBrokenByHigherRoutePriority() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/x/{v:alpha}", 0))
	root.Insert(mustCompile(s.T(), 2, "/x/{v:required}", 5))

	bucket := root.static["x"].dynamic["v"]
	s.Require().Len(bucket, 2)
	s.Equal(5, bucket[0].priority, "equal type priority (both 10): higher route priority sorts first")
}

func (s *InsertTestSuite) TestDynamicOrderRecordsFirstInsertionOrderOfDistinctNames() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/x/{beta}", 0))
	root.Insert(mustCompile(s.T(), 2, "/x/{alpha}", 0))

	s.Equal([]string{"beta", "alpha"}, root.static["x"].dynamicOrder)
}

func (s *InsertTestSuite) TestSetTerminalIgnoresLowerPriorityReplacesEqualOrHigher() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/data/{id:int}", 0))
	root.Insert(mustCompile(s.T(), 2, "/data/{id:int}", 10))
	root.Insert(mustCompile(s.T(), 3, "/data/{id:int}", 5))

	node := root.static["data"].dynamic["id"][0].node
	s.Require().True(node.Routable())
	s.Equal(uint64(2), node.Route().ID, "priority 10 beats the initial 0 and the later 5")
}

func (s *InsertTestSuite) TestCatchAllAndWildcardAreSingletonBranches() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/files/{**path}", 0))
	root.Insert(mustCompile(s.T(), 2, "/files/{**path:required}", 1))

	s.NotNil(root.static["files"].catchAll)

	wroot := NewRoot()
	wroot.Insert(mustCompile(s.T(), 1, "/assets/*", 0))
	s.NotNil(wroot.static["assets"].wildcard)
}

func (s *InsertTestSuite) TestDefaultIsRecordedOnTheParentNodeNotTheChild() {
	root := NewRoot()
	root.Insert(mustCompile(s.T(), 1, "/search/{page=1:int}", 0))

	parent := root.static["search"]
	s.True(parent.hasDefault, "the shorter truncation stops at parent, so the default must live there")
	s.Equal("page", parent.defaultName)
	s.Equal("1", parent.defaultValue)

	child := parent.dynamic["page"][0].node
	s.False(child.hasDefault, "the child represents an explicit value, it has nothing to default")
}

//nolint:paralleltest // Test suites manage their own parallelization
func TestInsertSuite(t *testing.T) {
	suite.Run(t, new(InsertTestSuite))
}
