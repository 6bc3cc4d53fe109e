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

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

// RouterTestSuite tests the Router façade end to end.
type RouterTestSuite struct {
	suite.Suite
}

func (s *RouterTestSuite) TestMatchTypedIntConstraint() {
	r := New()
	_, err := r.AddRoute("/test/{arg1:int}", "handler")
	s.Require().NoError(err)

	ok := r.Match("/test/4")
	s.Require().True(ok.IsMatch)
	s.Equal("4", ok.Params["arg1"])

	rejected := r.Match("/test/abc")
	s.False(rejected.IsMatch)
}

func (s *RouterTestSuite) TestMatchChainedConstrainedSegments() {
	r := New()
	_, err := r.AddRoute("/products/{category:alpha}", "list")
	s.Require().NoError(err)
	_, err = r.AddRoute("/products/{category:alpha}/{id:int}", "detail")
	s.Require().NoError(err)

	res := r.Match("/products/electronics/123")
	s.Require().True(res.IsMatch)
	s.Equal("detail", res.Route.Handler)
	s.Equal("electronics", res.Params["category"])
	s.Equal("123", res.Params["id"])
}

func (s *RouterTestSuite) TestMatchGUIDConstraint() {
	r := New()
	_, err := r.AddRoute("/users/{userId:guid}", "user")
	s.Require().NoError(err)

	res := r.Match("/users/550e8400-e29b-41d4-a716-446655440000")
	s.Require().True(res.IsMatch)
	s.Equal("550e8400-e29b-41d4-a716-446655440000", res.Params["userid"])

	s.False(r.Match("/users/not-a-guid").IsMatch)
}

func (s *RouterTestSuite) TestMatchStaticSiblingVersusWildcardFallback() {
	r := New()
	_, err := r.AddRoute("/docs/special", "special")
	s.Require().NoError(err)
	_, err = r.AddRoute("/docs/*", "catchall")
	s.Require().NoError(err)

	special := r.Match("/docs/special")
	s.Require().True(special.IsMatch)
	s.Equal("special", special.Route.Handler)

	nested := r.Match("/docs/other/nested")
	s.Require().True(nested.IsMatch)
	s.Equal("catchall", nested.Route.Handler)
	s.Equal("/other/nested/", nested.Params["wildcard"])
}

func (s *RouterTestSuite) TestMatchPriorityDeterminesWinnerAmongEqualPatterns() {
	r := New()
	_, err := r.AddRoute("/data/{id:int}", "v0")
	s.Require().NoError(err)
	_, err = r.AddRoute("/data/{id:int}", "v10", WithPriority(10))
	s.Require().NoError(err)
	_, err = r.AddRoute("/data/{id:int}", "v5", WithPriority(5))
	s.Require().NoError(err)

	res := r.Match("/data/123")
	s.Require().True(res.IsMatch)
	s.Equal("v10", res.Route.Handler)
}

func (s *RouterTestSuite) TestMatchConstraintFailureOnTailSegmentRejectsWholeRoute() {
	r := New()
	_, err := r.AddRoute("/search/{query}/{page:int:min(1)}", "search")
	s.Require().NoError(err)

	s.False(r.Match("/search/phones/0").IsMatch)

	ok := r.Match("/search/phones/1")
	s.Require().True(ok.IsMatch)
	s.Equal("phones", ok.Params["query"])
	s.Equal("1", ok.Params["page"])
}

func (s *RouterTestSuite) TestControllerIndexRetryOnCleanNoMatch() {
	r := New()
	_, err := r.AddRoute("/home/index", "home-index")
	s.Require().NoError(err)
	r.AddController("home")

	res := r.Match("/home")
	s.Require().True(res.IsMatch)
	s.Equal("home-index", res.Route.Handler)
}

func (s *RouterTestSuite) TestControllerRetryDoesNotFireForUnregisteredController() {
	r := New()
	_, err := r.AddRoute("/home/index", "home-index")
	s.Require().NoError(err)
	// "home" was never passed to AddController.

	s.False(r.Match("/home").IsMatch)
}

func (s *RouterTestSuite) TestControllerRetryDoesNotApplyToMultiSegmentPaths() {
	r := New()
	_, err := r.AddRoute("/home/index", "home-index")
	s.Require().NoError(err)
	r.AddController("home")

	s.False(r.Match("/home/missing").IsMatch, "the single-segment controller retry never applies once a request already has more than one segment")
}

func (s *RouterTestSuite) TestIndexRouteServesEmptyPath() {
	r := New()
	r.SetIndexRoute("home")

	res := r.Match("/")
	s.Require().True(res.IsMatch)
	s.Equal("home", res.Route.Handler)

	res2 := r.Match("")
	s.Require().True(res2.IsMatch)
	s.Equal("home", res2.Route.Handler)
}

func (s *RouterTestSuite) TestEmptyPathWithNoIndexRouteIsNoMatch() {
	r := New()
	s.False(r.Match("/").IsMatch)
}

func (s *RouterTestSuite) TestAddRouteRejectsInvalidPatternAndLeavesTreeUnchanged() {
	r := New()
	_, err := r.AddRoute("/users/{id", "handler")
	s.Error(err)
	s.False(r.Match("/users/1").IsMatch)
}

func (s *RouterTestSuite) TestDiagnosticsFireOnRejectedPattern() {
	var mu sync.Mutex
	var kinds []DiagnosticKind
	r := New(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, e.Kind)
	})))

	_, err := r.AddRoute("/bad/{id", "handler")
	s.Require().Error(err)

	mu.Lock()
	defer mu.Unlock()
	s.Require().Len(kinds, 1)
	s.Equal(DiagnosticPatternRejected, kinds[0])
}

func (s *RouterTestSuite) TestDiagnosticsFireOnUnknownConstraintButRouteStillRegisters() {
	var kinds []DiagnosticKind
	r := New(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		kinds = append(kinds, e.Kind)
	})))

	rt, err := r.AddRoute("/x/{id:notreal}", "handler")
	s.Require().NoError(err)
	s.Require().NotNil(rt)

	s.Require().Len(kinds, 1)
	s.Equal(DiagnosticUnknownConstraint, kinds[0])
	s.False(r.Match("/x/1").IsMatch, "an unknown constraint always rejects")
}

func (s *RouterTestSuite) TestRoutesSnapshotIsSortedByPriorityDescending() {
	r := New()
	_, _ = r.AddRoute("/low", "low", WithPriority(1))
	_, _ = r.AddRoute("/high", "high", WithPriority(10))
	_, _ = r.AddRoute("/mid", "mid", WithPriority(5))

	routes := r.Routes()
	s.Require().Len(routes, 3)
	s.Equal([]any{"high", "mid", "low"}, []any{routes[0].Handler, routes[1].Handler, routes[2].Handler})
}

func (s *RouterTestSuite) TestRoutesSnapshotIsIndependentOfInternalState() {
	r := New()
	_, _ = r.AddRoute("/a", "a")
	routes := r.Routes()
	routes[0] = nil

	again := r.Routes()
	s.Require().Len(again, 1)
	s.NotNil(again[0])
}

func (s *RouterTestSuite) TestWithRolesIsPassedThroughUninterpreted() {
	r := New()
	rt, err := r.AddRoute("/admin", "admin", WithRoles("admin", "ops"))
	s.Require().NoError(err)
	s.Equal([]string{"admin", "ops"}, rt.Roles)
}

func (s *RouterTestSuite) TestStaticFastPathAgreesWithTreeWalkForMultiSegmentLiterals() {
	r := New()
	_, err := r.AddRoute("/docs/special", "special")
	s.Require().NoError(err)

	res := r.Match("/docs/special")
	s.Require().True(res.IsMatch)
	s.Equal("special", res.Route.Handler)
	s.Empty(res.Params)
}

func (s *RouterTestSuite) TestMatchIsCaseInsensitiveOnStaticSegments() {
	r := New()
	_, err := r.AddRoute("/Users/Profile", "profile")
	s.Require().NoError(err)

	res := r.Match("/USERS/PROFILE")
	s.Require().True(res.IsMatch)
	s.Equal("profile", res.Route.Handler)
}

func (s *RouterTestSuite) TestConcurrentMatchesDuringRegistrationObserveConsistentState() {
	r := New()
	_, err := r.AddRoute("/stable", "stable")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := r.Match("/stable")
			s.True(res.IsMatch)
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = r.AddRoute("/extra", "extra", WithPriority(n))
		}(i)
	}
	wg.Wait()
}

//nolint:paralleltest // Test suites manage their own parallelization
func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
