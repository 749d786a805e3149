package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupForPatterns(t *testing.T) {
	assert.Equal(t, "health", groupFor("/healthz"))
	assert.Equal(t, "health", groupFor("/readyz"))
	assert.Equal(t, "admin", groupFor("/_/admin/routes.json"))
	assert.Equal(t, "day", groupFor("/api/day/advance"))
	assert.Equal(t, "leaderboard", groupFor("/api/leaderboard"))
	assert.Equal(t, "leaderboard", groupFor("/api/leaderboard/challenge/{code}"))
	assert.Equal(t, "misc", groupFor("/metrics"))
}

func TestRouteRegistryGroupsInOrder(t *testing.T) {
	rr := &RouteRegistry{}
	mux := http.NewServeMux()
	noop := func(w http.ResponseWriter, r *http.Request) {}

	Handle(mux, rr, "GET /healthz", "Liveness probe", "", noop)
	Handle(mux, rr, "POST /api/day/advance", "Advance", `{"days":1}`, noop)
	Handle(mux, rr, "GET /api/leaderboard", "Board", "", noop)
	Handle(mux, rr, "GET /api/day/plan", "", "", noop)

	groups := rr.ByGroup()
	require.Len(t, groups, 3)
	assert.Equal(t, "health", groups[0].Name)
	assert.Equal(t, "day", groups[1].Name)
	assert.Equal(t, "leaderboard", groups[2].Name)
	require.Len(t, groups[1].Routes, 2)
	assert.Equal(t, "/api/day/advance", groups[1].Routes[0].Pattern)
}
