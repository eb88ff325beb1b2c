package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, indices ...int) *Server {
	t.Helper()
	var targets []memory.Target
	for _, i := range indices {
		targets = append(targets, memory.Tagged(i, "Step", domain.Rect{Top: 0, Left: 0, Width: 50, Height: 20}))
	}
	page, err := memory.NewPage(targets...)
	require.NoError(t, err)

	eng, err := walkthrough.New("demo", walkthrough.WithPage(page))
	require.NoError(t, err)

	return NewServer(eng, session.NewManager(memory.NewStore()), nil)
}

func rpc(t *testing.T, s *Server, method string, params any) string {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	resp := s.MCPServer().HandleMessage(context.Background(), msg)
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(out)
}

func TestServer_Tools(t *testing.T) {
	s := newTestServer(t, 1, 2)
	ctx := context.Background()

	start, err := s.handleStart(ctx, mcpRequest(), StartArgs{SessionID: "agent"})
	require.NoError(t, err)
	assert.Equal(t, 1, start.State.CurrentStep)
	assert.Equal(t, 2, start.State.TotalSteps)
	require.Len(t, start.Effects, 2)
	assert.Equal(t, 60.0, start.Effects[1].Placement.Left)

	next, err := s.handleCommand(ctx, SessionArgs{SessionID: "agent"}, domain.CommandNext)
	require.NoError(t, err)
	assert.Equal(t, 2, next.State.CurrentStep)

	view, err := s.handleState(ctx, mcpRequest(), SessionArgs{SessionID: "agent"})
	require.NoError(t, err)
	require.NotNil(t, view.Placement)
	assert.True(t, view.Placement.IsLastStep)

	back, err := s.handleCommand(ctx, SessionArgs{SessionID: "agent"}, domain.CommandBack)
	require.NoError(t, err)
	assert.Equal(t, 1, back.State.CurrentStep)

	closed, err := s.handleCommand(ctx, SessionArgs{SessionID: "agent"}, domain.CommandClose)
	require.NoError(t, err)
	assert.Equal(t, domain.EndClosed, closed.State.EndReason)

	view, err = s.handleState(ctx, mcpRequest(), SessionArgs{SessionID: "agent"})
	require.NoError(t, err)
	assert.Nil(t, view.Placement)
}

func TestServer_StartDefaults(t *testing.T) {
	s := newTestServer(t, 1, 2, 3)

	resp, err := s.handleStart(context.Background(), mcpRequest(), StartArgs{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.State.SessionID)
	assert.Equal(t, 3, resp.State.TotalSteps)

	zero := 0
	resp, err = s.handleStart(context.Background(), mcpRequest(), StartArgs{SessionID: "empty", TotalSteps: &zero})
	require.NoError(t, err)
	assert.Equal(t, domain.EndEmpty, resp.State.EndReason)
}

func TestServer_StartDefaultCountSpansGap(t *testing.T) {
	s := newTestServer(t, 1, 3, 4)
	ctx := context.Background()

	start, err := s.handleStart(ctx, mcpRequest(), StartArgs{SessionID: "holes"})
	require.NoError(t, err)
	assert.Equal(t, 4, start.State.TotalSteps)

	next, err := s.handleCommand(ctx, SessionArgs{SessionID: "holes"}, domain.CommandNext)
	require.NoError(t, err)
	assert.Equal(t, domain.EndAborted, next.State.EndReason)
	require.NotEmpty(t, next.Effects)
	assert.Equal(t, domain.EffectWarn, next.Effects[0].Type)
}

func TestServer_Errors(t *testing.T) {
	s := newTestServer(t, 1)
	ctx := context.Background()

	_, err := s.handleCommand(ctx, SessionArgs{}, domain.CommandNext)
	assert.Error(t, err)

	_, err = s.handleCommand(ctx, SessionArgs{SessionID: "nope"}, domain.CommandNext)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = s.handleState(ctx, mcpRequest(), SessionArgs{SessionID: "nope"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestServer_Protocol(t *testing.T) {
	s := newTestServer(t, 1, 2)

	tools := rpc(t, s, "tools/list", map[string]any{})
	for _, name := range []string{"tour_start", "tour_next", "tour_back", "tour_close", "tour_state"} {
		assert.Contains(t, tools, `"`+name+`"`)
	}

	page := rpc(t, s, "resources/read", map[string]any{"uri": PageURI})
	assert.Contains(t, page, "target-1")
	assert.Contains(t, page, "tour-target-2")
}
