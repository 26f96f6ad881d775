package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wireworld/internal/app"
	"wireworld/internal/store"
	"wireworld/internal/transport/websocket"
	"wireworld/pkg/mcell"
	"wireworld/pkg/sims/wireworld"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wire = "#MCell 4.00\n#GAME Wireworld\n#BOARD 4x1\n#L HCCC$"

func newTestServer(t *testing.T, hub *websocket.Hub, st store.Store) (*Server, *Session) {
	t.Helper()
	g, err := wireworld.New(4, 1, wireworld.Blank)
	require.NoError(t, err)
	ctrl := app.NewController(g, app.DefaultPolicy(), 20)
	session := NewSession(ctrl, hub)
	return NewServer(session, hub, st), session
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) Status {
	t.Helper()
	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestPatternRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := do(t, srv, "PUT", "/api/pattern", wire)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	st := decodeStatus(t, rec)
	assert.Equal(t, 4, st.Width)
	assert.Equal(t, uint64(0), st.Generation)
	assert.Equal(t, 3, st.Census["copper"])
	assert.Equal(t, 1, st.Census["head"])

	rec = do(t, srv, "GET", "/api/pattern", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wire+"\n", rec.Body.String())
}

func TestPutPatternRejects(t *testing.T) {
	srv, session := newTestServer(t, nil, nil)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/api/pattern", wire).Code)

	tests := []struct {
		name string
		body string
	}{
		{name: "garbage", body: "hello"},
		{name: "wrong size", body: "#BOARD 5x1\n#L 5C$"},
		{name: "bad literal", body: "#BOARD 4x1\n#L HXCC$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, "PUT", "/api/pattern", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
	assert.Equal(t, 3, session.Status().Census["copper"], "board kept after failed loads")
}

func TestStepAndRunControls(t *testing.T) {
	srv, session := newTestServer(t, nil, nil)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/api/pattern", wire).Code)

	rec := do(t, srv, "POST", "/api/step?n=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(2), decodeStatus(t, rec).Generation)

	rec = do(t, srv, "GET", "/api/cells/2/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"x":2,"y":0,"state":"head"}`, rec.Body.String())

	rec = do(t, srv, "POST", "/api/start", "")
	assert.True(t, decodeStatus(t, rec).Running)

	// stepping halts a run under the default policy
	rec = do(t, srv, "POST", "/api/step", "")
	st := decodeStatus(t, rec)
	assert.False(t, st.Running)
	assert.Equal(t, uint64(3), st.Generation)

	do(t, srv, "POST", "/api/start", "")
	rec = do(t, srv, "POST", "/api/stop", "")
	assert.False(t, decodeStatus(t, rec).Running)

	rec = do(t, srv, "POST", "/api/reset", "")
	st = decodeStatus(t, rec)
	assert.Equal(t, uint64(0), st.Generation)
	assert.Equal(t, 4, st.Census["blank"])
	assert.Equal(t, 4, session.Status().Census["blank"])

	for _, n := range []string{"0", "-3", "x", "100000"} {
		assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/step?n="+n, "").Code, n)
	}
}

func TestSetCell(t *testing.T) {
	srv, session := newTestServer(t, nil, nil)

	rec := do(t, srv, "PUT", "/api/cells/1/0", `{"state":"Copper"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, session.Status().Census["copper"])

	assert.Equal(t, http.StatusBadRequest, do(t, srv, "PUT", "/api/cells/4/0", `{"state":"head"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "PUT", "/api/cells/-1/0", `{"state":"head"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "PUT", "/api/cells/0/0", `{"state":"plasma"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "GET", "/api/cells/0/5", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, "PUT", "/api/cells/a/0", `{"state":"head"}`).Code)
}

func TestStoredPatterns(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	srv, session := newTestServer(t, nil, st)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/api/pattern", wire).Code)

	rec := do(t, srv, "POST", "/api/patterns", `{"name":"pulse"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var saved store.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "pulse", saved.Name)

	rec = do(t, srv, "GET", "/api/patterns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	do(t, srv, "POST", "/api/reset", "")
	rec = do(t, srv, "POST", "/api/patterns/"+saved.ID+"/load", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, session.Status().Census["head"])

	assert.Equal(t, http.StatusBadRequest, do(t, srv, "GET", "/api/patterns/nope", "").Code)
	assert.Equal(t, http.StatusOK, do(t, srv, "DELETE", "/api/patterns/"+saved.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", "/api/patterns/"+saved.ID, "").Code)
}

type failingStore struct {
	store.Store
}

func (failingStore) Put(context.Context, string, string) (*store.Record, error) {
	return nil, errors.New("failed to write record: disk full")
}

func TestSavePatternStatus(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	srv, _ := newTestServer(t, nil, st)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/api/pattern", wire).Code)

	rec := do(t, srv, "POST", "/api/patterns", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name cannot be empty")

	srv, _ = newTestServer(t, nil, failingStore{Store: st})
	rec = do(t, srv, "POST", "/api/patterns", `{"name":"pulse"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk full")
}

func TestStoreRoutesAbsentWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)
	assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", "/api/patterns", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", "/ws", "").Code)
}

func TestSessionRunSteps(t *testing.T) {
	srv, session := newTestServer(t, nil, nil)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/api/pattern", wire).Code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		session.Run(ctx)
		close(done)
	}()

	do(t, srv, "POST", "/api/start", "")
	assert.Eventually(t, func() bool {
		return session.Status().Generation >= 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestSessionRunFollowsSpeedChanges(t *testing.T) {
	g, err := wireworld.New(4, 1, wireworld.Blank)
	require.NoError(t, err)
	ctrl := app.NewController(g, app.DefaultPolicy(), 2)
	require.NoError(t, ctrl.Load(wire))
	session := NewSession(ctrl, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		session.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	require.NoError(t, session.Do(func(c *app.Controller) error {
		c.Start()
		c.SetTPS(1000)
		return nil
	}))
	// At the initial 2 TPS this would take far longer than the deadline.
	assert.Eventually(t, func() bool {
		return session.Status().Generation >= 50
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocketStream(t *testing.T) {
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv, _ := newTestServer(t, hub, nil)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	conn, _, err := gws.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() websocket.Message {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg websocket.Message
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	hello := read()
	assert.Equal(t, "snapshot", hello.Event)
	p, err := mcell.Decode(hello.Pattern)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Width)

	resp := do(t, srv, "PUT", "/api/cells/0/0", `{"state":"head"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	msg := read()
	assert.Equal(t, string(app.EventSetCell), msg.Event)
	assert.Contains(t, msg.Pattern, "#L H$")

	do(t, srv, "POST", "/api/step", "")
	msg = read()
	assert.Equal(t, string(app.EventStep), msg.Event)
	assert.Equal(t, uint64(1), msg.Generation)
	assert.Empty(t, msg.Pattern)
}
