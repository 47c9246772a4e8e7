package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer serializes writes from concurrent log events.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) lines(t *testing.T) []map[string]any {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(s.b.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogObserver_LogsRequestAndCachedResponse(t *testing.T) {
	t.Parallel()
	srv, _ := jsonServer(t, http.StatusOK, `{"id":1}`)
	buf := &syncBuffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)

	c, err := New(WithBaseURL(srv.URL), WithObserver(&LogObserver{Logger: logger}))
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := Fetch[post](context.Background(), c, "/anime/{id}", PathParams{"id": 1}, nil)
		require.NoError(t, err)
	}

	lines := buf.lines(t)
	require.Len(t, lines, 4)
	assert.Equal(t, "HTTP request", lines[0]["message"])
	assert.Equal(t, "GET", lines[0]["method"])
	assert.Equal(t, srv.URL+"/anime/1", lines[0]["url"])
	assert.NotEmpty(t, lines[0]["request_id"])

	assert.Equal(t, "HTTP response", lines[1]["message"])
	assert.Equal(t, lines[0]["request_id"], lines[1]["request_id"])
	assert.Equal(t, false, lines[1]["cached"])
	assert.Equal(t, float64(200), lines[1]["status_code"])
	assert.Contains(t, lines[1], "elapsed")

	assert.Equal(t, true, lines[3]["cached"])
	assert.NotEqual(t, lines[0]["request_id"], lines[2]["request_id"])
}

func TestLogObserver_LogsFailureAndReturnsError(t *testing.T) {
	t.Parallel()
	srv, _ := jsonServer(t, http.StatusTooManyRequests, `{"status":429}`)
	buf := &syncBuffer{}
	c, err := New(WithBaseURL(srv.URL), WithObserver(&LogObserver{Logger: zerolog.New(buf)}))
	require.NoError(t, err)

	_, err = Fetch[post](context.Background(), c, "/x", nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))

	lines := buf.lines(t)
	require.Len(t, lines, 2)
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, float64(429), lines[1]["status_code"])
	assert.Equal(t, "Recoverable", lines[1]["category"])
}

func TestLogObserver_DumpsWhenEnabled(t *testing.T) {
	t.Parallel()
	srv, _ := jsonServer(t, http.StatusOK, `{"id":1}`)
	buf := &syncBuffer{}
	c, err := New(WithBaseURL(srv.URL), WithObserver(&LogObserver{Logger: zerolog.New(buf), Dump: true}))
	require.NoError(t, err)

	p, err := Fetch[post](context.Background(), c, "/x", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)

	lines := buf.lines(t)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0]["request_dump"], "GET /x")
	assert.Contains(t, lines[1]["response_dump"], `{"id":1}`)
}

func TestNewLogObserver_DumpFromEnv(t *testing.T) {
	t.Setenv("JIKAN_DEBUG", "true")
	if !NewLogObserver(zerolog.Nop()).Dump {
		t.Fatalf("expected dumps enabled when JIKAN_DEBUG=true")
	}
}

func TestObserverFuncs_NilFieldsPassThrough(t *testing.T) {
	t.Parallel()
	var o ObserverFuncs
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	got, err := o.BeforeRequest(req)
	require.NoError(t, err)
	assert.Same(t, req, got)

	boom := errors.New("boom")
	assert.Same(t, boom, o.RequestError(boom))
	assert.Same(t, boom, o.ResponseError(boom))

	resp := &http.Response{}
	gotResp, err := o.AfterResponse(resp)
	require.NoError(t, err)
	assert.Same(t, resp, gotResp)
}
