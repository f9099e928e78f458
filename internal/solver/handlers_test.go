package solver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewHandlers(logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return raw
}

func TestRootGet(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	raw := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reply NumbersReply
	require.NoError(t, json.Unmarshal(raw, &reply))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, reply.Numbers)
	assert.Equal(t, "GET", reply.Method)
}

func TestRootPostNumbers(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.PostForm(srv.URL+"/", url.Values{"name": {"numbers"}})
	require.NoError(t, err)
	raw := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reply NumbersReply
	require.NoError(t, json.Unmarshal(raw, &reply))
	assert.Equal(t, "POST", reply.Method)
	assert.Len(t, reply.Numbers, 10)
}

func TestRootPostUnknownName(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.PostForm(srv.URL+"/", url.Values{"name": {"letters"}})
	require.NoError(t, err)
	raw := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", strings.TrimSpace(string(raw)))
}

func TestMeshEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(MeshRequest{
		Geometry: "c", Lc: 0.5, W: 1, H: 0.5, Partitions: 2,
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/mesh", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	raw := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var reply MeshReply
	require.NoError(t, json.Unmarshal(raw, &reply))
	assert.Equal(t, "c", reply.Geometry)
	assert.Equal(t, 64, reply.Elements)
	assert.Len(t, reply.Partitions, 2)
}

func TestMeshEndpointErrors(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/mesh", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/mesh", "application/json",
		strings.NewReader(`{"geometry":"z"}`))
	require.NoError(t, err)
	raw := readBody(t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(raw), "MESH_FAILED")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	raw := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(raw))
}
