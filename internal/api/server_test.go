package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	huffman "github.com/chronos-tachyon/huffmantree"
	"github.com/chronos-tachyon/huffmantree/internal/api"
)

const panama = "a man, a plan, a canal, panama"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := api.NewServer(":0", time.Second, zerolog.Nop())
	testServer := httptest.NewServer(server.Handler())
	t.Cleanup(testServer.Close)
	return testServer
}

func post(t *testing.T, ts *httptest.Server, path string, body interface{}, out interface{}) int {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestGetTree(t *testing.T) {
	ts := newTestServer(t)

	t.Run("test tree", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/v1/trees/test")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result api.TreeResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

		bits, err := huffman.ReferenceTreeBits(huffman.TestTreeName)
		require.NoError(t, err)
		assert.Equal(t, "test", result.Name)
		assert.Equal(t, bits, result.Bits)
		assert.Equal(t, "11", result.Codes["a"])
		assert.Equal(t, "00", result.Codes[" "])
		assert.Len(t, result.Codes, 8)
	})

	t.Run("unknown tree", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/v1/trees/oak")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestBuildTree(t *testing.T) {
	ts := newTestServer(t)

	t.Run("from text", func(t *testing.T) {
		var result api.TreeResponse
		status := post(t, ts, "/v1/trees", api.BuildRequest{Text: panama}, &result)
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, result.Codes, 8)
		assert.Equal(t, 8, result.Unique)
		assert.EqualValues(t, 30, result.Total)

		root, err := huffman.ParseTree(result.Bits)
		require.NoError(t, err)
		assert.Len(t, huffman.Leaves(root), 8)
	})

	t.Run("fill gaps", func(t *testing.T) {
		var result api.TreeResponse
		status := post(t, ts, "/v1/trees", api.BuildRequest{Text: panama, FillGaps: true}, &result)
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, result.Codes, len(huffman.MandatorySymbols()))
	})

	t.Run("empty text", func(t *testing.T) {
		var result api.ErrorResponse
		status := post(t, ts, "/v1/trees", api.BuildRequest{}, &result)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Contains(t, result.Error, "empty alphabet")
	})

	t.Run("bad body", func(t *testing.T) {
		var result api.ErrorResponse
		status := post(t, ts, "/v1/trees", map[string]string{"txt": panama}, &result)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestEncodeDecode(t *testing.T) {
	ts := newTestServer(t)

	var encoded api.EncodeResponse
	status := post(t, ts, "/v1/encode", api.EncodeRequest{
		TreeSelector: api.TreeSelector{Tree: "test"},
		Text:         panama + "!",
	}, &encoded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, encoded.Skipped)

	var decoded api.DecodeResponse
	status = post(t, ts, "/v1/decode", api.DecodeRequest{
		TreeSelector: api.TreeSelector{Tree: "test"},
		Bits:         encoded.Bits,
	}, &decoded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, panama, decoded.Text)
	assert.Empty(t, decoded.Warnings)
}

func TestDecode_Warnings(t *testing.T) {
	ts := newTestServer(t)

	bits, err := huffman.ReferenceTreeBits(huffman.TestTreeName)
	require.NoError(t, err)

	var decoded api.DecodeResponse
	status := post(t, ts, "/v1/decode", api.DecodeRequest{
		TreeSelector: api.TreeSelector{TreeBits: bits + "0"},
		Bits:         "11x0",
	}, &decoded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a", decoded.Text)
	require.Len(t, decoded.Warnings, 3)
	assert.Contains(t, decoded.Warnings[0], "trailing bits")
	assert.Contains(t, decoded.Warnings[1], "malformed bit")
	assert.Contains(t, decoded.Warnings[2], "ran out of bits")
}

func TestDecode_Count(t *testing.T) {
	ts := newTestServer(t)
	count := 2

	var decoded api.DecodeResponse
	status := post(t, ts, "/v1/decode", api.DecodeRequest{
		TreeSelector: api.TreeSelector{Tree: "test"},
		Bits:         "111010",
		Count:        &count,
	}, &decoded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "am", decoded.Text)

	// A lone leaf consumes no bits, so only count says how many to emit.
	leaf := huffman.Serialize(huffman.NewLeaf('z', 0))
	status = post(t, ts, "/v1/decode", api.DecodeRequest{
		TreeSelector: api.TreeSelector{TreeBits: leaf},
		Count:        &count,
	}, &decoded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "zz", decoded.Text)

	var failed api.ErrorResponse
	status = post(t, ts, "/v1/decode", api.DecodeRequest{
		TreeSelector: api.TreeSelector{TreeBits: leaf},
	}, &failed)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBadTree(t *testing.T) {
	ts := newTestServer(t)

	var failed api.ErrorResponse
	status := post(t, ts, "/v1/encode", api.EncodeRequest{
		TreeSelector: api.TreeSelector{TreeBits: "0101"},
		Text:         panama,
	}, &failed)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, failed.Error, "tree_bits")

	status = post(t, ts, "/v1/encode", api.EncodeRequest{
		TreeSelector: api.TreeSelector{Tree: "oak"},
		Text:         panama,
	}, &failed)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/v2/trees")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServe_Shutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := api.NewServer(listener.Addr().String(), time.Second, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/v1/trees/standard")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestDecode_CountLimit(t *testing.T) {
	ts := newTestServer(t)
	leaf := huffman.Serialize(huffman.NewLeaf('a', 0))

	for _, count := range []int{-1, 8<<20 + 1, 1e15} {
		var failed api.ErrorResponse
		status := post(t, ts, "/v1/decode", api.DecodeRequest{
			TreeSelector: api.TreeSelector{TreeBits: leaf},
			Count:        &count,
		}, &failed)
		assert.Equal(t, http.StatusBadRequest, status, "count %d", count)
		assert.Contains(t, failed.Error, "invalid count")
	}

	count := 8 << 20
	var decoded api.DecodeResponse
	status := post(t, ts, "/v1/decode", api.DecodeRequest{
		TreeSelector: api.TreeSelector{TreeBits: leaf},
		Count:        &count,
	}, &decoded)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decoded.Text, count)
}

func TestNotASCII(t *testing.T) {
	ts := newTestServer(t)

	var failed api.ErrorResponse
	status := post(t, ts, "/v1/trees", api.BuildRequest{Text: "café"}, &failed)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, failed.Error, "not ASCII")

	status = post(t, ts, "/v1/encode", api.EncodeRequest{Text: "é"}, &failed)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, failed.Error, "not ASCII")

	// A tree holding the single byte 0xE9.
	count := 1
	status = post(t, ts, "/v1/decode", api.DecodeRequest{
		TreeSelector: api.TreeSelector{TreeBits: huffman.Serialize(huffman.NewLeaf(0xe9, 0))},
		Count:        &count,
	}, &failed)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, failed.Error, "not ASCII")
}
