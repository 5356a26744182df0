package eagle_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eagle-mcp/internal/eagle"
)

func newUpstream(t *testing.T, h http.HandlerFunc) (*eagle.Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return eagle.New(srv.URL+"/", nil), &hits
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	env := eagle.New(url, nil).Get(context.Background(), "/api/folder/list", nil)

	assert.False(t, env.OK())
	assert.True(t, strings.HasPrefix(env.Message, "An error occurred: "), env.Message)
	assert.Nil(t, env.Data)
	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"data"`)
}

func TestClient_HTTPStatusFailure(t *testing.T) {
	t.Parallel()
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		t.Run(strconv.Itoa(code), func(t *testing.T) {
			t.Parallel()
			client, hits := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
				_, _ = io.WriteString(w, `{"status":"error","message":"secret upstream detail"}`)
			})

			env := client.Post(context.Background(), "/api/folder/create", eagle.NewParams().Set("folderName", "x"))

			assert.False(t, env.OK())
			assert.Equal(t, "HTTP error occurred: "+strconv.Itoa(code), env.Message)
			assert.NotContains(t, env.Message, "secret")
			assert.EqualValues(t, 1, hits.Load(), "no retries")
		})
	}
}

func TestClient_MalformedBodyIsTruncated(t *testing.T) {
	t.Parallel()
	body := "not-json" + strings.Repeat("y", 5000)
	client, _ := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	})

	env := client.Get(context.Background(), "/api/item/list", nil)

	require.False(t, env.OK())
	const prefix = "Invalid JSON response: "
	require.True(t, strings.HasPrefix(env.Message, prefix), env.Message)
	excerpt := strings.TrimPrefix(env.Message, prefix)
	assert.LessOrEqual(t, len([]rune(excerpt)), 100)
	assert.True(t, strings.HasPrefix(excerpt, "not-json"))
	assert.Equal(t, body[:100], excerpt)
}

func TestClient_ShortMalformedBody(t *testing.T) {
	t.Parallel()
	client, _ := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "not-json")
	})

	env := client.Get(context.Background(), "/api/item/list", nil)

	assert.Equal(t, "Invalid JSON response: not-json", env.Message)
}

func TestClient_Normalizes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		body    string
		ok      bool
		data    string
		message string
	}{
		{name: "success with data", body: `{"status":"success","data":{"id":"A"}}`, ok: true, data: `{"id":"A"}`},
		{name: "success without data", body: `{"status":"success"}`, ok: true, data: `null`},
		{name: "upstream error", body: `{"status":"error","message":"folder not found"}`, message: "folder not found"},
		{name: "upstream error without message", body: `{"status":"error"}`, message: "Eagle API reported an error"},
		{name: "bare payload", body: `[1,2,3]`, ok: true, data: `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, _ := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})

			env := client.Get(context.Background(), "/api/application/info", nil)

			assert.Equal(t, tt.ok, env.OK())
			if tt.ok {
				assert.JSONEq(t, tt.data, string(env.Data))
			} else {
				assert.Equal(t, tt.message, env.Message)
			}
		})
	}
}

func TestClient_GetEncodesQuery(t *testing.T) {
	t.Parallel()
	seen := make(chan *http.Request, 1)
	client, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- r
		_, _ = io.WriteString(w, `{"status":"success","data":[]}`)
	})

	params := eagle.NewParams().
		Set("limit", int64(0)).
		Set("keyword", "").
		Set("tags", []string{"Design", "Poster"})
	env := client.Get(context.Background(), "/api/item/list", params)

	require.True(t, env.OK())
	got := <-seen
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/item/list", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, []string{"0"}, q["limit"])
	assert.Equal(t, []string{""}, q["keyword"])
	assert.Equal(t, []string{"Design", "Poster"}, q["tags"])
}

func TestClient_PostSendsOrderedJSON(t *testing.T) {
	t.Parallel()
	bodies := make(chan string, 1)
	types := make(chan string, 1)
	client, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies <- string(b)
		types <- r.Header.Get("Content-Type")
		_, _ = io.WriteString(w, `{"status":"success","data":{"id":"F1"}}`)
	})

	env := client.Post(context.Background(), "/api/folder/create",
		eagle.NewParams().Set("folderName", "").Set("parent", "P1"))

	require.True(t, env.OK())
	assert.Equal(t, `{"folderName":"","parent":"P1"}`, <-bodies)
	assert.Equal(t, "application/json", <-types)
}

func TestClient_PostWithoutParamsSendsEmptyObject(t *testing.T) {
	t.Parallel()
	bodies := make(chan string, 1)
	client, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies <- string(b)
		_, _ = io.WriteString(w, `{"status":"success"}`)
	})

	client.Post(context.Background(), "/api/item/refreshPalette", nil)

	assert.Equal(t, `{}`, <-bodies)
}

func TestClient_Binary(t *testing.T) {
	t.Parallel()
	png := []byte("\x89PNG\r\n\x1a\nrest")
	client, _ := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})

	resp := client.Do(context.Background(), eagle.Request{
		Method: http.MethodGet,
		Path:   "/api/library/icon",
		Params: eagle.NewParams().Set("libraryPath", "/lib"),
		Binary: true,
	})

	require.True(t, resp.Envelope.OK())
	assert.Equal(t, png, resp.Content)
	assert.Equal(t, "image/png", resp.ContentType)
	assert.Equal(t, "image/png", resp.Envelope.Field("content_type").String())
	assert.EqualValues(t, len(png), resp.Envelope.Field("data_size").Int())
}

func TestClient_RejectsBadRequests(t *testing.T) {
	t.Parallel()
	client, hits := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success"}`)
	})

	env := client.Do(context.Background(), eagle.Request{Method: http.MethodDelete, Path: "/api/item/info"}).Envelope
	assert.Equal(t, "Unsupported HTTP method: DELETE", env.Message)

	env = client.Get(context.Background(), "api/item/info", nil)
	assert.False(t, env.OK())

	assert.EqualValues(t, 0, hits.Load())
}

func TestClient_CancelledContext(t *testing.T) {
	t.Parallel()
	client, _ := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success"}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := client.Get(ctx, "/api/folder/list", nil)

	assert.False(t, env.OK())
	assert.Contains(t, env.Message, "context canceled")
}

func TestClient_GetIsIdempotent(t *testing.T) {
	t.Parallel()
	client, hits := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success","data":[{"id":"F1","name":"Posters"}]}`)
	})

	first := client.Get(context.Background(), "/api/folder/list", nil)
	second := client.Get(context.Background(), "/api/folder/list", nil)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 2, hits.Load())
}
