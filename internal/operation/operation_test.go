package operation_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eagle-mcp/internal/eagle"
	"eagle-mcp/internal/operation"
)

func TestCatalog_NamesAndRoutesAreUnique(t *testing.T) {
	t.Parallel()
	names := map[string]bool{}
	routes := map[string]bool{}
	for _, d := range operation.Catalog() {
		assert.False(t, names[d.Name], "duplicate name %s", d.Name)
		names[d.Name] = true
		route := d.Method + " " + d.Path
		assert.False(t, routes[route], "duplicate route %s", route)
		routes[route] = true

		assert.NotEmpty(t, d.Title, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
		assert.Contains(t, []string{http.MethodGet, http.MethodPost}, d.Method, d.Name)
	}
	assert.Len(t, names, 24)
}

func TestCatalog_WritesUsePost(t *testing.T) {
	t.Parallel()
	for _, d := range operation.Catalog() {
		if d.Hint == operation.HintReadOnly {
			assert.Equal(t, http.MethodGet, d.Method, d.Name)
		} else {
			assert.Equal(t, http.MethodPost, d.Method, d.Name)
		}
	}
}

func TestSchema(t *testing.T) {
	t.Parallel()
	s := mustOp(t, "get_item_list").Schema()

	assert.Equal(t, "object", s["type"])
	assert.NotContains(t, s, "required")
	props := s["properties"].(map[string]any)
	limit := props["limit"].(map[string]any)
	assert.Equal(t, "integer", limit["type"])
	assert.Equal(t, float64(1), limit["minimum"])
	assert.Equal(t, float64(200), limit["maximum"])
	order := props["order_by"].(map[string]any)
	assert.Equal(t, operation.ItemOrders, order["enum"])

	s = mustOp(t, "add_items_from_urls").Schema()
	assert.Equal(t, []string{"items"}, s["required"])
	items := s["properties"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, "array", items["type"])
	assert.Equal(t, 1, items["minItems"])
	elem := items["items"].(map[string]any)
	assert.Equal(t, []string{"url", "name"}, elem["required"])
}

func TestAnnotations(t *testing.T) {
	t.Parallel()
	assert.True(t, mustOp(t, "get_folder_list").Annotations()["readOnlyHint"])
	assert.True(t, mustOp(t, "move_item_to_trash").Annotations()["destructiveHint"])
	assert.True(t, mustOp(t, "update_item").Annotations()["idempotentHint"])
	a := mustOp(t, "create_folder").Annotations()
	assert.False(t, a["readOnlyHint"])
	assert.False(t, a["idempotentHint"])
}

func TestArgsFromQuery(t *testing.T) {
	t.Parallel()
	d := mustOp(t, "get_item_list")

	args, err := operation.ArgsFromQuery(d, url.Values{
		"limit":   {"10"},
		"keyword": {""},
		"extra":   {"x"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), args["limit"])
	assert.Equal(t, "", args["keyword"])
	_, err = d.Build(args)
	assert.ErrorIs(t, err, operation.ErrValidation)

	_, err = operation.ArgsFromQuery(d, url.Values{"offset": {"ten"}})
	assert.ErrorIs(t, err, operation.ErrValidation)
}

func TestArgsFromQuery_RejectsObjects(t *testing.T) {
	t.Parallel()
	_, err := operation.ArgsFromQuery(mustOp(t, "add_items_from_urls"), url.Values{"items": {"[]"}})
	assert.ErrorIs(t, err, operation.ErrValidation)
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	r := operation.NewRegistry()
	require.NoError(t, r.Register(operation.Descriptor{Name: "a"}))
	require.NoError(t, r.Register(operation.Descriptor{Name: "b"}))
	assert.Error(t, r.Register(operation.Descriptor{Name: "a"}))
	assert.Error(t, r.Register(operation.Descriptor{}))

	assert.Equal(t, []string{"a", "b"}, r.Names())
	_, err := r.Lookup("missing")
	assert.ErrorIs(t, err, operation.ErrUnknownOperation)
}

func TestNewRegistryFrom_Disabled(t *testing.T) {
	t.Parallel()
	r, unknown, err := operation.NewRegistryFrom(operation.Catalog(), []string{"move_item_to_trash", "nope"})

	require.NoError(t, err)
	assert.Equal(t, []string{"nope"}, unknown)
	_, ok := r.Get("move_item_to_trash")
	assert.False(t, ok)
	assert.Len(t, r.List(), len(operation.Catalog())-1)
	assert.Equal(t, "get_application_info", r.List()[0].Name)
}

func fakeUpstream(t *testing.T, body string) (*eagle.Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return eagle.New(srv.URL, nil), &hits
}

func TestInvoke_ValidationSendsNothing(t *testing.T) {
	t.Parallel()
	client, hits := fakeUpstream(t, `{"status":"success"}`)

	_, err := operation.Invoke(context.Background(), client, mustOp(t, "update_item"),
		map[string]any{"item_id": "A", "star": float64(6)})

	assert.ErrorIs(t, err, operation.ErrValidation)
	assert.EqualValues(t, 0, hits.Load())
}

func TestInvoke_PassThrough(t *testing.T) {
	t.Parallel()
	client, hits := fakeUpstream(t, `{"status":"success","data":[{"id":"F1"}]}`)

	resp, err := operation.Invoke(context.Background(), client, mustOp(t, "get_folder_list"), nil)

	require.NoError(t, err)
	assert.True(t, resp.Envelope.OK())
	assert.Equal(t, "F1", resp.Envelope.Field("0.id").String())
	assert.EqualValues(t, 1, hits.Load())
}

func TestInvoke_Connect(t *testing.T) {
	t.Parallel()
	client, hits := fakeUpstream(t, `{"status":"success"}`)

	resp, err := operation.Invoke(context.Background(), client, mustOp(t, "connect"), map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "Connected!", resp.Envelope.Field("message").String())
	assert.EqualValues(t, 0, hits.Load())
}

// minimalArgs supplies a valid value for every required parameter.
func minimalArgs(params []operation.Param) map[string]any {
	args := map[string]any{}
	for _, p := range params {
		if !p.Required {
			continue
		}
		switch p.Kind {
		case operation.KindString:
			args[p.Name] = "v"
			if len(p.Enum) > 0 {
				args[p.Name] = p.Enum[0]
			}
		case operation.KindInteger:
			args[p.Name] = float64(1)
		case operation.KindBoolean:
			args[p.Name] = true
		case operation.KindStringArray:
			args[p.Name] = []any{"v"}
		case operation.KindStringMap:
			args[p.Name] = map[string]any{}
		case operation.KindObjectArray:
			args[p.Name] = []any{minimalArgs(p.Items)}
		}
	}
	return args
}

func TestInvoke_EveryOperationReportsUpstreamFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "not found", status: http.StatusNotFound, message: "HTTP error occurred: 404"},
		{name: "server error", status: http.StatusInternalServerError, message: "HTTP error occurred: 500"},
		{name: "not json", status: http.StatusOK, body: "not-json", message: "Invalid JSON response: not-json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)
			client := eagle.New(srv.URL, nil)

			for _, d := range operation.Catalog() {
				if d.Run != nil || (d.Binary && tt.status == http.StatusOK) {
					continue
				}
				resp, err := operation.Invoke(context.Background(), client, d, minimalArgs(d.Params))
				require.NoError(t, err, d.Name)
				assert.False(t, resp.Envelope.OK(), d.Name)
				assert.Equal(t, tt.message, resp.Envelope.Message, d.Name)
			}
		})
	}
}

func TestInvoke_EveryOperationReportsTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	client := eagle.New(srv.URL, nil)
	srv.Close()

	for _, d := range operation.Catalog() {
		if d.Name == "connect" {
			continue
		}
		resp, err := operation.Invoke(context.Background(), client, d, minimalArgs(d.Params))
		require.NoError(t, err, d.Name)
		assert.False(t, resp.Envelope.OK(), d.Name)
		assert.NotEmpty(t, resp.Envelope.Message, d.Name)
		assert.Nil(t, resp.Envelope.Data, d.Name)
	}
}
