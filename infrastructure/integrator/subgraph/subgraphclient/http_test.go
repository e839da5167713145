package subgraphclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Query(t *testing.T) {
	var received Operation
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"m0":[{"active":10}]},"errors":[{"message":"parcial","path":["m1",0]}]}`))
	}))
	defer server.Close()

	client := NewClientWithTransport(NewHTTPTransport(server.URL, time.Second))
	resp, err := client.Query(context.Background(), Operation{
		Query:         `query Q($d0: BigInt!) { m0: investorCounts { active } }`,
		OperationName: "Q",
		Variables:     map[string]any{"d0": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "Q", received.OperationName)
	assert.EqualValues(t, 1, received.Variables["d0"])
	assert.JSONEq(t, `{"m0":[{"active":10}]}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "parcial", resp.Errors[0].Message)
	assert.Equal(t, "m1.0", joinPath(resp.Errors[0].Path))
}

func TestHTTPTransport_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "indisponível", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClientWithTransport(NewHTTPTransport(server.URL, time.Second))
	_, err := client.Query(context.Background(), Operation{Query: `{ a }`})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusBadGateway, netErr.StatusCode)
}

func TestHTTPTransport_GraphQLErrorsWithStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"campo desconhecido"}]}`))
	}))
	defer server.Close()

	client := NewClientWithTransport(NewHTTPTransport(server.URL, time.Second))
	resp, err := client.Query(context.Background(), Operation{Query: `{ a }`})
	require.NoError(t, err)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "campo desconhecido", resp.Errors[0].Message)
}

type recordingTransport struct {
	calls int
	resp  *Response
}

func (r *recordingTransport) Execute(ctx context.Context, op Operation, handler ResponseHandler) error {
	r.calls++
	return handler(r.resp)
}

func TestSplitTransport(t *testing.T) {
	ws := &recordingTransport{resp: &Response{}}
	query := &recordingTransport{resp: &Response{}}
	transport := NewSplitTransport(ws, query)

	noop := func(*Response) error { return nil }

	require.NoError(t, transport.Execute(context.Background(), Operation{Query: `query { a }`}, noop))
	require.NoError(t, transport.Execute(context.Background(), Operation{Query: `subscription { a }`}, noop))
	require.NoError(t, transport.Execute(context.Background(), Operation{Query: `{ a }`}, noop))

	assert.Equal(t, 1, ws.calls)
	assert.Equal(t, 2, query.calls)
}

func TestSplitTransport_WithoutWebsocket(t *testing.T) {
	transport := NewSplitTransport(nil, &recordingTransport{resp: &Response{}})

	err := transport.Execute(context.Background(), Operation{Query: `subscription { a }`}, func(*Response) error { return nil })
	assert.ErrorIs(t, err, ErrSubscriptionsUnavailable)
}

func TestErrorLink_ForwardsResponse(t *testing.T) {
	inner := &recordingTransport{resp: &Response{
		Data:   []byte(`{"a":1}`),
		Errors: []GraphQLError{{Message: "falhou", Path: []any{"a"}}},
	}}

	client := NewClientWithTransport(WithErrorLogging(inner))
	resp, err := client.Query(context.Background(), Operation{Query: `{ a }`})
	require.NoError(t, err)
	assert.Len(t, resp.Errors, 1)
	assert.JSONEq(t, `{"a":1}`, string(resp.Data))
}
