package subgraphclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type httpTransport struct {
	url        string
	httpClient *http.Client
}

// NewHTTPTransport cria o transporte de consultas via POST JSON
func NewHTTPTransport(url string, timeout time.Duration) Transport {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &httpTransport{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *httpTransport) Execute(ctx context.Context, op Operation, handler ResponseHandler) error {
	body, err := json.Marshal(op)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar operação")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{StatusCode: resp.StatusCode, Err: err}
	}

	var result Response
	if err := json.Unmarshal(data, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("resposta inesperada: %s", resp.Status)}
		}
		return &NetworkError{StatusCode: resp.StatusCode, Err: errors.Wrap(err, "erro ao decodificar JSON")}
	}

	// servidores GraphQL podem responder 4xx/5xx com erros no corpo
	if resp.StatusCode != http.StatusOK && len(result.Errors) == 0 {
		return &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("resposta inesperada: %s", resp.Status)}
	}

	return handler(&result)
}
