package subgraphclient

import (
	"context"

	"github.com/vfg2006/fund-kpi-api/internal/config"
)

type Client interface {
	// Query executa uma consulta (ou mutation) e retorna a resposta completa,
	// inclusive com erros parciais
	Query(ctx context.Context, op Operation) (*Response, error)
	// Subscribe mantém a subscription ativa chamando handler a cada evento
	Subscribe(ctx context.Context, op Operation, handler ResponseHandler) error
}

type SubgraphClient struct {
	transport Transport
}

// NewClient monta a cadeia de transporte: registro de erros -> split(ws, http).
// Sem SUBGRAPH_WS configurado, apenas HTTP é usado.
func NewClient(cfg *config.Config) Client {
	httpTransport := NewHTTPTransport(cfg.Subgraph.HTTPURL, cfg.Subgraph.Timeout)

	var wsTransport Transport
	if cfg.Subgraph.WSURL != "" {
		wsTransport = NewWSTransport(cfg.Subgraph.WSURL, WSOptions{
			Reconnect: cfg.Subgraph.Reconnect,
		})
	}

	return NewClientWithTransport(WithErrorLogging(NewSplitTransport(wsTransport, httpTransport)))
}

// NewClientWithTransport permite injetar um transporte customizado
func NewClientWithTransport(transport Transport) *SubgraphClient {
	return &SubgraphClient{transport: transport}
}

func (c *SubgraphClient) Query(ctx context.Context, op Operation) (*Response, error) {
	var result *Response
	err := c.transport.Execute(ctx, op, func(resp *Response) error {
		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, ErrEmptyResponse
	}

	return result, nil
}

func (c *SubgraphClient) Subscribe(ctx context.Context, op Operation, handler ResponseHandler) error {
	return c.transport.Execute(ctx, op, handler)
}
