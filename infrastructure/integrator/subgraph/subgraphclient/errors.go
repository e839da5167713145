package subgraphclient

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNoOperation indica um documento sem definição de operação
	ErrNoOperation = errors.New("documento GraphQL sem operação")
	// ErrEmptyResponse indica que o transporte terminou sem entregar resposta
	ErrEmptyResponse = errors.New("resposta GraphQL vazia")
	// ErrSubscriptionsUnavailable indica que não há endpoint WebSocket configurado
	ErrSubscriptionsUnavailable = errors.New("subscriptions indisponíveis: endpoint websocket não configurado")
	// ErrConnectionNotAcknowledged indica que o servidor não confirmou o connection_init
	ErrConnectionNotAcknowledged = errors.New("conexão websocket não confirmada pelo servidor")
)

// NetworkError representa falha de transporte ou status HTTP inesperado
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("erro de rede (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("erro de rede: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseErrors agrega os erros GraphQL de uma resposta sem dados
type ResponseErrors []GraphQLError

func (e ResponseErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, gqlErr := range e {
		messages = append(messages, gqlErr.Message)
	}
	return "erros GraphQL: " + strings.Join(messages, "; ")
}
