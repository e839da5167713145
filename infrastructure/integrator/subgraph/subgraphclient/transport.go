package subgraphclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ResponseHandler recebe cada resultado de uma operação. Consultas HTTP chamam
// o handler uma única vez; subscriptions chamam a cada evento recebido.
// Retornar um erro encerra a operação.
type ResponseHandler func(resp *Response) error

// Transport executa uma operação GraphQL
type Transport interface {
	Execute(ctx context.Context, op Operation, handler ResponseHandler) error
}

// splitTransport envia subscriptions pelo transporte websocket e o restante por HTTP
type splitTransport struct {
	subscription Transport
	query        Transport
}

// NewSplitTransport cria o transporte que escolhe o destino conforme o tipo da operação.
// Com subscription nil, subscriptions falham com ErrSubscriptionsUnavailable.
func NewSplitTransport(subscription, query Transport) Transport {
	return &splitTransport{
		subscription: subscription,
		query:        query,
	}
}

func (t *splitTransport) Execute(ctx context.Context, op Operation, handler ResponseHandler) error {
	isSubscription, err := IsSubscription(op.Query)
	if err != nil {
		return err
	}

	if !isSubscription {
		return t.query.Execute(ctx, op, handler)
	}

	if t.subscription == nil {
		return ErrSubscriptionsUnavailable
	}

	return t.subscription.Execute(ctx, op, handler)
}

// errorLink registra erros GraphQL e de rede e repassa o resultado sem alterá-lo
type errorLink struct {
	next Transport
}

// WithErrorLogging envolve o transporte com o registro de erros
func WithErrorLogging(next Transport) Transport {
	return &errorLink{next: next}
}

func (l *errorLink) Execute(ctx context.Context, op Operation, handler ResponseHandler) error {
	err := l.next.Execute(ctx, op, func(resp *Response) error {
		logGraphQLErrors(op, resp)
		return handler(resp)
	})
	if err != nil && ctx.Err() == nil {
		logrus.WithError(err).WithField("operation", op.OperationName).Error("[GQL NETWORK ERROR]")
	}
	return err
}

func logGraphQLErrors(op Operation, resp *Response) {
	if resp == nil {
		return
	}

	for _, gqlErr := range resp.Errors {
		logrus.WithFields(logrus.Fields{
			"operation": op.OperationName,
			"path":      joinPath(gqlErr.Path),
			"locations": gqlErr.Locations,
		}).Error("[GQL ERROR]: " + gqlErr.Message)
	}
}

func joinPath(path []any) string {
	parts := make([]string, 0, len(path))
	for _, p := range path {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}
