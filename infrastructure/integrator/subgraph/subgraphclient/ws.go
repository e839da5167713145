package subgraphclient

import (
	"context"
	stdjson "encoding/json"
	"time"

	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Mensagens do protocolo graphql-ws (subscriptions-transport-ws)
const (
	wsSubprotocol = "graphql-ws"

	gqlConnectionInit      = "connection_init"
	gqlConnectionAck       = "connection_ack"
	gqlConnectionError     = "connection_error"
	gqlConnectionKeepAlive = "ka"
	gqlConnectionTerminate = "connection_terminate"
	gqlStart               = "start"
	gqlStop                = "stop"
	gqlData                = "data"
	gqlError               = "error"
	gqlComplete            = "complete"
)

type wsMessage struct {
	ID      string             `json:"id,omitempty"`
	Type    string             `json:"type"`
	Payload stdjson.RawMessage `json:"payload,omitempty"`
}

// WSOptions configura o transporte websocket
type WSOptions struct {
	Reconnect  bool
	AckTimeout time.Duration
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

type wsTransport struct {
	url    string
	dialer *websocket.Dialer
	opts   WSOptions
}

// permanentError interrompe as tentativas de reconexão
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// NewWSTransport cria o transporte de subscriptions
func NewWSTransport(url string, opts WSOptions) Transport {
	if opts.AckTimeout <= 0 {
		opts.AckTimeout = 10 * time.Second
	}
	if opts.MinBackoff <= 0 {
		opts.MinBackoff = time.Second
	}
	if opts.MaxBackoff < opts.MinBackoff {
		opts.MaxBackoff = 30 * time.Second
	}

	return &wsTransport{
		url: url,
		dialer: &websocket.Dialer{
			Subprotocols:     []string{wsSubprotocol},
			HandshakeTimeout: 10 * time.Second,
		},
		opts: opts,
	}
}

// Execute mantém a subscription até o contexto ser cancelado, o servidor
// completar a operação ou o handler retornar erro.
func (t *wsTransport) Execute(ctx context.Context, op Operation, handler ResponseHandler) error {
	backoff := t.opts.MinBackoff

	for {
		err := t.run(ctx, op, handler)
		if err == nil || ctx.Err() != nil {
			return nil
		}

		var permanent *permanentError
		if errors.As(err, &permanent) {
			return permanent.err
		}
		if !t.opts.Reconnect {
			return err
		}

		logrus.WithError(err).WithFields(logrus.Fields{
			"operation": op.OperationName,
			"backoff":   backoff.String(),
		}).Warn("subgraph: conexão websocket perdida, reconectando")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > t.opts.MaxBackoff {
			backoff = t.opts.MaxBackoff
		}
	}
}

func (t *wsTransport) run(ctx context.Context, op Operation, handler ResponseHandler) error {
	conn, _, err := t.dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			conn.Close()
		case <-done:
		}
	}()

	if err := t.init(conn); err != nil {
		return err
	}

	id, err := gonanoid.New()
	if err != nil {
		return &permanentError{err: errors.Wrap(err, "erro ao gerar id da subscription")}
	}

	payload, err := json.Marshal(op)
	if err != nil {
		return &permanentError{err: errors.Wrap(err, "erro ao serializar operação")}
	}

	if err := conn.WriteJSON(wsMessage{ID: id, Type: gqlStart, Payload: payload}); err != nil {
		return &NetworkError{Err: err}
	}

	for {
		msg, err := readMessage(conn)
		if err != nil {
			return &NetworkError{Err: err}
		}

		switch msg.Type {
		case gqlConnectionKeepAlive:
			continue
		case gqlData:
			if msg.ID != id {
				continue
			}

			var resp Response
			if err := json.Unmarshal(msg.Payload, &resp); err != nil {
				return &permanentError{err: errors.Wrap(err, "erro ao decodificar evento da subscription")}
			}

			if err := handler(&resp); err != nil {
				stop(conn, id)
				return &permanentError{err: err}
			}
		case gqlError:
			return &permanentError{err: decodeErrorPayload(msg.Payload)}
		case gqlConnectionError:
			return &permanentError{err: errors.Wrap(decodeErrorPayload(msg.Payload), "connection_error")}
		case gqlComplete:
			if msg.ID == id {
				_ = conn.WriteJSON(wsMessage{Type: gqlConnectionTerminate})
				return nil
			}
		}
	}
}

// init envia connection_init e aguarda connection_ack
func (t *wsTransport) init(conn *websocket.Conn) error {
	if err := conn.WriteJSON(wsMessage{Type: gqlConnectionInit, Payload: stdjson.RawMessage(`{}`)}); err != nil {
		return &NetworkError{Err: err}
	}

	if err := conn.SetReadDeadline(time.Now().Add(t.opts.AckTimeout)); err != nil {
		return &NetworkError{Err: err}
	}

	for {
		msg, err := readMessage(conn)
		if err != nil {
			return &NetworkError{Err: errors.Wrap(ErrConnectionNotAcknowledged, err.Error())}
		}

		switch msg.Type {
		case gqlConnectionAck:
			return conn.SetReadDeadline(time.Time{})
		case gqlConnectionError:
			return &permanentError{err: errors.Wrap(decodeErrorPayload(msg.Payload), "connection_error")}
		}
	}
}

func stop(conn *websocket.Conn, id string) {
	_ = conn.WriteJSON(wsMessage{ID: id, Type: gqlStop})
	_ = conn.WriteJSON(wsMessage{Type: gqlConnectionTerminate})
}

func readMessage(conn *websocket.Conn) (*wsMessage, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	var msg wsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.Wrap(err, "mensagem websocket inválida")
	}
	return &msg, nil
}

// decodeErrorPayload aceita tanto um objeto de erro quanto uma lista
func decodeErrorPayload(payload stdjson.RawMessage) error {
	var list []GraphQLError
	if err := json.Unmarshal(payload, &list); err == nil && len(list) > 0 {
		return ResponseErrors(list)
	}

	var single GraphQLError
	if err := json.Unmarshal(payload, &single); err == nil && single.Message != "" {
		return ResponseErrors{single}
	}

	return errors.Errorf("erro na subscription: %s", string(payload))
}
