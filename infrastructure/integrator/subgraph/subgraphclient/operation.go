package subgraphclient

import (
	stdjson "encoding/json"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Operation é uma operação GraphQL a ser enviada ao subgraph
type Operation struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Location aponta a posição de um erro no documento GraphQL
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError é um erro retornado pelo servidor junto (ou no lugar) dos dados
type GraphQLError struct {
	Message   string     `json:"message"`
	Path      []any      `json:"path,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

// Response é o envelope padrão de resposta GraphQL
type Response struct {
	Data   stdjson.RawMessage `json:"data"`
	Errors []GraphQLError      `json:"errors,omitempty"`
}

// IsSubscription indica se a definição principal do documento é uma subscription
func IsSubscription(query string) (bool, error) {
	op, err := mainDefinition(query)
	if err != nil {
		return false, err
	}
	return op.Operation == ast.Subscription, nil
}

// mainDefinition retorna a primeira operação do documento
func mainDefinition(query string) (*ast.OperationDefinition, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar operação GraphQL")
	}

	if len(doc.Operations) == 0 {
		return nil, ErrNoOperation
	}

	return doc.Operations[0], nil
}
