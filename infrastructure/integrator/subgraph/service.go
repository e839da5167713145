package subgraph

import (
	"context"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	subgraphdomain "github.com/vfg2006/fund-kpi-api/infrastructure/integrator/subgraph/domain"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/subgraph/subgraphclient"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SubgraphIntegrator interface {
	// GetMonthlyRows busca o valor de uma métrica em cada um dos 13 limites do ano
	GetMonthlyRows(ctx context.Context, quantity domain.Quantity, boundaries domain.YearBoundaries) (domain.MonthlyRows, error)
	// WatchMonthlyRows mantém uma subscription e chama onRows a cada atualização
	WatchMonthlyRows(ctx context.Context, quantity domain.Quantity, boundaries domain.YearBoundaries, onRows func(domain.MonthlyRows) error) error
}

type SubgraphService struct {
	Client subgraphclient.Client
}

func New(client subgraphclient.Client) SubgraphIntegrator {
	return &SubgraphService{
		Client: client,
	}
}

func (s *SubgraphService) GetMonthlyRows(ctx context.Context, quantity domain.Quantity, boundaries domain.YearBoundaries) (domain.MonthlyRows, error) {
	op, def, err := buildOperation(quantity, boundaries, opQuery)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Query(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar %s: %w", op.OperationName, err)
	}

	return toMonthlyRows(resp, def)
}

func (s *SubgraphService) WatchMonthlyRows(
	ctx context.Context,
	quantity domain.Quantity,
	boundaries domain.YearBoundaries,
	onRows func(domain.MonthlyRows) error,
) error {
	op, def, err := buildOperation(quantity, boundaries, opSubscription)
	if err != nil {
		return err
	}

	return s.Client.Subscribe(ctx, op, func(resp *subgraphclient.Response) error {
		rows, err := toMonthlyRows(resp, def)
		if err != nil {
			logrus.WithError(err).WithField("operation", op.OperationName).Warn("subgraph: evento ignorado")
			return nil
		}
		return onRows(rows)
	})
}

func buildOperation(quantity domain.Quantity, boundaries domain.YearBoundaries, kind string) (subgraphclient.Operation, queryDef, error) {
	def, err := definitionFor(quantity)
	if err != nil {
		return subgraphclient.Operation{}, queryDef{}, err
	}

	return subgraphclient.Operation{
		Query:         def.document(kind),
		OperationName: def.operationName(kind),
		Variables:     variables(boundaries),
	}, def, nil
}

// toMonthlyRows converte mN[0].<campo> em MonthlyRows. Listas vazias e
// campos nulos ficam ausentes.
func toMonthlyRows(resp *subgraphclient.Response, def queryDef) (domain.MonthlyRows, error) {
	if resp == nil {
		return nil, subgraphclient.ErrEmptyResponse
	}

	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		if len(resp.Errors) > 0 {
			return nil, subgraphclient.ResponseErrors(resp.Errors)
		}
		return domain.MonthlyRows{}, nil
	}

	var result subgraphdomain.MonthlyResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do subgraph: %w", err)
	}

	rows := make(domain.MonthlyRows, domain.BoundariesPerYear)
	for i := 0; i < domain.BoundariesPerYear; i++ {
		entries := result["m"+strconv.Itoa(i)]
		if len(entries) == 0 {
			continue
		}

		value := entries[0].Active
		if def.field == "gav" {
			value = entries[0].Gav
		}

		if value.Valid {
			rows[i] = value.Value
		}
	}

	return rows, nil
}
