package subgraph

import (
	"fmt"
	"strings"

	"github.com/vfg2006/fund-kpi-api/internal/domain"
)

// queryDef descreve como cada métrica é consultada no subgraph
type queryDef struct {
	name   string
	entity string
	field  string
}

var queryDefs = map[domain.Quantity]queryDef{
	domain.QuantityInvestors:   {name: "MonthlyInvestorCount", entity: "investorCounts", field: "active"},
	domain.QuantityInvestments: {name: "MonthlyInvestmentCount", entity: "investmentCounts", field: "active"},
	domain.QuantityAUM:         {name: "MonthlyAum", entity: "melonNetworkHistories", field: "gav"},
}

const (
	opQuery        = "query"
	opSubscription = "subscription"
)

func definitionFor(quantity domain.Quantity) (queryDef, error) {
	def, ok := queryDefs[quantity]
	if !ok {
		return queryDef{}, fmt.Errorf("quantidade sem consulta no subgraph: %s", quantity)
	}
	return def, nil
}

// operationName segue o padrão MonthlyXQuery / MonthlyXSubscription
func (s queryDef) operationName(kind string) string {
	if kind == opSubscription {
		return s.name + "Subscription"
	}
	return s.name + "Query"
}

// document monta a operação com uma seleção por limite: mN traz o último
// registro com timestamp <= dN.
func (s queryDef) document(kind string) string {
	var b strings.Builder

	vars := make([]string, 0, domain.BoundariesPerYear)
	for i := 0; i < domain.BoundariesPerYear; i++ {
		vars = append(vars, fmt.Sprintf("$d%d: BigInt!", i))
	}

	fmt.Fprintf(&b, "%s %s(%s) {\n", kind, s.operationName(kind), strings.Join(vars, ", "))
	for i := 0; i < domain.BoundariesPerYear; i++ {
		fmt.Fprintf(&b,
			"  m%d: %s(where: { timestamp_lte: $d%d }, orderBy: timestamp, orderDirection: desc, first: 1) {\n    %s\n    timestamp\n  }\n",
			i, s.entity, i, s.field,
		)
	}
	b.WriteString("}\n")

	return b.String()
}

// variables gera d0..d12 a partir dos limites do ano
func variables(boundaries domain.YearBoundaries) map[string]any {
	vars := make(map[string]any, len(boundaries))
	for i, boundary := range boundaries {
		vars[fmt.Sprintf("d%d", i)] = int64(boundary)
	}
	return vars
}
