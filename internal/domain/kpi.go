package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// MonthsPerYear é o número de meses reportados por ano
const MonthsPerYear = 12

// BoundariesPerYear inclui o limite anterior a janeiro, usado para o delta do primeiro mês
const BoundariesPerYear = MonthsPerYear + 1

// QuantityKind classifica como a variação de uma quantidade é calculada
type QuantityKind int

const (
	// QuantityKindCount são contagens inteiras sem escala
	QuantityKindCount QuantityKind = iota
	// QuantityKindFixedPointAmount são inteiros escalados por 10^scale
	QuantityKindFixedPointAmount
)

func (k QuantityKind) String() string {
	switch k {
	case QuantityKindCount:
		return "count"
	case QuantityKindFixedPointAmount:
		return "fixed_point_amount"
	default:
		return fmt.Sprintf("QuantityKind(%d)", int(k))
	}
}

// Quantity identifica uma métrica acompanhada pelo painel
type Quantity string

const (
	QuantityInvestors   Quantity = "investors"
	QuantityInvestments Quantity = "investments"
	QuantityAUM         Quantity = "aum"
)

// Quantities retorna as métricas na ordem de exibição da tabela
func Quantities() []Quantity {
	return []Quantity{QuantityInvestors, QuantityInvestments, QuantityAUM}
}

// Label retorna o nome exibido na coluna "Quantity"
func (q Quantity) Label() string {
	switch q {
	case QuantityInvestors:
		return "Investors"
	case QuantityInvestments:
		return "Investments"
	case QuantityAUM:
		return "AUM"
	default:
		return string(q)
	}
}

// Kind retorna o domínio numérico da métrica
func (q Quantity) Kind() QuantityKind {
	if q == QuantityAUM {
		return QuantityKindFixedPointAmount
	}
	return QuantityKindCount
}

// ParseQuantity converte o nome usado em URLs e no banco
func ParseQuantity(s string) (Quantity, error) {
	for _, q := range Quantities() {
		if string(q) == s {
			return q, nil
		}
	}
	return "", fmt.Errorf("quantidade desconhecida: %q", s)
}

// MonthBoundary é o timestamp Unix (segundos) do primeiro instante de um mês
type MonthBoundary int64

// Time converte o limite para time.Time em UTC
func (b MonthBoundary) Time() time.Time {
	return time.Unix(int64(b), 0).UTC()
}

// YearBoundaries contém os inícios dos meses 0..12 de um ano; o índice 12 é
// janeiro do ano seguinte.
type YearBoundaries [BoundariesPerYear]MonthBoundary

// MonthBoundaries calcula os 13 limites mensais de um ano no fuso informado
func MonthBoundaries(year int, loc *time.Location) YearBoundaries {
	if loc == nil {
		loc = time.Local
	}

	var boundaries YearBoundaries
	for i := range boundaries {
		// time.Date normaliza o mês 13 para janeiro do ano seguinte
		start := time.Date(year, time.January+time.Month(i), 1, 0, 0, 0, 0, loc)
		boundaries[i] = MonthBoundary(start.Unix())
	}

	return boundaries
}

// RawMonthlyRow é o valor bruto de uma quantidade em um limite mensal
type RawMonthlyRow struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

// MonthlyRows mapeia o índice do limite (0..12) para o numeral bruto.
// Ausência da chave significa que não há dado para o período.
type MonthlyRows map[int]string

// NewMonthlyRows monta o mapa a partir das linhas recebidas
func NewMonthlyRows(rows []RawMonthlyRow) MonthlyRows {
	result := make(MonthlyRows, len(rows))
	for _, row := range rows {
		if row.Index < 0 || row.Index >= BoundariesPerYear {
			continue
		}
		result[row.Index] = row.Value
	}
	return result
}

// Get retorna o valor e se ele está presente
func (r MonthlyRows) Get(index int) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r[index]
	return v, ok
}

// Rows retorna as linhas presentes em ordem de índice
func (r MonthlyRows) Rows() []RawMonthlyRow {
	rows := make([]RawMonthlyRow, 0, len(r))
	for i := 0; i < BoundariesPerYear; i++ {
		if v, ok := r[i]; ok {
			rows = append(rows, RawMonthlyRow{Index: i, Value: v})
		}
	}
	return rows
}

// MonthlyQuantity é a unidade reportada por mês. Ponteiro nil representa
// ausência de valor e nunca deve ser confundido com zero.
type MonthlyQuantity struct {
	Value  *string `json:"value"`
	Change *string `json:"change"`
}

// HasValue indica se o mês possui valor numérico
func (m MonthlyQuantity) HasValue() bool {
	return isNumeric(m.Value)
}

// Render aplica a regra de exibição da célula: vazio quando não há valor,
// caso contrário "valor (variação)".
func (m MonthlyQuantity) Render() string {
	if !m.HasValue() {
		return ""
	}

	if isNumeric(m.Change) {
		return fmt.Sprintf("%s (%s)", *m.Value, *m.Change)
	}

	return *m.Value
}

func isNumeric(s *string) bool {
	if s == nil {
		return false
	}
	_, err := decimal.NewFromString(*s)
	return err == nil
}

// AnnualQuantityList é uma linha da tabela anual (m1..m12)
type AnnualQuantityList struct {
	Quantity string
	Months   [MonthsPerYear]MonthlyQuantity
}

// Month retorna o mês 1..12
func (a AnnualQuantityList) Month(month int) MonthlyQuantity {
	if month < 1 || month > MonthsPerYear {
		return MonthlyQuantity{}
	}
	return a.Months[month-1]
}

// MarshalJSON serializa no formato {"quantity": ..., "m1": ..., "m12": ...}
func (a AnnualQuantityList) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, MonthsPerYear+1)
	out["quantity"] = a.Quantity
	for i, m := range a.Months {
		out["m"+strconv.Itoa(i+1)] = m
	}
	return json.Marshal(out)
}

// UnmarshalJSON lê o formato produzido por MarshalJSON
func (a *AnnualQuantityList) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if q, ok := raw["quantity"]; ok {
		if err := json.Unmarshal(q, &a.Quantity); err != nil {
			return err
		}
	}

	for i := range a.Months {
		m, ok := raw["m"+strconv.Itoa(i+1)]
		if !ok {
			continue
		}
		if err := json.Unmarshal(m, &a.Months[i]); err != nil {
			return err
		}
	}

	return nil
}

// Origem das linhas brutas usadas em um relatório
const (
	SourceSubgraph = "subgraph"
	SourceCache    = "cache"
	SourceSnapshot = "snapshot"
)

// AnnualReport é a resposta completa do painel para um ano
type AnnualReport struct {
	Year       int                  `json:"year"`
	Navigation YearNavigation       `json:"navigation"`
	Boundaries YearBoundaries       `json:"boundaries"`
	Rows       []AnnualQuantityList `json:"rows"`
	Source     string               `json:"source,omitempty"`
}
