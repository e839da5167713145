package domain

import (
	"bytes"
	"strconv"
)

// Numeral aceita valores numéricos enviados como número JSON ou string
// (BigInt/BigDecimal no subgraph chegam como string).
type Numeral struct {
	Value string
	Valid bool
}

func (n *Numeral) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Numeral{}
		return nil
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*n = Numeral{Value: s, Valid: true}
		return nil
	}

	*n = Numeral{Value: string(data), Valid: true}
	return nil
}

// MonthlyRow é o registro mais recente de uma métrica até um limite mensal
type MonthlyRow struct {
	Active    Numeral `json:"active"`
	Gav       Numeral `json:"gav"`
	Timestamp Numeral `json:"timestamp"`
}

// MonthlyResult é o conteúdo de "data": aliases m0..m12 com no máximo uma linha
type MonthlyResult map[string][]MonthlyRow
