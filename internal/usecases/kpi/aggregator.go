package kpi

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/pkg/bignumber"
)

// AggregateOptions controla a formatação dos valores em ponto fixo
type AggregateOptions struct {
	ScaleExponent  int32
	FractionDigits int32
}

// DefaultAggregateOptions usa 10^18 e 6 casas decimais
func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{
		ScaleExponent:  bignumber.DefaultScaleExponent,
		FractionDigits: bignumber.DefaultFractionDigits,
	}
}

// AggregateMonthly reduz os 13 limites mensais em 12 pares (valor, variação).
//
// A variação é calculada no domínio numérico bruto (inteiro para contagens,
// big.Int para ponto fixo) e só depois formatada. Um limite anterior ausente
// vale zero para a variação; um mês atual ausente não tem valor nem variação.
func AggregateMonthly(rows domain.MonthlyRows, kind domain.QuantityKind, opts AggregateOptions) ([domain.MonthsPerYear]domain.MonthlyQuantity, error) {
	var months [domain.MonthsPerYear]domain.MonthlyQuantity

	for i := 1; i <= domain.MonthsPerYear; i++ {
		current, hasCurrent := rows.Get(i)
		previous, hasPrevious := rows.Get(i - 1)

		var (
			month domain.MonthlyQuantity
			err   error
		)

		switch kind {
		case domain.QuantityKindCount:
			month = aggregateCount(i, current, hasCurrent, previous, hasPrevious)
		case domain.QuantityKindFixedPointAmount:
			month, err = aggregateFixedPoint(current, hasCurrent, previous, hasPrevious, opts)
			if err != nil {
				return months, fmt.Errorf("mês %d: %w", i, err)
			}
		default:
			return months, fmt.Errorf("tipo de quantidade não suportado: %s", kind)
		}

		months[i-1] = month
	}

	return months, nil
}

func aggregateCount(month int, current string, hasCurrent bool, previous string, hasPrevious bool) domain.MonthlyQuantity {
	if !hasCurrent {
		return domain.MonthlyQuantity{}
	}

	currentValue, err := parseCount(current)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"month": month,
			"value": current,
		}).Warn("kpi: contagem inválida recebida do upstream, ignorando mês")
		return domain.MonthlyQuantity{}
	}

	var previousValue int64
	if hasPrevious {
		if v, err := parseCount(previous); err == nil {
			previousValue = v
		} else {
			logrus.WithFields(logrus.Fields{
				"month": month - 1,
				"value": previous,
			}).Warn("kpi: contagem anterior inválida, usando zero para a variação")
		}
	}

	value := strconv.FormatInt(currentValue, 10)
	change := strconv.FormatInt(currentValue-previousValue, 10)

	return domain.MonthlyQuantity{Value: &value, Change: &change}
}

func aggregateFixedPoint(current string, hasCurrent bool, previous string, hasPrevious bool, opts AggregateOptions) (domain.MonthlyQuantity, error) {
	if !hasCurrent {
		return domain.MonthlyQuantity{}, nil
	}

	currentValue, err := parseBigInt(current)
	if err != nil {
		return domain.MonthlyQuantity{}, err
	}

	previousValue := new(big.Int)
	if hasPrevious {
		previousValue, err = parseBigInt(previous)
		if err != nil {
			return domain.MonthlyQuantity{}, err
		}
	}

	rawChange := new(big.Int).Sub(currentValue, previousValue)

	value := bignumber.FormatBigInt(currentValue, opts.ScaleExponent, opts.FractionDigits)
	change := bignumber.FormatBigInt(rawChange, opts.ScaleExponent, opts.FractionDigits)

	return domain.MonthlyQuantity{Value: &value, Change: &change}, nil
}

func parseCount(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// parseBigInt aceita inteiros e numerais decimais integrais ("1e18")
func parseBigInt(raw string) (*big.Int, error) {
	trimmed := strings.TrimSpace(raw)
	if v, ok := new(big.Int).SetString(trimmed, 10); ok {
		return v, nil
	}

	d, err := bignumber.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	if !d.IsInteger() {
		return nil, fmt.Errorf("%w: %q não é inteiro", bignumber.ErrInvalidNumericInput, raw)
	}

	return d.BigInt(), nil
}
