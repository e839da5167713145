// Package bignumber formata valores em ponto fixo (ex.: quantidades de token
// escaladas por 10^18) sem passar por float64.
package bignumber

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultScaleExponent é a escala padrão dos valores on-chain (10^18)
	DefaultScaleExponent int32 = 18
	// DefaultFractionDigits é a quantidade padrão de casas decimais exibidas
	DefaultFractionDigits int32 = 6
	// MaxExponent limita a notação exponencial aceita; expoentes maiores
	// obrigariam a expandir 10^exp inteiro.
	MaxExponent int32 = 1000
)

// ErrInvalidNumericInput indica que o valor bruto não é um numeral válido
var ErrInvalidNumericInput = errors.New("invalid numeric input")

// Format formata o valor com a escala e as casas decimais padrão
func Format(raw string) (string, error) {
	return FormatFixedPoint(raw, DefaultScaleExponent, DefaultFractionDigits)
}

// FormatFixedPoint divide raw por 10^scaleExponent e arredonda para
// fractionDigits casas (metade para longe do zero).
func FormatFixedPoint(raw string, scaleExponent, fractionDigits int32) (string, error) {
	value, err := Parse(raw)
	if err != nil {
		return "", err
	}

	return scale(value, scaleExponent, fractionDigits), nil
}

// FormatBigInt formata um inteiro já convertido
func FormatBigInt(raw *big.Int, scaleExponent, fractionDigits int32) string {
	if raw == nil {
		raw = new(big.Int)
	}

	return scale(decimal.NewFromBigInt(raw, 0), scaleExponent, fractionDigits)
}

// Parse converte um numeral (inteiro ou decimal) em decimal.Decimal
func Parse(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidNumericInput)
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumericInput, raw)
	}

	if exp := value.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, fmt.Errorf("%w: expoente %d fora do intervalo", ErrInvalidNumericInput, exp)
	}

	return value, nil
}

func scale(value decimal.Decimal, scaleExponent, fractionDigits int32) string {
	if scaleExponent < 0 {
		scaleExponent = 0
	}
	if fractionDigits < 0 {
		fractionDigits = 0
	}

	// Shift é exato: apenas ajusta o expoente
	return value.Shift(-scaleExponent).StringFixed(fractionDigits)
}
