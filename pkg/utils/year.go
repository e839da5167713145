package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseYear lê um ano no formato YYYY; vazio retorna fallback
func ParseYear(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	if len(raw) != 4 {
		return 0, fmt.Errorf("ano deve ter 4 dígitos: %q", raw)
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("ano inválido %q: %w", raw, err)
	}

	return year, nil
}
