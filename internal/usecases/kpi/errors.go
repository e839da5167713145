package kpi

import (
	"errors"
	"fmt"
)

var (
	ErrYearOutOfRange      = errors.New("year out of range")
	ErrSubgraphUnavailable = errors.New("subgraph unavailable and no snapshot stored")
	ErrSnapshotsDisabled   = errors.New("snapshot repository not configured")
)

// ReportError carrega o código de API junto do erro que impediu o relatório
type ReportError struct {
	Err     error
	Code    string
	Year    int
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, year int, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Year:    year,
		Details: details,
	}
}
