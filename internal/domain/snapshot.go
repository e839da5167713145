package domain

import "time"

// MonthlyKPISnapshotEntry representa um valor bruto mensal armazenado no banco
type MonthlyKPISnapshotEntry struct {
	ID            string        `json:"id"`
	Quantity      Quantity      `json:"quantity"`
	Year          int           `json:"year"`
	BoundaryIndex int           `json:"boundary_index"`
	BoundaryTS    MonthBoundary `json:"boundary_ts"`
	Value         string        `json:"value"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
