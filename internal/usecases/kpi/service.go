package kpi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fund-kpi-api/infrastructure/cache"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/subgraph"
	"github.com/vfg2006/fund-kpi-api/infrastructure/repository"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/fund-kpi-api/pkg/bignumber"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Reporter interface {
	// GetAnnualReport monta a tabela de investidores, investimentos e AUM de um ano
	GetAnnualReport(ctx context.Context, year int) (*domain.AnnualReport, error)
	Navigation(year int) domain.YearNavigation
	// WatchAnnualReport recalcula o relatório a cada atualização do subgraph
	WatchAnnualReport(ctx context.Context, year int, fn func(*domain.AnnualReport) error) error
	AvailableYears(ctx context.Context) ([]int, error)
}

type SnapshotSyncer interface {
	SyncSnapshots(ctx context.Context, year int) (int, error)
	PruneSnapshots(ctx context.Context, keepYears int) (int64, error)
}

type Service struct {
	subgraph  subgraph.SubgraphIntegrator
	rowCache  cache.RowCache
	snapshots repository.MonthlyKPISnapshotRepository
	opts      AggregateOptions
	minYear   int
	location  *time.Location
	now       func() time.Time
}

var (
	_ Reporter       = (*Service)(nil)
	_ SnapshotSyncer = (*Service)(nil)
)

func NewService(cfg *config.Config, integrator subgraph.SubgraphIntegrator) (*Service, error) {
	loc, err := cfg.KPI.Location()
	if err != nil {
		return nil, fmt.Errorf("fuso horário inválido: %w", err)
	}

	minYear := cfg.KPI.MinYear
	if minYear == 0 {
		minYear = domain.DefaultMinYear
	}

	return &Service{
		subgraph: integrator,
		opts: AggregateOptions{
			ScaleExponent:  cfg.KPI.AUMScale,
			FractionDigits: cfg.KPI.AUMDigits,
		},
		minYear:  minYear,
		location: loc,
		now:      time.Now,
	}, nil
}

// WithCache habilita o cache de linhas brutas
func (s *Service) WithCache(rowCache cache.RowCache) *Service {
	s.rowCache = rowCache
	return s
}

// WithSnapshots habilita o fallback para snapshots persistidos
func (s *Service) WithSnapshots(repo repository.MonthlyKPISnapshotRepository) *Service {
	s.snapshots = repo
	return s
}

func (s *Service) Navigation(year int) domain.YearNavigation {
	return domain.NewYearNavigation(year, s.minYear, s.now().In(s.location).Year())
}

func (s *Service) GetAnnualReport(ctx context.Context, year int) (*domain.AnnualReport, error) {
	nav := s.Navigation(year)
	if !nav.InRange() {
		return nil, NewReportError(ErrYearOutOfRange, apiErrors.ErrYearOutOfRange, year,
			fmt.Sprintf("ano deve estar entre %d e %d", nav.MinYear, nav.CurrentYear))
	}

	boundaries := domain.MonthBoundaries(year, s.location)
	quantities := domain.Quantities()

	rows := make([]domain.MonthlyRows, len(quantities))
	sources := make([]string, len(quantities))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range quantities {
		g.Go(func() error {
			r, source, err := s.fetchRows(gctx, q, year, boundaries)
			if err != nil {
				return err
			}
			rows[i] = r
			sources[i] = source
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrSubgraphUnavailable) {
			return nil, NewReportError(err, apiErrors.ErrExternalService, year, "")
		}
		return nil, err
	}

	report, err := s.buildReport(year, nav, boundaries, rows)
	if err != nil {
		return nil, err
	}
	report.Source = mergeSources(sources)

	return report, nil
}

func (s *Service) WatchAnnualReport(ctx context.Context, year int, fn func(*domain.AnnualReport) error) error {
	initial, err := s.GetAnnualReport(ctx, year)
	if err != nil {
		return err
	}
	if err := fn(initial); err != nil {
		return err
	}

	nav := initial.Navigation
	boundaries := initial.Boundaries
	quantities := domain.Quantities()

	var mu sync.Mutex
	latest := make([]domain.MonthlyRows, len(quantities))
	// só emite depois que cada quantidade tiver recebido ao menos um evento
	received := make([]bool, len(quantities))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range quantities {
		g.Go(func() error {
			return s.subgraph.WatchMonthlyRows(gctx, q, boundaries, func(rows domain.MonthlyRows) error {
				mu.Lock()
				defer mu.Unlock()

				latest[i] = rows
				received[i] = true
				for _, ok := range received {
					if !ok {
						return nil
					}
				}

				report, err := s.buildReport(year, nav, boundaries, latest)
				if err != nil {
					return err
				}
				report.Source = domain.SourceSubgraph
				return fn(report)
			})
		})
	}

	return g.Wait()
}

func (s *Service) AvailableYears(ctx context.Context) ([]int, error) {
	if s.snapshots == nil {
		return []int{}, nil
	}

	years, err := s.snapshots.GetAvailableYears(ctx)
	if err != nil {
		return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, 0, "erro ao listar anos disponíveis")
	}
	return years, nil
}

// SyncSnapshots grava as linhas brutas do subgraph de um ano no banco
func (s *Service) SyncSnapshots(ctx context.Context, year int) (int, error) {
	if s.snapshots == nil {
		return 0, ErrSnapshotsDisabled
	}

	boundaries := domain.MonthBoundaries(year, s.location)
	quantities := domain.Quantities()
	rows := make([]domain.MonthlyRows, len(quantities))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range quantities {
		g.Go(func() error {
			r, err := s.subgraph.GetMonthlyRows(gctx, q, boundaries)
			if err != nil {
				return err
			}
			rows[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("erro ao buscar linhas de %d: %w", year, err)
	}

	var entries []*domain.MonthlyKPISnapshotEntry
	for i, q := range quantities {
		for _, row := range rows[i].Rows() {
			entries = append(entries, &domain.MonthlyKPISnapshotEntry{
				Quantity:      q,
				Year:          year,
				BoundaryIndex: row.Index,
				BoundaryTS:    boundaries[row.Index],
				Value:         row.Value,
			})
		}
	}

	// o ano é gravado por inteiro ou não é gravado
	if err := s.snapshots.SaveAll(ctx, entries); err != nil {
		return 0, fmt.Errorf("erro ao salvar snapshots de %d: %w", year, err)
	}

	return len(entries), nil
}

func (s *Service) PruneSnapshots(ctx context.Context, keepYears int) (int64, error) {
	if s.snapshots == nil {
		return 0, ErrSnapshotsDisabled
	}
	if keepYears <= 0 {
		return 0, nil
	}
	return s.snapshots.DeleteOlderThan(ctx, keepYears)
}

func (s *Service) fetchRows(ctx context.Context, q domain.Quantity, year int, boundaries domain.YearBoundaries) (domain.MonthlyRows, string, error) {
	logger := logrus.WithFields(logrus.Fields{"quantity": q, "year": year})

	if s.rowCache != nil {
		rows, ok, err := s.rowCache.Get(ctx, q, year)
		if err != nil {
			logger.WithError(err).Warn("kpi: falha ao ler cache, consultando subgraph")
		} else if ok {
			return rows, domain.SourceCache, nil
		}
	}

	rows, err := s.subgraph.GetMonthlyRows(ctx, q, boundaries)
	if err == nil {
		if s.rowCache != nil {
			if err := s.rowCache.Set(ctx, q, year, rows); err != nil {
				logger.WithError(err).Warn("kpi: falha ao gravar cache")
			}
		}
		return rows, domain.SourceSubgraph, nil
	}

	if s.snapshots == nil || ctx.Err() != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrSubgraphUnavailable, q, err)
	}

	logger.WithError(err).Warn("kpi: subgraph indisponível, usando snapshots")

	entries, snapErr := s.snapshots.GetByYear(ctx, year)
	if snapErr != nil {
		return nil, "", fmt.Errorf("%w: %s: %v (snapshot: %v)", ErrSubgraphUnavailable, q, err, snapErr)
	}

	raw := make([]domain.RawMonthlyRow, 0, domain.BoundariesPerYear)
	for _, e := range entries {
		if e.Quantity == q {
			raw = append(raw, domain.RawMonthlyRow{Index: e.BoundaryIndex, Value: e.Value})
		}
	}
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrSubgraphUnavailable, q, err)
	}

	return domain.NewMonthlyRows(raw), domain.SourceSnapshot, nil
}

func (s *Service) buildReport(year int, nav domain.YearNavigation, boundaries domain.YearBoundaries, rows []domain.MonthlyRows) (*domain.AnnualReport, error) {
	quantities := domain.Quantities()
	report := &domain.AnnualReport{
		Year:       year,
		Navigation: nav,
		Boundaries: boundaries,
		Rows:       make([]domain.AnnualQuantityList, 0, len(quantities)),
	}

	for i, q := range quantities {
		months, err := AggregateMonthly(rows[i], q.Kind(), s.opts)
		if err != nil {
			if errors.Is(err, bignumber.ErrInvalidNumericInput) {
				return nil, NewReportError(err, apiErrors.ErrInvalidNumericData, year, q.Label())
			}
			return nil, err
		}
		report.Rows = append(report.Rows, domain.AnnualQuantityList{
			Quantity: q.Label(),
			Months:   months,
		})
	}

	return report, nil
}

// mergeSources retorna a origem menos recente usada no relatório
func mergeSources(sources []string) string {
	result := domain.SourceSubgraph
	for _, src := range sources {
		switch src {
		case domain.SourceSnapshot:
			return domain.SourceSnapshot
		case domain.SourceCache:
			result = domain.SourceCache
		}
	}
	return result
}
