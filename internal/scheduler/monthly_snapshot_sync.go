package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
)

// MonthlySnapshotSyncConfig representa a configuração do agendador de snapshots mensais
type MonthlySnapshotSyncConfig struct {
	CronSchedule   string
	SyncEnabled    bool
	YearLookBack   int
	RetentionYears int
	MinYear        int
}

// MonthlySnapshotSyncService grava periodicamente as linhas brutas do subgraph no banco
type MonthlySnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              MonthlySnapshotSyncConfig
	syncer              kpi.SnapshotSyncer
	location            *time.Location
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSaved       int
	lastSyncErrors      []string
}

func NewMonthlySnapshotSyncService(syncer kpi.SnapshotSyncer, appConfig *config.Config) *MonthlySnapshotSyncService {
	syncConfig := MonthlySnapshotSyncConfig{
		CronSchedule:   appConfig.SnapshotSync.CronSchedule,
		SyncEnabled:    appConfig.SnapshotSync.Enabled,
		YearLookBack:   appConfig.SnapshotSync.YearLookBack,
		RetentionYears: appConfig.SnapshotSync.RetentionYears,
		MinYear:        appConfig.KPI.MinYear,
	}

	loc, err := appConfig.KPI.Location()
	if err != nil {
		loc = time.Local
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   syncConfig.CronSchedule,
		"sync_enabled":    syncConfig.SyncEnabled,
		"year_look_back":  syncConfig.YearLookBack,
		"retention_years": syncConfig.RetentionYears,
	}).Info("Configuração do agendador de snapshots mensais carregada")

	return &MonthlySnapshotSyncService{
		scheduler: gocron.NewScheduler(loc),
		config:    syncConfig,
		syncer:    syncer,
		location:  loc,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *MonthlySnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots mensais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots mensais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots mensais")
		s.scheduler.Stop()
	}()

	return nil
}

// years retorna o ano atual (no fuso dos KPIs) e os YearLookBack anteriores,
// sem passar de MinYear
func (s *MonthlySnapshotSyncService) years() []int {
	current := s.now().In(s.location).Year()
	years := make([]int, 0, s.config.YearLookBack+1)
	for y := current - s.config.YearLookBack; y <= current; y++ {
		if s.config.MinYear > 0 && y < s.config.MinYear {
			continue
		}
		years = append(years, y)
	}
	return years
}

func (s *MonthlySnapshotSyncService) syncSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := s.now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	saved := 0
	var syncErrors []string

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncSaved = saved
		s.lastSyncErrors = syncErrors
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de snapshots mensais")

	for _, year := range s.years() {
		count, err := s.syncer.SyncSnapshots(ctx, year)
		saved += count
		if err != nil {
			logrus.WithError(err).WithField("year", year).Error("Erro ao sincronizar snapshots do ano")
			syncErrors = append(syncErrors, err.Error())
			continue
		}

		logrus.WithFields(logrus.Fields{
			"year":  year,
			"saved": count,
		}).Info("Snapshots do ano salvos com sucesso")
	}

	if s.config.RetentionYears > 0 {
		deleted, err := s.syncer.PruneSnapshots(ctx, s.config.RetentionYears)
		if err != nil {
			logrus.WithError(err).Error("Erro ao remover snapshots antigos")
			syncErrors = append(syncErrors, err.Error())
		} else {
			logrus.WithField("deleted", deleted).Info("Snapshots antigos removidos")
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration": s.now().Sub(startTime).String(),
		"saved":    saved,
		"errors":   len(syncErrors),
	}).Info("Sincronização de snapshots mensais concluída")
}

// TriggerManualSync inicia manualmente uma sincronização de snapshots
func (s *MonthlySnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de snapshots mensais")
	go s.syncSnapshots(context.Background())
}

// GetStatus retorna o status atual da sincronização
func (s *MonthlySnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"year_look_back":         s.config.YearLookBack,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_saved":        s.lastSyncSaved,
		"last_sync_errors":       s.lastSyncErrors,
	}
}
