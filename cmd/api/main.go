package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fund-kpi-api/infrastructure/cache"
	"github.com/vfg2006/fund-kpi-api/infrastructure/database/postgres"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/ens"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/ens/ensclient"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/subgraph"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/subgraph/subgraphclient"
	"github.com/vfg2006/fund-kpi-api/infrastructure/repository"
	"github.com/vfg2006/fund-kpi-api/internal/api"
	"github.com/vfg2006/fund-kpi-api/internal/api/handler"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/scheduler"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subgraphIntegrator := subgraph.New(subgraphclient.NewClient(cfg))
	ensService := ens.New(ensclient.NewClient(cfg))

	kpiService, err := kpi.NewService(cfg, subgraphIntegrator)
	if err != nil {
		logrus.Fatal(err)
	}

	healthChecks := make(map[string]handler.HealthChecker)

	if redisClient := cache.NewRedisClient(cfg.Redis); redisClient != nil {
		defer redisClient.Close()
		healthChecks["redis"] = handler.HealthCheckFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		kpiService.WithCache(cache.NewRedisRowCache(redisClient, cfg.Redis.TTL))
		logrus.WithField("addr", cfg.Redis.Addr).Info("Cache de linhas mensais habilitado")
	}

	cronServices := handler.CronJobServices{}

	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()
		healthChecks["database"] = pgConn

		kpiService.WithSnapshots(repository.NewMonthlyKPISnapshotRepository(pgConn))

		// Inicializa o agendador de snapshots mensais
		snapshotSyncService := scheduler.NewMonthlySnapshotSyncService(kpiService, cfg)
		if err := snapshotSyncService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots mensais")
		} else {
			logrus.Info("Agendador de snapshots mensais iniciado com sucesso")
		}
		cronServices.MonthlySnapshotSyncService = snapshotSyncService
	} else {
		logrus.Info("Banco de dados desabilitado, snapshots mensais não serão persistidos")
	}

	authenticator := authenticating.NewService(cfg)

	server, err := api.New(
		cfg,
		kpiService,
		ensService,
		authenticator,
		cronServices,
		healthChecks,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
