package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/fund-kpi-api/infrastructure/cache"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/subgraph"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/subgraph/subgraphclient"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "kpictl",
		Short:         "Consulta os KPIs mensais do fundo pelo terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "nível de log (debug, info, warn, error)")

	root.AddCommand(
		newTableCmd(loadReporter),
		newEnsCmd(),
	)

	return root
}

// loadReporter monta o serviço de KPIs a partir do ambiente, sem banco de dados
func loadReporter() (kpi.Reporter, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	service, err := kpi.NewService(cfg, subgraph.New(subgraphclient.NewClient(cfg)))
	if err != nil {
		return nil, err
	}

	if redisClient := cache.NewRedisClient(cfg.Redis); redisClient != nil {
		service.WithCache(cache.NewRedisRowCache(redisClient, cfg.Redis.TTL))
	}

	return service, nil
}
