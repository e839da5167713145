package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/ens"
	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/ens/ensclient"
	"github.com/vfg2006/fund-kpi-api/internal/config"
)

func newEnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ens",
		Short: "Lista os nomes ENS conhecidos e seus endereços",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			addresses, err := ens.New(ensclient.NewClient(cfg)).ListAddresses(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ENS\tAddress")
			for _, a := range addresses {
				fmt.Fprintf(tw, "%s\t%s\n", a.Ens, a.Address)
			}
			return tw.Flush()
		},
	}
}
