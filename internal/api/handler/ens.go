package handler

import (
	"net/http"

	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/ens"
	"github.com/vfg2006/fund-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/fund-kpi-api/pkg/log"
)

func ListEns(service ens.EnsIntegrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addresses, err := service.ListAddresses(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("erro ao consultar diretório ENS")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar diretório ENS", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(addresses)
	}
}
