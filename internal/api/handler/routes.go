package handler

import (
	"net/http"

	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/ens"
	"github.com/vfg2006/fund-kpi-api/internal/api/handler/router"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
	"github.com/vfg2006/fund-kpi-api/pkg/middleware"
)

func Healthcheck(checks map[string]HealthChecker) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(checks),
		},
	}
}

func KPIs(service kpi.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/kpi/monthly",
			Method:  http.MethodGet,
			Handler: GetMonthlyKPIs(service),
		},
		{
			Path:    "/v1/kpi/monthly/live",
			Method:  http.MethodGet,
			Handler: StreamMonthlyKPIs(service),
		},
		{
			Path:    "/v1/kpi/navigation",
			Method:  http.MethodGet,
			Handler: GetYearNavigation(service),
		},
		{
			Path:    "/v1/kpi/years",
			Method:  http.MethodGet,
			Handler: GetAvailableYears(service),
		},
	}
}

func Ens(service ens.EnsIntegrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ens",
			Method:  http.MethodGet,
			Handler: ListEns(service),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}
