package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

// HealthChecker é uma dependência verificada pelo /healthcheck
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckFunc adapta uma função a HealthChecker
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) Ping(ctx context.Context) error { return f(ctx) }

type healthcheckResponse struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthcheckHandler responde 200 com todas as dependências de pé e 503
// quando alguma falha (banco de snapshots, cache)
func HealthcheckHandler(checks map[string]HealthChecker) http.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := healthcheckResponse{Status: "ok", Time: time.Now().Format(time.RFC3339)}
		status := http.StatusOK

		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			err := checks[name].Ping(ctx)
			cancel()

			if err != nil {
				logrus.WithError(err).WithField("check", name).Warn("healthcheck falhou")
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
