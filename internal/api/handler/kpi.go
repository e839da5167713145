package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
	"github.com/vfg2006/fund-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/fund-kpi-api/pkg/bignumber"
	"github.com/vfg2006/fund-kpi-api/pkg/log"
	"github.com/vfg2006/fund-kpi-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const streamWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// dados públicos; CORS não se aplica ao handshake
	CheckOrigin: func(r *http.Request) bool { return true },
}

// parseYear usa o ano corrente quando ?year= não é informado
func parseYear(w http.ResponseWriter, r *http.Request, service kpi.Reporter) (int, bool) {
	currentYear := service.Navigation(0).CurrentYear

	year, err := utils.ParseYear(r.URL.Query().Get("year"), currentYear)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return 0, false
	}

	return year, true
}

func GetMonthlyKPIs(service kpi.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - GetMonthlyKPIs")

		year, ok := parseYear(w, r, service)
		if !ok {
			return
		}

		logger = log.ForReport(r.Context(), year, "")

		report, err := service.GetAnnualReport(r.Context(), year)
		if err != nil {
			logger.WithError(err).Error("erro ao montar relatório anual")
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("erro ao enviar resposta")
			return
		}
		logger.WithField(log.FieldSource, report.Source).Debug("relatório anual enviado")
	}
}

func GetYearNavigation(service kpi.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := parseYear(w, r, service)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.Navigation(year))
	}
}

func GetAvailableYears(service kpi.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		years, err := service.AvailableYears(r.Context())
		if err != nil {
			logrus.WithError(err).Error("erro ao listar anos com snapshots")
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"years": years,
		})
	}
}

// StreamMonthlyKPIs envia um relatório novo a cada atualização do subgraph
func StreamMonthlyKPIs(service kpi.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := parseYear(w, r, service)
		if !ok {
			return
		}

		if nav := service.Navigation(year); !nav.InRange() {
			handleReportError(w, kpi.NewReportError(kpi.ErrYearOutOfRange, apiErrors.ErrYearOutOfRange, year, ""))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("falha no upgrade para websocket")
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// o cliente não envia mensagens; a leitura só detecta o fechamento
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		err = service.WatchAnnualReport(ctx, year, func(report *domain.AnnualReport) error {
			conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			payload, err := json.Marshal(report)
			if err != nil {
				return err
			}
			return conn.WriteMessage(websocket.TextMessage, payload)
		})

		closeCode, reason := websocket.CloseNormalClosure, ""
		if err != nil && ctx.Err() == nil {
			log.ForReport(ctx, year, "").WithError(err).Error("stream de KPIs encerrado com erro")
			closeCode, reason = websocket.CloseInternalServerErr, err.Error()
		}
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(closeCode, reason),
			time.Now().Add(time.Second),
		)
	}
}

// handleReportError traduz erros do serviço de KPIs para a resposta HTTP
func handleReportError(w http.ResponseWriter, err error) {
	var reportErr *kpi.ReportError
	if errors.As(err, &reportErr) {
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), map[string]any{
			"year": reportErr.Year,
		})
		return
	}

	switch {
	case errors.Is(err, kpi.ErrYearOutOfRange):
		apiErrors.WriteError(w, apiErrors.ErrYearOutOfRange, err.Error(), nil)
	case errors.Is(err, bignumber.ErrInvalidNumericInput):
		apiErrors.WriteError(w, apiErrors.ErrInvalidNumericData, err.Error(), nil)
	case errors.Is(err, kpi.ErrSubgraphUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao montar relatório", nil)
	}
}
