package middleware

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/vfg2006/fund-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/fund-kpi-api/pkg/log"
)

// CorrelationIDHeader devolve ao cliente o ID usado nos logs da requisição
const CorrelationIDHeader = "X-Correlation-ID"

const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra o início e o fim de cada requisição HTTP.
// Conexões websocket (stream de KPIs) são registradas na abertura e no
// encerramento, sem alerta de lentidão.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()
			stream := isWebsocketUpgrade(r)
			isDev := log.IsDevelopment()

			fields := requestFields(r, correlationID, isDev)
			if stream {
				log.L.WithFields(fields).Info("→ Abrindo stream de KPIs")
			} else {
				log.L.WithFields(fields).Info("→ Iniciando requisição")
			}

			next.ServeHTTP(lrw, r)

			responseTime := time.Since(startTime)

			fields[log.FieldStatusCode] = lrw.statusCode
			fields[log.FieldDurationMS] = responseTime.Milliseconds()
			logger := log.L.WithFields(fields)

			statusSymbol := "✓"
			if lrw.statusCode >= 400 {
				statusSymbol = "✗"
			}
			msg := fmt.Sprintf("%s Completada em %s", statusSymbol, formatDuration(responseTime))
			if stream {
				msg = fmt.Sprintf("Stream de KPIs encerrado após %s", formatDuration(responseTime))
			}

			switch {
			case lrw.statusCode >= 500:
				logger.Error(msg)
			case lrw.statusCode >= 400:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}

			if !stream && responseTime > slowRequestThreshold {
				logger.Warnf("⚠ Requisição lenta: %s %s (%dms)", r.Method, r.URL.Path, responseTime.Milliseconds())
			}
		})
	}
}

// requestFields monta os campos do log; fora de desenvolvimento inclui os
// detalhes do cliente
func requestFields(r *http.Request, correlationID string, isDev bool) log.Fields {
	fields := log.Fields{
		log.FieldCorrelationID: correlationID,
		log.FieldMethod:        r.Method,
		log.FieldPath:          r.URL.Path,
	}

	if year := r.URL.Query().Get("year"); year != "" {
		fields[log.FieldYear] = year
	}

	if !isDev {
		fields["remote_addr"] = r.RemoteAddr
		fields["query"] = r.URL.RawQuery
		fields["user_agent"] = r.UserAgent()
		fields["origin"] = r.Header.Get("Origin")
	}

	return fields
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// formatDuration formata a duração de forma humana
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status code da resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.wroteHeader = true
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	return lrw.ResponseWriter.Write(b)
}

// Hijack permite o upgrade para websocket através do wrapper
func (lrw *loggingResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := lrw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer não suporta hijack")
	}
	// após o hijack o status efetivo é 101
	lrw.statusCode = http.StatusSwitchingProtocols
	lrw.wroteHeader = true
	return hijacker.Hijack()
}

// LogPanicMiddleware registra panics com a pilha e responde SRV_001
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lrw, ok := w.(*loggingResponseWriter)
			if !ok {
				lrw = newLoggingResponseWriter(w)
			}

			defer func() {
				err := recover()
				if err == nil {
					return
				}

				stack := make([]byte, 4096)
				stackTrace := string(stack[:runtime.Stack(stack, false)])

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					log.FieldError:  err,
					log.FieldMethod: r.Method,
					log.FieldPath:   r.URL.Path,
				})
				logger.Error("❌ PANIC na aplicação")

				if log.IsDevelopment() {
					fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
				} else {
					logger.WithField("stack_trace", stackTrace).Error("Stack trace do erro")
				}

				// com cabeçalho já enviado (ou conexão sequestrada) não há resposta possível
				if lrw.wroteHeader {
					return
				}
				apiErrors.WriteError(lrw, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(lrw, r)
		})
	}
}
