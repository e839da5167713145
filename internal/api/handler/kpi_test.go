package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi/mocks"
	"github.com/vfg2006/fund-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/fund-kpi-api/pkg/bignumber"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func navigation(year int) domain.YearNavigation {
	return domain.NewYearNavigation(year, 2019, 2020)
}

func sampleReport(year int) *domain.AnnualReport {
	row := domain.AnnualQuantityList{Quantity: "Investors"}
	row.Months[0] = domain.MonthlyQuantity{Value: strPtr("15"), Change: strPtr("5")}

	return &domain.AnnualReport{
		Year:       year,
		Navigation: navigation(year),
		Boundaries: domain.YearBoundaries{},
		Rows:       []domain.AnnualQuantityList{row},
		Source:     domain.SourceSubgraph,
	}
}

func newReporter(t *testing.T) *mocks.MockReporter {
	reporter := mocks.NewMockReporter(gomock.NewController(t))
	reporter.EXPECT().Navigation(gomock.Any()).DoAndReturn(navigation).AnyTimes()
	return reporter
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestGetMonthlyKPIs(t *testing.T) {
	reporter := newReporter(t)
	reporter.EXPECT().GetAnnualReport(gomock.Any(), 2019).Return(sampleReport(2019), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/kpi/monthly?year=2019", nil)
	rec := httptest.NewRecorder()
	GetMonthlyKPIs(reporter).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"year":2019`)
	assert.Contains(t, body, `"quantity":"Investors"`)
	assert.Contains(t, body, `"m1":{"value":"15","change":"5"}`)
	assert.Contains(t, body, `"m12":{"value":null,"change":null}`)
}

func TestGetMonthlyKPIs_DefaultsToCurrentYear(t *testing.T) {
	reporter := newReporter(t)
	reporter.EXPECT().GetAnnualReport(gomock.Any(), 2020).Return(sampleReport(2020), nil)

	rec := httptest.NewRecorder()
	GetMonthlyKPIs(reporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/kpi/monthly", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMonthlyKPIs_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		status     int
		code       string
		expectCall bool
	}{
		{
			name:   "ano mal formatado",
			query:  "?year=20x0",
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "ano fora do intervalo",
			query:      "?year=2018",
			err:        kpi.NewReportError(kpi.ErrYearOutOfRange, apiErrors.ErrYearOutOfRange, 2018, ""),
			status:     http.StatusBadRequest,
			code:       apiErrors.ErrYearOutOfRange,
			expectCall: true,
		},
		{
			name:       "valor numérico inválido",
			query:      "?year=2020",
			err:        kpi.NewReportError(bignumber.ErrInvalidNumericInput, apiErrors.ErrInvalidNumericData, 2020, "AUM"),
			status:     http.StatusBadGateway,
			code:       apiErrors.ErrInvalidNumericData,
			expectCall: true,
		},
		{
			name:       "erro inesperado",
			query:      "?year=2020",
			err:        errors.New("boom"),
			status:     http.StatusInternalServerError,
			code:       apiErrors.ErrInternalServer,
			expectCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := newReporter(t)
			if tt.expectCall {
				reporter.EXPECT().GetAnnualReport(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			}

			rec := httptest.NewRecorder()
			GetMonthlyKPIs(reporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/kpi/monthly"+tt.query, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeAPIError(t, rec).Code)
		})
	}
}

func TestGetYearNavigation(t *testing.T) {
	reporter := newReporter(t)

	rec := httptest.NewRecorder()
	GetYearNavigation(reporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/kpi/navigation?year=2019", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var nav domain.YearNavigation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&nav))
	assert.Equal(t, 2019, nav.Year)
	assert.False(t, nav.HasPrevious)
	assert.True(t, nav.HasNext)
}

func TestGetAvailableYears(t *testing.T) {
	reporter := newReporter(t)
	reporter.EXPECT().AvailableYears(gomock.Any()).Return([]int{2019, 2020}, nil)

	rec := httptest.NewRecorder()
	GetAvailableYears(reporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/kpi/years", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"years":[2019,2020]}`, rec.Body.String())
}

func TestStreamMonthlyKPIs(t *testing.T) {
	reporter := newReporter(t)
	reporter.EXPECT().
		WatchAnnualReport(gomock.Any(), 2020, gomock.Any()).
		DoAndReturn(func(_ context.Context, year int, fn func(*domain.AnnualReport) error) error {
			if err := fn(sampleReport(year)); err != nil {
				return err
			}
			updated := sampleReport(year)
			updated.Rows[0].Months[1] = domain.MonthlyQuantity{Value: strPtr("21"), Change: strPtr("6")}
			return fn(updated)
		})

	server := httptest.NewServer(StreamMonthlyKPIs(reporter))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?year=2020"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var reports []domain.AnnualReport
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err.Error())
			break
		}
		var report domain.AnnualReport
		require.NoError(t, json.Unmarshal(payload, &report))
		reports = append(reports, report)
	}

	require.Len(t, reports, 2)
	assert.Equal(t, "15 (5)", reports[0].Rows[0].Month(1).Render())
	assert.Equal(t, "21 (6)", reports[1].Rows[0].Month(2).Render())
}

func TestStreamMonthlyKPIs_YearOutOfRange(t *testing.T) {
	reporter := newReporter(t)

	rec := httptest.NewRecorder()
	StreamMonthlyKPIs(reporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/kpi/monthly/live?year=2030", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrYearOutOfRange, decodeAPIError(t, rec).Code)
}
