package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi/mocks"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func sampleReport(year int) *domain.AnnualReport {
	investors := domain.AnnualQuantityList{Quantity: "Investors"}
	investors.Months[0] = domain.MonthlyQuantity{Value: strPtr("15"), Change: strPtr("5")}
	investors.Months[1] = domain.MonthlyQuantity{Value: strPtr("15")}

	aum := domain.AnnualQuantityList{Quantity: "AUM"}
	aum.Months[0] = domain.MonthlyQuantity{Value: strPtr("1.500000"), Change: strPtr("-0.250000")}

	return &domain.AnnualReport{
		Year:       year,
		Navigation: domain.NewYearNavigation(year, 2019, 2020),
		Rows:       []domain.AnnualQuantityList{investors, aum},
	}
}

func runTable(t *testing.T, reporter kpi.Reporter, args ...string) (string, error) {
	t.Helper()

	cmd := newTableCmd(func() (kpi.Reporter, error) { return reporter, nil })
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderReport(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, renderReport(out, sampleReport(2020)))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "2020  < 2019", lines[0])
	assert.Equal(t,
		[]string{"Quantity", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		strings.Fields(lines[1]),
	)
	assert.True(t, strings.HasPrefix(lines[2], "Investors"))
	assert.Contains(t, lines[2], "15 (5)")
	assert.Equal(t, []string{"Investors", "15", "(5)", "15"}, strings.Fields(lines[2]))
	assert.Contains(t, lines[3], "1.500000 (-0.250000)")
}

func TestRenderReport_NavigationBothWays(t *testing.T) {
	report := sampleReport(2019)
	report.Navigation = domain.NewYearNavigation(2019, 2018, 2020)

	out := &bytes.Buffer{}
	require.NoError(t, renderReport(out, report))

	assert.True(t, strings.HasPrefix(out.String(), "2019  < 2018  > 2020\n"))
}

func TestTableCmd_DefaultsToCurrentYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	reporter.EXPECT().Navigation(0).Return(domain.NewYearNavigation(0, 2019, 2020))
	reporter.EXPECT().GetAnnualReport(gomock.Any(), 2020).Return(sampleReport(2020), nil)

	out, err := runTable(t, reporter)
	require.NoError(t, err)
	assert.Contains(t, out, "Investors")
}

func TestTableCmd_ExplicitYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	reporter.EXPECT().GetAnnualReport(gomock.Any(), 2019).Return(sampleReport(2019), nil)

	out, err := runTable(t, reporter, "--year", "2019")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2019"))
}

func TestTableCmd_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	reporter.EXPECT().GetAnnualReport(gomock.Any(), 2018).Return(nil, kpi.ErrYearOutOfRange)

	_, err := runTable(t, reporter, "--year", "2018")
	assert.True(t, errors.Is(err, kpi.ErrYearOutOfRange))
}

func TestTableCmd_Watch(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	reporter.EXPECT().
		WatchAnnualReport(gomock.Any(), 2020, gomock.Any()).
		DoAndReturn(func(ctx context.Context, year int, fn func(*domain.AnnualReport) error) error {
			if err := fn(sampleReport(year)); err != nil {
				return err
			}
			return fn(sampleReport(year))
		})

	out, err := runTable(t, reporter, "--year", "2020", "--watch")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Quantity"))
}
