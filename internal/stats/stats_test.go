package stats_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/opsdash/internal/stats"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

var staff = []store.Employee{
	{Department: "Engineering", Salary: 95000, StartDate: "2023-01-15"},
	{Department: "Marketing", Salary: 72000, StartDate: "2023-03-20"},
	{Department: "Engineering", Salary: 80001, StartDate: "2023-01-30"},
	{Department: "Sales", Salary: 68000, StartDate: "not a date"},
}

func TestDistribution(t *testing.T) {
	got := stats.Distribution(staff)
	assert.Equal(t, []stats.DepartmentShare{
		{Department: "Engineering", Count: 2, Percent: 50},
		{Department: "Marketing", Count: 1, Percent: 25},
		{Department: "Sales", Count: 1, Percent: 25},
	}, got)
	assert.Empty(t, stats.Distribution(nil))
}

func TestAverageSalaries(t *testing.T) {
	got := stats.AverageSalaries(staff)
	require.Len(t, got, 3)
	assert.True(t, decimal.NewFromInt(87501).Equal(got[0].Average), got[0].Average.String())
	assert.Equal(t, 2, got[0].Headcount)
	assert.True(t, decimal.NewFromInt(72000).Equal(got[1].Average))
}

func TestHiringTrend(t *testing.T) {
	got := stats.HiringTrend(staff)
	assert.Equal(t, []stats.MonthlyHires{
		{Month: "2023-01", Label: "Jan 2023", Hires: 2, Cumulative: 2},
		{Month: "2023-03", Label: "Mar 2023", Hires: 1, Cumulative: 3},
	}, got)
}

func TestBuild(t *testing.T) {
	r := stats.Build(staff)
	assert.Equal(t, 4, r.Total)
	assert.True(t, decimal.NewFromInt(78750).Equal(r.AverageTotal), r.AverageTotal.String())

	empty := stats.Build(nil)
	assert.Zero(t, empty.Total)
	assert.True(t, empty.AverageTotal.IsZero())
	assert.Empty(t, empty.HiringTrend)
}
