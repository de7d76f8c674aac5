// Package stats computes the employee analytics shown next to the record
// manager.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gyaneshwarpardhi/opsdash/internal/store"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// DepartmentShare is the headcount of one department.
type DepartmentShare struct {
	Department string  `json:"department"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
}

// DepartmentSalary is the rounded mean salary of one department.
type DepartmentSalary struct {
	Department string          `json:"department"`
	Average    decimal.Decimal `json:"average"`
	Headcount  int             `json:"headcount"`
}

// MonthlyHires counts hires per calendar month along with the running total.
type MonthlyHires struct {
	Month      string `json:"month"`
	Label      string `json:"label"`
	Hires      int    `json:"hires"`
	Cumulative int    `json:"cumulative"`
}

// Report bundles every employee chart.
type Report struct {
	Total        int                `json:"total"`
	Departments  []DepartmentShare  `json:"departments"`
	Salaries     []DepartmentSalary `json:"salaries"`
	HiringTrend  []MonthlyHires     `json:"hiringTrend"`
	AverageTotal decimal.Decimal    `json:"averageSalary"`
}

// Build computes the full report. Departments appear in first-seen order.
func Build(records []store.Employee) Report {
	return Report{
		Total:        len(records),
		Departments:  Distribution(records),
		Salaries:     AverageSalaries(records),
		HiringTrend:  HiringTrend(records),
		AverageTotal: averageOf(records),
	}
}

func departmentOrder(records []store.Employee) []string {
	var order []string
	seen := map[string]bool{}
	for _, r := range records {
		if !seen[r.Department] {
			seen[r.Department] = true
			order = append(order, r.Department)
		}
	}
	return order
}

// Distribution counts employees per department with their share of the
// total, rounded to one decimal place.
func Distribution(records []store.Employee) []DepartmentShare {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Department]++
	}
	out := []DepartmentShare{}
	total := decimal.NewFromInt(int64(len(records)))
	for _, d := range departmentOrder(records) {
		pct, _ := decimal.NewFromInt(int64(counts[d])).
			Mul(decimal.NewFromInt(100)).
			DivRound(total, 1).
			Float64()
		out = append(out, DepartmentShare{Department: d, Count: counts[d], Percent: pct})
	}
	return out
}

// AverageSalaries returns the mean salary per department rounded to whole
// units, half away from zero.
func AverageSalaries(records []store.Employee) []DepartmentSalary {
	groups := map[string][]store.Employee{}
	for _, r := range records {
		groups[r.Department] = append(groups[r.Department], r)
	}
	out := []DepartmentSalary{}
	for _, d := range departmentOrder(records) {
		out = append(out, DepartmentSalary{Department: d, Average: averageOf(groups[d]), Headcount: len(groups[d])})
	}
	return out
}

func averageOf(records []store.Employee) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(decimal.NewFromFloat(r.Salary))
	}
	return sum.Div(decimal.NewFromInt(int64(len(records)))).Round(0)
}

// HiringTrend groups start dates by month in chronological order.
// Records without a valid start date are left out.
func HiringTrend(records []store.Employee) []MonthlyHires {
	counts := map[string]int{}
	labels := map[string]string{}
	for _, r := range records {
		d, err := validation.ParseDate(r.StartDate)
		if err != nil {
			continue
		}
		key := d.Format("2006-01")
		counts[key]++
		labels[key] = d.Format("Jan 2006")
	}
	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthlyHires, 0, len(months))
	running := 0
	for _, m := range months {
		running += counts[m]
		out = append(out, MonthlyHires{Month: m, Label: labels[m], Hires: counts[m], Cumulative: running})
	}
	return out
}
