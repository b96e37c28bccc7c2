package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/homewise/affordability/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "TargetPrice", "MaxAffordable", "IsAffordable", "Shortfall", "Surplus", "AdditionalDeposit", "AdditionalIncome"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioReport(nil), report.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		row := []string{
			sc.Name,
			r.TargetPrice.StringFixed(2),
			r.MaxAffordable.StringFixed(2),
			boolToString(r.IsAffordable),
			r.Shortfall.StringFixed(2),
			r.Surplus.StringFixed(2),
			r.AdditionalDepositNeeded.StringFixed(2),
			r.AdditionalIncomeNeeded.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
