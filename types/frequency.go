package types

import "time"

type Frequency string

const (
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
)

var FrequencyMonths = map[Frequency]int{
	Monthly:    1,
	Quarterly:  3,
	Semiannual: 6,
	Annual:     12,
}

var ConvertFrequency = map[string]Frequency{
	"monthly":    Monthly,
	"quarterly":  Quarterly,
	"semiannual": Semiannual,
	"annual":     Annual,
}

// Bucket maps a date to its calendar period number for this frequency.
// Consecutive periods get consecutive numbers, so a period boundary is any
// point where the bucket changes. Semiannual buckets months into two 6-month
// blocks per year.
func (f Frequency) Bucket(t time.Time) int {
	months, ok := FrequencyMonths[f]
	if !ok {
		months = 1
	}
	perYear := 12 / months
	return t.Year()*perYear + (int(t.Month())-1)/months
}

func (f Frequency) IsValid() bool {
	_, ok := FrequencyMonths[f]
	return ok
}
