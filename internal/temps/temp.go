package temps

// TempStatus is a single reading of a temperature source together with the
// thresholds it is evaluated against.
type TempStatus struct {
	Value       float64
	Min         float64
	Max         float64
	Panic       *float64
	Threshold   *float64
	IsPanic     bool
	IsThreshold bool
}

// Temp is a temperature source. Get performs the actual read and evaluates
// the configured thresholds against the raw value.
type Temp interface {
	Get() (TempStatus, error)
}

// BaseTemp holds the threshold fields shared by all temperature sources.
type BaseTemp struct {
	Min       float64
	Max       float64
	Panic     *float64
	Threshold *float64
}

func (t BaseTemp) status(value float64, min float64, max float64) TempStatus {
	return TempStatus{
		Value:       value,
		Min:         min,
		Max:         max,
		Panic:       t.Panic,
		Threshold:   t.Threshold,
		IsPanic:     t.Panic != nil && value >= *t.Panic,
		IsThreshold: t.Threshold != nil && value >= *t.Threshold,
	}
}
