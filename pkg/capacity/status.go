package capacity

import "math"

type Status string

const (
	StatusRed   Status = "red"   // over-committed
	StatusAmber Status = "amber" // near full
	StatusGreen Status = "green" // has room
)

// NearFullRatio is the ordered/capacity share from which an entry shows amber.
const NearFullRatio = 0.8

// Utilization is ordered/capacity, 0 when there is no capacity.
func (e Entry) Utilization() float64 {
	if e.Capacity <= 0 {
		return 0
	}
	return e.Ordered / e.Capacity
}

func Classify(e Entry) Status {
	if math.Round(e.Free) <= 0 {
		return StatusRed
	}
	if e.Utilization() >= NearFullRatio {
		return StatusAmber
	}
	return StatusGreen
}
