package service

import (
	"time"

	"greens/pkg/capacity"
)

// Service serves the harvest capacity dashboard.
type Service interface {
	// Capacity returns the seven-day table starting at ref's calendar day.
	Capacity(ref time.Time) (capacity.Table, error)
}
