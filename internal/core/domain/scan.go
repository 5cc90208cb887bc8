package domain

import "time"

// ScanStats summarizes a full scan.
type ScanStats struct {
	Root           string
	Extension      string
	TotalFiles     int
	DecoratorFiles int
	Duration       time.Duration
}

// Efficiency is the share of scanned files that declare decorators, in percent.
func (s ScanStats) Efficiency() float64 {
	if s.TotalFiles == 0 {
		return 0
	}
	return float64(s.DecoratorFiles) / float64(s.TotalFiles) * 100
}
