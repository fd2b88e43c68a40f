package config

import "time"

// Interval returns the delay between ticks for a snake of the given length.
func (p PaceConfig) Interval(length int) time.Duration {
	ms := max(p.MinMs, p.BaseMs-p.PerSegmentMs*length)
	return time.Duration(ms) * time.Millisecond
}

// Floor returns the shortest delay the schedule can reach.
func (p PaceConfig) Floor() time.Duration {
	return time.Duration(p.MinMs) * time.Millisecond
}
