package types

import "time"

// Result represents a vanity address found by one search round
type Result struct {
	Address    string // 40 lowercase hex chars, no 0x
	PrivateKey string // 64 lowercase hex chars
	Round      int
	Attempts   int64
	Duration   time.Duration
}

// Rate returns the average number of candidates generated per second
func (r *Result) Rate() float64 {
	if r.Duration.Seconds() <= 0 {
		return 0
	}
	return float64(r.Attempts) / r.Duration.Seconds()
}

// SkippedPattern is a raw pattern that failed to parse
type SkippedPattern struct {
	Raw string
	Err error
}

// Observer consumes the events produced by a search
type Observer interface {
	PatternSkipped(skipped *SkippedPattern)
	Throughput(attempts uint32)
	Found(result *Result)
}
