package async

import "time"

// Latency is the simulated round-trip time of each operation class.
type Latency struct {
	Login  time.Duration
	Fetch  time.Duration
	Mutate time.Duration
	Users  time.Duration
}

// DefaultLatency mimics a slow remote backend.
var DefaultLatency = Latency{
	Login:  1000 * time.Millisecond,
	Fetch:  1000 * time.Millisecond,
	Mutate: 500 * time.Millisecond,
	Users:  500 * time.Millisecond,
}

// NoLatency completes every operation immediately.
var NoLatency = Latency{}
