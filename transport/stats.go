package transport

import (
	"time"

	"github.com/felixtrz/immersive-web-sdk/internal/ring"
)

// statsWindow is how many recent ticks Stats retains for its rolling
// duration window.
const statsWindow = 240

// Stats tracks scheduler health: how long ticks take, how often the
// scheduler misses its deadline, and how many messages each tick drained.
// The example host's terminal monitor reads a snapshot of this every
// refresh.
type Stats struct {
	durations       *ring.Buffer[time.Duration]
	overruns        uint64
	ticks           uint64
	messagesPerTick *ring.Buffer[int]
}

// NewStats constructs an empty Stats with the default rolling window.
func NewStats() *Stats {
	return &Stats{
		durations:       ring.New[time.Duration](statsWindow),
		messagesPerTick: ring.New[int](statsWindow),
	}
}

// RecordTick appends one tick's duration and message count, and increments
// the overrun counter if the tick took longer than budget.
func (s *Stats) RecordTick(d time.Duration, budget time.Duration, messages int) {
	s.durations.Push(d)
	s.messagesPerTick.Push(messages)
	s.ticks++
	if d > budget {
		s.overruns++
	}
}

// Snapshot is an immutable copy of Stats' current state.
type Snapshot struct {
	Ticks           uint64
	Overruns        uint64
	AverageTickTime time.Duration
	MaxTickTime     time.Duration
	AverageMessages float64
}

// Snapshot summarizes the rolling window.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{Ticks: s.ticks, Overruns: s.overruns}

	window := s.durations.Window()
	if len(window) > 0 {
		var total time.Duration
		for _, d := range window {
			total += d
			if d > snap.MaxTickTime {
				snap.MaxTickTime = d
			}
		}
		snap.AverageTickTime = total / time.Duration(len(window))
	}

	msgWindow := s.messagesPerTick.Window()
	if len(msgWindow) > 0 {
		total := 0
		for _, m := range msgWindow {
			total += m
		}
		snap.AverageMessages = float64(total) / float64(len(msgWindow))
	}
	return snap
}
