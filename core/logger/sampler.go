package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler lets through the first n of every d events.
type ratioSampler struct {
	mu      sync.Mutex
	n, d    int
	counter int
}

func newRatioSampler(n, d int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(n, d)
	return s
}

// Set configures the ratio. Non-positive values disable sampling (everything passes).
func (s *ratioSampler) Set(n, d int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter = 0
	if n <= 0 || d <= 0 {
		s.n, s.d = 0, 0
		return
	}
	s.n, s.d = min(n, d), d
}

// Allow reports whether the current event should pass sampling.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d == 0 {
		return true
	}
	s.counter = s.counter%s.d + 1
	return s.counter <= s.n
}

// parseRatioSpec accepts "n/d" or a bare "d" meaning 1/d.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if num, den, ok := strings.Cut(spec, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 == nil && err2 == nil {
			return n, d
		}
		return 0, 0
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}
