// Package stats tracks session counters and simulation summary statistics.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// SessionStats accumulates win/loss counters across rounds within a login
// session. Blackjacks count as wins for streak purposes.
type SessionStats struct {
	HandsPlayed int `json:"handsPlayed"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Pushes      int `json:"pushes"`
	Blackjacks  int `json:"blackjacks"`

	// CurrentStreak is signed: positive for consecutive winning rounds,
	// negative for losing ones. Reset on new game or logout, not persisted
	// across logins.
	CurrentStreak int `json:"-"`
	BestStreak    int `json:"bestStreak"`
	WorstStreak   int `json:"worstStreak"`
}

// RoundTally summarises the per-hand results of one settled round.
type RoundTally struct {
	Hands      int
	Wins       int // includes blackjacks
	Losses     int
	Pushes     int
	Blackjacks int
}

// ApplyRound folds a settled round into the counters and updates the
// streak: a net-winning round extends or starts a positive streak, a
// net-losing round a negative one, and a flat round leaves it unchanged.
func (s *SessionStats) ApplyRound(t RoundTally) {
	s.HandsPlayed += t.Hands
	s.Wins += t.Wins
	s.Losses += t.Losses
	s.Pushes += t.Pushes
	s.Blackjacks += t.Blackjacks

	if t.Wins > t.Losses {
		if s.CurrentStreak >= 0 {
			s.CurrentStreak++
		} else {
			s.CurrentStreak = 1
		}
	} else if t.Losses > t.Wins {
		if s.CurrentStreak <= 0 {
			s.CurrentStreak--
		} else {
			s.CurrentStreak = -1
		}
	}

	if s.CurrentStreak > s.BestStreak {
		s.BestStreak = s.CurrentStreak
	}
	if s.CurrentStreak < s.WorstStreak {
		s.WorstStreak = s.CurrentStreak
	}
}

// RoundResult is a single simulated round outcome.
type RoundResult struct {
	Net        int // payout minus wagered, in money units
	Wagered    int
	Hands      int
	Blackjacks int
	Seed       int64 // RNG seed for replay
}

// Statistics aggregates simulation results for reporting.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64 // sum of squares for variance
	Values  []float64

	TotalWagered int
	TotalHands   int
	Blackjacks   int
	WinRounds    int
	LoseRounds   int
	PushRounds   int
}

// Add incorporates a round result.
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	s.TotalWagered += result.Wagered
	s.TotalHands += result.Hands
	s.Blackjacks += result.Blackjacks

	switch {
	case result.Net > 0:
		s.WinRounds++
	case result.Net < 0:
		s.LoseRounds++
	default:
		s.PushRounds++
	}
}

// Mean returns the arithmetic mean net result per round.
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of net results.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HouseEdge returns the simulated house edge as a fraction of money wagered.
func (s *Statistics) HouseEdge() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return -s.SumNet / float64(s.TotalWagered)
}

// Median returns the median net result.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Validate checks internal consistency of the aggregated data.
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid round count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values length (%d) does not match round count (%d)",
			len(s.Values), s.Rounds)
	}
	if s.WinRounds+s.LoseRounds+s.PushRounds != s.Rounds {
		return fmt.Errorf("outcome buckets (%d+%d+%d) do not sum to rounds (%d)",
			s.WinRounds, s.LoseRounds, s.PushRounds, s.Rounds)
	}
	if s.TotalHands < s.Rounds {
		return fmt.Errorf("total hands (%d) below round count (%d)", s.TotalHands, s.Rounds)
	}
	return nil
}
