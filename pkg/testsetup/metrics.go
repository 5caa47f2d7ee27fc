package testsetup

import (
	"sync"
	"time"

	"github.com/AccelByte/extend-battle-tournament/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) AddBattleApplied(mode string) {
}

func (s stubMetricsCollection) AddTournamentCompleted(mode string) {
}

func (s stubMetricsCollection) AddStrategyElapsedTimeMs(mode, function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddInvariantViolation(mode string, reason string) {
}

func (s stubMetricsCollection) SetTournaments(status string, count int) {
}

func NewMetrics() metrics.TournamentMetrics {
	return stubMetricsCollection{}
}

// RecordingMetrics counts the calls it receives so tests can assert on them.
type RecordingMetrics struct {
	stubMetricsCollection
	mu         sync.Mutex
	Applied    map[string]int
	Completed  map[string]int
	Violations map[string]int
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Applied:    map[string]int{},
		Completed:  map[string]int{},
		Violations: map[string]int{},
	}
}

func (r *RecordingMetrics) AddBattleApplied(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Applied[mode]++
}

func (r *RecordingMetrics) AddTournamentCompleted(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Completed[mode]++
}

func (r *RecordingMetrics) AddInvariantViolation(mode string, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Violations[reason]++
}

func (r *RecordingMetrics) ViolationCount(reason string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Violations[reason]
}
