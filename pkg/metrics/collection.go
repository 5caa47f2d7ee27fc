// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	battlesApplied       prometheus.CounterVec
	tournamentsCompleted prometheus.CounterVec
	strategyElapsedTime  prometheus.HistogramVec
	invariantViolations  prometheus.CounterVec
	tournamentsByStatus  prometheus.GaugeVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	battlesApplied := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battle_tournament_battles_applied_total",
			Help: "Number of completed battles applied to a tournament",
		}, []string{"mode"})

	tournamentsCompleted := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battle_tournament_completed_total",
			Help: "Number of tournaments that reached a champion",
		}, []string{"mode"})

	//nolint:promlinter
	strategyElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "battle_tournament_strategy_elapsed_time_ms",
			Help:    "A histogram of strategy functions elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"mode", "function"})

	invariantViolations := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battle_tournament_invariant_violations_total",
			Help: "Battles that did not fit the tournament state and were ignored or repaired",
		}, []string{"mode", "reason"})

	tournamentsByStatus := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "battle_tournament_tournaments",
			Help: "Number of tournaments held by the orchestrator per status",
		}, []string{"status"})

	return prometheusMetrics{
		battlesApplied:       *battlesApplied,
		tournamentsCompleted: *tournamentsCompleted,
		strategyElapsedTime:  *strategyElapsedTime,
		invariantViolations:  *invariantViolations,
		tournamentsByStatus:  *tournamentsByStatus,
	}
}

func (metrics prometheusMetrics) AddBattleApplied(mode string) {
	metrics.battlesApplied.With(prometheus.Labels{"mode": mode}).Inc()
}

func (metrics prometheusMetrics) AddTournamentCompleted(mode string) {
	metrics.tournamentsCompleted.With(prometheus.Labels{"mode": mode}).Inc()
}

func (metrics prometheusMetrics) AddStrategyElapsedTimeMs(mode, function string, elapsedTime time.Duration) {
	metrics.strategyElapsedTime.With(prometheus.Labels{"mode": mode, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddInvariantViolation(mode string, reason string) {
	metrics.invariantViolations.With(prometheus.Labels{"mode": mode, "reason": reason}).Add(float64(1))
}

func (metrics prometheusMetrics) SetTournaments(status string, count int) {
	metrics.tournamentsByStatus.With(prometheus.Labels{"status": status}).Set(float64(count))
}
