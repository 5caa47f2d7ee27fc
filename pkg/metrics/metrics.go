// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type TournamentMetrics interface {
	AddBattleApplied(mode string)
	AddTournamentCompleted(mode string)
	AddStrategyElapsedTimeMs(mode, function string, elapsedTime time.Duration)
	AddInvariantViolation(mode string, reason string)
	SetTournaments(status string, count int)
}

func NewMetrics(registry *prometheus.Registry) TournamentMetrics {
	return setupPrometheusMetrics(registry)
}
