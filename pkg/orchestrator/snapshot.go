// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package orchestrator

import (
	"errors"

	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/storage"
)

// Save writes the current state to the store.
func (o *Orchestrator) Save(rootScope *envelope.Scope) error {
	scope := rootScope.NewChildScope("orchestrator.Save")
	defer scope.Finish()

	o.mu.Lock()
	defer o.mu.Unlock()

	return o.store.Save(scope.Ctx, o.snapshotLocked())
}

// Load replaces the in-memory state with the stored snapshot. An empty store and a
// snapshot older than the configured max age both leave the orchestrator empty.
// Tournaments written before modes existed are migrated to elimination.
func (o *Orchestrator) Load(rootScope *envelope.Scope) error {
	scope := rootScope.NewChildScope("orchestrator.Load")
	defer scope.Finish()

	snapshot, err := o.store.Load(scope.Ctx)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		scope.Log.Debug("no tournament snapshot stored")
		return nil
	}
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.tournaments = nil
	o.activeID = ""

	if snapshot.Expired(o.now(), o.cfg.SnapshotMaxAge()) {
		scope.Log.WithField("timestamp", snapshot.Timestamp).Info("tournament snapshot is stale, discarded")
		o.refreshGauges()
		return nil
	}

	tournaments := make([]*models.Tournament, 0, len(snapshot.Tournaments))
	for i := range snapshot.Tournaments {
		tournament := &snapshot.Tournaments[i]
		o.migrate(scope, tournament)
		tournaments = append(tournaments, tournament)
	}
	o.tournaments = tournaments

	if snapshot.ActiveTournamentID != "" {
		if o.findLocked(snapshot.ActiveTournamentID) != nil {
			o.activeID = snapshot.ActiveTournamentID
		} else {
			scope.Log.WithField("tournamentID", snapshot.ActiveTournamentID).Warn("active tournament missing from snapshot")
		}
	}

	o.refreshGauges()
	scope.Log.WithField("tournaments", len(o.tournaments)).Info("tournament snapshot loaded")
	return nil
}

// migrate fills what older snapshots lack: the mode, the mode config, the starting
// progress and the strategy data. Strategy data is rebuilt before the tournament is used.
func (o *Orchestrator) migrate(rootScope *envelope.Scope, tournament *models.Tournament) {
	scope := rootScope.WithTournament("orchestrator.migrate", tournament.ID, string(tournament.Mode))
	defer scope.Finish()

	if tournament.Mode == "" || !o.resolver.IsRegistered(tournament.Mode) {
		resolved := o.resolver.Get(scope, tournament.EffectiveMode()).Mode()
		scope.Log.WithField("resolvedMode", resolved).Info("tournament without a known mode migrated")
		tournament.Mode = resolved
	}
	if tournament.ModeConfig.Mode != tournament.Mode {
		tournament.ModeConfig.Mode = tournament.Mode
	}
	if tournament.Battles == nil {
		tournament.Battles = []models.Battle{}
	}

	s := o.resolver.Get(scope, tournament.Mode)
	if tournament.Progress.TotalTracks == 0 && len(tournament.Tracks) > 0 {
		tournament.Progress = s.InitializeTournament(scope, tournament.Tracks, tournament.ModeConfig.Parameters)
	}
	if tournament.Status != models.StatusCompleted && !tournament.StrategyData.Has(tournament.Mode) {
		s.GetStrategyData(scope, tournament)
		scope.Log.Info("strategy data rebuilt")
	}
}

// persistLocked saves the snapshot. Failures are logged and do not fail the operation.
func (o *Orchestrator) persistLocked(scope *envelope.Scope) {
	if err := o.store.Save(scope.Ctx, o.snapshotLocked()); err != nil {
		scope.Log.WithError(err).Warn("failed to save tournament data")
	}
}

func (o *Orchestrator) snapshotLocked() *storage.Snapshot {
	tournaments := make([]models.Tournament, 0, len(o.tournaments))
	for _, t := range o.tournaments {
		tournaments = append(tournaments, *t)
	}
	return &storage.Snapshot{
		Tournaments:        tournaments,
		ActiveTournamentID: o.activeID,
		Timestamp:          o.now(),
	}
}
