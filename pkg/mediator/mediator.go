// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package mediator sits between a voting session and the tournament engine.
// It hands out the pair the active tournament expects and refuses battles
// that were fought over any other pair.
package mediator

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

// TournamentEngine is the part of the orchestrator the mediator needs.
type TournamentEngine interface {
	ActiveTournament() *models.Tournament
	GetNextMatchup(scope *envelope.Scope, tournament *models.Tournament) *models.Matchup
	OnBattleCompleted(scope *envelope.Scope, battle models.Battle) error
}

type Mediator struct {
	engine TournamentEngine
}

// New returns a mediator. With a nil engine every battle is free play.
func New(engine TournamentEngine) *Mediator {
	return &Mediator{engine: engine}
}

// activeTournament returns the selected tournament when it is accepting battles.
func (m *Mediator) activeTournament() *models.Tournament {
	if m.engine == nil {
		return nil
	}
	tournament := m.engine.ActiveTournament()
	if tournament == nil || !tournament.IsActive() {
		return nil
	}
	return tournament
}

func (m *Mediator) HasActiveTournament() bool {
	return m.activeTournament() != nil
}

// NextMatchup returns the pair the active tournament expects next, or nil when no
// tournament is active or none can be scheduled now.
func (m *Mediator) NextMatchup(rootScope *envelope.Scope) *models.Matchup {
	tournament := m.activeTournament()
	if tournament == nil {
		return nil
	}

	scope := rootScope.WithTournament("mediator.NextMatchup", tournament.ID, string(tournament.EffectiveMode()))
	defer scope.Finish()

	return m.engine.GetNextMatchup(scope, tournament)
}

// TracksForBattle returns the tracks still competing in the active tournament,
// or nil when fewer than two remain.
func (m *Mediator) TracksForBattle() []models.Track {
	tournament := m.activeTournament()
	if tournament == nil || len(tournament.Progress.RemainingTracks) < 2 {
		return nil
	}
	return tournament.Progress.RemainingTracks
}

// CanStartBattle reports whether a and b may battle. Any pair is allowed when no
// tournament is active; otherwise the pair must be the expected matchup.
func (m *Mediator) CanStartBattle(scope *envelope.Scope, a, b models.Track) bool {
	if !m.HasActiveTournament() {
		return true
	}
	expected := m.NextMatchup(scope)
	if expected == nil {
		return false
	}
	return expected.SamePair(a.ID, b.ID)
}

// SubmitBattle forwards a decided battle to the active tournament after checking it was
// fought over the expected pair. Undecided battles and battles outside a tournament are ignored.
func (m *Mediator) SubmitBattle(rootScope *envelope.Scope, battle models.Battle) error {
	if !battle.HasWinner() {
		return nil
	}
	tournament := m.activeTournament()
	if tournament == nil {
		return nil
	}

	scope := rootScope.WithTournament("mediator.SubmitBattle", tournament.ID, string(tournament.EffectiveMode()))
	defer scope.Finish()
	scope.SetAttributes(envelope.BattleIDTag, battle.ID)

	expected := m.engine.GetNextMatchup(scope, tournament)
	if expected == nil || !expected.SamePair(battle.TrackA.ID, battle.TrackB.ID) {
		fields := logrus.Fields{
			"battleID": battle.ID,
			"trackA":   battle.TrackA.ID,
			"trackB":   battle.TrackB.ID,
		}
		if expected != nil {
			fields["expectedA"] = expected.TrackA.ID
			fields["expectedB"] = expected.TrackB.ID
		}
		scope.Log.WithFields(fields).Warn("battle rejected, pair does not match the expected matchup")
		return fmt.Errorf("%w: %s vs %s", models.ErrBattleMismatch, battle.TrackA.ID, battle.TrackB.ID)
	}

	return m.engine.OnBattleCompleted(scope, battle)
}
