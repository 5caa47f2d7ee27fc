// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"fmt"
	"slices"
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-battle-tournament/pkg/constants"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/mathutil"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
)

// deathmatch runs open-ended battles. Every win scores a point; the first track to reach
// the target score, or the leader once the battle cap is hit, wins.
type deathmatch struct {
	base
}

func newDeathmatch(b base) *deathmatch {
	b.mode = models.ModeDeathmatch
	return &deathmatch{base: b}
}

func (d *deathmatch) Name() string {
	return "Death Match"
}

func (d *deathmatch) Description() string {
	return "Continuous battles where tracks accumulate points. First to target score or highest after time limit wins."
}

func (d *deathmatch) Config() strategy.Config {
	return strategy.Config{
		RequireMinimumTracks: 2,
		AllowSkipping:        false,
		SupportsPausing:      true,
		SupportsResuming:     true,
	}
}

func (d *deathmatch) ValidateTracks(tracks []models.Track) bool {
	return len(tracks) >= d.Config().RequireMinimumTracks
}

func (d *deathmatch) targetScore(params models.ModeParameters) int {
	return firstPositive(params.TargetScore, d.cfg.DeathmatchTargetScore, constants.DefaultDeathmatchTargetScore)
}

// maxBattles is max(minBattles, n*battlesPerTrack) unless the tournament sets its own cap.
func (d *deathmatch) maxBattles(params models.ModeParameters, n int) int {
	if params.MaxBattles > 0 {
		return params.MaxBattles
	}
	minBattles := firstPositive(d.cfg.DeathmatchMinBattles, constants.DefaultDeathmatchMinBattles)
	perTrack := firstPositive(d.cfg.DeathmatchBattlesPerTrack, constants.DefaultDeathmatchBattlesPerTrack)
	return mathutil.Max(minBattles, n*perTrack)
}

func (d *deathmatch) InitializeTournament(scope *envelope.Scope, tracks []models.Track, params models.ModeParameters) models.Progress {
	defer d.observe(constants.InitializeTournamentFunction, time.Now())

	return newProgress(tracks, 1, d.maxBattles(params, len(tracks)))
}

func (d *deathmatch) data(scope *envelope.Scope, tournament *models.Tournament) *models.DeathmatchData {
	if tournament.StrategyData.Deathmatch == nil {
		params := tournament.ModeConfig.Parameters
		data := &models.DeathmatchData{
			Scores:      make(map[string]int, len(tournament.Tracks)),
			TargetScore: d.targetScore(params),
			MaxBattles:  d.maxBattles(params, len(tournament.Tracks)),
		}
		for _, t := range tournament.Tracks {
			data.Scores[t.ID] = 0
		}
		data.Leaderboard = leaderboard(data.Scores, tournament.Tracks)
		tournament.StrategyData.Deathmatch = data
	}
	return tournament.StrategyData.Deathmatch
}

func (d *deathmatch) GetStrategyData(scope *envelope.Scope, tournament *models.Tournament) interface{} {
	return d.data(scope, tournament)
}

func (d *deathmatch) UpdateStrategyData(tournament *models.Tournament, data interface{}) error {
	dm, ok := data.(*models.DeathmatchData)
	if !ok {
		return fmt.Errorf("%w: want *models.DeathmatchData, got %T", models.ErrStrategyDataType, data)
	}
	tournament.StrategyData.Deathmatch = dm
	return nil
}

// leaderboard orders tracks by score, keeping the tournament's track order on ties.
func leaderboard(scores map[string]int, tracks []models.Track) []models.ScoreEntry {
	entries := make([]models.ScoreEntry, 0, len(tracks))
	for _, t := range tracks {
		entries = append(entries, models.ScoreEntry{TrackID: t.ID, Score: scores[t.ID]})
	}
	return pie.SortStableUsing(entries, func(a, b models.ScoreEntry) bool {
		return a.Score > b.Score
	})
}

func (d *deathmatch) UpdateProgress(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle) models.Progress {
	defer d.observe(constants.UpdateProgressFunction, time.Now())

	progress := tournament.Progress.Clone()
	if !battle.HasWinner() {
		return progress
	}

	data := d.data(scope, tournament)
	if slices.Contains(data.BattleIDs, battle.ID) {
		d.violation(scope, tournament, battle, constants.ReasonDuplicateBattle)
		return progress
	}

	winnerID, loserID, ok := battle.Result()
	if !ok {
		d.violation(scope, tournament, battle, constants.ReasonWinnerNotInBattle)
		return progress
	}

	_, knownWinner := data.Scores[winnerID]
	_, knownLoser := data.Scores[loserID]
	if !knownWinner || !knownLoser {
		d.violation(scope, tournament, battle, constants.ReasonUnknownTrack)
		return progress
	}

	data.Scores[winnerID]++
	data.TotalBattles++
	data.BattleIDs = append(data.BattleIDs, battle.ID)
	data.PendingPairing = nil
	data.LastPairing = &models.Pairing{
		TrackAID:  battle.TrackA.ID,
		TrackBID:  battle.TrackB.ID,
		Completed: true,
		WinnerID:  winnerID,
		BattleID:  battle.ID,
	}
	data.Leaderboard = leaderboard(data.Scores, tournament.Tracks)

	progress.BattlesCompleted++
	progress.BattlesRemaining = mathutil.Max(0, data.MaxBattles-data.TotalBattles)
	progress.ProgressPercentage = mathutil.Max(
		mathutil.Percentage(data.Leaderboard[0].Score, data.TargetScore),
		mathutil.Percentage(data.TotalBattles, data.MaxBattles),
	)

	d.applied(scope, tournament, battle)
	return progress
}

func (d *deathmatch) GetNextMatchup(scope *envelope.Scope, tournament *models.Tournament) *models.Matchup {
	defer d.observe(constants.GetNextMatchupFunction, time.Now())

	if len(tournament.Tracks) < 2 || d.IsCompleted(scope, tournament) {
		return nil
	}

	data := d.data(scope, tournament)
	a, b := d.pendingPair(data, tournament)
	trackA, _ := tournament.TrackByID(a)
	trackB, _ := tournament.TrackByID(b)
	return &models.Matchup{
		TrackA: trackA,
		TrackB: trackB,
		Round:  1,
		Metadata: map[string]interface{}{
			models.MetadataBattleType:       constants.BattleTypeDeathmatch,
			models.MetadataScoreA:           data.Scores[a],
			models.MetadataScoreB:           data.Scores[b],
			models.MetadataTargetScore:      data.TargetScore,
			models.MetadataBattlesRemaining: mathutil.Max(0, data.MaxBattles-data.TotalBattles),
		},
	}
}

// pendingPair returns the pairing already handed out, drawing a new one only after the
// previous one was played. Repeated calls before the battle is applied return the same pair.
func (d *deathmatch) pendingPair(data *models.DeathmatchData, tournament *models.Tournament) (string, string) {
	if pending := data.PendingPairing; pending != nil {
		_, okA := tournament.TrackByID(pending.TrackAID)
		_, okB := tournament.TrackByID(pending.TrackBID)
		if okA && okB && pending.TrackAID != pending.TrackBID {
			return pending.TrackAID, pending.TrackBID
		}
	}

	var a, b string
	if data.TotalBattles < len(tournament.Tracks) {
		a, b = d.randomPair(data, models.TrackIDs(tournament.Tracks))
	} else {
		a, b = d.closestPair(data, models.TrackIDs(tournament.Tracks))
	}
	data.PendingPairing = &models.Pairing{TrackAID: a, TrackBID: b}
	return a, b
}

func isLastPairing(data *models.DeathmatchData, a, b string) bool {
	return data.LastPairing != nil && data.LastPairing.Matches(a, b)
}

// randomPair picks two random tracks, avoiding an immediate rematch when there is a choice.
func (d *deathmatch) randomPair(data *models.DeathmatchData, ids []string) (string, string) {
	order := d.shuffled(ids)
	if isLastPairing(data, order[0], order[1]) && len(order) > 2 {
		return order[0], order[2]
	}
	return order[0], order[1]
}

// closestPair picks the neighbours in the score ranking with the smallest score gap.
// Candidates are shuffled first so equal gaps do not always favour the same tracks.
func (d *deathmatch) closestPair(data *models.DeathmatchData, ids []string) (string, string) {
	order := pie.SortStableUsing(d.shuffled(ids), func(a, b string) bool {
		return data.Scores[a] > data.Scores[b]
	})

	best, bestGap := -1, 0
	for i := 0; i+1 < len(order); i++ {
		if isLastPairing(data, order[i], order[i+1]) {
			continue
		}
		gap := data.Scores[order[i]] - data.Scores[order[i+1]]
		if best < 0 || gap < bestGap {
			best, bestGap = i, gap
		}
	}
	if best < 0 {
		best = 0
	}
	return order[best], order[best+1]
}

func (d *deathmatch) IsCompleted(scope *envelope.Scope, tournament *models.Tournament) bool {
	data := d.data(scope, tournament)
	if len(data.Leaderboard) > 0 && data.Leaderboard[0].Score >= data.TargetScore {
		return true
	}
	return data.TotalBattles >= data.MaxBattles
}

func (d *deathmatch) CompleteTournament(scope *envelope.Scope, tournament *models.Tournament) *models.Tournament {
	var champion *models.Track
	if data := d.data(scope, tournament); len(data.Leaderboard) > 0 {
		champion = d.championByID(tournament, data.Leaderboard[0].TrackID)
	}
	return d.complete(tournament, champion)
}

func (d *deathmatch) CanStartBattle(scope *envelope.Scope, tournament *models.Tournament) bool {
	return d.canStart(tournament) && len(tournament.Tracks) >= 2 && !d.IsCompleted(scope, tournament)
}
