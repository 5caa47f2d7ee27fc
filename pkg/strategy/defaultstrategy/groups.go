// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-battle-tournament/pkg/constants"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/mathutil"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
)

// groups runs a round robin inside each group, then a single elimination playoff between
// the best tracks of every group.
type groups struct {
	base
}

func newGroups(b base) *groups {
	b.mode = models.ModeGroups
	return &groups{base: b}
}

func (g *groups) Name() string {
	return "Group Stage"
}

func (g *groups) Description() string {
	return "Tournament divided into groups where all tracks in each group face each other. Best from each group advance to playoffs."
}

func (g *groups) Config() strategy.Config {
	return strategy.Config{
		RequireMinimumTracks: 6,
		AllowSkipping:        false,
		SupportsPausing:      true,
		SupportsResuming:     true,
	}
}

func (g *groups) ValidateTracks(tracks []models.Track) bool {
	return len(tracks) >= g.Config().RequireMinimumTracks
}

// settings resolves group size and qualifiers from the tournament parameters and the config.
func (g *groups) settings(params models.ModeParameters) (groupSize, qualifiers int) {
	groupSize = firstPositive(params.GroupSize, g.cfg.GroupSize, constants.DefaultGroupSize)
	groupSize = mathutil.Max(groupSize, constants.MinGroupSize)
	qualifiers = firstPositive(params.QualifiersPerGroup, g.cfg.QualifiersPerGroup, constants.DefaultQualifiersPerGroup)
	return groupSize, mathutil.Clamp(qualifiers, 1, groupSize-1)
}

// groupSizes deals n tracks into ceil(n/size) groups whose sizes differ by at most one.
func groupSizes(n, size int) []int {
	if n <= 0 {
		return nil
	}
	count := (n + size - 1) / size
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = n / count
		if i < n%count {
			sizes[i]++
		}
	}
	return sizes
}

// qualifiersFor caps the qualifiers of a group so at least one track is left behind.
func qualifiersFor(groupLen, qualifiers int) int {
	if groupLen <= 1 {
		return groupLen
	}
	return mathutil.Min(qualifiers, groupLen-1)
}

func groupName(i int) string {
	if i < 26 {
		return constants.GroupNamePrefix + string(rune('A'+i))
	}
	return constants.GroupNamePrefix + strconv.Itoa(i+1)
}

func (g *groups) InitializeTournament(scope *envelope.Scope, tracks []models.Track, params models.ModeParameters) models.Progress {
	defer g.observe(constants.InitializeTournamentFunction, time.Now())

	groupSize, qualifiers := g.settings(params)
	groupBattles, pool := 0, 0
	for _, size := range groupSizes(len(tracks), groupSize) {
		groupBattles += mathutil.Pairs(size)
		pool += qualifiersFor(size, qualifiers)
	}

	return newProgress(tracks, 2, groupBattles+mathutil.Max(0, pool-1))
}

func (g *groups) data(scope *envelope.Scope, tournament *models.Tournament) *models.GroupsData {
	if tournament.StrategyData.Groups == nil {
		groupSize, qualifiers := g.settings(tournament.ModeConfig.Parameters)
		ids := g.shuffled(models.TrackIDs(tournament.Tracks))

		data := &models.GroupsData{
			GroupSize:          groupSize,
			QualifiersPerGroup: qualifiers,
			PlayoffTrackIDs:    []string{},
			PlayoffMatchups:    []models.Pairing{},
		}
		offset := 0
		for i, size := range groupSizes(len(ids), groupSize) {
			members := slices.Clone(ids[offset : offset+size])
			offset += size
			data.Groups = append(data.Groups, models.Group{
				ID:        strconv.Itoa(i + 1),
				Name:      groupName(i),
				TrackIDs:  members,
				Standings: models.NewStandings(members),
				Fixtures:  roundRobinFixtures(members),
			})
		}
		g.skipFinishedGroups(data)
		tournament.StrategyData.Groups = data
		scope.Log.WithField("tournamentID", tournament.ID).WithField("groups", len(data.Groups)).Debug("groups generated")
	}
	return tournament.StrategyData.Groups
}

func (g *groups) GetStrategyData(scope *envelope.Scope, tournament *models.Tournament) interface{} {
	return g.data(scope, tournament)
}

func (g *groups) UpdateStrategyData(tournament *models.Tournament, data interface{}) error {
	d, ok := data.(*models.GroupsData)
	if !ok {
		return fmt.Errorf("%w: want *models.GroupsData, got %T", models.ErrStrategyDataType, data)
	}
	tournament.StrategyData.Groups = d
	return nil
}

// skipFinishedGroups moves the cursor past groups whose fixtures are all played.
func (g *groups) skipFinishedGroups(data *models.GroupsData) {
	for data.CurrentGroupIndex < len(data.Groups) {
		group := &data.Groups[data.CurrentGroupIndex]
		if data.CurrentFixtureIndex < len(group.Fixtures) {
			return
		}
		group.Completed = true
		data.CurrentGroupIndex++
		data.CurrentFixtureIndex = 0
	}
}

func (g *groups) UpdateProgress(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle) models.Progress {
	defer g.observe(constants.UpdateProgressFunction, time.Now())

	progress := tournament.Progress.Clone()
	if !battle.HasWinner() {
		return progress
	}

	winnerID, loserID, ok := battle.Result()
	if !ok {
		g.violation(scope, tournament, battle, constants.ReasonWinnerNotInBattle)
		return progress
	}

	data := g.data(scope, tournament)
	if data.PlayoffPhase {
		if !g.applyPlayoff(scope, tournament, data, battle, winnerID, loserID, &progress) {
			return progress
		}
	} else {
		if !g.applyGroupStage(scope, tournament, data, battle, winnerID, loserID) {
			return progress
		}
		if data.CurrentGroupIndex >= len(data.Groups) {
			g.startPlayoffs(scope, tournament, data, &progress)
		}
	}

	progress.BattlesCompleted++
	progress.BattlesRemaining = g.battlesRemaining(data)
	progress.ProgressPercentage = mathutil.Percentage(progress.BattlesCompleted, progress.BattlesCompleted+progress.BattlesRemaining)

	g.applied(scope, tournament, battle)
	return progress
}

func (g *groups) applyGroupStage(scope *envelope.Scope, tournament *models.Tournament, data *models.GroupsData, battle models.Battle, winnerID, loserID string) bool {
	if data.CurrentGroupIndex >= len(data.Groups) {
		g.violation(scope, tournament, battle, constants.ReasonUnexpectedPairing)
		return false
	}

	group := &data.Groups[data.CurrentGroupIndex]
	claimed, reordered := claimFixture(group.Fixtures, data.CurrentFixtureIndex, winnerID, loserID, battle.ID)
	if !claimed {
		g.violation(scope, tournament, battle, constants.ReasonUnexpectedPairing)
		return false
	}
	if reordered {
		scope.Log.WithFields(g.battleFields(tournament, battle)).Debug("group fixture played out of order, moved to cursor")
	}

	recordResult(group.Standings, winnerID, loserID, constants.PointsPerWinGroups, false)
	data.CurrentFixtureIndex++
	g.skipFinishedGroups(data)
	return true
}

// startPlayoffs pools the qualifiers of every group and eliminates everyone else.
func (g *groups) startPlayoffs(scope *envelope.Scope, tournament *models.Tournament, data *models.GroupsData, progress *models.Progress) {
	qualified := []string{}
	for _, group := range data.Groups {
		ranked := models.RankStandings(group.Standings)
		n := qualifiersFor(len(ranked), data.QualifiersPerGroup)
		for _, s := range ranked[:n] {
			qualified = append(qualified, s.TrackID)
		}
	}

	isQualified := idSet(qualified)
	for _, track := range pie.Filter(progress.RemainingTracks, func(t models.Track) bool { return !isQualified[t.ID] }) {
		eliminate(progress, track)
	}

	data.PlayoffPhase = true
	data.PlayoffTrackIDs = qualified
	data.PlayoffRound = 1
	data.PlayoffMatchups, _ = g.bracketRound(scope, qualified)
	progress.CurrentRound = 2

	scope.Log.WithField("tournamentID", tournament.ID).WithField("qualifiers", qualified).Info("group stage complete, playoffs started")
}

func (g *groups) applyPlayoff(scope *envelope.Scope, tournament *models.Tournament, data *models.GroupsData, battle models.Battle, winnerID, loserID string, progress *models.Progress) bool {
	alive := idSet(data.PlayoffTrackIDs)
	if !alive[winnerID] {
		g.violation(scope, tournament, battle, constants.ReasonWinnerNotRemaining)
		return false
	}
	if !alive[loserID] {
		g.violation(scope, tournament, battle, constants.ReasonLoserNotRemaining)
		return false
	}

	if i := pendingMatch(data.PlayoffMatchups, winnerID, loserID); i >= 0 {
		data.PlayoffMatchups[i].Complete(winnerID, battle.ID)
	} else {
		scope.Log.WithFields(g.battleFields(tournament, battle)).Warn("battle was not scheduled in the current playoff round")
		g.metrics.AddInvariantViolation(string(g.mode), constants.ReasonUnexpectedPairing)
	}

	data.PlayoffTrackIDs = pie.Filter(data.PlayoffTrackIDs, func(id string) bool { return id != loserID })
	if loser, found := models.FindTrack(progress.RemainingTracks, loserID); found {
		eliminate(progress, loser)
	}
	g.nextPlayoffRound(scope, data)
	return true
}

func (g *groups) nextPlayoffRound(scope *envelope.Scope, data *models.GroupsData) {
	if len(data.PlayoffTrackIDs) < 2 || pendingIndex(data.PlayoffMatchups, idSet(data.PlayoffTrackIDs)) >= 0 {
		return
	}
	data.PlayoffRound++
	data.PlayoffMatchups, _ = g.bracketRound(scope, data.PlayoffTrackIDs)
}

func (g *groups) battlesRemaining(data *models.GroupsData) int {
	remaining, pool := 0, 0
	for _, group := range data.Groups {
		remaining += countPending(group.Fixtures)
		pool += qualifiersFor(len(group.TrackIDs), data.QualifiersPerGroup)
	}
	if data.PlayoffPhase {
		pool = len(data.PlayoffTrackIDs)
	}
	return remaining + mathutil.Max(0, pool-1)
}

func (g *groups) GetNextMatchup(scope *envelope.Scope, tournament *models.Tournament) *models.Matchup {
	defer g.observe(constants.GetNextMatchupFunction, time.Now())

	data := g.data(scope, tournament)
	if data.PlayoffPhase {
		return g.nextPlayoffMatchup(scope, tournament, data)
	}
	if data.CurrentGroupIndex >= len(data.Groups) {
		return nil
	}

	group := data.Groups[data.CurrentGroupIndex]
	fixture := group.Fixtures[data.CurrentFixtureIndex]
	trackA, okA := tournament.TrackByID(fixture.TrackAID)
	trackB, okB := tournament.TrackByID(fixture.TrackBID)
	if !okA || !okB {
		scope.Log.WithField("tournamentID", tournament.ID).WithField("fixture", fixture).Warn("fixture references unknown track")
		g.metrics.AddInvariantViolation(string(g.mode), constants.ReasonUnknownTrack)
		return nil
	}

	return &models.Matchup{
		TrackA: trackA,
		TrackB: trackB,
		Round:  1,
		Group:  group.Name,
		Metadata: map[string]interface{}{
			models.MetadataBattleType:    constants.BattleTypeGroupStage,
			models.MetadataGroupIndex:    data.CurrentGroupIndex,
			models.MetadataFixtureIndex:  data.CurrentFixtureIndex,
			models.MetadataTotalFixtures: len(group.Fixtures),
		},
	}
}

func (g *groups) nextPlayoffMatchup(scope *envelope.Scope, tournament *models.Tournament, data *models.GroupsData) *models.Matchup {
	if len(data.PlayoffTrackIDs) < 2 {
		return nil
	}

	i := pendingIndex(data.PlayoffMatchups, idSet(data.PlayoffTrackIDs))
	if i < 0 {
		scope.Log.WithField("tournamentID", tournament.ID).WithField("round", data.PlayoffRound).
			Warn("playoff round exhausted with tracks remaining, regenerating")
		g.metrics.AddInvariantViolation(string(g.mode), constants.ReasonBracketExhausted)
		g.nextPlayoffRound(scope, data)
		if i = pendingIndex(data.PlayoffMatchups, idSet(data.PlayoffTrackIDs)); i < 0 {
			return nil
		}
	}

	pairing := data.PlayoffMatchups[i]
	trackA, _ := tournament.TrackByID(pairing.TrackAID)
	trackB, _ := tournament.TrackByID(pairing.TrackBID)

	return &models.Matchup{
		TrackA: trackA,
		TrackB: trackB,
		Round:  2,
		Group:  constants.PlayoffGroupLabel,
		Metadata: map[string]interface{}{
			models.MetadataBattleType:      constants.BattleTypePlayoff,
			models.MetadataMatchupIndex:    i,
			models.MetadataTotalMatchups:   len(data.PlayoffMatchups),
			models.MetadataRemainingTracks: len(data.PlayoffTrackIDs),
		},
	}
}

func (g *groups) IsCompleted(scope *envelope.Scope, tournament *models.Tournament) bool {
	data := g.data(scope, tournament)
	return data.PlayoffPhase && len(data.PlayoffTrackIDs) <= 1
}

func (g *groups) CompleteTournament(scope *envelope.Scope, tournament *models.Tournament) *models.Tournament {
	var champion *models.Track
	if data := g.data(scope, tournament); len(data.PlayoffTrackIDs) == 1 {
		champion = g.championByID(tournament, data.PlayoffTrackIDs[0])
	}
	return g.complete(tournament, champion)
}

func (g *groups) CanStartBattle(scope *envelope.Scope, tournament *models.Tournament) bool {
	return g.canStart(tournament) && !g.IsCompleted(scope, tournament)
}
