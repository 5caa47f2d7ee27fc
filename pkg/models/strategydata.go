// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// StrategyData holds the per-mode bookkeeping of a tournament. Only the field
// matching the tournament mode is populated.
type StrategyData struct {
	Elimination *EliminationData `bson:"elimination,omitempty" json:"elimination,omitempty"`
	RoundRobin  *RoundRobinData  `bson:"roundrobin,omitempty"  json:"roundrobin,omitempty"`
	Swiss       *SwissData       `bson:"swiss,omitempty"       json:"swiss,omitempty"`
	Groups      *GroupsData      `bson:"groups,omitempty"      json:"groups,omitempty"`
	Deathmatch  *DeathmatchData  `bson:"deathmatch,omitempty"  json:"deathmatch,omitempty"`
}

func (d StrategyData) Has(mode Mode) bool {
	switch mode {
	case ModeElimination:
		return d.Elimination != nil
	case ModeRoundRobin:
		return d.RoundRobin != nil
	case ModeSwiss:
		return d.Swiss != nil
	case ModeGroups:
		return d.Groups != nil
	case ModeDeathmatch:
		return d.Deathmatch != nil
	default:
		return false
	}
}

// Pairing is a scheduled matchup between two track ids.
type Pairing struct {
	TrackAID  string `bson:"track_a"   json:"trackA"`
	TrackBID  string `bson:"track_b"   json:"trackB"`
	Completed bool   `bson:"completed" json:"completed"`
	WinnerID  string `bson:"winner"    json:"winner,omitempty"`
	BattleID  string `bson:"battle_id" json:"battleId,omitempty"`
}

func (p Pairing) Matches(trackAID, trackBID string) bool {
	return (p.TrackAID == trackAID && p.TrackBID == trackBID) ||
		(p.TrackAID == trackBID && p.TrackBID == trackAID)
}

func (p *Pairing) Complete(winnerID, battleID string) {
	p.Completed = true
	p.WinnerID = winnerID
	p.BattleID = battleID
}

type EliminationData struct {
	Round    int       `bson:"round"    json:"round"`
	Matchups []Pairing `bson:"matchups" json:"matchups"`
	Byes     []string  `bson:"byes"     json:"byes,omitempty"`
}

type RoundRobinData struct {
	Fixtures            []Pairing  `bson:"fixtures"      json:"fixtures"`
	Standings           []Standing `bson:"standings"     json:"standings"`
	CurrentFixtureIndex int        `bson:"fixture_index" json:"currentFixtureIndex"`
}

type SwissRound struct {
	Number     int       `bson:"number"    json:"number"`
	Pairings   []Pairing `bson:"pairings"  json:"pairings"`
	ByeTrackID string    `bson:"bye"       json:"bye,omitempty"`
	Completed  bool      `bson:"completed" json:"completed"`
}

type SwissData struct {
	Standings           []Standing   `bson:"standings"     json:"standings"`
	Rounds              []SwissRound `bson:"rounds"        json:"rounds"`
	CurrentRound        int          `bson:"current_round" json:"currentRound"`
	CurrentPairingIndex int          `bson:"pairing_index" json:"currentPairingIndex"`
	TotalRounds         int          `bson:"total_rounds"  json:"totalRounds"`
}

// Round returns the round being played, nil once all rounds are done.
func (d *SwissData) Round() *SwissRound {
	if d.CurrentRound < 1 || d.CurrentRound > len(d.Rounds) {
		return nil
	}
	return &d.Rounds[d.CurrentRound-1]
}

type Group struct {
	ID        string     `bson:"id"        json:"id"`
	Name      string     `bson:"name"      json:"name"`
	TrackIDs  []string   `bson:"track_ids" json:"trackIds"`
	Standings []Standing `bson:"standings" json:"standings"`
	Fixtures  []Pairing  `bson:"fixtures"  json:"fixtures"`
	Completed bool       `bson:"completed" json:"completed"`
}

type GroupsData struct {
	Groups              []Group   `bson:"groups"               json:"groups"`
	CurrentGroupIndex   int       `bson:"group_index"          json:"currentGroupIndex"`
	CurrentFixtureIndex int       `bson:"fixture_index"        json:"currentFixtureIndex"`
	GroupSize           int       `bson:"group_size"           json:"groupSize"`
	QualifiersPerGroup  int       `bson:"qualifiers_per_group" json:"qualifiersPerGroup"`
	PlayoffPhase        bool      `bson:"playoff_phase"        json:"playoffPhase"`
	PlayoffTrackIDs     []string  `bson:"playoff_track_ids"    json:"playoffTrackIds"`
	PlayoffMatchups     []Pairing `bson:"playoff_matchups"     json:"playoffMatchups"`
	PlayoffRound        int       `bson:"playoff_round"        json:"playoffRound"`
}

type ScoreEntry struct {
	TrackID string `bson:"track_id" json:"trackId"`
	Score   int    `bson:"score"    json:"score"`
}

type DeathmatchData struct {
	Scores         map[string]int `bson:"scores"          json:"scores"`
	TargetScore    int            `bson:"target_score"    json:"targetScore"`
	TotalBattles   int            `bson:"total"           json:"totalBattles"`
	MaxBattles     int            `bson:"max_battles"     json:"maxBattles"`
	Leaderboard    []ScoreEntry   `bson:"leaderboard"     json:"leaderboard"`
	LastPairing    *Pairing       `bson:"last_pairing"    json:"lastPairing,omitempty"`
	// PendingPairing is the matchup handed out and not yet played.
	PendingPairing *Pairing       `bson:"pending_pairing" json:"pendingPairing,omitempty"`
	BattleIDs      []string       `bson:"battle_ids"      json:"battleIds,omitempty"`
}
