// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	MinTracks = 2

	DefaultGroupSize          = 4
	MinGroupSize              = 3
	DefaultQualifiersPerGroup = 2

	DefaultDeathmatchTargetScore     = 10
	DefaultDeathmatchMinBattles      = 50
	DefaultDeathmatchBattlesPerTrack = 5

	MinSwissRounds = 3

	SnapshotMaxAge = 30 * 24 * time.Hour
)

const (
	PointsPerWinRoundRobin = 3
	PointsPerWinGroups     = 3
	PointsPerWinSwiss      = 1
	PointsPerSwissBye      = 1
)

const (
	InitializeTournamentFunction = "initializeTournament"
	UpdateProgressFunction       = "updateProgress"
	GetNextMatchupFunction       = "getNextMatchup"

	// invariant violation reason constants.
	ReasonWinnerNotInBattle  = "winner_not_in_battle"
	ReasonWinnerNotRemaining = "winner_not_remaining"
	ReasonLoserNotRemaining  = "loser_not_remaining"
	ReasonUnexpectedPairing  = "unexpected_pairing"
	ReasonUnknownTrack       = "unknown_track"
	ReasonBracketExhausted   = "bracket_exhausted"
	ReasonDuplicateBattle    = "duplicate_battle"
)

const (
	BattleTypeElimination = "elimination"
	BattleTypeRoundRobin  = "roundrobin"
	BattleTypeSwiss       = "swiss"
	BattleTypeGroupStage  = "group_stage"
	BattleTypePlayoff     = "playoff"
	BattleTypeDeathmatch  = "deathmatch"
)

const (
	PlayoffGroupLabel = "Playoffs"
	GroupNamePrefix   = "Group "
)
