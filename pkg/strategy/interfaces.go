// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package strategy provides the contract every tournament format implements.
// A strategy holds no per-tournament state: everything it needs lives in the
// tournament's Progress and StrategyData, so any tournament can be handed to
// the strategy of its mode at any time, including after a reload.
package strategy

import (
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

/*
TournamentStrategy is a tournament format. The orchestrator looks up the strategy for a tournament's
mode and calls it for every state transition:

InitializeTournament computes the starting Progress when a tournament is created.
GetNextMatchup tells the caller which two tracks battle next, and UpdateProgress folds a completed
battle into the tournament. After each update the orchestrator asks IsCompleted and, when true,
replaces the tournament with CompleteTournament's result.

A battle that does not fit the tournament state never panics: the strategy logs it, counts it, and
leaves the tournament unchanged.
*/
type TournamentStrategy interface {
	// Name is the human readable name of the format.
	Name() string

	// Description is a one-sentence summary shown when picking a mode.
	Description() string

	// Mode is the tournament mode the strategy serves.
	Mode() models.Mode

	// Config describes the format's capabilities.
	Config() Config

	// InitializeTournament returns the starting progress for the given tracks. It does not mutate the tracks.
	InitializeTournament(scope *envelope.Scope, tracks []models.Track, params models.ModeParameters) models.Progress

	// UpdateProgress folds a completed battle into the tournament and returns the new progress.
	// The tournament's StrategyData is updated in place.
	UpdateProgress(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle) models.Progress

	// GetNextMatchup returns the next two tracks to battle, or nil when no battle can be scheduled.
	GetNextMatchup(scope *envelope.Scope, tournament *models.Tournament) *models.Matchup

	// IsCompleted reports whether the tournament reached its end condition.
	IsCompleted(scope *envelope.Scope, tournament *models.Tournament) bool

	// CompleteTournament returns a completed copy of the tournament with its champion set.
	CompleteTournament(scope *envelope.Scope, tournament *models.Tournament) *models.Tournament

	// ValidateTracks reports whether the format can run with these tracks.
	ValidateTracks(tracks []models.Track) bool

	// CanStartBattle reports whether another battle may be started now.
	CanStartBattle(scope *envelope.Scope, tournament *models.Tournament) bool

	// GetStrategyData returns the mode's bookkeeping, creating it on first access.
	GetStrategyData(scope *envelope.Scope, tournament *models.Tournament) interface{}

	// UpdateStrategyData stores data on the tournament. It fails with models.ErrStrategyDataType
	// when data is not the mode's bookkeeping type.
	UpdateStrategyData(tournament *models.Tournament, data interface{}) error
}

// Config describes what a format supports.
type Config struct {
	RequireMinimumTracks int  `json:"requireMinimumTracks"`
	AllowSkipping        bool `json:"allowSkipping"`
	SupportsPausing      bool `json:"supportsPausing"`
	SupportsResuming     bool `json:"supportsResuming"`
}

// Info is what a mode picker shows for a format.
type Info struct {
	Mode        models.Mode `json:"mode"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Config      Config      `json:"config"`
}

// Shuffler randomizes order. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Resolver hands out the strategy for a mode.
type Resolver interface {
	// Get returns the strategy for mode, falling back to elimination for unknown modes.
	Get(scope *envelope.Scope, mode models.Mode) TournamentStrategy

	// AvailableModes lists the registered modes in registration order.
	AvailableModes() []models.Mode

	// ModeInfo describes the strategy that Get would return for mode.
	ModeInfo(scope *envelope.Scope, mode models.Mode) Info

	// IsRegistered reports whether mode has its own strategy.
	IsRegistered(mode models.Mode) bool
}

// InfoOf describes s.
func InfoOf(s TournamentStrategy) Info {
	return Info{
		Mode:        s.Mode(),
		Name:        s.Name(),
		Description: s.Description(),
		Config:      s.Config(),
	}
}
