// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	ErrInsufficientTracks     = errors.New("not enough tracks for the selected mode")
	ErrDuplicateTrackID       = errors.New("track ids must be unique")
	ErrInvalidModeConfig      = errors.New("invalid mode configuration")
	ErrNoActiveTournament     = errors.New("no active tournament")
	ErrTournamentNotActive    = errors.New("tournament is not active")
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentCompleted    = errors.New("tournament is already completed")
	ErrInvalidTransition      = errors.New("invalid tournament status transition")
	ErrBattleMismatch         = errors.New("battle does not match the expected tournament matchup")
	ErrDuplicateBattle        = errors.New("battle was already applied to the tournament")
	ErrNoMatchupAvailable     = errors.New("no matchup available")
	ErrNoActiveBattle         = errors.New("no active battle")
	ErrBattleAlreadyCompleted = errors.New("battle already completed")
	ErrInvalidVote            = errors.New("invalid vote: track not in current battle")
	ErrStrategyDataType       = errors.New("strategy data does not match the tournament mode")
)

var validationErrorCodeMap = map[error]int{
	ErrInsufficientTracks:     520101,
	ErrDuplicateTrackID:       520102,
	ErrInvalidModeConfig:      520103,
	ErrNoActiveTournament:     520104,
	ErrTournamentNotActive:    520105,
	ErrTournamentNotFound:     520106,
	ErrTournamentCompleted:    520107,
	ErrInvalidTransition:      520108,
	ErrBattleMismatch:         520109,
	ErrDuplicateBattle:        520110,
	ErrNoMatchupAvailable:     520111,
	ErrNoActiveBattle:         520112,
	ErrBattleAlreadyCompleted: 520113,
	ErrInvalidVote:            520114,
	ErrStrategyDataType:       520115,
}

// ValidationErrorCode returns a code for the error, unwrapping it if needed.
// It returns log.EIDValidationErrorV1 (20002) if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	for sentinel, code := range validationErrorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return 20002
}
