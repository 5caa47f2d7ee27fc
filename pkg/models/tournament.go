// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"fmt"
	"slices"
	"time"

	validator "github.com/AccelByte/justice-input-validation-go"
	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"
)

type Mode string

const (
	ModeElimination Mode = "elimination"
	ModeDeathmatch  Mode = "deathmatch"
	ModeGroups      Mode = "groups"
	ModeRoundRobin  Mode = "roundrobin"
	ModeSwiss       Mode = "swiss"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// ModeParameters are per-tournament overrides. Zero values fall back to the engine config.
type ModeParameters struct {
	GroupSize          int `bson:"group_size"           json:"groupSize,omitempty"          optional:"true" valid:"range(0|64)"`
	QualifiersPerGroup int `bson:"qualifiers_per_group" json:"qualifiersPerGroup,omitempty" optional:"true" valid:"range(0|63)"`
	TargetScore        int `bson:"target_score"         json:"targetScore,omitempty"        optional:"true" valid:"range(0|100000)"`
	MaxBattles         int `bson:"max_battles"          json:"maxBattles,omitempty"         optional:"true" valid:"range(0|1000000)"`
}

type ModeConfig struct {
	Mode       Mode           `bson:"mode"       json:"mode"`
	Parameters ModeParameters `bson:"parameters" json:"parameters"`
}

func (c ModeConfig) Validate() error {
	if _, err := validator.ValidateStruct(&c.Parameters); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidModeConfig, err.Error())
	}

	p := c.Parameters
	if p.GroupSize < 0 || p.QualifiersPerGroup < 0 || p.TargetScore < 0 || p.MaxBattles < 0 {
		return fmt.Errorf("%w: parameters cannot be negative", ErrInvalidModeConfig)
	}
	if p.GroupSize > 0 && p.GroupSize < 3 {
		return fmt.Errorf("%w: group size must be at least 3", ErrInvalidModeConfig)
	}
	if p.GroupSize > 0 && p.QualifiersPerGroup >= p.GroupSize {
		return fmt.Errorf("%w: qualifiers per group must be lower than group size", ErrInvalidModeConfig)
	}

	return nil
}

// Progress is the strategy-agnostic summary every mode maintains.
type Progress struct {
	TotalTracks        int     `bson:"total_tracks"        json:"totalTracks"`
	RemainingTracks    []Track `bson:"remaining_tracks"    json:"remainingTracks"`
	EliminatedTracks   []Track `bson:"eliminated_tracks"   json:"eliminatedTracks"`
	CurrentRound       int     `bson:"current_round"       json:"currentRound"`
	TotalRounds        int     `bson:"total_rounds"        json:"totalRounds"`
	BattlesCompleted   int     `bson:"battles_completed"   json:"battlesCompleted"`
	BattlesRemaining   int     `bson:"battles_remaining"   json:"battlesRemaining"`
	ProgressPercentage float64 `bson:"progress_percentage" json:"progressPercentage"`
}

// Clone copies the track slices so the result can be changed freely.
func (p Progress) Clone() Progress {
	c := p
	c.RemainingTracks = slices.Clone(p.RemainingTracks)
	c.EliminatedTracks = slices.Clone(p.EliminatedTracks)
	return c
}

type Tournament struct {
	ID           string       `bson:"id"            json:"id"`
	Name         string       `bson:"name"          json:"name"`
	PlaylistID   string       `bson:"playlist_id"   json:"playlistId"`
	Status       Status       `bson:"status"        json:"status"`
	Mode         Mode         `bson:"mode"          json:"mode,omitempty"`
	ModeConfig   ModeConfig   `bson:"mode_config"   json:"modeConfig"`
	Tracks       []Track      `bson:"tracks"        json:"tracks"`
	Battles      []Battle     `bson:"battles"       json:"battles"`
	Champion     *Track       `bson:"champion"      json:"champion,omitempty"`
	CreatedAt    time.Time    `bson:"created_at"    json:"createdAt"`
	CompletedAt  *time.Time   `bson:"completed_at"  json:"completedAt,omitempty"`
	LastBattleAt *time.Time   `bson:"last_battle"   json:"lastBattleAt,omitempty"`
	Progress     Progress     `bson:"progress"      json:"progress"`
	StrategyData StrategyData `bson:"strategy_data" json:"strategyData"`
}

func (t *Tournament) TrackByID(id string) (Track, bool) {
	return FindTrack(t.Tracks, id)
}

func (t *Tournament) HasBattle(battleID string) bool {
	if battleID == "" {
		return false
	}
	return slices.ContainsFunc(t.Battles, func(b Battle) bool { return b.ID == battleID })
}

func (t *Tournament) IsActive() bool {
	return t.Status == StatusActive
}

// EffectiveMode treats legacy tournaments without a mode as elimination.
func (t *Tournament) EffectiveMode() Mode {
	if t.Mode == "" {
		return ModeElimination
	}
	return t.Mode
}

// Copy returns a deep copy, strategy data included.
func (t Tournament) Copy() Tournament {
	copied, err := copystructure.Copy(t)
	if err != nil {
		logrus.Warn("failed copy tournament:", err)
	}
	copyTournament, _ := copied.(Tournament)
	return copyTournament
}
