// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"time"

	"github.com/AccelByte/extend-battle-tournament/pkg/utils"
)

type Vote struct {
	ID        string    `bson:"id"       json:"id"`
	TrackID   string    `bson:"track_id" json:"trackId"`
	UserID    string    `bson:"user_id"  json:"userId,omitempty"`
	Timestamp time.Time `bson:"ts"       json:"timestamp"`
}

// Battle is one head-to-head between two tracks. An empty Winner means undecided.
type Battle struct {
	ID          string     `bson:"id"           json:"id"`
	TrackA      Track      `bson:"track_a"      json:"trackA"`
	TrackB      Track      `bson:"track_b"      json:"trackB"`
	Votes       []Vote     `bson:"votes"        json:"votes"`
	Winner      string     `bson:"winner"       json:"winner,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"   json:"createdAt"`
	CompletedAt *time.Time `bson:"completed_at" json:"completedAt,omitempty"`
}

func (b Battle) HasWinner() bool {
	return b.Winner != ""
}

// Result resolves the winner and loser ids. ok is false when the winner is not one of the two tracks.
func (b Battle) Result() (winnerID, loserID string, ok bool) {
	switch b.Winner {
	case "":
		return "", "", false
	case b.TrackA.ID:
		return b.TrackA.ID, b.TrackB.ID, true
	case b.TrackB.ID:
		return b.TrackB.ID, b.TrackA.ID, true
	default:
		return b.Winner, "", false
	}
}

func (b Battle) Involves(trackID string) bool {
	return b.TrackA.ID == trackID || b.TrackB.ID == trackID
}

// SamePair compares the unordered track pair.
func (b Battle) SamePair(trackAID, trackBID string) bool {
	return utils.HasSameElement([]string{b.TrackA.ID, b.TrackB.ID}, []string{trackAID, trackBID})
}

// Matchup is the strategy's instruction for the next battle.
type Matchup struct {
	TrackA   Track                  `json:"trackA"`
	TrackB   Track                  `json:"trackB"`
	Round    int                    `json:"round"`
	Group    string                 `json:"group,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func (m Matchup) SamePair(trackAID, trackBID string) bool {
	return utils.HasSameElement([]string{m.TrackA.ID, m.TrackB.ID}, []string{trackAID, trackBID})
}

// BattleType reads the battle type the strategy put in Metadata, or "" when absent.
func (m Matchup) BattleType() string {
	battleType, _ := utils.GetMapValueAs[string](m.Metadata, MetadataBattleType)
	return battleType
}

const (
	MetadataBattleType      = "battleType"
	MetadataMatchupIndex    = "matchupIndex"
	MetadataTotalMatchups   = "totalMatchups"
	MetadataRemainingTracks = "remainingTracks"
	MetadataFixtureIndex    = "fixtureIndex"
	MetadataTotalFixtures   = "totalFixtures"
	MetadataPairingIndex    = "pairingIndex"
	MetadataTotalPairings   = "totalPairings"
	MetadataGroupIndex      = "groupIndex"
	MetadataScoreA          = "scoreA"
	MetadataScoreB          = "scoreB"
	MetadataTargetScore     = "targetScore"

	MetadataBattlesRemaining = "battlesRemaining"
)
