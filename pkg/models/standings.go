// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"slices"

	"github.com/elliotchance/pie/v2"
)

// Standing is a track's record in a points-based format. Seed is the track's
// original position and breaks any remaining tie.
type Standing struct {
	TrackID   string   `bson:"track_id"  json:"trackId"`
	Seed      int      `bson:"seed"      json:"seed"`
	Played    int      `bson:"played"    json:"played"`
	Won       int      `bson:"won"       json:"won"`
	Lost      int      `bson:"lost"      json:"lost"`
	Points    int      `bson:"points"    json:"points"`
	Opponents []string `bson:"opponents" json:"opponents,omitempty"`
}

func (s Standing) HasPlayed(trackID string) bool {
	return slices.Contains(s.Opponents, trackID)
}

// NewStandings creates zeroed standings seeded by position.
func NewStandings(trackIDs []string) []Standing {
	standings := make([]Standing, 0, len(trackIDs))
	for i, id := range trackIDs {
		standings = append(standings, Standing{TrackID: id, Seed: i})
	}
	return standings
}

// StandingIndex returns the position of trackID in standings or -1.
func StandingIndex(standings []Standing, trackID string) int {
	return slices.IndexFunc(standings, func(s Standing) bool { return s.TrackID == trackID })
}

// RankStandings returns a copy ordered by points desc, won desc, lost asc, seed asc.
func RankStandings(standings []Standing) []Standing {
	return pie.SortStableUsing(slices.Clone(standings), func(a, b Standing) bool {
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Won != b.Won {
			return a.Won > b.Won
		}
		if a.Lost != b.Lost {
			return a.Lost < b.Lost
		}
		return a.Seed < b.Seed
	})
}
