// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

type Artist struct {
	ID   string `bson:"id"   json:"id"`
	Name string `bson:"name" json:"name"`
}

// Track is an opaque competitor. Only ID is used for identity.
type Track struct {
	ID         string   `bson:"id"                    json:"id"`
	Name       string   `bson:"name"                  json:"name"`
	Artists    []Artist `bson:"artists"               json:"artists,omitempty"`
	Album      string   `bson:"album,omitempty"       json:"album,omitempty"`
	DurationMs int      `bson:"duration_ms,omitempty" json:"durationMs,omitempty"`
	PreviewURL string   `bson:"preview_url,omitempty" json:"previewUrl,omitempty"`
}

func (t Track) HasPreview() bool {
	return t.PreviewURL != ""
}

// DisplayName returns "Name - Artist, Artist" or only the name when there are no artists.
func (t Track) DisplayName() string {
	if len(t.Artists) == 0 {
		return t.Name
	}
	names := pie.Map(t.Artists, func(a Artist) string { return a.Name })
	return t.Name + " - " + strings.Join(names, ", ")
}

// TrackIDs returns the ids of tracks in order.
func TrackIDs(tracks []Track) []string {
	return pie.Map(tracks, func(t Track) string { return t.ID })
}

// FindTrack returns the track with the given id.
func FindTrack(tracks []Track, id string) (Track, bool) {
	for _, t := range tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}
