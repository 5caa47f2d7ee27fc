// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package tracks

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

// Catalog is a read-only, searchable set of tracks.
type Catalog struct {
	tracks []models.Track
	names  []string
	byID   map[string]int
}

func NewCatalog(tracks []models.Track) *Catalog {
	c := &Catalog{
		tracks: slices.Clone(tracks),
		names:  make([]string, 0, len(tracks)),
		byID:   make(map[string]int, len(tracks)),
	}
	for i, t := range c.tracks {
		c.names = append(c.names, t.DisplayName())
		if _, exists := c.byID[t.ID]; !exists {
			c.byID[t.ID] = i
		}
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.tracks)
}

func (c *Catalog) Tracks() []models.Track {
	return slices.Clone(c.tracks)
}

func (c *Catalog) Get(id string) (models.Track, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Track{}, false
	}
	return c.tracks[i], true
}

// Find returns the tracks whose "name - artists" fuzzily contains query, best match
// first. An exact (case-insensitive) name match always ranks first.
func (c *Catalog) Find(query string) []models.Track {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Track{}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, c.names)
	sort.Stable(ranks)

	exact := -1
	for i, r := range ranks {
		if strings.EqualFold(c.tracks[r.OriginalIndex].Name, query) {
			exact = i
			break
		}
	}

	found := make([]models.Track, 0, len(ranks))
	if exact >= 0 {
		found = append(found, c.tracks[ranks[exact].OriginalIndex])
	}
	for i, r := range ranks {
		if i != exact {
			found = append(found, c.tracks[r.OriginalIndex])
		}
	}
	return found
}
