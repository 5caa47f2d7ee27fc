// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package battle runs head-to-head voting between two tracks. When a tournament is
// active the pair comes from it and every decided battle is submitted back to it;
// otherwise any two available tracks battle.
package battle

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-battle-tournament/pkg/constants"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
	"github.com/AccelByte/extend-battle-tournament/pkg/tracks"
	"github.com/AccelByte/extend-battle-tournament/pkg/utils"
)

const anonymousUser = "anonymous"

// TournamentLink connects a session to a tournament. *mediator.Mediator satisfies it.
type TournamentLink interface {
	HasActiveTournament() bool
	NextMatchup(scope *envelope.Scope) *models.Matchup
	SubmitBattle(scope *envelope.Scope, battle models.Battle) error
}

type Option func(*Session)

func WithTournamentLink(link TournamentLink) Option {
	return func(s *Session) {
		s.link = link
	}
}

func WithShuffler(shuffler strategy.Shuffler) Option {
	return func(s *Session) {
		s.shuffler = shuffler
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithUserID sets the user recorded on votes. Defaults to "anonymous".
func WithUserID(userID string) Option {
	return func(s *Session) {
		s.userID = userID
	}
}

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	link     TournamentLink
	shuffler strategy.Shuffler
	now      func() time.Time
	userID   string

	tracks  []models.Track
	catalog *tracks.Catalog
	current *models.Battle
	history []models.Battle
	stats   map[string]*TrackStats
	order   []string
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		shuffler: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		userID:   anonymousUser,
		catalog:  tracks.NewCatalog(nil),
		stats:    map[string]*TrackStats{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetTracks replaces the available tracks. Stats of tracks seen before are kept.
func (s *Session) SetTracks(available []models.Track) error {
	if err := tracks.ValidateUnique(available); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracks = slices.Clone(available)
	s.catalog = tracks.NewCatalog(s.tracks)
	for _, track := range s.tracks {
		s.statsLocked(track)
	}
	return nil
}

// AddTrack makes a track available. It reports false when a track with the same id is already there.
func (s *Session) AddTrack(track models.Track) (bool, error) {
	if err := tracks.ValidateUnique([]models.Track{track}); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := models.FindTrack(s.tracks, track.ID); exists {
		return false, nil
	}
	s.tracks = append(s.tracks, track)
	s.catalog = tracks.NewCatalog(s.tracks)
	s.statsLocked(track)
	return true, nil
}

// RemoveTrack drops a track and its stats.
func (s *Session) RemoveTrack(trackID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.tracks, func(t models.Track) bool { return t.ID == trackID })
	if index < 0 {
		return false
	}
	s.tracks = slices.Delete(s.tracks, index, index+1)
	s.catalog = tracks.NewCatalog(s.tracks)
	delete(s.stats, trackID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == trackID })
	return true
}

func (s *Session) Tracks() []models.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.tracks)
}

// Search finds available tracks by name or artist.
func (s *Session) Search(query string) []models.Track {
	s.mu.Lock()
	catalog := s.catalog
	s.mu.Unlock()

	return catalog.Find(query)
}

// CanStartBattle reports whether StartBattle would succeed. An undecided battle blocks a new one.
func (s *Session) CanStartBattle(scope *envelope.Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !s.current.HasWinner() {
		return false
	}
	if s.link != nil && s.link.HasActiveTournament() {
		return s.link.NextMatchup(scope) != nil
	}
	return len(s.tracks) >= constants.MinTracks
}

// StartBattle replaces the current battle with a new one. The pair comes from the active
// tournament when there is one, otherwise two available tracks are drawn at random.
func (s *Session) StartBattle(rootScope *envelope.Scope) (*models.Battle, error) {
	scope := rootScope.NewChildScope("battle.StartBattle")
	defer scope.Finish()

	s.mu.Lock()
	defer s.mu.Unlock()

	var trackA, trackB models.Track
	var battleType string
	tournamentBattle := s.link != nil && s.link.HasActiveTournament()
	if tournamentBattle {
		matchup := s.link.NextMatchup(scope)
		if matchup == nil {
			return nil, models.ErrNoMatchupAvailable
		}
		trackA, trackB = matchup.TrackA, matchup.TrackB
		battleType = matchup.BattleType()
	} else {
		if len(s.tracks) < constants.MinTracks {
			return nil, fmt.Errorf("%w: need at least %d tracks to start a battle", models.ErrInsufficientTracks, constants.MinTracks)
		}
		shuffled := slices.Clone(s.tracks)
		s.shuffler.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		trackA, trackB = shuffled[0], shuffled[1]
	}

	battle := &models.Battle{
		ID:        utils.GenerateULID(),
		TrackA:    trackA,
		TrackB:    trackB,
		Votes:     []models.Vote{},
		CreatedAt: s.now(),
	}
	s.current = battle
	scope.SetAttributes(envelope.BattleIDTag, battle.ID)

	scope.Log.WithFields(logrus.Fields{
		"battleID":   battle.ID,
		"trackA":     trackA.ID,
		"trackB":     trackB.ID,
		"tournament": tournamentBattle,
		"battleType": battleType,
	}).Debug("battle started")

	copied := *battle
	return &copied, nil
}

// Vote decides the current battle for trackID. The decided battle is recorded locally
// before it is submitted to the tournament, so a submission error does not lose the vote.
func (s *Session) Vote(rootScope *envelope.Scope, trackID string) (*models.Battle, error) {
	scope := rootScope.NewChildScope("battle.Vote")
	defer scope.Finish()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, models.ErrNoActiveBattle
	}
	if s.current.HasWinner() {
		return nil, models.ErrBattleAlreadyCompleted
	}
	if !s.current.Involves(trackID) {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidVote, trackID)
	}

	votedAt := s.now()
	s.current.Votes = append(s.current.Votes, models.Vote{
		ID:        utils.GenerateULID(),
		TrackID:   trackID,
		UserID:    s.userID,
		Timestamp: votedAt,
	})
	s.current.Winner = trackID
	s.current.CompletedAt = &votedAt

	winner, loser := s.current.TrackA, s.current.TrackB
	if trackID == s.current.TrackB.ID {
		winner, loser = loser, winner
	}
	s.statsLocked(winner).record(true, votedAt)
	s.statsLocked(loser).record(false, votedAt)

	decided := *s.current
	decided.Votes = slices.Clone(s.current.Votes)
	s.history = append(s.history, decided)

	scope.SetAttributes(envelope.BattleIDTag, decided.ID)
	log := scope.Log.WithFields(logrus.Fields{"battleID": decided.ID, "winner": winner.ID, "loser": loser.ID})

	if s.link != nil {
		if err := s.link.SubmitBattle(scope, decided); err != nil {
			log.WithError(err).Warn("tournament did not accept battle")
			return &decided, err
		}
	}
	log.Debug("battle decided")
	return &decided, nil
}

// Skip drops the current battle without recording it.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.ErrNoActiveBattle
	}
	s.current = nil
	return nil
}

// Current returns the battle being voted on, or the last decided one until the next
// battle starts. It is nil after Skip.
func (s *Session) Current() *models.Battle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	copied := *s.current
	copied.Votes = slices.Clone(s.current.Votes)
	return &copied
}

// History returns the decided battles, oldest first.
func (s *Session) History() []models.Battle {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.history)
}

// Reset forgets tracks, battles and stats.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracks = nil
	s.catalog = tracks.NewCatalog(nil)
	s.current = nil
	s.history = nil
	s.stats = map[string]*TrackStats{}
	s.order = nil
}

func (s *Session) statsLocked(track models.Track) *TrackStats {
	if stats, ok := s.stats[track.ID]; ok {
		return stats
	}
	stats := &TrackStats{TrackID: track.ID, Track: track}
	s.stats[track.ID] = stats
	s.order = append(s.order, track.ID)
	return stats
}
