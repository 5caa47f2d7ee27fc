// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package orchestrator owns the tournaments and drives their lifecycle.
// Exactly one tournament is active at a time; every battle result flows through
// OnBattleCompleted into the strategy of the active tournament's mode.
package orchestrator

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-battle-tournament/pkg/config"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/metrics"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/storage"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy/defaultstrategy"
	"github.com/AccelByte/extend-battle-tournament/pkg/tracks"
	"github.com/AccelByte/extend-battle-tournament/pkg/utils"
)

// CreateRequest describes a new tournament. An empty Name falls back to PlaylistName,
// an empty mode falls back to the configured default mode.
type CreateRequest struct {
	Name         string            `json:"name"`
	PlaylistID   string            `json:"playlistId"`
	PlaylistName string            `json:"playlistName,omitempty"`
	Tracks       []models.Track    `json:"tracks"`
	ModeConfig   models.ModeConfig `json:"modeConfig"`
}

type Option func(*Orchestrator)

// WithStore sets the snapshot store. Defaults to an in-memory store.
func WithStore(store storage.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

func WithMetrics(m metrics.TournamentMetrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithIDGenerator overrides the tournament id generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		o.newID = newID
	}
}

// Orchestrator is safe for concurrent use. Views return deep copies, so callers
// never hold a reference into the managed state.
type Orchestrator struct {
	mu       sync.Mutex
	cfg      *config.Config
	resolver strategy.Resolver
	store    storage.Store
	metrics  metrics.TournamentMetrics
	now      func() time.Time
	newID    func() string

	tournaments []*models.Tournament
	activeID    string
}

// New builds an orchestrator. A nil resolver uses the default strategy factory
// sharing the orchestrator's metrics and clock.
func New(cfg *config.Config, resolver strategy.Resolver, opts ...Option) *Orchestrator {
	if cfg == nil {
		cfg = config.Default()
	}
	o := &Orchestrator{
		cfg:      cfg,
		resolver: resolver,
		store:    storage.NewMemoryStore(),
		now:      time.Now,
		newID:    utils.GenerateUUID,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}
	if o.resolver == nil {
		o.resolver = defaultstrategy.NewFactory(cfg,
			defaultstrategy.WithMetrics(o.metrics),
			defaultstrategy.WithClock(o.now))
	}
	return o
}

// CreateTournament validates the request, builds the tournament with its strategy data
// already in place and makes it the active tournament.
func (o *Orchestrator) CreateTournament(rootScope *envelope.Scope, req CreateRequest) (*models.Tournament, error) {
	scope := rootScope.NewChildScope("orchestrator.CreateTournament")
	defer scope.Finish()

	mode := req.ModeConfig.Mode
	if mode == "" {
		mode = models.Mode(o.cfg.DefaultMode)
	}
	if err := req.ModeConfig.Validate(); err != nil {
		return nil, err
	}
	if err := tracks.ValidateUnique(req.Tracks); err != nil {
		return nil, err
	}

	s := o.resolver.Get(scope, mode)
	if !s.ValidateTracks(req.Tracks) {
		return nil, fmt.Errorf("%w: %s needs at least %d tracks, got %d",
			models.ErrInsufficientTracks, s.Name(), s.Config().RequireMinimumTracks, len(req.Tracks))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.PlaylistName
	}
	tournamentTracks := slices.Clone(req.Tracks)
	params := req.ModeConfig.Parameters

	tournament := &models.Tournament{
		ID:         o.newID(),
		Name:       name,
		PlaylistID: req.PlaylistID,
		Status:     models.StatusActive,
		Mode:       s.Mode(),
		ModeConfig: models.ModeConfig{Mode: s.Mode(), Parameters: params},
		Tracks:     tournamentTracks,
		Battles:    []models.Battle{},
		CreatedAt:  o.now(),
		Progress:   s.InitializeTournament(scope, tournamentTracks, params),
	}
	s.GetStrategyData(scope, tournament)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.tournaments = append(o.tournaments, tournament)
	o.activeID = tournament.ID
	o.refreshGauges()
	o.persistLocked(scope)

	scope.Log.WithFields(logrus.Fields{
		"tournamentID": tournament.ID,
		"mode":         tournament.Mode,
		"tracks":       len(tournament.Tracks),
	}).Info("tournament created")

	return copyOf(tournament), nil
}

// CreateTournamentFromSource fetches the playlist's tracks from source and creates the tournament.
func (o *Orchestrator) CreateTournamentFromSource(rootScope *envelope.Scope, source tracks.Source, req CreateRequest) (*models.Tournament, error) {
	scope := rootScope.NewChildScope("orchestrator.CreateTournamentFromSource")
	defer scope.Finish()

	fetched, err := source.Tracks(scope.Ctx, req.PlaylistID)
	if err != nil {
		return nil, fmt.Errorf("fetch playlist %s: %w", req.PlaylistID, err)
	}
	req.Tracks = fetched
	return o.CreateTournament(scope, req)
}

// ContinueTournament makes an existing, not completed tournament the active one.
// The tournament keeps its status; a paused tournament needs ResumeTournament.
func (o *Orchestrator) ContinueTournament(rootScope *envelope.Scope, tournamentID string) (*models.Tournament, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	tournament := o.findLocked(tournamentID)
	if tournament == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrTournamentNotFound, tournamentID)
	}

	scope := rootScope.WithTournament("orchestrator.ContinueTournament", tournament.ID, string(tournament.EffectiveMode()))
	defer scope.Finish()

	if tournament.Status == models.StatusCompleted {
		return nil, fmt.Errorf("%w: %s", models.ErrTournamentCompleted, tournamentID)
	}

	o.resolver.Get(scope, tournament.EffectiveMode()).GetStrategyData(scope, tournament)
	o.activeID = tournament.ID
	o.persistLocked(scope)

	scope.Log.Info("tournament continued")
	return copyOf(tournament), nil
}

// OnBattleCompleted applies a decided battle to the active tournament and completes
// the tournament when its strategy reports the end condition.
// A battle without a winner is ignored.
func (o *Orchestrator) OnBattleCompleted(rootScope *envelope.Scope, battle models.Battle) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	tournament := o.activeLocked()
	if tournament == nil {
		return models.ErrNoActiveTournament
	}

	scope := rootScope.WithTournament("orchestrator.OnBattleCompleted", tournament.ID, string(tournament.EffectiveMode()))
	defer scope.Finish()
	scope.SetAttributes(envelope.BattleIDTag, battle.ID)

	if !battle.HasWinner() {
		scope.Log.WithField("battleID", battle.ID).Debug("battle has no winner, ignored")
		return nil
	}

	switch tournament.Status {
	case models.StatusCompleted:
		return fmt.Errorf("%w: %s", models.ErrTournamentCompleted, tournament.ID)
	case models.StatusPaused:
		return fmt.Errorf("%w: %s is paused", models.ErrTournamentNotActive, tournament.ID)
	}
	if tournament.HasBattle(battle.ID) {
		return fmt.Errorf("%w: %s", models.ErrDuplicateBattle, battle.ID)
	}
	if _, _, ok := battle.Result(); !ok {
		return fmt.Errorf("%w: winner %s is not part of battle %s", models.ErrInvalidVote, battle.Winner, battle.ID)
	}

	s := o.resolver.Get(scope, tournament.EffectiveMode())

	tournament.Battles = append(tournament.Battles, battle)
	battleAt := o.now()
	tournament.LastBattleAt = &battleAt
	tournament.Progress = s.UpdateProgress(scope, tournament, battle)

	if s.IsCompleted(scope, tournament) {
		completed := s.CompleteTournament(scope, tournament)
		o.replaceLocked(completed)
		o.metrics.AddTournamentCompleted(string(completed.Mode))

		entry := scope.Log.WithField("battles", len(completed.Battles))
		if completed.Champion != nil {
			entry = entry.WithField("championID", completed.Champion.ID)
		}
		entry.Info("tournament completed")
	}

	o.refreshGauges()
	o.persistLocked(scope)
	return nil
}

// PauseTournament freezes an active tournament in place.
func (o *Orchestrator) PauseTournament(rootScope *envelope.Scope, tournamentID string) error {
	return o.transition(rootScope, "orchestrator.PauseTournament", tournamentID, models.StatusActive, models.StatusPaused)
}

// ResumeTournament reactivates a paused tournament from where its pairing cursors stopped.
func (o *Orchestrator) ResumeTournament(rootScope *envelope.Scope, tournamentID string) error {
	return o.transition(rootScope, "orchestrator.ResumeTournament", tournamentID, models.StatusPaused, models.StatusActive)
}

func (o *Orchestrator) transition(rootScope *envelope.Scope, name, tournamentID string, from, to models.Status) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	tournament := o.findLocked(tournamentID)
	if tournament == nil {
		return fmt.Errorf("%w: %s", models.ErrTournamentNotFound, tournamentID)
	}

	scope := rootScope.WithTournament(name, tournament.ID, string(tournament.EffectiveMode()))
	defer scope.Finish()

	if tournament.Status != from {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, tournament.Status, to)
	}
	tournament.Status = to

	o.refreshGauges()
	o.persistLocked(scope)

	scope.Log.WithField("status", to).Info("tournament status changed")
	return nil
}

// DeleteTournament removes a tournament. Deleting the active tournament leaves none active.
func (o *Orchestrator) DeleteTournament(rootScope *envelope.Scope, tournamentID string) error {
	scope := rootScope.NewChildScope("orchestrator.DeleteTournament")
	defer scope.Finish()

	o.mu.Lock()
	defer o.mu.Unlock()

	index := slices.IndexFunc(o.tournaments, func(t *models.Tournament) bool { return t.ID == tournamentID })
	if index < 0 {
		return fmt.Errorf("%w: %s", models.ErrTournamentNotFound, tournamentID)
	}
	o.tournaments = slices.Delete(o.tournaments, index, index+1)
	if o.activeID == tournamentID {
		o.activeID = ""
	}

	o.refreshGauges()
	o.persistLocked(scope)

	scope.Log.WithField("tournamentID", tournamentID).Info("tournament deleted")
	return nil
}

// GetNextMatchup delegates to the strategy of the tournament's mode. The managed tournament
// with the same id is used, so a copy obtained from a view is fine to pass. Do not cache
// the result across a completed battle.
func (o *Orchestrator) GetNextMatchup(rootScope *envelope.Scope, tournament *models.Tournament) *models.Matchup {
	if tournament == nil {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	target := o.findLocked(tournament.ID)
	if target == nil {
		target = tournament
	}

	scope := rootScope.WithTournament("orchestrator.GetNextMatchup", target.ID, string(target.EffectiveMode()))
	defer scope.Finish()

	return o.resolver.Get(scope, target.EffectiveMode()).GetNextMatchup(scope, target)
}

// GetAvailableModes describes every registered mode in registration order.
func (o *Orchestrator) GetAvailableModes(rootScope *envelope.Scope) []strategy.Info {
	scope := rootScope.NewChildScope("orchestrator.GetAvailableModes")
	defer scope.Finish()

	modes := o.resolver.AvailableModes()
	infos := make([]strategy.Info, 0, len(modes))
	for _, mode := range modes {
		infos = append(infos, o.resolver.ModeInfo(scope, mode))
	}
	return infos
}

// ModeInfo describes the strategy that would run a tournament of the given mode.
func (o *Orchestrator) ModeInfo(rootScope *envelope.Scope, mode models.Mode) strategy.Info {
	scope := rootScope.NewChildScope("orchestrator.ModeInfo")
	defer scope.Finish()

	return o.resolver.ModeInfo(scope, mode)
}

// Reset drops every tournament and clears the store.
func (o *Orchestrator) Reset(rootScope *envelope.Scope) error {
	scope := rootScope.NewChildScope("orchestrator.Reset")
	defer scope.Finish()

	o.mu.Lock()
	defer o.mu.Unlock()

	o.tournaments = nil
	o.activeID = ""
	o.refreshGauges()

	if err := o.store.Clear(scope.Ctx); err != nil {
		return err
	}
	scope.Log.Info("tournament data reset")
	return nil
}

func (o *Orchestrator) findLocked(tournamentID string) *models.Tournament {
	for _, t := range o.tournaments {
		if t.ID == tournamentID {
			return t
		}
	}
	return nil
}

func (o *Orchestrator) activeLocked() *models.Tournament {
	if o.activeID == "" {
		return nil
	}
	return o.findLocked(o.activeID)
}

func (o *Orchestrator) replaceLocked(tournament *models.Tournament) {
	for i, t := range o.tournaments {
		if t.ID == tournament.ID {
			o.tournaments[i] = tournament
			return
		}
	}
}

func (o *Orchestrator) refreshGauges() {
	counts := map[models.Status]int{
		models.StatusActive:    0,
		models.StatusPaused:    0,
		models.StatusCompleted: 0,
	}
	for _, t := range o.tournaments {
		counts[t.Status]++
	}
	for status, count := range counts {
		o.metrics.SetTournaments(string(status), count)
	}
}

func copyOf(tournament *models.Tournament) *models.Tournament {
	copied := tournament.Copy()
	return &copied
}
