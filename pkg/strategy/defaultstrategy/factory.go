// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"slices"

	"github.com/AccelByte/extend-battle-tournament/pkg/config"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
)

// Factory maps a mode to its strategy. Unknown modes resolve to elimination.
type Factory struct {
	strategies map[models.Mode]strategy.TournamentStrategy
	order      []models.Mode
	fallback   models.Mode
}

// NewFactory returns a Factory of the strategy.Resolver interface with every built-in mode registered.
func NewFactory(cfg *config.Config, opts ...Option) *Factory {
	if cfg == nil {
		cfg = config.Default()
	}
	b := base{options: newOptions(opts), cfg: cfg}

	f := &Factory{
		strategies: map[models.Mode]strategy.TournamentStrategy{},
		fallback:   models.ModeElimination,
	}
	f.register(newElimination(b))
	f.register(newDeathmatch(b))
	f.register(newGroups(b))
	f.register(newRoundRobin(b))
	f.register(newSwiss(b))

	return f
}

func (f *Factory) register(s strategy.TournamentStrategy) {
	if _, exists := f.strategies[s.Mode()]; !exists {
		f.order = append(f.order, s.Mode())
	}
	f.strategies[s.Mode()] = s
}

func (f *Factory) Get(scope *envelope.Scope, mode models.Mode) strategy.TournamentStrategy {
	if s, ok := f.strategies[mode]; ok {
		return s
	}
	scope.Log.WithField("mode", string(mode)).WithField("fallback", string(f.fallback)).
		Warn("unknown tournament mode, falling back")
	return f.strategies[f.fallback]
}

func (f *Factory) AvailableModes() []models.Mode {
	return slices.Clone(f.order)
}

func (f *Factory) ModeInfo(scope *envelope.Scope, mode models.Mode) strategy.Info {
	return strategy.InfoOf(f.Get(scope, mode))
}

func (f *Factory) IsRegistered(mode models.Mode) bool {
	_, ok := f.strategies[mode]
	return ok
}

// New returns the strategy for mode built with the default config.
func New(scope *envelope.Scope, mode models.Mode, opts ...Option) strategy.TournamentStrategy {
	return NewFactory(config.Default(), opts...).Get(scope, mode)
}
