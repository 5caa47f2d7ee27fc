// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package orchestrator

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/tracks"
)

// Validation lists what would stop a request from creating a tournament (Errors) and
// what would not (Warnings).
type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v Validation) Valid() bool {
	return len(v.Errors) == 0
}

// ValidateRequest checks a create request without creating anything.
func (o *Orchestrator) ValidateRequest(rootScope *envelope.Scope, req CreateRequest) Validation {
	scope := rootScope.NewChildScope("orchestrator.ValidateRequest")
	defer scope.Finish()

	result := Validation{Errors: []string{}, Warnings: []string{}}

	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.PlaylistName) == "" {
		result.Errors = append(result.Errors, "Tournament name is required")
	}
	if strings.TrimSpace(req.PlaylistID) == "" {
		result.Errors = append(result.Errors, "Playlist ID is required")
	}
	if err := tracks.ValidateUnique(req.Tracks); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	if err := req.ModeConfig.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	mode := req.ModeConfig.Mode
	if mode == "" {
		mode = models.Mode(o.cfg.DefaultMode)
	}
	s := o.resolver.Get(scope, mode)
	if !s.ValidateTracks(req.Tracks) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s requires at least %d tracks", s.Name(), s.Config().RequireMinimumTracks))
	}

	if missing := len(tracks.WithoutPreview(req.Tracks)); missing > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d tracks don't have preview available", missing))
	}

	return result
}
