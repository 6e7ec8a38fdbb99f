package main

import (
	"errors"
	"fmt"
)

var (
	errBadMaxDepth     = errors.New("max depth must be at least 1")
	errBadTurnCount    = errors.New("turns per player must be at least 1")
	errNegativePlayers = errors.New("player counts must be non-negative")
	errNoPlayers       = errors.New("at least one player is required")
	errTooManyPlayers  = errors.New("player count exceeds the colour palette")
	errBadDifficulty   = errors.New("smart player difficulty must be non-negative")
)

type GameSettings struct {
	MaxDepth                int   `json:"max_depth"`
	NumHumanPlayers         int   `json:"num_human_players"`
	NumRandomPlayers        int   `json:"num_random_players"`
	SmartPlayerDifficulties []int `json:"smart_player_difficulties"`
	TurnsPerPlayer          int   `json:"turns_per_player"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		MaxDepth:                4,
		NumHumanPlayers:         1,
		NumRandomPlayers:        0,
		SmartPlayerDifficulties: []int{25},
		TurnsPerPlayer:          15,
	}
}

func (s GameSettings) PlayerCount() int {
	return s.NumHumanPlayers + s.NumRandomPlayers + len(s.SmartPlayerDifficulties)
}

// Validate rejects settings no game can run with. The palette bounds the
// player count because every player needs their own goal colour.
func (s GameSettings) Validate() error {
	if s.MaxDepth < 1 {
		return errBadMaxDepth
	}
	if s.TurnsPerPlayer < 1 {
		return errBadTurnCount
	}
	if s.NumHumanPlayers < 0 || s.NumRandomPlayers < 0 {
		return errNegativePlayers
	}
	if s.PlayerCount() < 1 {
		return errNoPlayers
	}
	if s.PlayerCount() > len(Palette()) {
		return fmt.Errorf("%w: %d players, %d colours", errTooManyPlayers, s.PlayerCount(), len(Palette()))
	}
	for _, difficulty := range s.SmartPlayerDifficulties {
		if difficulty < 0 {
			return errBadDifficulty
		}
	}
	return nil
}
