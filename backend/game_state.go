package main

import "math/rand/v2"

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusFinished
)

type GameState struct {
	Board       *Block
	Penalties   []int
	Current     int
	MovesPlayed int
	Status      GameStatus
	Winner      int
	LastMessage string
}

func DefaultGameState(settings GameSettings, rng *rand.Rand) GameState {
	state := GameState{}
	state.Reset(settings, rng)
	return state
}

func (s *GameState) Reset(settings GameSettings, rng *rand.Rand) {
	s.Board = NewRandomBoard(settings.MaxDepth, rng)
	s.Penalties = make([]int, settings.PlayerCount())
	s.Current = 0
	s.MovesPlayed = 0
	s.Status = StatusNotStarted
	s.Winner = -1
	s.LastMessage = ""
}

func (s GameState) Clone() GameState {
	clone := s
	if s.Board != nil {
		clone.Board = s.Board.Clone()
	}
	clone.Penalties = append([]int(nil), s.Penalties...)
	return clone
}
