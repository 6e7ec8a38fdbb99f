package main

import (
	"errors"
	"sync"
)

var errGameRunning = errors.New("settings are locked while a game is running")

// GameController serialises every touch of the game: the tick loop, the
// HTTP handlers and the websocket broadcasters all go through it.
type GameController struct {
	mu   sync.Mutex
	game Game
}

func NewGameController(settings GameSettings) (*GameController, error) {
	game, err := NewGame(settings)
	if err != nil {
		return nil, err
	}
	return &GameController{game: game}, nil
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

// ApplyHumanMove queues the request on the current human seat and advances
// the game one tick so the caller sees the outcome immediately.
func (gc *GameController) ApplyHumanMove(request MoveRequest) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not a human turn"
	}
	if !gc.game.SubmitHumanMove(request) {
		return false, "game not running"
	}
	if !gc.game.Tick() {
		return false, gc.game.state.LastMessage
	}
	return true, ""
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) Players() []IPlayer {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Players()
}

func (gc *GameController) Scores() []int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Scores()
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := history.All()
	return entries[len(entries)-1], true
}

func (gc *GameController) Preview(request MoveRequest) (PreviewResult, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Preview(request)
}

func (gc *GameController) SetSearchPublisher(publish func(SearchReport)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.SetSearchPublisher(publish)
}

func (gc *GameController) Reset(settings GameSettings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if err := gc.game.Reset(settings); err != nil {
		return err
	}
	gc.game.Start()
	return nil
}

// UpdateSettings re-deals with the new settings. Mid-game changes are
// rejected so a running match cannot be pulled out from under its players.
func (gc *GameController) UpdateSettings(update GameSettings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.state.Status == StatusRunning {
		return errGameRunning
	}
	return gc.game.Reset(update)
}
