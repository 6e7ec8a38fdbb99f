package main

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
)

type Game struct {
	settings        GameSettings
	state           GameState
	history         MoveHistory
	players         []IPlayer
	rng             *rand.Rand
	turnStart       time.Time
	lastBotMove     time.Time
	searchPublisher func(SearchReport)
}

func NewGame(settings GameSettings) (Game, error) {
	g := Game{}
	if err := g.Reset(settings); err != nil {
		return Game{}, err
	}
	return g, nil
}

// Reset validates the settings and deals a fresh match: new random board,
// new goals, zeroed penalties and history.
func (g *Game) Reset(settings GameSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if g.rng == nil {
		g.rng = newGameRNG()
	}
	players, err := CreatePlayers(settings, g.rng)
	if err != nil {
		return err
	}
	g.settings = settings
	g.players = players
	g.state.Reset(settings, g.rng)
	g.history.Clear()
	g.history.SetLimit(GetConfig().HistoryLimit)
	g.wireSearchReports()
	g.turnStart = time.Now()
	g.lastBotMove = time.Time{}
	g.logMatchup()
	return nil
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) Players() []IPlayer {
	return append([]IPlayer(nil), g.players...)
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// Scores reports each player's current standing: goal score on the live
// board minus the penalties charged so far.
func (g *Game) Scores() []int {
	scores := make([]int, len(g.players))
	for i, player := range g.players {
		scores[i] = player.Goal().Score(g.state.Board) - g.state.Penalties[i]
	}
	return scores
}

// Tick advances the game by at most one move. Humans move when a request
// is queued; bots move once signalled, pacing themselves by the configured
// delay. A bot that declines to move burns its turn with a pass.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.players[g.state.Current]
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if !ok || !human.HasPendingMove() {
			return false
		}
		move, ok := human.GenerateMove(g.state.Board)
		if !ok {
			g.state.LastMessage = "no block at that position"
			return false
		}
		return g.applyMove(player, move)
	}
	delay := time.Duration(GetConfig().BotMoveDelayMs) * time.Millisecond
	if delay > 0 && time.Since(g.lastBotMove) < delay {
		return false
	}
	if bot, ok := player.(signallable); ok {
		bot.Signal()
	}
	move, ok := player.GenerateMove(g.state.Board)
	g.lastBotMove = time.Now()
	if !ok {
		g.passTurn(player)
		return true
	}
	return g.applyMove(player, move)
}

func (g *Game) applyMove(player IPlayer, move Move) bool {
	if move.Target == nil {
		g.state.LastMessage = "no block at that position"
		return false
	}
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	if !applyAction(move.Target, move.Action, player.Goal().Colour()) {
		g.state.LastMessage = "illegal move: " + move.Action.Kind.String()
		return false
	}
	g.state.LastMessage = ""
	g.state.Penalties[player.ID()] += move.Action.Penalty
	x, y := move.Target.Position()
	g.history.Push(HistoryEntry{
		PlayerID:  player.ID(),
		Action:    move.Action.Kind,
		X:         x,
		Y:         y,
		Level:     move.Target.Level(),
		Penalty:   move.Action.Penalty,
		Score:     player.Goal().Score(g.state.Board),
		ElapsedMs: elapsedMs,
		IsAi:      !player.IsHuman(),
	})
	g.logMovePlayed(player, move.Action.Kind, move.Target, elapsedMs)
	g.advanceTurn()
	return true
}

func (g *Game) passTurn(player IPlayer) {
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	g.history.Push(HistoryEntry{
		PlayerID:  player.ID(),
		Action:    ActionPass,
		X:         -1,
		Y:         -1,
		Level:     -1,
		Score:     player.Goal().Score(g.state.Board),
		ElapsedMs: elapsedMs,
		IsAi:      !player.IsHuman(),
	})
	g.logMovePlayed(player, ActionPass, nil, elapsedMs)
	g.advanceTurn()
}

func (g *Game) advanceTurn() {
	g.state.MovesPlayed++
	g.turnStart = time.Now()
	if g.state.MovesPlayed >= g.settings.TurnsPerPlayer*len(g.players) {
		g.finish()
		return
	}
	g.state.Current = (g.state.Current + 1) % len(g.players)
}

// finish closes the match. The highest net score wins; on a tie the
// earliest seat takes it.
func (g *Game) finish() {
	g.state.Status = StatusFinished
	scores := g.Scores()
	winner := 0
	for i, score := range scores {
		if score > scores[winner] {
			winner = i
		}
	}
	g.state.Winner = g.players[winner].ID()
	g.logWin(g.players[winner], scores[winner])
}

func (g *Game) SubmitHumanMove(request MoveRequest) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.players[g.state.Current]
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(request)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	if len(g.players) == 0 {
		return false
	}
	return g.players[g.state.Current].IsHuman()
}

// PreviewResult is the outcome of a what-if move on a scratch copy.
type PreviewResult struct {
	Grid        LinearGrid
	ScoreDeltas []int
	Penalty     int
}

// Preview applies a prospective move by the current player to a scratch
// copy and reports how every player's score would shift. The live board
// is never touched.
func (g *Game) Preview(request MoveRequest) (PreviewResult, bool) {
	if g.state.Board == nil || len(g.players) == 0 {
		return PreviewResult{}, false
	}
	player := g.players[g.state.Current]
	scratch := g.state.Board.Clone()
	target := scratch.Locate(request.X, request.Y, request.Level)
	if target == nil {
		return PreviewResult{}, false
	}
	action := ActionFor(request.Kind)
	if !applyAction(target, action, player.Goal().Colour()) {
		return PreviewResult{}, false
	}
	deltas := make([]int, len(g.players))
	for i, pl := range g.players {
		deltas[i] = pl.Goal().Score(scratch) - pl.Goal().Score(g.state.Board)
	}
	deltas[player.ID()] -= action.Penalty
	return PreviewResult{Grid: Flatten(scratch), ScoreDeltas: deltas, Penalty: action.Penalty}, true
}

func (g *Game) SetSearchPublisher(publish func(SearchReport)) {
	g.searchPublisher = publish
	g.wireSearchReports()
}

func (g *Game) wireSearchReports() {
	for _, player := range g.players {
		if smart, ok := player.(*SmartPlayer); ok {
			smart.report = g.searchPublisher
		}
	}
}

func (g *Game) logMatchup() {
	log.Info().
		Int("players", len(g.players)).
		Int("max_depth", g.settings.MaxDepth).
		Int("turns_per_player", g.settings.TurnsPerPlayer).
		Int("board_size", g.state.Board.Size()).
		Msg("new game dealt")
}

func (g *Game) logMovePlayed(player IPlayer, action ActionKind, target *Block, elapsedMs float64) {
	event := log.Debug().
		Int("player", player.ID()).
		Str("action", action.String()).
		Float64("elapsed_ms", elapsedMs)
	if target != nil {
		x, y := target.Position()
		event = event.Int("x", x).Int("y", y).Int("level", target.Level())
	}
	event.Msg("move played")
}

func (g *Game) logWin(player IPlayer, score int) {
	log.Info().
		Int("player", player.ID()).
		Int("score", score).
		Str("goal", player.Goal().Description()).
		Msg("game finished")
}
