package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// arena drives the backend through bulk bot-only matches and tallies how
// each seat does, for eyeballing difficulty settings.
type arena struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	roundTimeout time.Duration
	logger       zerolog.Logger

	rounds         int
	maxDepth       int
	randomPlayers  int
	difficulties   []int
	turnsPerPlayer int
	searchWorkers  int
}

type statusResponse struct {
	Status      string         `json:"status"`
	Winner      int            `json:"winner"`
	MovesPlayed int            `json:"moves_played"`
	BoardSize   int            `json:"board_size"`
	Players     []playerStatus `json:"players"`
	Config      map[string]any `json:"config"`
}

type playerStatus struct {
	ID       int    `json:"id"`
	Kind     string `json:"kind"`
	GoalKind string `json:"goal_kind"`
	Score    int    `json:"score"`
	Penalty  int    `json:"penalty"`
}

type slotStats struct {
	Kind       string
	Wins       int
	ScoreSum   int
	PenaltySum int
}

type arenaTally struct {
	rounds int
	moves  int
	slots  []slotStats
}

func main() {
	logger, closeLog, err := buildLogger(getenv("ARENA_LOG_FILE", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	difficulties := parseDifficulties(getenv("ARENA_DIFFICULTIES", "10,50"))
	if len(difficulties) == 0 {
		difficulties = []int{10, 50}
	}
	a := &arena{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:        getenv("BACKEND_URL", "http://localhost:8080"),
		pollInterval:   time.Duration(getenvInt("ARENA_POLL_INTERVAL_MS", 250)) * time.Millisecond,
		roundTimeout:   time.Duration(getenvInt("ARENA_ROUND_TIMEOUT_SEC", 120)) * time.Second,
		logger:         logger,
		rounds:         getenvInt("ARENA_ROUNDS", 20),
		maxDepth:       getenvInt("ARENA_MAX_DEPTH", 4),
		randomPlayers:  getenvInt("ARENA_RANDOM_PLAYERS", 1),
		difficulties:   difficulties,
		turnsPerPlayer: getenvInt("ARENA_TURNS_PER_PLAYER", 15),
		searchWorkers:  getenvInt("ARENA_SEARCH_WORKERS", 0),
	}
	if a.rounds < 1 {
		a.rounds = 1
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	if err := a.run(sigCtx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Fatal().Err(err).Msg("arena run failed")
	}
}

func (a *arena) run(ctx context.Context) error {
	a.logger.Info().
		Str("backend", a.baseURL).
		Int("rounds", a.rounds).
		Int("max_depth", a.maxDepth).
		Int("random_players", a.randomPlayers).
		Ints("difficulties", a.difficulties).
		Int("turns_per_player", a.turnsPerPlayer).
		Msg("arena starting")

	if err := a.waitBackendReady(ctx); err != nil {
		return err
	}
	original, err := a.applySpeedConfig()
	if err != nil {
		return err
	}
	defer a.restoreConfig(original)

	tally := &arenaTally{}
	for round := 1; round <= a.rounds; round++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		status, err := a.playRound(ctx)
		if err != nil {
			return err
		}
		tally.record(status)
		a.logger.Info().
			Int("round", round).
			Int("winner", status.Winner).
			Int("moves", status.MovesPlayed).
			Msg("round finished")
	}
	_ = a.stopGame()
	a.logSummary(tally)
	return nil
}

func (a *arena) playRound(ctx context.Context) (statusResponse, error) {
	if err := a.startBotGame(); err != nil {
		return statusResponse{}, err
	}
	deadline := time.Now().Add(a.roundTimeout)
	for {
		if ctx.Err() != nil {
			return statusResponse{}, ctx.Err()
		}
		status, err := a.fetchStatus()
		if err != nil {
			return statusResponse{}, err
		}
		if status.Status == "finished" {
			return status, nil
		}
		if a.roundTimeout > 0 && time.Now().After(deadline) {
			_ = a.stopGame()
			return statusResponse{}, fmt.Errorf("round timeout after %s", a.roundTimeout)
		}
		if !sleepWithContext(ctx, a.pollInterval) {
			return statusResponse{}, ctx.Err()
		}
	}
}

func (a *arena) startBotGame() error {
	return a.postJSON("/api/start", map[string]any{
		"settings": map[string]any{
			"max_depth":                 a.maxDepth,
			"num_human_players":         0,
			"num_random_players":        a.randomPlayers,
			"smart_player_difficulties": a.difficulties,
			"turns_per_player":          a.turnsPerPlayer,
		},
	}, nil)
}

func (a *arena) stopGame() error {
	return a.postJSON("/api/stop", map[string]any{}, nil)
}

func (a *arena) fetchStatus() (statusResponse, error) {
	var status statusResponse
	if err := a.getJSON("/api/status", &status); err != nil {
		return statusResponse{}, err
	}
	return status, nil
}

// applySpeedConfig turns off bot pacing for the duration of the run and
// returns the config to restore afterwards.
func (a *arena) applySpeedConfig() (map[string]any, error) {
	status, err := a.fetchStatus()
	if err != nil {
		return nil, err
	}
	original := status.Config
	if original == nil {
		return nil, nil
	}
	override := make(map[string]any, len(original))
	for key, value := range original {
		override[key] = value
	}
	override["bot_move_delay_ms"] = 0
	if a.searchWorkers > 0 {
		override["search_workers"] = a.searchWorkers
	}
	if err := a.postJSON("/api/settings", map[string]any{"config": override}, nil); err != nil {
		return nil, err
	}
	return original, nil
}

func (a *arena) restoreConfig(original map[string]any) {
	if original == nil {
		return
	}
	if err := a.postJSON("/api/settings", map[string]any{"config": original}, nil); err != nil {
		a.logger.Warn().Err(err).Msg("failed to restore backend config")
	}
}

func (t *arenaTally) record(status statusResponse) {
	t.rounds++
	t.moves += status.MovesPlayed
	for _, player := range status.Players {
		for len(t.slots) <= player.ID {
			t.slots = append(t.slots, slotStats{})
		}
		slot := &t.slots[player.ID]
		slot.Kind = player.Kind
		slot.ScoreSum += player.Score
		slot.PenaltySum += player.Penalty
	}
	if status.Winner >= 0 && status.Winner < len(t.slots) {
		t.slots[status.Winner].Wins++
	}
}

func (a *arena) logSummary(t *arenaTally) {
	if t.rounds == 0 {
		a.logger.Info().Msg("no rounds completed")
		return
	}
	a.logger.Info().
		Int("rounds", t.rounds).
		Float64("avg_moves", float64(t.moves)/float64(t.rounds)).
		Msg("arena finished")
	for id, slot := range t.slots {
		a.logger.Info().
			Int("slot", id).
			Str("kind", slot.Kind).
			Int("wins", slot.Wins).
			Float64("win_rate", float64(slot.Wins)/float64(t.rounds)).
			Float64("avg_score", float64(slot.ScoreSum)/float64(t.rounds)).
			Float64("avg_penalty", float64(slot.PenaltySum)/float64(t.rounds)).
			Msg("slot summary")
	}
}

func (a *arena) waitBackendReady(ctx context.Context) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := a.ping(); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, 1*time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("backend not ready after 60s")
}

func (a *arena) ping() error {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping status %d", resp.StatusCode)
	}
	return nil
}

func (a *arena) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *arena) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func buildLogger(path string) (zerolog.Logger, func(), error) {
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if path == "" {
		return zerolog.New(console).With().Timestamp().Logger(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Logger{}, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	logger := zerolog.New(zerolog.MultiLevelWriter(console, f)).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func parseDifficulties(raw string) []int {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var parsed int
		if _, err := fmt.Sscanf(part, "%d", &parsed); err != nil || parsed < 0 {
			continue
		}
		out = append(out, parsed)
	}
	return out
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
