package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusResponse struct {
	Settings        GameSettings      `json:"settings"`
	Config          Config            `json:"config"`
	Status          string            `json:"status"`
	CurrentPlayer   int               `json:"current_player"`
	Winner          int               `json:"winner"`
	MovesPlayed     int               `json:"moves_played"`
	TurnsTotal      int               `json:"turns_total"`
	BoardSize       int               `json:"board_size"`
	Board           [][]string        `json:"board"`
	Players         []playerStatusDTO `json:"players"`
	History         []historyEntryDTO `json:"history"`
	LastMessage     string            `json:"last_message"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type playerStatusDTO struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Goal       string `json:"goal"`
	GoalKind   string `json:"goal_kind"`
	Colour     string `json:"colour"`
	ColourName string `json:"colour_name"`
	Score      int    `json:"score"`
	Penalty    int    `json:"penalty"`
}

type historyEntryDTO struct {
	Player    int     `json:"player"`
	Action    string  `json:"action"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Level     int     `json:"level"`
	Penalty   int     `json:"penalty"`
	Score     int     `json:"score"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings GameSettings `json:"settings"`
	Config   Config       `json:"config"`
}

type apiMove struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Level  int    `json:"level"`
}

type blockDTO struct {
	Colour   string     `json:"colour,omitempty"`
	Level    int        `json:"level"`
	Size     int        `json:"size"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Children []blockDTO `json:"children,omitempty"`
}

type boardResponse struct {
	Size int        `json:"size"`
	Grid [][]string `json:"grid"`
	Tree blockDTO   `json:"tree"`
}

type previewResponse struct {
	Grid        [][]string `json:"grid"`
	ScoreDeltas []int      `json:"score_deltas"`
	Penalty     int        `json:"penalty"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if level, err := zerolog.ParseLevel(getenv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	controller, err := NewGameController(DefaultGameSettings())
	if err != nil {
		log.Fatal().Err(err).Msg("default settings rejected")
	}
	hub := NewHub()
	searchHub := NewSearchHub()
	controller.SetSearchPublisher(func(report SearchReport) {
		if searchHub.HasClients() {
			searchHub.Publish(searchPayloadFromReport(report))
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go searchHub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(time.Duration(GetConfig().TickMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/board", func(w http.ResponseWriter, r *http.Request) {
		state := controller.State()
		writeJSON(w, http.StatusOK, boardResponse{
			Size: state.Board.Size(),
			Grid: gridToRows(Flatten(state.Board)),
			Tree: blockToDTO(state.Board),
		})
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettings `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := controller.Settings()
		if payload.Settings != nil {
			settings = *payload.Settings
		}
		if err := controller.StartGame(settings); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- controllerStatus(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		if err := controller.Reset(controller.Settings()); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- controllerStatus(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettings `json:"settings"`
			Config   *Config       `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			if err := controller.UpdateSettings(*payload.Settings); err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, errGameRunning) {
					status = http.StatusConflict
				}
				writeJSON(w, status, map[string]string{"error": err.Error()})
				return
			}
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controller.Settings(),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		request, err := decodeMoveRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(request)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/preview", func(w http.ResponseWriter, r *http.Request) {
		request, err := decodeMoveRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		result, ok := controller.Preview(request)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "move cannot be applied there"})
			return
		}
		writeJSON(w, http.StatusOK, previewResponse{
			Grid:        gridToRows(result.Grid),
			ScoreDeltas: result.ScoreDeltas,
			Penalty:     result.Penalty,
		})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/search", func(w http.ResponseWriter, r *http.Request) {
		serveSearchWS(searchHub, w, r)
	})

	addr := getenv("BACKEND_ADDR", ":8080")
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", addr).Msg("backend listening")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error().Err(closeErr).Msg("forced close failed")
		}
	}

	cancel()
	if runErr != nil {
		log.Error().Err(runErr).Msg("exiting after server error")
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	status := controllerStatus(controller)
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			status := controllerStatus(controller)
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})
		}
	}
}

func decodeMoveRequest(r *http.Request) (MoveRequest, error) {
	var payload apiMove
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return MoveRequest{}, errors.New("invalid payload")
	}
	kind, err := ActionKindFromString(payload.Action)
	if err != nil {
		return MoveRequest{}, err
	}
	return MoveRequest{Kind: kind, X: payload.X, Y: payload.Y, Level: payload.Level}, nil
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	settings := controller.Settings()
	return StatusResponse{
		Settings:        settings,
		Config:          GetConfig(),
		Status:          statusToString(state.Status),
		CurrentPlayer:   state.Current,
		Winner:          state.Winner,
		MovesPlayed:     state.MovesPlayed,
		TurnsTotal:      settings.TurnsPerPlayer * settings.PlayerCount(),
		BoardSize:       state.Board.Size(),
		Board:           gridToRows(Flatten(state.Board)),
		Players:         playersToDTO(controller.Players(), controller.Scores(), state.Penalties),
		History:         historyToDTO(controller.History()),
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusFinished:
		return "finished"
	default:
		return "running"
	}
}

func playerKind(player IPlayer) string {
	switch player.(type) {
	case *HumanPlayer:
		return "human"
	case *RandomPlayer:
		return "random"
	case *SmartPlayer:
		return "smart"
	default:
		return "unknown"
	}
}

func playersToDTO(players []IPlayer, scores []int, penalties []int) []playerStatusDTO {
	result := make([]playerStatusDTO, 0, len(players))
	for i, player := range players {
		goal := player.Goal()
		dto := playerStatusDTO{
			ID:         player.ID(),
			Kind:       playerKind(player),
			Goal:       goal.Description(),
			GoalKind:   goalKindToString(goal.Kind()),
			Colour:     goal.Colour().Hex(),
			ColourName: goal.Colour().String(),
		}
		if i < len(scores) {
			dto.Score = scores[i]
		}
		if i < len(penalties) {
			dto.Penalty = penalties[i]
		}
		result = append(result, dto)
	}
	return result
}

func goalKindToString(kind GoalKind) string {
	if kind == GoalBlob {
		return "blob"
	}
	return "perimeter"
}

// gridToRows transposes the column-major grid into rows of hex colours so
// clients can draw it top to bottom.
func gridToRows(grid LinearGrid) [][]string {
	size := len(grid)
	rows := make([][]string, size)
	for row := 0; row < size; row++ {
		rows[row] = make([]string, size)
		for col := 0; col < size; col++ {
			rows[row][col] = grid[col][row].Hex()
		}
	}
	return rows
}

func blockToDTO(block *Block) blockDTO {
	x, y := block.Position()
	dto := blockDTO{
		Level: block.Level(),
		Size:  block.Size(),
		X:     x,
		Y:     y,
	}
	if block.IsLeaf() {
		dto.Colour = block.Colour().Hex()
		return dto
	}
	dto.Children = make([]blockDTO, 0, 4)
	for _, child := range block.children {
		dto.Children = append(dto.Children, blockToDTO(child))
	}
	return dto
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Player:    entry.PlayerID,
		Action:    entry.Action.String(),
		X:         entry.X,
		Y:         entry.Y,
		Level:     entry.Level,
		Penalty:   entry.Penalty,
		Score:     entry.Score,
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
