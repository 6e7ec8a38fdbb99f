package main

type HumanPlayer struct {
	id      int
	goal    Goal
	pending bool
	request MoveRequest
}

func NewHumanPlayer(id int, goal Goal) *HumanPlayer {
	return &HumanPlayer{id: id, goal: goal}
}

func (h *HumanPlayer) ID() int {
	return h.id
}

func (h *HumanPlayer) Goal() Goal {
	return h.goal
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

// GenerateMove consumes the queued request and resolves its coordinates
// against the live board. No request, or one pointing off the board,
// yields no move.
func (h *HumanPlayer) GenerateMove(board *Block) (Move, bool) {
	if !h.pending {
		return Move{}, false
	}
	h.pending = false
	target := board.Locate(h.request.X, h.request.Y, h.request.Level)
	if target == nil {
		return Move{}, false
	}
	return Move{Action: ActionFor(h.request.Kind), Target: target}, true
}

func (h *HumanPlayer) SetPendingMove(request MoveRequest) {
	h.request = request
	h.pending = true
}

func (h *HumanPlayer) HasPendingMove() bool {
	return h.pending
}
