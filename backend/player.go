package main

// IPlayer is one seat at the board. Human seats queue requests coming in
// over the API; autonomous seats derive a move from the live board once
// the turn loop signals them.
type IPlayer interface {
	ID() int
	Goal() Goal
	IsHuman() bool
	GenerateMove(board *Block) (Move, bool)
}

// signallable marks players that act only when the turn loop arms them.
type signallable interface {
	Signal()
}

// CreatePlayers builds the seating plan: humans first, then random
// players, then one smart player per difficulty entry. IDs are positional.
func CreatePlayers(settings GameSettings, rng intnSource) ([]IPlayer, error) {
	goals, err := GenerateGoals(settings.PlayerCount(), rng)
	if err != nil {
		return nil, err
	}
	players := make([]IPlayer, 0, settings.PlayerCount())
	id := 0
	for i := 0; i < settings.NumHumanPlayers; i++ {
		players = append(players, NewHumanPlayer(id, goals[id]))
		id++
	}
	for i := 0; i < settings.NumRandomPlayers; i++ {
		players = append(players, NewRandomPlayer(id, goals[id], newGameRNG()))
		id++
	}
	for _, difficulty := range settings.SmartPlayerDifficulties {
		players = append(players, NewSmartPlayer(id, goals[id], difficulty, newGameRNG()))
		id++
	}
	return players, nil
}

// randomTarget picks a uniformly random cell and resolves the block at a
// uniformly random level in [1, maxDepth].
func randomTarget(board *Block, rng intnSource) *Block {
	x := rng.IntN(board.Size())
	y := rng.IntN(board.Size())
	level := rng.IntN(board.MaxDepth()) + 1
	return board.Locate(x, y, level)
}

// randomDepthAwareAction draws a mutating action from the slice of the
// table that can apply at the target's depth. Pass is never drawn.
func randomDepthAwareAction(target *Block, rng intnSource) Action {
	limit := structuralActionCount
	switch target.Level() {
	case target.MaxDepth():
		limit = paintableActionCount
	case target.MaxDepth() - 1:
		limit = combinableActionCount
	}
	return actionTable[rng.IntN(limit)]
}
