package main

import "testing"

func TestSmartPlayerPlaysTheBestTrial(t *testing.T) {
	board := NewBoard(2, PacificPoint)
	board.Smash()
	board.children[0].Smash()
	script := &scriptedIntN{values: []int{
		0, 0, 0, 0, // trial 1: smash the top-left quadrant, net -3
		3, 0, 1, 6, // trial 2: paint the corner cell (3,0), net +1
	}}
	player := NewSmartPlayer(2, NewPerimeterGoal(RealRed), 2, script)

	var report SearchReport
	player.report = func(r SearchReport) { report = r }

	player.Signal()
	move, ok := player.GenerateMove(board)
	if !ok {
		t.Fatalf("expected the improving trial to produce a move")
	}
	if move.Action.Kind != ActionPaint {
		t.Fatalf("expected the paint trial to win, got %v", move.Action.Kind)
	}
	if move.Target != board.children[0].children[0] {
		t.Fatalf("expected the move to target the live corner cell")
	}
	if !report.Improved || report.BestNet != 1 || report.Trials != 2 || report.Attempts != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Action != ActionPaint {
		t.Fatalf("expected the report to carry the winning action, got %v", report.Action)
	}
}

func TestSmartPlayerPrefersTheEarliestOfEqualTrials(t *testing.T) {
	board := NewBoard(1, PacificPoint)
	board.Smash()
	script := &scriptedIntN{values: []int{
		0, 0, 0, 6, // trial 1: paint the (0,0) corner, net +1
		1, 1, 0, 6, // trial 2: paint the (1,1) corner, net +1
	}}
	player := NewSmartPlayer(0, NewPerimeterGoal(RealRed), 2, script)
	player.Signal()
	move, ok := player.GenerateMove(board)
	if !ok {
		t.Fatalf("expected a move")
	}
	if move.Target != board.children[1] {
		t.Fatalf("expected the first of two equal trials to win")
	}
}

func TestSmartPlayerPassesWhenNothingImproves(t *testing.T) {
	board := NewBoard(1, PacificPoint)
	script := &scriptedIntN{values: []int{0, 0, 0, 0}}
	player := NewSmartPlayer(1, NewBlobGoal(PacificPoint), 1, script)

	var report SearchReport
	player.report = func(r SearchReport) { report = r }

	player.Signal()
	if _, ok := player.GenerateMove(board); ok {
		t.Fatalf("expected a losing search to produce no move")
	}
	if report.Improved || report.Action != ActionPass || report.BestNet != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestSmartPlayerZeroTrialsAlwaysPasses(t *testing.T) {
	board := quarteredBoard(t)
	player := NewSmartPlayer(0, NewBlobGoal(RealRed), 0, &scriptedIntN{})
	player.Signal()
	if _, ok := player.GenerateMove(board); ok {
		t.Fatalf("expected zero trials to produce no move")
	}
}

func TestSmartPlayerWaitsForItsSignal(t *testing.T) {
	player := NewSmartPlayer(0, NewBlobGoal(RealRed), 4, &scriptedIntN{})
	if _, ok := player.GenerateMove(quarteredBoard(t)); ok {
		t.Fatalf("expected no move before the player is signalled")
	}
}

func TestSmartPlayerRunsTrialsAcrossWorkers(t *testing.T) {
	prev := GetConfig()
	cfg := prev
	cfg.SearchWorkers = 4
	configStore.Update(cfg)
	defer configStore.Update(prev)

	board := NewRandomBoard(3, newGameRNG())
	snapshot := board.Clone()
	player := NewSmartPlayer(0, NewBlobGoal(PacificPoint), 16, newGameRNG())

	var report SearchReport
	player.report = func(r SearchReport) { report = r }

	player.Signal()
	player.GenerateMove(board)
	if report.Trials != 16 {
		t.Fatalf("expected 16 trials, got %d", report.Trials)
	}
	if report.Attempts < 16 {
		t.Fatalf("expected at least one attempt per trial, got %d", report.Attempts)
	}
	if !board.Equal(snapshot) {
		t.Fatalf("expected the search to leave the board untouched")
	}
}
