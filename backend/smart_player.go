package main

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type SmartPlayer struct {
	id        int
	goal      Goal
	rng       intnSource
	numTrials int
	proceed   bool
	report    func(SearchReport)
}

// SearchReport summarises one scored search for observers.
type SearchReport struct {
	PlayerID  int
	Trials    int
	Attempts  int
	BestNet   int
	Action    ActionKind
	Improved  bool
	ElapsedMs float64
}

func NewSmartPlayer(id int, goal Goal, difficulty int, rng intnSource) *SmartPlayer {
	return &SmartPlayer{id: id, goal: goal, numTrials: difficulty, rng: rng}
}

func (p *SmartPlayer) ID() int {
	return p.id
}

func (p *SmartPlayer) Goal() Goal {
	return p.goal
}

func (p *SmartPlayer) IsHuman() bool {
	return false
}

func (p *SmartPlayer) Signal() {
	p.proceed = true
}

// trialResult records one scored experiment by its coordinates, so no
// block owned by a scratch copy ever reaches the live board.
type trialResult struct {
	action   Action
	x        int
	y        int
	level    int
	net      int
	attempts int
}

// GenerateMove grades numTrials random mutations on scratch copies and
// plays the best one, or nothing at all when no trial strictly beats the
// zero-point pass baseline.
func (p *SmartPlayer) GenerateMove(board *Block) (Move, bool) {
	if !p.proceed {
		return Move{}, false
	}
	p.proceed = false
	start := time.Now()
	trials := p.runTrials(board)
	best, ok := bestTrial(trials)
	p.publishReport(trials, best, ok, start)
	if !ok {
		return Move{}, false
	}
	return Move{Action: best.action, Target: board.Locate(best.x, best.y, best.level)}, true
}

func (p *SmartPlayer) runTrials(board *Block) []trialResult {
	if workers := GetConfig().SearchWorkers; workers > 1 && p.numTrials > 1 {
		return p.runTrialsParallel(board, workers)
	}
	trials := make([]trialResult, p.numTrials)
	for i := range trials {
		trials[i] = runTrial(board, p.goal, p.rng)
	}
	return trials
}

// runTrialsParallel partitions the trial indices over the workers. Each
// worker gets its own generator; the board is only read.
func (p *SmartPlayer) runTrialsParallel(board *Block, workers int) []trialResult {
	if workers > p.numTrials {
		workers = p.numTrials
	}
	trials := make([]trialResult, p.numTrials)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			rng := newGameRNG()
			for i := offset; i < len(trials); i += workers {
				trials[i] = runTrial(board, p.goal, rng)
			}
		}(w)
	}
	wg.Wait()
	return trials
}

// runTrial retries until a mutation applies, then scores it. Failed
// applications do not consume the trial.
func runTrial(board *Block, goal Goal, rng intnSource) trialResult {
	attempts := 0
	for {
		attempts++
		scratch := board.Clone()
		before := goal.Score(scratch)
		target := randomTarget(scratch, rng)
		action := randomDepthAwareAction(target, rng)
		if !applyAction(target, action, goal.Colour()) {
			continue
		}
		x, y := target.Position()
		return trialResult{
			action:   action,
			x:        x,
			y:        y,
			level:    target.Level(),
			net:      goal.Score(scratch) - before - action.Penalty,
			attempts: attempts,
		}
	}
}

// bestTrial picks the winner against a free pass worth zero net points.
// Only a strictly higher net score beats the incumbent, so the earliest
// best trial wins and a winning pass means no move.
func bestTrial(trials []trialResult) (trialResult, bool) {
	best := trialResult{action: PassAction()}
	for _, trial := range trials {
		if trial.net > best.net {
			best = trial
		}
	}
	if best.action.Kind == ActionPass {
		return trialResult{}, false
	}
	return best, true
}

func (p *SmartPlayer) publishReport(trials []trialResult, best trialResult, improved bool, start time.Time) {
	attempts := 0
	for _, trial := range trials {
		attempts += trial.attempts
	}
	report := SearchReport{
		PlayerID:  p.id,
		Trials:    len(trials),
		Attempts:  attempts,
		BestNet:   best.net,
		Action:    best.action.Kind,
		Improved:  improved,
		ElapsedMs: float64(time.Since(start).Microseconds()) / 1000.0,
	}
	if !improved {
		report.Action = ActionPass
	}
	if p.report != nil {
		p.report(report)
	}
	if GetConfig().LogSearchStats {
		log.Debug().
			Int("player", report.PlayerID).
			Int("trials", report.Trials).
			Int("attempts", report.Attempts).
			Int("best_net", report.BestNet).
			Str("action", report.Action.String()).
			Bool("improved", report.Improved).
			Float64("elapsed_ms", report.ElapsedMs).
			Msg("scored search finished")
	}
}
