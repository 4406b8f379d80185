package minigame

import (
	"fmt"

	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
)

// Move actions.
const (
	ActionAnswer   = "answer"   // coin counter, quiz, change calculator
	ActionFlip     = "flip"     // memory
	ActionAllocate = "allocate" // budget planner
	ActionSubmit   = "submit"   // budget planner
)

// Move is one player input in wire form.
type Move struct {
	Action string `json:"action"`
	Value  int    `json:"value"`          // answer, card index or amount
	Line   int    `json:"line,omitempty"` // budget line for allocate
}

// MoveResult tells the player how the move went.
type MoveResult struct {
	Correct     bool     `json:"correct"`
	Revealed    []Reveal `json:"revealed,omitempty"`    // memory: cards shown by the flip
	Explanation string   `json:"explanation,omitempty"` // quiz: explanation of the answered question
}

// Apply dispatches m to the rules it targets.
func Apply(r Rules, m Move) (MoveResult, error) {
	var (
		ok  bool
		err error
	)
	switch g := r.(type) {
	case *CoinCounter:
		if m.Action != ActionAnswer {
			break
		}
		ok, err = g.Answer(m.Value)
		return MoveResult{Correct: ok}, err
	case *Quiz:
		if m.Action != ActionAnswer {
			break
		}
		asked := g.Question()
		ok, err = g.Answer(m.Value)
		if err != nil {
			return MoveResult{}, err
		}
		return MoveResult{Correct: ok, Explanation: asked.Explanation}, nil
	case *ChangeCalculator:
		if m.Action != ActionAnswer {
			break
		}
		ok, err = g.Answer(m.Value)
		return MoveResult{Correct: ok}, err
	case *Memory:
		if m.Action != ActionFlip {
			break
		}
		ok, err = g.Flip(m.Value)
		if err != nil {
			return MoveResult{}, err
		}
		return MoveResult{Correct: ok, Revealed: g.Revealed()}, nil
	case *BudgetPlanner:
		switch m.Action {
		case ActionAllocate:
			return MoveResult{Correct: true}, g.Allocate(m.Line, m.Value)
		case ActionSubmit:
			return MoveResult{Correct: true}, g.Submit()
		}
	}
	return MoveResult{}, fmt.Errorf("%s on %s: %w", m.Action, r.Kind(), domain.ErrInvalidMove)
}

// ─── Boards ─────────────────────────────────────────────────────────────────
// What the player needs to see to make the next move.

// CoinBoard is the coin counter's current pile.
type CoinBoard struct {
	Round int `json:"round"`
	Coins int `json:"coins"`
}

// QuizBoard is the quiz's current question.
type QuizBoard struct {
	Index    int                  `json:"index"`
	Total    int                  `json:"total"`
	Question catalog.QuizQuestion `json:"question"`
}

// ChangeBoard is the change calculator's current sale.
type ChangeBoard struct {
	Round int  `json:"round"`
	Sale  Sale `json:"sale"`
}

// MemoryBoard is the memory grid.
type MemoryBoard struct {
	Cards   []Card `json:"cards"`
	Moves   int    `json:"moves"`
	Matches int    `json:"matches"`
}

// BudgetBoard is the budget plan so far.
type BudgetBoard struct {
	Total     int                  `json:"total"`
	Remaining int                  `json:"remaining"`
	Lines     []catalog.BudgetLine `json:"lines"`
	Allocated map[int]int          `json:"allocated"`
}

// Board returns the player's view of r.
func Board(r Rules) any {
	switch g := r.(type) {
	case *CoinCounter:
		return CoinBoard{Round: g.Round(), Coins: g.Coins()}
	case *Quiz:
		return QuizBoard{Index: g.Index(), Total: len(g.questions), Question: g.Question()}
	case *ChangeCalculator:
		return ChangeBoard{Round: g.Round(), Sale: g.Sale()}
	case *Memory:
		return MemoryBoard{Cards: g.Cards(), Moves: g.Moves(), Matches: g.Matches()}
	case *BudgetPlanner:
		alloc := make(map[int]int, len(g.alloc))
		for k, v := range g.alloc {
			alloc[k] = v
		}
		return BudgetBoard{Total: g.budget.Total, Remaining: g.Remaining(), Lines: g.budget.Lines, Allocated: alloc}
	}
	return nil
}
