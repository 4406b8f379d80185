package minigame

import (
	"fmt"
	"math"

	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
)

const (
	budgetLineCap     = 50
	budgetSlack       = 5
	budgetBalancedPts = 30
	budgetLinePts     = 15
	budgetPriorityPts = 20
)

// BudgetPlanner splits a fixed amount across envelopes. It has no clock:
// the play ends when the plan is submitted.
type BudgetPlanner struct {
	budget    catalog.Budget
	alloc     map[int]int
	submitted bool
}

// NewBudgetPlanner starts with every envelope empty.
func NewBudgetPlanner(b catalog.Budget) *BudgetPlanner {
	return &BudgetPlanner{budget: b, alloc: make(map[int]int, len(b.Lines))}
}

func (p *BudgetPlanner) Kind() domain.GameKind { return domain.KindBudgetPlanner }
func (p *BudgetPlanner) Timed() bool           { return false }
func (p *BudgetPlanner) TimeLeft() int         { return 0 }
func (p *BudgetPlanner) Tick()                 {}
func (p *BudgetPlanner) Finished() bool        { return p.submitted }

// Allocate sets the amount in envelope lineID. One envelope holds at most
// 50 coins, or the total when that is smaller.
func (p *BudgetPlanner) Allocate(lineID, amount int) error {
	if p.submitted {
		return domain.ErrInvalidMove
	}
	if p.line(lineID) == nil {
		return fmt.Errorf("budget line %d: %w", lineID, domain.ErrInvalidMove)
	}
	if amount < 0 || amount > min(budgetLineCap, p.budget.Total) {
		return fmt.Errorf("amount %d: %w", amount, domain.ErrInvalidMove)
	}
	p.alloc[lineID] = amount
	return nil
}

// Allocated returns the amount in envelope lineID.
func (p *BudgetPlanner) Allocated(lineID int) int { return p.alloc[lineID] }

// Remaining returns the unallocated amount; negative when overspent.
func (p *BudgetPlanner) Remaining() int {
	spent := 0
	for _, v := range p.alloc {
		spent += v
	}
	return p.budget.Total - spent
}

// Submit ends the play. A plan more than 5 coins over the total is refused.
func (p *BudgetPlanner) Submit() error {
	if p.submitted {
		return domain.ErrInvalidMove
	}
	if r := p.Remaining(); r < -budgetSlack {
		return fmt.Errorf("%d over: %w", -r, domain.ErrOverBudget)
	}
	p.submitted = true
	return nil
}

// Score rewards a balanced plan, closeness to each suggested amount, and
// putting at least as much into needs as into wants.
func (p *BudgetPlanner) Score() int {
	total := 0.0
	if r := p.Remaining(); r >= -budgetSlack && r <= budgetSlack {
		total += budgetBalancedPts
	}
	needs, wants := 0, 0
	for _, l := range p.budget.Lines {
		got := p.alloc[l.ID]
		if l.Suggested > 0 {
			diff := math.Abs(float64(got - l.Suggested))
			total += math.Max(0, 1-diff/float64(l.Suggested)) * budgetLinePts
		}
		if l.Need {
			needs += got
		} else {
			wants += got
		}
	}
	if needs >= wants {
		total += budgetPriorityPts
	}
	return int(math.Round(total))
}

func (p *BudgetPlanner) line(id int) *catalog.BudgetLine {
	for i := range p.budget.Lines {
		if p.budget.Lines[i].ID == id {
			return &p.budget.Lines[i]
		}
	}
	return nil
}
