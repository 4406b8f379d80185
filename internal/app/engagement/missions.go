package engagement

import (
	"fmt"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// MissionTracker owns the mission records. Each mission moves once from
// available to completed and pays its reward on that transition only.
type MissionTracker struct {
	missions  []domain.Mission
	index     map[int]int
	ledger    *Ledger
	completed int64
}

// NewMissionTracker copies seed and wires the tracker to ledger.
func NewMissionTracker(seed []domain.Mission, ledger *Ledger) *MissionTracker {
	t := &MissionTracker{
		missions: make([]domain.Mission, len(seed)),
		index:    make(map[int]int, len(seed)),
		ledger:   ledger,
	}
	copy(t.missions, seed)
	for i, m := range t.missions {
		t.index[m.ID] = i
		if m.Completed {
			t.completed++
		}
	}
	return t
}

// Complete marks a mission done and credits its reward.
// Unknown or already completed missions are a no-op.
func (t *MissionTracker) Complete(id int) (Outcome, *domain.Notification) {
	i, ok := t.index[id]
	if !ok {
		return noop(ReasonNotFound, t.ledger.Balance()), nil
	}
	m := t.missions[i]
	if m.Completed {
		return noop(ReasonAlreadyCompleted, t.ledger.Balance()), nil
	}

	m.Completed = true
	t.missions[i] = m
	t.ledger.Credit(m.Reward, domain.TxMission, fmt.Sprintf("mission:%d", m.ID))
	t.completed++

	n := missionCompleted(m)
	return Outcome{Applied: true, Reason: ReasonCompleted, Delta: m.Reward, Balance: t.ledger.Balance()}, &n
}

// CompletedCount returns how many missions have been completed.
func (t *MissionTracker) CompletedCount() int64 { return t.completed }

// Get returns the mission with the given id.
func (t *MissionTracker) Get(id int) (domain.Mission, bool) {
	i, ok := t.index[id]
	if !ok {
		return domain.Mission{}, false
	}
	return t.missions[i], true
}

// List returns a copy of all missions in seed order.
func (t *MissionTracker) List() []domain.Mission {
	out := make([]domain.Mission, len(t.missions))
	copy(out, t.missions)
	return out
}
