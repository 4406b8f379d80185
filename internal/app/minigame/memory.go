package minigame

import (
	"math/rand/v2"

	"github.com/moneyquest/moneyquest/internal/domain"
)

const (
	memorySeconds = 60
	memoryPoints  = 10
)

// Card is one tile of the memory board as the player sees it.
// Symbol is empty while the card is face down.
type Card struct {
	Symbol  string `json:"symbol,omitempty"`
	FaceUp  bool   `json:"face_up"`
	Matched bool   `json:"matched"`
}

// Reveal is a card turned over by a flip, with its symbol.
type Reveal struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol"`
}

// Memory is a pair-matching board. Every second flip is a move; a move
// that turns two equal symbols keeps them face up.
type Memory struct {
	clock
	symbols  []string // hidden symbol per card
	faceUp   []bool
	matched  []bool
	open     []int
	last     []int // cards turned by the latest flip
	pairs    int
	matches  int
	moves    int
	finished bool
}

// NewMemory lays out two cards per symbol in a shuffled order.
func NewMemory(symbols []string, rng *rand.Rand) *Memory {
	m := &Memory{clock: clock{left: memorySeconds}, pairs: len(symbols)}
	for _, s := range symbols {
		m.symbols = append(m.symbols, s, s)
	}
	rng.Shuffle(len(m.symbols), func(i, j int) {
		m.symbols[i], m.symbols[j] = m.symbols[j], m.symbols[i]
	})
	m.faceUp = make([]bool, len(m.symbols))
	m.matched = make([]bool, len(m.symbols))
	m.finished = m.pairs == 0
	return m
}

func (m *Memory) Kind() domain.GameKind { return domain.KindMemory }
func (m *Memory) Timed() bool           { return true }
func (m *Memory) Finished() bool        { return m.finished }

// Score is ten points per pair, minus one per move, plus half the seconds left.
func (m *Memory) Score() int {
	return max(0, m.matches*memoryPoints-m.moves+m.left/2)
}

// Moves returns the number of completed two-card moves.
func (m *Memory) Moves() int { return m.moves }

// Matches returns the number of pairs found.
func (m *Memory) Matches() int { return m.matches }

// Cards returns the board with unrevealed symbols hidden.
func (m *Memory) Cards() []Card {
	out := make([]Card, len(m.symbols))
	for i, s := range m.symbols {
		out[i] = Card{FaceUp: m.faceUp[i], Matched: m.matched[i]}
		if m.faceUp[i] || m.matched[i] {
			out[i].Symbol = s
		}
	}
	return out
}

// Revealed returns the cards shown by the latest flip. After the second flip
// of a move it holds both cards, even when the pair went back face down.
func (m *Memory) Revealed() []Reveal {
	out := make([]Reveal, 0, len(m.last))
	for _, i := range m.last {
		out = append(out, Reveal{Index: i, Symbol: m.symbols[i]})
	}
	return out
}

// Flip turns card i. The second flip of a move reports whether it made a pair;
// an unmatched pair is turned back down and stays readable through Revealed.
func (m *Memory) Flip(i int) (matched bool, err error) {
	if m.finished || i < 0 || i >= len(m.symbols) || m.faceUp[i] || m.matched[i] {
		return false, domain.ErrInvalidMove
	}
	m.faceUp[i] = true
	m.open = append(m.open, i)
	m.last = append(m.last[:0], m.open...)
	if len(m.open) < 2 {
		return false, nil
	}

	a, b := m.open[0], m.open[1]
	m.open = m.open[:0]
	m.moves++
	m.faceUp[a], m.faceUp[b] = false, false
	if m.symbols[a] != m.symbols[b] {
		return false, nil
	}
	m.matched[a], m.matched[b] = true, true
	m.matches++
	if m.matches == m.pairs {
		m.finished = true
	}
	return true, nil
}

func (m *Memory) Tick() {
	if m.finished {
		return
	}
	if m.tick() {
		m.finished = true
	}
}
