package minigame

import (
	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
)

const (
	quizSecondsPerQuestion = 15
	quizPoints             = 20
)

// Quiz asks each question in order with its own clock. Running out of time
// counts as a wrong answer and moves on.
type Quiz struct {
	clock
	questions []catalog.QuizQuestion
	current   int
	correct   int
	score     int
	finished  bool
}

// NewQuiz starts on the first question.
func NewQuiz(questions []catalog.QuizQuestion) *Quiz {
	return &Quiz{
		clock:     clock{left: quizSecondsPerQuestion},
		questions: questions,
		finished:  len(questions) == 0,
	}
}

func (q *Quiz) Kind() domain.GameKind { return domain.KindQuiz }
func (q *Quiz) Timed() bool           { return true }
func (q *Quiz) Finished() bool        { return q.finished }
func (q *Quiz) Score() int            { return q.score }

// Index returns the zero-based index of the current question.
func (q *Quiz) Index() int { return q.current }

// Correct returns the number of correct answers so far.
func (q *Quiz) Correct() int { return q.correct }

// Question returns the current question. Neither the answer index nor the
// explanation is serialized.
func (q *Quiz) Question() catalog.QuizQuestion {
	if q.current >= len(q.questions) {
		return catalog.QuizQuestion{}
	}
	return q.questions[q.current]
}

// Answer submits option for the current question. Out-of-range options are
// accepted and count as wrong.
func (q *Quiz) Answer(option int) (bool, error) {
	if q.finished {
		return false, domain.ErrInvalidMove
	}
	right := option == q.questions[q.current].Answer
	if right {
		q.correct++
		q.score += quizPoints
	}
	if q.current < len(q.questions)-1 {
		q.current++
		q.left = quizSecondsPerQuestion
	} else {
		q.finished = true
	}
	return right, nil
}

func (q *Quiz) Tick() {
	if q.finished {
		return
	}
	if q.tick() {
		_, _ = q.Answer(-1) // cannot fail: not finished
	}
}
