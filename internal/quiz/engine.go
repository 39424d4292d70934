package quiz

import (
	"errors"
	"fmt"

	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
)

var (
	ErrQuizComplete   = errors.New("quiz already complete")
	ErrQuizIncomplete = errors.New("quiz not complete")
	ErrInvalidChoice  = errors.New("invalid choice for current question")
)

// Progress is how far through the bank an engine is.
type Progress struct {
	Answered int  `json:"answered"`
	Total    int  `json:"total"`
	Complete bool `json:"complete"`
}

// Engine walks the bank in order. The current question index is always the
// number of recorded answers.
type Engine struct {
	bank    *Bank
	answers []model.QuizAnswer
}

func NewEngine(bank *Bank) *Engine {
	if bank == nil {
		bank = DefaultBank()
	}
	return &Engine{bank: bank}
}

// Restore rebuilds an engine from previously recorded answers, rejecting any
// that are out of order or name unknown options.
func Restore(bank *Bank, answers []model.QuizAnswer) (*Engine, error) {
	e := NewEngine(bank)
	for i, a := range answers {
		if i >= e.bank.Len() || e.bank.Questions[i].ID != a.QuestionID {
			return nil, fmt.Errorf("restore quiz answer %d: unexpected question %d", i, a.QuestionID)
		}
		if err := e.Submit(a.Choice); err != nil {
			return nil, fmt.Errorf("restore quiz answer %d: %w", i, err)
		}
	}
	return e, nil
}

// Answers returns a copy of the recorded answers in submission order.
func (e *Engine) Answers() []model.QuizAnswer {
	out := make([]model.QuizAnswer, len(e.answers))
	copy(out, e.answers)
	return out
}

// Current returns the next unanswered question; ok is false once complete.
func (e *Engine) Current() (q Question, ok bool) {
	if e.Complete() {
		return Question{}, false
	}
	return e.bank.Questions[len(e.answers)], true
}

func (e *Engine) Complete() bool { return len(e.answers) >= e.bank.Len() }

func (e *Engine) Progress() Progress {
	return Progress{Answered: len(e.answers), Total: e.bank.Len(), Complete: e.Complete()}
}

// Submit records choice for the current question and advances.
func (e *Engine) Submit(choice string) error {
	q, ok := e.Current()
	if !ok {
		return ErrQuizComplete
	}
	if _, ok := q.Option(choice); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}
	e.answers = append(e.answers, model.QuizAnswer{QuestionID: q.ID, Choice: choice})
	return nil
}

func (e *Engine) Reset() { e.answers = nil }

// Result tallies the answers. A tie goes to the profile listed first in the
// bank. Recommended majors found in store are attached as details; store may
// be nil.
func (e *Engine) Result(store *dataset.Store) (model.QuizResult, error) {
	if !e.Complete() {
		return model.QuizResult{}, ErrQuizIncomplete
	}

	tally := make(map[string]int, len(e.bank.Profiles))
	for _, a := range e.answers {
		q, _ := e.bank.question(a.QuestionID)
		o, _ := q.Option(a.Choice)
		tally[o.Type]++
	}

	res := model.QuizResult{Counts: make([]model.TypeCount, 0, len(e.bank.Profiles))}
	best := -1
	var primary Profile
	for _, p := range e.bank.Profiles {
		n := tally[p.Type]
		res.Counts = append(res.Counts, model.TypeCount{Type: p.Type, Count: n})
		if n > best {
			best, primary = n, p
		}
	}

	res.PrimaryType = primary.Type
	res.Description = primary.Description
	res.RecommendedMajors = append([]string(nil), primary.Majors...)
	res.RecommendedCareers = append([]string(nil), primary.Careers...)
	if store != nil {
		for _, name := range primary.Majors {
			if m, ok := store.MajorByName(name); ok {
				res.MajorDetails = append(res.MajorDetails, m)
			}
		}
	}
	return res, nil
}
