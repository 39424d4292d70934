package service

import (
	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/quiz"
	"github.com/stemsi/jinro-backend/internal/session"
)

// QuizState is the visitor-facing view of quiz progress.
type QuizState struct {
	Progress quiz.Progress `json:"progress"`
	// Current is nil once every question is answered.
	Current *quiz.Question `json:"current,omitempty"`
}

type QuizService interface {
	Questions() []quiz.Question
	State(sess session.Context) (QuizState, error)
	Submit(sess session.Context, choice string) (session.Context, QuizState, error)
	Result(sess session.Context) (model.QuizResult, error)
	Reset(sess session.Context) session.Context
}

type quizService struct {
	bank  *quiz.Bank
	store *dataset.Store
}

func NewQuizService(bank *quiz.Bank, store *dataset.Store) QuizService {
	if bank == nil {
		bank = quiz.DefaultBank()
	}
	return &quizService{bank: bank, store: store}
}

func (s *quizService) Questions() []quiz.Question {
	return append([]quiz.Question(nil), s.bank.Questions...)
}

func (s *quizService) engine(sess session.Context) (*quiz.Engine, error) {
	return quiz.Restore(s.bank, sess.QuizAnswers)
}

func stateOf(e *quiz.Engine) QuizState {
	st := QuizState{Progress: e.Progress()}
	if q, ok := e.Current(); ok {
		st.Current = &q
	}
	return st
}

func (s *quizService) State(sess session.Context) (QuizState, error) {
	e, err := s.engine(sess)
	if err != nil {
		return QuizState{}, err
	}
	return stateOf(e), nil
}

func (s *quizService) Submit(sess session.Context, choice string) (session.Context, QuizState, error) {
	e, err := s.engine(sess)
	if err != nil {
		return sess, QuizState{}, err
	}
	if err := e.Submit(choice); err != nil {
		return sess, stateOf(e), err
	}
	next := sess.Clone()
	next.Mode = session.ModeQuiz
	next.QuizAnswers = e.Answers()
	return next, stateOf(e), nil
}

func (s *quizService) Result(sess session.Context) (model.QuizResult, error) {
	e, err := s.engine(sess)
	if err != nil {
		return model.QuizResult{}, err
	}
	return e.Result(s.store)
}

func (s *quizService) Reset(sess session.Context) session.Context {
	next := sess.Clone()
	next.Mode = session.ModeQuiz
	next.QuizAnswers = nil
	return next
}
