// Package taking ведет одну попытку прохождения теста: вопросы по порядку,
// один выбранный вариант, подсчет баллов и сохранение результата в историю.
//
// Session - явный конечный автомат. Действия пользователя приходят командами
// (Apply), а отображение строится чистой функцией View от состояния.
package taking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

var (
	ErrEmptyTest     = errors.New("test has no questions")
	ErrInvalidOption = errors.New("option index out of range")
	ErrWrongPhase    = errors.New("action is not allowed in current phase")
	ErrNotSubmitted  = errors.New("result has not been saved yet")
)

// Phase - фаза попытки
type Phase int

const (
	PhaseQuestion Phase = iota
	PhaseFinished
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseQuestion:
		return "question"
	case PhaseFinished:
		return "finished"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Подписи кнопки перехода
const (
	ActionNext   = "Next"
	ActionFinish = "Finish"
)

// SessionContext - кто проходит тест. Передается явно, без глобального состояния.
type SessionContext struct {
	User string
}

// Recorder сохраняет результат попытки
type Recorder interface {
	CreateHistory(ctx context.Context, record entity.HistoryRecord) (uint, error)
}

// Session - одна попытка
type Session struct {
	sc    SessionContext
	test  entity.Test
	now   func() time.Time
	start time.Time

	phase    Phase
	index    int
	selected int
	score    int

	finishedAt time.Time
	recordID   uint
	submitted  bool
}

// NewSession начинает попытку; время старта фиксируется один раз.
// now можно передать nil, тогда используется time.Now.
func NewSession(sc SessionContext, test entity.Test, now func() time.Time) (*Session, error) {
	if test.QuestionCount() == 0 {
		return nil, ErrEmptyTest
	}
	if now == nil {
		now = time.Now
	}
	if sc.User == "" {
		sc.User = entity.DefaultUsername
	}
	return &Session{
		sc:       sc,
		test:     test,
		now:      now,
		start:    now(),
		phase:    PhaseQuestion,
		selected: entity.NoSelection,
	}, nil
}

func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Score() int   { return s.score }
func (s *Session) Index() int   { return s.index }
func (s *Session) Total() int   { return s.test.QuestionCount() }

// Selected возвращает выбранный вариант текущего вопроса или entity.NoSelection
func (s *Session) Selected() int { return s.selected }

// RecordID - id записи истории после успешного Submit
func (s *Session) RecordID() uint { return s.recordID }

func (s *Session) current() *entity.Question {
	return &s.test.Questions[s.index]
}

// Select выбирает вариант, снимая предыдущий выбор
func (s *Session) Select(option int) error {
	if s.phase != PhaseQuestion {
		return ErrWrongPhase
	}
	if !s.current().IsValidOption(option) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, option)
	}
	s.selected = option
	return nil
}

// Advance засчитывает ответ на текущий вопрос и переходит к следующему.
// Без выбора ответ считается неверным. После последнего вопроса попытка завершается.
func (s *Session) Advance() error {
	if s.phase != PhaseQuestion {
		return ErrWrongPhase
	}
	if s.current().IsCorrect(s.selected) {
		s.score++
	}
	s.index++
	s.selected = entity.NoSelection
	if s.index >= s.Total() {
		s.phase = PhaseFinished
		s.finishedAt = s.now()
	}
	return nil
}

// ElapsedSeconds - целые секунды от старта до завершения (или до текущего момента)
func (s *Session) ElapsedSeconds() int {
	end := s.finishedAt
	if s.phase == PhaseQuestion {
		end = s.now()
	}
	return int(end.Sub(s.start) / time.Second)
}

// Record строит запись истории для завершенной попытки
func (s *Session) Record() (entity.HistoryRecord, error) {
	if s.phase == PhaseQuestion {
		return entity.HistoryRecord{}, ErrWrongPhase
	}
	return entity.HistoryRecord{
		User:      s.sc.User,
		TestID:    s.test.ID,
		TestTitle: s.test.Title,
		Score:     s.score,
		Date:      entity.EpochMillis(s.finishedAt),
	}, nil
}

// Submit отправляет результат. Повторный вызов после успеха ничего не делает.
func (s *Session) Submit(ctx context.Context, recorder Recorder) error {
	if s.phase != PhaseFinished {
		return ErrWrongPhase
	}
	if s.submitted {
		return nil
	}
	record, err := s.Record()
	if err != nil {
		return err
	}
	id, err := recorder.CreateHistory(ctx, record)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	s.recordID = id
	s.submitted = true
	return nil
}

// Navigation - куда перейти после закрытия результата
type Navigation string

const NavigateToListing Navigation = "listing"

// Dismiss закрывает окно результата; доступно только после сохранения
func (s *Session) Dismiss() (Navigation, error) {
	if s.phase != PhaseFinished {
		return "", ErrWrongPhase
	}
	if !s.submitted {
		return "", ErrNotSubmitted
	}
	s.phase = PhaseClosed
	return NavigateToListing, nil
}
