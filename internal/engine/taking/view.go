package taking

import "fmt"

// OptionView - вариант ответа на экране
type OptionView struct {
	Index    int
	Text     string
	Selected bool
}

// QuestionView - экран текущего вопроса
type QuestionView struct {
	Number      int // с 1
	Total       int
	Text        string
	Options     []OptionView
	ActionLabel string
}

// ResultView - экран результата
type ResultView struct {
	Score          int
	Total          int
	ElapsedSeconds int
	Saved          bool
}

// Summary - строка результата
func (r ResultView) Summary() string {
	return fmt.Sprintf("Result: %d/%d, Time: %ds", r.Score, r.Total, r.ElapsedSeconds)
}

// View - то, что нужно отрисовать; заполнено ровно одно поле
type View struct {
	Title    string
	Question *QuestionView
	Result   *ResultView
}

// View строит отображение из состояния, ничего не меняя
func (s *Session) View() View {
	v := View{Title: s.test.Title}
	if s.phase != PhaseQuestion {
		v.Result = &ResultView{
			Score:          s.score,
			Total:          s.Total(),
			ElapsedSeconds: s.ElapsedSeconds(),
			Saved:          s.submitted,
		}
		return v
	}

	q := s.current()
	options := make([]OptionView, len(q.Options))
	for i, text := range q.Options {
		options[i] = OptionView{Index: i, Text: text, Selected: i == s.selected}
	}
	label := ActionNext
	if s.index == s.Total()-1 {
		label = ActionFinish
	}
	v.Question = &QuestionView{
		Number:      s.index + 1,
		Total:       s.Total(),
		Text:        q.Question,
		Options:     options,
		ActionLabel: label,
	}
	return v
}
