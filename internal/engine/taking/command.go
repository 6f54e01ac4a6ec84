package taking

import (
	"context"
	"fmt"
)

// Command - действие пользователя
type Command interface {
	isCommand()
}

// SelectOption - клик по варианту (по всей его области, не только по радиокнопке)
type SelectOption struct{ Index int }

// AdvanceQuestion - кнопка Next/Finish
type AdvanceQuestion struct{}

// DismissResult - закрытие окна результата
type DismissResult struct{}

func (SelectOption) isCommand()    {}
func (AdvanceQuestion) isCommand() {}
func (DismissResult) isCommand()   {}

// Apply применяет команду. Если Advance завершил попытку, результат сразу
// отправляется через recorder. Возвращает навигацию, если она нужна.
func (s *Session) Apply(ctx context.Context, cmd Command, recorder Recorder) (Navigation, error) {
	switch c := cmd.(type) {
	case SelectOption:
		return "", s.Select(c.Index)
	case AdvanceQuestion:
		if err := s.Advance(); err != nil {
			return "", err
		}
		if s.phase == PhaseFinished {
			return "", s.Submit(ctx, recorder)
		}
		return "", nil
	case DismissResult:
		return s.Dismiss()
	default:
		return "", fmt.Errorf("unknown command %T", cmd)
	}
}
