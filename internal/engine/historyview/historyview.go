// Package historyview - таблица истории попыток: сортировка по колонкам и удаление
// строк, которое меняет отображение только после подтверждения сервером.
package historyview

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

// DateLayout - формат даты в таблице
const DateLayout = "2006-01-02 15:04:05"

// Column - сортируемая колонка
type Column string

const (
	ColumnUser      Column = "user"
	ColumnTestTitle Column = "testTitle"
	ColumnScore     Column = "score"
	ColumnDate      Column = "date"
)

// Columns - колонки в порядке отображения
var Columns = []Column{ColumnUser, ColumnTestTitle, ColumnScore, ColumnDate}

// ParseColumn разбирает имя колонки
func ParseColumn(name string) (Column, error) {
	for _, c := range Columns {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown column %q", name)
}

// Direction - направление сортировки
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Indicator - значок направления в заголовке
func (d Direction) Indicator() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// API - вызовы сервера, нужные таблице
type API interface {
	DeleteHistory(ctx context.Context, id uint) error
	ClearHistory(ctx context.Context) error
}

// View - состояние таблицы
type View struct {
	rows []entity.HistoryRecord
	// следующее направление для каждой колонки, по умолчанию по возрастанию
	next map[Column]Direction

	sortedBy  Column
	sortedDir Direction
}

// New создает таблицу из уже загруженных записей
func New(records []entity.HistoryRecord) *View {
	rows := make([]entity.HistoryRecord, len(records))
	copy(rows, records)
	return &View{rows: rows, next: make(map[Column]Direction, len(Columns))}
}

// Rows возвращает строки в текущем порядке
func (v *View) Rows() []entity.HistoryRecord {
	out := make([]entity.HistoryRecord, len(v.rows))
	copy(out, v.rows)
	return out
}

// Len - количество строк
func (v *View) Len() int { return len(v.rows) }

// SortedBy возвращает колонку с индикатором и направление последней сортировки
func (v *View) SortedBy() (Column, Direction, bool) {
	return v.sortedBy, v.sortedDir, v.sortedBy != ""
}

// NextDirection - направление, которое применит следующий клик по колонке
func (v *View) NextDirection(col Column) Direction {
	if d, ok := v.next[col]; ok {
		return d
	}
	return Ascending
}

// Sort - клик по заголовку: сортирует строки по колонке в ее очередном
// направлении и переключает направление только для этой колонки.
// Порядок равных ключей сохраняется. Данные на сервере не меняются.
func (v *View) Sort(col Column) Direction {
	dir := v.NextDirection(col)
	less := lessFunc(col)
	sort.SliceStable(v.rows, func(i, j int) bool {
		if dir == Ascending {
			return less(v.rows[i], v.rows[j])
		}
		return less(v.rows[j], v.rows[i])
	})
	v.next[col] = -dir
	v.sortedBy = col
	v.sortedDir = dir
	return dir
}

func lessFunc(col Column) func(a, b entity.HistoryRecord) bool {
	switch col {
	case ColumnUser:
		return func(a, b entity.HistoryRecord) bool { return a.User < b.User }
	case ColumnTestTitle:
		return func(a, b entity.HistoryRecord) bool { return a.TestTitle < b.TestTitle }
	case ColumnScore:
		return func(a, b entity.HistoryRecord) bool { return a.Score < b.Score }
	default:
		// по метке времени, а не по строке отображения
		return func(a, b entity.HistoryRecord) bool { return a.Date < b.Date }
	}
}

// DeleteRow удаляет запись на сервере и, только при успехе, из таблицы
func (v *View) DeleteRow(ctx context.Context, api API, id uint) error {
	if err := api.DeleteHistory(ctx, id); err != nil {
		return err
	}
	for i, r := range v.rows {
		if r.ID == id {
			v.rows = append(v.rows[:i], v.rows[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAll очищает историю на сервере и, только при успехе, таблицу
func (v *View) DeleteAll(ctx context.Context, api API) error {
	if err := api.ClearHistory(ctx); err != nil {
		return err
	}
	v.rows = v.rows[:0]
	return nil
}

// Row - строка для отрисовки
type Row struct {
	ID        uint
	User      string
	TestTitle string
	Score     string
	Date      string
}

// Render строит строки для вывода; даты в часовом поясе loc (nil - локальный)
func (v *View) Render(loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}
	out := make([]Row, len(v.rows))
	for i, r := range v.rows {
		out[i] = Row{
			ID:        r.ID,
			User:      r.User,
			TestTitle: r.TestTitle,
			Score:     strconv.Itoa(r.Score),
			Date:      r.Time().In(loc).Format(DateLayout),
		}
	}
	return out
}

// Header возвращает подпись колонки с индикатором, если по ней отсортировано последним
func (v *View) Header(col Column) string {
	titles := map[Column]string{
		ColumnUser:      "User",
		ColumnTestTitle: "Test",
		ColumnScore:     "Score",
		ColumnDate:      "Date",
	}
	title := titles[col]
	if v.sortedBy == col {
		return title + " " + v.sortedDir.Indicator()
	}
	return title
}
