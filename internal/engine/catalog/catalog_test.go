package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

func uintPtr(v uint) *uint { return &v }

func twoQuestions() entity.QuestionList {
	return entity.QuestionList{
		{Question: "a", Options: []string{"x", "y"}, Answer: 0},
		{Question: "b", Options: []string{"x", "y"}, Answer: 1},
	}
}

func fixture() []entity.Test {
	return []entity.Test{
		{ID: 1, Title: "A", Difficulty: "Easy", Questions: twoQuestions()},
		{ID: 2, Title: "B", Difficulty: "Hard", Questions: twoQuestions(), Prereq: uintPtr(1)},
	}
}

func TestIsLocked_PrereqGating(t *testing.T) {
	tests := fixture()

	cases := []struct {
		name    string
		history []entity.HistoryRecord
		locked  bool
	}{
		{"no attempts on prereq", nil, true},
		{"best below total", []entity.HistoryRecord{{User: "Guest", TestID: 1, Score: 1}}, true},
		{"perfect score unlocks", []entity.HistoryRecord{
			{User: "Guest", TestID: 1, Score: 0},
			{User: "Guest", TestID: 1, Score: 2},
			{User: "Guest", TestID: 1, Score: 1},
		}, false},
		{"other user's perfect score does not count", []entity.HistoryRecord{{User: "alice", TestID: 1, Score: 2}}, true},
		{"perfect score on another test does not count", []entity.HistoryRecord{{User: "Guest", TestID: 2, Score: 2}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.locked, IsLocked(tests[1], tests, tc.history, "Guest"))
		})
	}
}

func TestIsLocked_NoPrereqOrMissingPrereq(t *testing.T) {
	tests := fixture()
	assert.False(t, IsLocked(tests[0], tests, nil, "Guest"))

	orphan := entity.Test{ID: 3, Questions: twoQuestions(), Prereq: uintPtr(99)}
	assert.False(t, IsLocked(orphan, tests, nil, "Guest"), "ссылка на несуществующий тест не блокирует")

	zero := entity.Test{ID: 4, Prereq: uintPtr(0)}
	assert.False(t, IsLocked(zero, tests, nil, "Guest"))
}

func TestBuild_LastAndBest(t *testing.T) {
	history := []entity.HistoryRecord{
		{ID: 1, User: "Guest", TestID: 1, Score: 2},
		{ID: 2, User: "Guest", TestID: 1, Score: 1},
		{ID: 3, User: "alice", TestID: 1, Score: 0},
	}

	entries := Build(fixture(), history, "Guest")
	require.Len(t, entries, 2)

	a := entries[0]
	assert.Equal(t, uint(1), a.TestID)
	assert.Equal(t, 2, a.QuestionCount)
	assert.Equal(t, "1/2", a.LastLabel())
	assert.Equal(t, "2/2", a.BestLabel())
	assert.Equal(t, "Available", a.StatusLabel())

	b := entries[1]
	assert.Nil(t, b.Last)
	assert.Equal(t, NoScoreLabel, b.LastLabel())
	assert.Equal(t, NoScoreLabel, b.BestLabel())
	assert.False(t, b.Locked, "лучший результат на A равен 2/2")
}

func TestBuild_LockedWhenBestIsOne(t *testing.T) {
	history := []entity.HistoryRecord{{User: "Guest", TestID: 1, Score: 1}}

	entries := Build(fixture(), history, "Guest")
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Locked)
	assert.Equal(t, "Locked", entries[1].StatusLabel())
}

func TestBestScore(t *testing.T) {
	_, ok := BestScore(nil, "Guest", 1)
	assert.False(t, ok)

	best, ok := BestScore([]entity.HistoryRecord{{User: "Guest", TestID: 1, Score: 0}}, "Guest", 1)
	assert.True(t, ok)
	assert.Equal(t, 0, best)
}
