package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() QuestionList {
	return QuestionList{
		{Question: "What is 2+2?", Options: []string{"1", "2", "3", "4"}, Answer: 3},
		{Question: "Capital of France?", Options: []string{"Paris", "London", "Rome", "Berlin"}, Answer: 0},
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := &Question{Question: "Какой язык?", Options: []string{"Python", "Go", "Java", "Rust"}, Answer: 1}

	assert.True(t, q.IsCorrect(1), "IsCorrect должен вернуть true для правильного ответа")
	assert.False(t, q.IsCorrect(0))
	assert.False(t, q.IsCorrect(3))
	assert.False(t, q.IsCorrect(NoSelection), "отсутствие выбора всегда неверный ответ")
}

func TestQuestion_IsCorrect_InvalidAnswerIndex(t *testing.T) {
	// Битый ответ (-1) не должен засчитывать пустой выбор
	q := &Question{Options: []string{"A", "B"}, Answer: -1}

	assert.False(t, q.IsCorrect(NoSelection))
	assert.False(t, q.IsCorrect(0))
}

func TestQuestion_IsValidOption(t *testing.T) {
	q := &Question{Options: []string{"A", "B", "C", "D"}}

	for i := 0; i < 4; i++ {
		assert.True(t, q.IsValidOption(i), "индекс %d должен быть валидным", i)
	}
	assert.False(t, q.IsValidOption(-1))
	assert.False(t, q.IsValidOption(4))
	assert.Equal(t, 4, q.OptionsCount())
}

func TestQuestionList_ValueScanRoundTrip(t *testing.T) {
	original := sampleQuestions()

	value, err := original.Value()
	require.NoError(t, err)

	text, ok := value.(string)
	require.True(t, ok, "Value должен возвращать строку для TEXT-колонки")

	var fromString QuestionList
	require.NoError(t, fromString.Scan(text))
	assert.Equal(t, original, fromString)

	var fromBytes QuestionList
	require.NoError(t, fromBytes.Scan([]byte(text)))
	assert.Equal(t, original, fromBytes)
}

func TestQuestionList_ValueNil(t *testing.T) {
	var empty QuestionList

	value, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestQuestionList_ScanNull(t *testing.T) {
	var l QuestionList
	require.NoError(t, l.Scan(nil))
	assert.NotNil(t, l)
	assert.Equal(t, 0, l.Len())
}

func TestQuestionList_ScanMalformed(t *testing.T) {
	var l QuestionList

	err := l.Scan("{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed questions payload")

	err = l.Scan(42)
	require.Error(t, err)
}

func TestDecodeQuestions_PreservesOrder(t *testing.T) {
	raw := []byte(`[{"question":"b","options":["z","y","x"],"answer":2},{"question":"a","options":["1"],"answer":0}]`)

	list, err := DecodeQuestions(raw)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Question)
	assert.Equal(t, []string{"z", "y", "x"}, list[0].Options)
	assert.Equal(t, 2, list[0].Answer)
	assert.Equal(t, "a", list[1].Question)
}
