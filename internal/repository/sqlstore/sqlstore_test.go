package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-app/internal/config"
	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-app/internal/pkg/errors"
	"github.com/yourusername/quiz-app/pkg/database"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.TestRepository    = (*TestRepo)(nil)
	_ repository.HistoryRepository = (*HistoryRepo)(nil)
)

// newTestDB создает чистую БД SQLite в памяти со схемой
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.MigrateDB(db, config.DriverSQLite))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func uintPtr(v uint) *uint { return &v }

func TestUserRepo_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(newTestDB(t))

	require.NoError(t, repo.Create(ctx, "alice"))
	require.NoError(t, repo.Create(ctx, "alice"), "повторная вставка не должна быть ошибкой")
	require.NoError(t, repo.Create(ctx, "bob"))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)
}

func TestUserRepo_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(newTestDB(t))

	require.NoError(t, repo.Create(ctx, "alice"))
	require.NoError(t, repo.Delete(ctx, "nobody"))
	require.NoError(t, repo.Delete(ctx, "alice"))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names, "пустой список сериализуется как [], а не null")
}

func TestTestRepo_CreateUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTestRepo(newTestDB(t))

	test := SampleTest()
	test.Prereq = uintPtr(0)
	require.NoError(t, repo.Create(ctx, test))
	require.NotZero(t, test.ID)
	assert.Nil(t, test.Prereq, "prereq=0 нормализуется в отсутствие")

	stored, err := repo.GetByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, SampleTest().Questions, stored.Questions)

	updated := &entity.Test{
		Title:      "Renamed",
		Difficulty: "Hard",
		Questions: entity.QuestionList{
			{Question: "c", Options: []string{"x", "y", "z"}, Answer: 2},
		},
		Prereq: uintPtr(42),
	}
	require.NoError(t, repo.Update(ctx, test.ID, updated))

	stored, err = repo.GetByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, "Hard", stored.Difficulty)
	assert.Equal(t, updated.Questions, stored.Questions)
	require.NotNil(t, stored.Prereq)
	assert.Equal(t, uint(42), *stored.Prereq)

	// Обновление без пререквизита должно его стереть
	updated.Prereq = nil
	require.NoError(t, repo.Update(ctx, test.ID, updated))
	stored, err = repo.GetByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Prereq)
}

func TestTestRepo_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewTestRepo(newTestDB(t))

	a, b := SampleTest(), SampleTest()
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.NotEqual(t, a.ID, b.ID)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err := repo.GetByID(ctx, a.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestTestRepo_ListMalformedQuestions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTestRepo(db)

	require.NoError(t, repo.Create(ctx, SampleTest()))
	require.NoError(t, db.Exec(`INSERT INTO tests(title, difficulty, questions) VALUES (?, ?, ?)`, "Broken", "Easy", "{oops").Error)

	_, err := repo.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStore))
}

func TestHistoryRepo_DeleteMissingLeavesTableUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepo(newTestDB(t))

	rec := &entity.HistoryRecord{User: "Guest", TestID: 1, TestTitle: "Sample Test", Score: 2, Date: 1700000000000}
	require.NoError(t, repo.Create(ctx, rec))
	require.NotZero(t, rec.ID)

	err := repo.Delete(ctx, 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *rec, list[0])

	require.NoError(t, repo.Delete(ctx, rec.ID))
	err = repo.Delete(ctx, rec.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "повторное удаление - NotFound")
}

func TestHistoryRepo_DeleteAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepo(newTestDB(t))

	require.NoError(t, repo.DeleteAll(ctx), "очистка пустой таблицы успешна")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.HistoryRecord{User: "u", TestID: 1, Score: i}))
	}
	require.NoError(t, repo.DeleteAll(ctx))
	require.NoError(t, repo.DeleteAll(ctx))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSeed_OnlyFillsEmptyTables(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users, tests := NewUserRepo(db), NewTestRepo(db)

	require.NoError(t, Seed(ctx, users, tests))
	require.NoError(t, Seed(ctx, users, tests), "повторный запуск ничего не добавляет")

	names, err := users.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.DefaultUsername}, names)

	list, err := tests.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, SampleTestTitle, list[0].Title)
	assert.Equal(t, 2, list[0].QuestionCount())
	assert.Equal(t, 3, list[0].Questions[0].Answer)
	assert.Equal(t, 0, list[0].Questions[1].Answer)
	assert.Nil(t, list[0].Prereq)
}

func TestSeed_KeepsExistingUsers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users, tests := NewUserRepo(db), NewTestRepo(db)

	require.NoError(t, users.Create(ctx, "alice"))
	require.NoError(t, Seed(ctx, users, tests))

	names, err := users.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names)
}
