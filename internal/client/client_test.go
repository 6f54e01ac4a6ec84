package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-app/internal/config"
	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/engine/accounts"
	"github.com/yourusername/quiz-app/internal/engine/historyview"
	"github.com/yourusername/quiz-app/internal/engine/settings"
	"github.com/yourusername/quiz-app/internal/engine/taking"
	"github.com/yourusername/quiz-app/internal/handler"
	"github.com/yourusername/quiz-app/internal/repository/redis"
	"github.com/yourusername/quiz-app/internal/repository/sqlstore"
	"github.com/yourusername/quiz-app/internal/service"
	"github.com/yourusername/quiz-app/pkg/database"
)

var (
	_ taking.Recorder      = (*API)(nil)
	_ historyview.API      = (*API)(nil)
	_ accounts.API         = (*API)(nil)
	_ settings.API         = (*API)(nil)
	_ accounts.Preferences = (*Preferences)(nil)
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newServer запускает настоящий Resource API поверх SQLite в памяти
func newServer(t *testing.T) *API {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.MigrateDB(db, config.DriverSQLite))
	t.Cleanup(func() { database.Close(db) })

	userRepo := sqlstore.NewUserRepo(db)
	testRepo := sqlstore.NewTestRepo(db)
	require.NoError(t, sqlstore.Seed(context.Background(), userRepo, testRepo))

	tests := service.NewTestService(testRepo, redis.NoopCacheRepo{}, time.Minute)
	history := service.NewHistoryService(sqlstore.NewHistoryRepo(db))
	router := handler.NewRouter(handler.RouterDeps{
		Users:   handler.NewUserHandler(service.NewUserService(userRepo)),
		Tests:   handler.NewTestHandler(tests),
		History: handler.NewHistoryHandler(history, time.UTC),
		Catalog: handler.NewCatalogHandler(service.NewCatalogService(tests, history)),
		Health:  handler.NewHealthHandler(db),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return NewAPI(srv.URL + "/")
}

func TestAPI_TakeSampleTestEndToEnd(t *testing.T) {
	ctx := context.Background()
	api := newServer(t)

	tests, err := api.ListTests(ctx)
	require.NoError(t, err)
	require.Len(t, tests, 1)

	s, err := taking.NewSession(taking.SessionContext{User: entity.DefaultUsername}, tests[0], nil)
	require.NoError(t, err)
	for _, cmd := range []taking.Command{
		taking.SelectOption{Index: 3}, taking.AdvanceQuestion{},
		taking.SelectOption{Index: 0}, taking.AdvanceQuestion{},
	} {
		_, err := s.Apply(ctx, cmd, api)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, s.Score())
	assert.NotZero(t, s.RecordID())

	history, err := api.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, sqlstore.SampleTestTitle, history[0].TestTitle)
	assert.Equal(t, 2, history[0].Score)
	assert.Equal(t, s.RecordID(), history[0].ID)

	entries, err := api.Catalog(ctx, entity.DefaultUsername)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2/2", entries[0].BestLabel())
}

func TestAPI_DeleteMissingHistory(t *testing.T) {
	api := newServer(t)

	err := api.DeleteHistory(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAPI_HistoryViewDeletes(t *testing.T) {
	ctx := context.Background()
	api := newServer(t)
	for _, score := range []int{1, 2} {
		_, err := api.CreateHistory(ctx, entity.HistoryRecord{User: "Alice", TestID: 1, TestTitle: "T", Score: score, Date: 1000})
		require.NoError(t, err)
	}

	records, err := api.ListHistory(ctx)
	require.NoError(t, err)
	view := historyview.New(records)
	view.Sort(historyview.ColumnScore)
	view.Sort(historyview.ColumnScore)
	require.Equal(t, 2, view.Rows()[0].Score)

	require.NoError(t, view.DeleteRow(ctx, api, view.Rows()[0].ID))
	assert.Equal(t, 1, view.Len())

	require.NoError(t, view.DeleteAll(ctx, api))
	records, err = api.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAPI_SettingsAndGating(t *testing.T) {
	ctx := context.Background()
	api := newServer(t)
	editor := settings.NewEditor(api)

	editor.SetForm(settings.Form{Title: "A", Difficulty: "Easy", Questions: `[{"question":"q1","options":["x","y"],"answer":0},{"question":"q2","options":["x","y"],"answer":1}]`})
	a, err := editor.Submit(ctx)
	require.NoError(t, err)

	editor.SetForm(settings.Form{Title: "B", Questions: `[]`, Prereq: "0"})
	b, err := editor.Submit(ctx)
	require.NoError(t, err)

	// пререквизит назначается правкой
	require.NoError(t, editor.StartEdit(ctx, b))
	f := editor.Form()
	f.Prereq = "  " + formatID(a)
	editor.SetForm(f)
	_, err = editor.Submit(ctx)
	require.NoError(t, err)

	got, err := api.GetTest(ctx, b)
	require.NoError(t, err)
	require.NotNil(t, got.Prereq)
	assert.Equal(t, a, *got.Prereq)

	_, err = api.CreateHistory(ctx, entity.HistoryRecord{User: "Alice", TestID: a, TestTitle: "A", Score: 1, Date: 1})
	require.NoError(t, err)

	entries, err := api.Catalog(ctx, "Alice")
	require.NoError(t, err)
	for _, e := range entries {
		if e.TestID == b {
			assert.True(t, e.Locked)
			assert.Equal(t, "Locked", e.StatusLabel())
		}
	}

	require.NoError(t, editor.Delete(ctx, b))
	_, err = api.GetTest(ctx, b)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestAPI_Accounts(t *testing.T) {
	ctx := context.Background()
	api := newServer(t)
	prefs, err := LoadPreferences(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	m := accounts.NewManager(prefs, api)

	_, err = m.Add(ctx, "Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", prefs.ActiveUser())

	assert.ErrorIs(t, m.Delete(ctx, "Alice Smith"), accounts.ErrActiveUser)
	require.NoError(t, m.Switch(entity.DefaultUsername))
	require.NoError(t, m.Delete(ctx, "Alice Smith"))

	users, err := api.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.DefaultUsername}, users)
}

func TestAPI_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()
	api := NewAPI(srv.URL)

	err := api.AddUser(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestAPI_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAPI(url).ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestPreferences_PersistAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultUsername, prefs.ActiveUser())
	assert.Equal(t, DefaultAPIURL, prefs.APIURL())

	require.NoError(t, prefs.SetActiveUser("Bob"))
	require.NoError(t, prefs.SetAPIURL("http://quiz.local:8080"))

	again, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, "Bob", again.ActiveUser())
	assert.Equal(t, "http://quiz.local:8080", again.APIURL())
}
