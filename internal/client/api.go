// Package client - HTTP клиент Resource API и локальные настройки терминального клиента.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/engine/catalog"
	"github.com/yourusername/quiz-app/internal/handler/dto"
)

var (
	// ErrNetwork - запрос не выполнен или сервер ответил не 2xx
	ErrNetwork = errors.New("network error")
	// ErrNotFound - сервер ответил 404 на удаление записи истории
	ErrNotFound = errors.New("not found")
)

// API - клиент Resource API
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI создает клиент для сервера baseURL (например, http://localhost:3000)
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// do выполняет запрос; out == nil означает, что тело ответа не нужно
func (a *API) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to parse response of %s %s: %v", ErrNetwork, method, path, err)
	}
	return nil
}

// StatusError - ответ сервера не 2xx
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Is сопоставляет ответ с ErrNetwork
func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}

// ListUsers возвращает имена пользователей
func (a *API) ListUsers(ctx context.Context) ([]string, error) {
	var users []string
	if err := a.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddUser создает пользователя
func (a *API) AddUser(ctx context.Context, username string) error {
	return a.do(ctx, http.MethodPost, "/api/users", dto.CreateUserRequest{Username: username}, nil)
}

// DeleteUser удаляет пользователя
func (a *API) DeleteUser(ctx context.Context, username string) error {
	return a.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(username), nil, nil)
}

// ListTests возвращает все тесты
func (a *API) ListTests(ctx context.Context) ([]entity.Test, error) {
	var resp []dto.TestResponse
	if err := a.do(ctx, http.MethodGet, "/api/tests", nil, &resp); err != nil {
		return nil, err
	}
	tests := make([]entity.Test, len(resp))
	for i, t := range resp {
		tests[i] = testFromResponse(t)
	}
	return tests, nil
}

// GetTest возвращает один тест
func (a *API) GetTest(ctx context.Context, id uint) (entity.Test, error) {
	var resp dto.TestResponse
	if err := a.do(ctx, http.MethodGet, testPath(id), nil, &resp); err != nil {
		return entity.Test{}, err
	}
	return testFromResponse(resp), nil
}

// CreateTest создает тест и возвращает его id
func (a *API) CreateTest(ctx context.Context, test entity.Test) (uint, error) {
	var resp dto.IDResponse
	if err := a.do(ctx, http.MethodPost, "/api/tests", testRequest(test), &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UpdateTest заменяет тест
func (a *API) UpdateTest(ctx context.Context, id uint, test entity.Test) error {
	return a.do(ctx, http.MethodPut, testPath(id), testRequest(test), nil)
}

// DeleteTest удаляет тест
func (a *API) DeleteTest(ctx context.Context, id uint) error {
	return a.do(ctx, http.MethodDelete, testPath(id), nil, nil)
}

// ListHistory возвращает всю историю
func (a *API) ListHistory(ctx context.Context) ([]entity.HistoryRecord, error) {
	var records []entity.HistoryRecord
	if err := a.do(ctx, http.MethodGet, "/api/history", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateHistory сохраняет попытку и возвращает id записи
func (a *API) CreateHistory(ctx context.Context, record entity.HistoryRecord) (uint, error) {
	req := dto.CreateHistoryRequest{
		User:      record.User,
		TestID:    record.TestID,
		TestTitle: record.TestTitle,
		Score:     record.Score,
		Date:      record.Date,
	}
	var resp dto.IDResponse
	if err := a.do(ctx, http.MethodPost, "/api/history", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// DeleteHistory удаляет запись; 404 возвращается как ErrNotFound
func (a *API) DeleteHistory(ctx context.Context, id uint) error {
	err := a.do(ctx, http.MethodDelete, "/api/history/"+formatID(id), nil, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: history record %d", ErrNotFound, id)
	}
	return err
}

// ClearHistory удаляет всю историю
func (a *API) ClearHistory(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/api/history", nil, nil)
}

// Catalog возвращает список тестов с результатами и блокировками пользователя
func (a *API) Catalog(ctx context.Context, user string) ([]catalog.Entry, error) {
	var entries []catalog.Entry
	path := "/api/catalog?" + url.Values{"user": {user}}.Encode()
	if err := a.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func testPath(id uint) string {
	return "/api/tests/" + formatID(id)
}

func testRequest(t entity.Test) dto.TestRequest {
	return dto.TestRequest{
		Title:      t.Title,
		Difficulty: t.Difficulty,
		Questions:  []entity.Question(t.Questions),
		Prereq:     dto.OptionalID{Value: entity.NormalizePrereq(t.Prereq)},
	}
}

func testFromResponse(r dto.TestResponse) entity.Test {
	return entity.Test{
		ID:         r.ID,
		Title:      r.Title,
		Difficulty: r.Difficulty,
		Questions:  entity.QuestionList(r.Questions),
		Prereq:     r.Prereq,
	}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
