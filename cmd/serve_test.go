package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/charitytools/bidcraft/internal/funder"
	"github.com/charitytools/bidcraft/internal/model"
	"github.com/charitytools/bidcraft/internal/pipeline"
)

func newTestRouter(t *testing.T) (http.Handler, *pipeline.SessionStore) {
	t.Helper()
	resolver := funder.NewResolver()
	pl := pipeline.New(nil, resolver)
	store := pipeline.NewSessionStore()
	return newRouter(pl, store, resolver, rate.NewLimiter(rate.Inf, 0)), store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestServeHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeQuestions(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var questions []model.Question
	decode(t, rec, &questions)
	require.Len(t, questions, len(model.Catalog))
	assert.Equal(t, model.FieldAmount, questions[0].ID)
}

func TestServeFunderLookup(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/funders/Comic%20Relief", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile funder.Profile
	decode(t, rec, &profile)
	assert.Equal(t, "Comic Relief", profile.Name)
	assert.NotEmpty(t, profile.Values)
}

func TestServeCreateSession(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/sessions", map[string]string{
		"funderName": "National Lottery Community Fund",
		"userInput":  "We need £50,000 for a one-off 1 year project helping 200 young people.",
		"mode":       "notes",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var view struct {
		Session model.Session    `json:"session"`
		Gaps    []string         `json:"gaps"`
		Quest   []model.Question `json:"questions"`
	}
	decode(t, rec, &view)

	assert.NotEmpty(t, view.Session.ID)
	assert.Equal(t, "£50,000", view.Session.Answers[model.FieldAmount])
	assert.Equal(t, "One-off project", view.Session.Answers[model.FieldFundingType])
	assert.NotEmpty(t, view.Gaps)
	assert.Len(t, view.Quest, len(model.Catalog))
}

func TestServeCreateSession_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing_funder", map[string]string{"userInput": "text"}},
		{"missing_input", map[string]string{"funderName": "Comic Relief"}},
		{"bad_mode", map[string]string{"funderName": "Comic Relief", "userInput": "text", "mode": "formal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/sessions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("malformed_body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("{nope"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServeSessionFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/sessions", map[string]string{
		"funderName": "Comic Relief",
		"userInput":  "We need £10,000 of ongoing funding for families facing poverty.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Session model.Session `json:"session"`
	}
	decode(t, rec, &created)
	id := created.Session.ID

	rec = doJSON(t, router, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/sessions/"+id, map[string]any{
		"answers": map[string]string{
			model.FieldReach:   "150 families",
			model.FieldSuccess: "Families report reduced financial stress.",
		},
		"notSure": map[string]bool{model.FieldSustainability: true},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var patched struct {
		Session model.Session `json:"session"`
		Gaps    []string      `json:"gaps"`
	}
	decode(t, rec, &patched)
	assert.Equal(t, "150 families", patched.Session.Answers[model.FieldReach])
	assert.True(t, patched.Session.NotSure[model.FieldSustainability])
	require.NotEmpty(t, patched.Gaps)
	assert.Contains(t, strings.Join(patched.Gaps, "\n"), "not sure yet")

	rec = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out pipeline.Output
	decode(t, rec, &out)
	assert.Equal(t, "local", out.Source)
	assert.Contains(t, out.Document, "<h4>Introduction</h4>")
	assert.Contains(t, out.Document, "150 families")
	assert.NotEmpty(t, out.Alignment)
}

func TestServePatchSession_UnknownQuestion(t *testing.T) {
	router, store := newTestRouter(t)
	sess := store.Create(&model.Session{
		Mode:       model.ModeNotes,
		FunderName: "Comic Relief",
		Answers:    model.Answers{},
		NotSure:    model.NotSure{},
	})

	rec := doJSON(t, router, http.MethodPatch, "/sessions/"+sess.ID, map[string]any{
		"answers": map[string]string{"budgetBreakdown": "£5,000"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "budgetBreakdown")
}

func TestServeSessionNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, req := range []struct {
		method, path string
	}{
		{http.MethodGet, "/sessions/nope"},
		{http.MethodPatch, "/sessions/nope"},
		{http.MethodPost, "/sessions/nope/generate"},
	} {
		rec := doJSON(t, router, req.method, req.path, map[string]any{})
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", req.method, req.path)
	}
}

func TestServeRateLimit(t *testing.T) {
	resolver := funder.NewResolver()
	pl := pipeline.New(nil, resolver)
	store := pipeline.NewSessionStore()
	router := newRouter(pl, store, resolver, rate.NewLimiter(rate.Limit(0), 0))

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
