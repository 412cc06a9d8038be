package routes

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yash-kumarsharma/vellum/internal/api/middleware"
	"github.com/yash-kumarsharma/vellum/internal/config"
	"github.com/yash-kumarsharma/vellum/internal/testutils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "test-secret"
	config.Issuer = "vellum-test"
	middleware.Init()

	db := testutils.NewTestDB(t)
	r := gin.New()
	RegisterRoutes(r, db, nil)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "secret123", "name": "Tester",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	decodeBody(t, w, &me)
	assert.Equal(t, "a@x.com", me.Data.Email)

	// duplicate registration conflicts
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret123", "name": "Again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// protected routes reject missing and garbage tokens
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type formEnvelope struct {
	Data struct {
		ID        uint   `json:"ID"`
		PublicID  string `json:"public_id"`
		Title     string `json:"title"`
		IsPublic  bool   `json:"is_public"`
		Questions []struct {
			ID       uint   `json:"id"`
			Label    string `json:"label"`
			Position int    `json:"position"`
		} `json:"questions"`
	} `json:"data"`
}

func createForm(t *testing.T, r *gin.Engine, token string, body gin.H) formEnvelope {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/forms", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var env formEnvelope
	decodeBody(t, w, &env)
	return env
}

func TestFormLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "a@x.com")

	env := createForm(t, r, token, gin.H{
		"title":     "Survey",
		"is_public": true,
		"questions": []gin.H{
			{"type": "TEXT", "label": "Name"},
			{"type": "CHECKBOX", "label": "Toppings", "options": []string{"A", "B"}},
		},
	})
	formID := env.Data.ID
	require.NotZero(t, formID)
	require.Len(t, env.Data.Questions, 2)
	assert.Equal(t, 0, env.Data.Questions[0].Position)

	// public view is reachable without auth, by id and by share id
	w := doJSON(t, r, http.MethodGet, "/api/forms/public/"+env.Data.PublicID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// rejected question type fails binding
	w = doJSON(t, r, http.MethodPost, "/api/forms", token, gin.H{
		"questions": []gin.H{{"type": "ESSAY", "label": "Nope"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// update replaces the question set
	w = doJSON(t, r, http.MethodPut, "/api/forms/"+itoa(formID), token, gin.H{
		"title":     "Survey v2",
		"questions": []gin.H{{"type": "DROPDOWN", "label": "Pick", "options": []string{"X"}}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated formEnvelope
	decodeBody(t, w, &updated)
	assert.Equal(t, "Survey v2", updated.Data.Title)
	require.Len(t, updated.Data.Questions, 1)
	assert.Equal(t, "Pick", updated.Data.Questions[0].Label)

	// another account cannot see or delete it
	otherToken := registerAndLogin(t, r, "b@x.com")
	w = doJSON(t, r, http.MethodGet, "/api/forms/"+itoa(formID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/forms/"+itoa(formID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/forms/"+itoa(formID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/forms/"+itoa(formID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitAndExportFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "a@x.com")

	env := createForm(t, r, token, gin.H{
		"title":     "Feedback",
		"is_public": true,
		"questions": []gin.H{
			{"type": "TEXT", "label": "Comment"},
			{"type": "CHECKBOX", "label": "Liked", "options": []string{"UI", "Speed"}},
		},
	})
	qComment := itoa(env.Data.Questions[0].ID)
	qLiked := itoa(env.Data.Questions[1].ID)

	// anonymous submission against the share id
	w := doJSON(t, r, http.MethodPost, "/api/responses/"+env.Data.PublicID, "", gin.H{
		qComment: "great",
		qLiked:   []string{"UI", "Speed"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// non-string answer values fail binding
	w = doJSON(t, r, http.MethodPost, "/api/responses/"+env.Data.PublicID, "", gin.H{
		qComment: 42,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// owner lists responses; anonymous callers cannot
	w = doJSON(t, r, http.MethodGet, "/api/responses/"+itoa(env.Data.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeBody(t, w, &list)
	assert.EqualValues(t, 1, list.Total)

	w = doJSON(t, r, http.MethodGet, "/api/responses/"+itoa(env.Data.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// CSV export carries the header row plus the one response
	w = doJSON(t, r, http.MethodGet, "/api/exports/"+itoa(env.Data.ID)+"/csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	rows, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Submitted At", "Comment", "Liked"}, rows[0])
	assert.Equal(t, "great", rows[1][1])
	assert.Equal(t, "UI, Speed", rows[1][2])

	w = doJSON(t, r, http.MethodGet, "/api/exports/"+itoa(env.Data.ID)+"/excel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	// analytics counts the checkbox picks
	w = doJSON(t, r, http.MethodGet, "/api/analytics/"+itoa(env.Data.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var analytics struct {
		Data struct {
			TotalResponses int64 `json:"total_responses"`
			Questions      []struct {
				Label  string         `json:"label"`
				Counts map[string]int `json:"counts"`
			} `json:"questions"`
		} `json:"data"`
	}
	decodeBody(t, w, &analytics)
	assert.EqualValues(t, 1, analytics.Data.TotalResponses)
	require.Len(t, analytics.Data.Questions, 2)
	assert.Equal(t, 1, analytics.Data.Questions[1].Counts["UI"])
}

func TestSubmitPrivateFormRejected(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "a@x.com")

	env := createForm(t, r, token, gin.H{"title": "Hidden"})

	w := doJSON(t, r, http.MethodPost, "/api/responses/"+env.Data.PublicID, "", gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/forms/public/"+env.Data.PublicID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollaboratorEndpoints(t *testing.T) {
	r := newTestRouter(t)
	owner := registerAndLogin(t, r, "a@x.com")
	registerAndLogin(t, r, "b@x.com")

	env := createForm(t, r, owner, gin.H{"title": "Shared"})

	w := doJSON(t, r, http.MethodPost, "/api/collaborators/"+itoa(env.Data.ID), owner, gin.H{
		"user_id": 2, "role": "editor",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/collaborators/"+itoa(env.Data.ID), owner, gin.H{
		"user_id": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/collaborators/"+itoa(env.Data.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var collabs struct {
		Data []struct {
			Role string `json:"role"`
			User struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	decodeBody(t, w, &collabs)
	require.Len(t, collabs.Data, 1)
	assert.Equal(t, "editor", collabs.Data[0].Role)
	assert.Equal(t, "b@x.com", collabs.Data[0].User.Email)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
