package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpupo63/student-projects-backend/errs"
	"github.com/rpupo63/student-projects-backend/models"
	"github.com/rpupo63/student-projects-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const allowedOrigin = "http://localhost:3000"

type testAPI struct {
	handler      http.Handler
	projects     *MockProjectService
	applications *MockApplicationService
	accounts     *MockAccountService
	health       *MockHealthChecker
	tokens       *services.TokenIssuer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{
		projects:     new(MockProjectService),
		applications: new(MockApplicationService),
		accounts:     new(MockAccountService),
		health:       new(MockHealthChecker),
		tokens:       services.NewTokenIssuer("test-secret", time.Hour),
	}
	deps := Dependencies{
		Projects:     api.projects,
		Applications: api.applications,
		Accounts:     api.accounts,
		Tokens:       api.tokens,
		Health:       api.health,
	}
	api.handler = newRouter(deps,
		withConfig(map[string]string{"ACCEPTED_ORIGINS": allowedOrigin}),
		withStartupTime(time.Now().Add(-time.Minute)),
	)
	t.Cleanup(func() {
		api.projects.AssertExpectations(t)
		api.applications.AssertExpectations(t)
		api.accounts.AssertExpectations(t)
		api.health.AssertExpectations(t)
	})
	return api
}

// do sends a request as userID; zero sends it without a token
func (a *testAPI) do(t *testing.T, method, target, body string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		token, err := a.tokens.Issue(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuthentication(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodGet, "/projects/my", "", 0)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeError(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, errs.ErrMissingToken.Error(), resp.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		api := newTestAPI(t)
		req := httptest.NewRequest(http.MethodGet, "/projects/my", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, errs.ErrInvalidToken.Error(), decodeError(t, rec).Message)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		api := newTestAPI(t)
		token, err := services.NewTokenIssuer("other-secret", time.Hour).Issue(1)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/projects/my", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		api := newTestAPI(t)
		api.projects.On("Mine", mock.Anything, uint(7), services.ListParams{}).
			Return(&services.ProjectPage{Projects: []services.ProjectView{}, Count: 0}, nil)

		rec := api.do(t, http.MethodGet, "/projects/my", "", 7)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"projects":[],"count":0}`, rec.Body.String())
	})
}

func TestPublicRoutes(t *testing.T) {
	t.Run("root", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodGet, "/", "", 0)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Student projects API v1", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	})

	t.Run("request id is echoed", func(t *testing.T) {
		api := newTestAPI(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
	})

	t.Run("health ok", func(t *testing.T) {
		api := newTestAPI(t)
		api.health.On("Ping", mock.Anything).Return(nil)

		rec := api.do(t, http.MethodGet, "/health", "", 0)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Message)
		assert.Equal(t, "ok", resp.Database)
		assert.GreaterOrEqual(t, resp.Uptime, 60.0)
	})

	t.Run("health degraded when the database is down", func(t *testing.T) {
		api := newTestAPI(t)
		api.health.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		rec := api.do(t, http.MethodGet, "/health", "", 0)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Degraded", resp.Message)
		assert.Equal(t, "unavailable", resp.Database)
	})
}

func TestRegisterAndLogin(t *testing.T) {
	t.Run("register returns a token", func(t *testing.T) {
		api := newTestAPI(t)
		in := services.RegisterInput{Email: "ann@uni.edu", Password: "secret1", FullName: "Ann Lee"}
		api.accounts.On("Register", mock.Anything, in).Return("tok", nil)

		rec := api.do(t, http.MethodPost, "/auth/register", `{"email":"ann@uni.edu","password":"secret1","fullName":"Ann Lee"}`, 0)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"token":"tok"}`, rec.Body.String())
	})

	t.Run("register with taken email", func(t *testing.T) {
		api := newTestAPI(t)
		api.accounts.On("Register", mock.Anything, mock.AnythingOfType("services.RegisterInput")).
			Return("", errs.NewConflictError("Email already exists"))

		rec := api.do(t, http.MethodPost, "/auth/register", `{"email":"ann@uni.edu","password":"secret1","fullName":"Ann Lee"}`, 0)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already exists", decodeError(t, rec).Message)
	})

	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"missing email", `{"password":"secret1","fullName":"Ann"}`, "email", errs.ErrMissingRequiredField.Error()},
		{"bad email", `{"email":"nope","password":"secret1","fullName":"Ann"}`, "email", errs.ErrInvalidField.Error()},
		{"short password", `{"email":"ann@uni.edu","password":"abc","fullName":"Ann"}`, "password", errs.ErrInvalidField.Error()},
		{"missing full name", `{"email":"ann@uni.edu","password":"secret1"}`, "fullName", errs.ErrMissingRequiredField.Error()},
		{"malformed body", `{"email":`, "payload", errs.ErrMalformedPayload.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			rec := api.do(t, http.MethodPost, "/auth/register", tt.body, 0)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.field, resp.Field)
			assert.Equal(t, tt.message, resp.Message)
		})
	}

	t.Run("login with wrong password", func(t *testing.T) {
		api := newTestAPI(t)
		api.accounts.On("Login", mock.Anything, services.LoginInput{Email: "ann@uni.edu", Password: "wrong"}).
			Return("", errs.NewUnauthorizedError("Invalid email or password"))

		rec := api.do(t, http.MethodPost, "/auth/login", `{"email":"ann@uni.edu","password":"wrong"}`, 0)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", decodeError(t, rec).Message)
	})

	t.Run("login returns a token", func(t *testing.T) {
		api := newTestAPI(t)
		api.accounts.On("Login", mock.Anything, services.LoginInput{Email: "ann@uni.edu", Password: "secret1"}).
			Return("tok", nil)

		rec := api.do(t, http.MethodPost, "/auth/login", `{"email":"ann@uni.edu","password":"secret1"}`, 0)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"token":"tok"}`, rec.Body.String())
	})
}

func TestProjectRoutes(t *testing.T) {
	t.Run("list passes search and paging", func(t *testing.T) {
		api := newTestAPI(t)
		api.projects.On("List", mock.Anything, uint(3), services.ListParams{Search: "robot", Skip: 10, Take: 5}).
			Return(&services.ProjectPage{Projects: []services.ProjectView{{ID: 1, Name: "Robot arm"}}, Count: 11}, nil)

		rec := api.do(t, http.MethodGet, "/projects?search=robot&skip=10&take=5", "", 3)

		require.Equal(t, http.StatusOK, rec.Code)
		var page services.ProjectPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, int64(11), page.Count)
		require.Len(t, page.Projects, 1)
		assert.Equal(t, "Robot arm", page.Projects[0].Name)
	})

	t.Run("list rejects negative skip", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodGet, "/projects?skip=-1", "", 3)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "skip", decodeError(t, rec).Field)
	})

	t.Run("list rejects non-numeric take", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodGet, "/projects?take=many", "", 3)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "take", decodeError(t, rec).Field)
	})

	t.Run("get project", func(t *testing.T) {
		api := newTestAPI(t)
		isOwner := true
		api.projects.On("Get", mock.Anything, uint(3), uint(42)).
			Return(&services.ProjectView{ID: 42, Name: "Drone", IsOwner: &isOwner}, nil)

		rec := api.do(t, http.MethodGet, "/projects/getProject/42", "", 3)

		require.Equal(t, http.StatusOK, rec.Code)
		var view services.ProjectView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, uint(42), view.ID)
		require.NotNil(t, view.IsOwner)
		assert.True(t, *view.IsOwner)
	})

	t.Run("get project with invalid id", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-4"} {
			api := newTestAPI(t)
			rec := api.do(t, http.MethodGet, "/projects/getProject/"+id, "", 3)

			assert.Equal(t, http.StatusBadRequest, rec.Code, id)
			assert.Equal(t, "id", decodeError(t, rec).Field, id)
		}
	})

	t.Run("get missing project", func(t *testing.T) {
		api := newTestAPI(t)
		api.projects.On("Get", mock.Anything, uint(3), uint(9)).Return(nil, errs.NewNotFoundError("Project not found"))

		rec := api.do(t, http.MethodGet, "/projects/getProject/9", "", 3)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Project not found", decodeError(t, rec).Message)
	})

	t.Run("by tag requires tag", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodGet, "/projects/byTag", "", 3)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "tag", decodeError(t, rec).Field)
	})

	t.Run("by tag", func(t *testing.T) {
		api := newTestAPI(t)
		api.projects.On("ByTag", mock.Anything, "AI").Return([]services.ProjectView{{ID: 5}}, nil)

		rec := api.do(t, http.MethodGet, "/projects/byTag?tag=AI", "", 3)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("create project", func(t *testing.T) {
		api := newTestAPI(t)
		api.projects.On("Create", mock.Anything, uint(3), mock.MatchedBy(func(in services.ProjectInput) bool {
			return in.Name == "Drone" && len(in.CustomCategories) == 1 && in.CustomCategories[0] == "Aerial"
		})).Return(&models.Project{ID: 12}, nil)

		rec := api.do(t, http.MethodPost, "/projects",
			`{"name":"Drone","description":"Build a drone","categories":[1],"customCategories":["Aerial"]}`, 3)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("create project without name", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodPost, "/projects", `{"description":"Build a drone"}`, 3)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name", decodeError(t, rec).Field)
	})

	t.Run("edit by someone else", func(t *testing.T) {
		api := newTestAPI(t)
		api.projects.On("Edit", mock.Anything, uint(3), mock.AnythingOfType("services.ProjectPatch")).
			Return(errs.NewForbiddenError("You are not project creator"))

		rec := api.do(t, http.MethodPatch, "/projects", `{"projectId":12,"name":"New"}`, 3)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "You are not project creator", decodeError(t, rec).Message)
	})

	t.Run("edit requires project id", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(t, http.MethodPatch, "/projects", `{"name":"New"}`, 3)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "projectId", decodeError(t, rec).Field)
	})

	t.Run("choices", func(t *testing.T) {
		api := newTestAPI(t)
		api.projects.On("Choices").Return(models.ProjectChoices{})

		rec := api.do(t, http.MethodGet, "/projects/getProjectChoices", "", 3)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestApplicationRoutes(t *testing.T) {
	t.Run("apply", func(t *testing.T) {
		api := newTestAPI(t)
		api.applications.On("Create", mock.Anything, uint(4), services.ApplyInput{ProjectID: 12, Message: "hi"}).
			Return(&models.Application{ID: 1, ProjectID: 12}, nil)

		rec := api.do(t, http.MethodPost, "/projects/apply", `{"projectId":12,"message":"hi"}`, 4)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("apply twice", func(t *testing.T) {
		api := newTestAPI(t)
		api.applications.On("Create", mock.Anything, uint(4), mock.AnythingOfType("services.ApplyInput")).
			Return(nil, errs.NewConflictError("Application already exists"))

		rec := api.do(t, http.MethodPost, "/projects/apply", `{"projectId":12}`, 4)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Application already exists", decodeError(t, rec).Message)
	})

	t.Run("process with wrong action", func(t *testing.T) {
		api := newTestAPI(t)
		api.applications.On("Process", mock.Anything, uint(3), services.ProcessInput{ApplicationID: 1, Action: 7}).
			Return(errs.NewBadRequestErrorWithField("Wrong action", "action", "action must be 2 or 3"))

		rec := api.do(t, http.MethodPost, "/projects/processApplication", `{"applicationId":1,"action":7}`, 3)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "Wrong action", resp.Message)
		assert.Equal(t, "action", resp.Field)
	})

	t.Run("process without application id reports the action", func(t *testing.T) {
		api := newTestAPI(t)
		api.applications.On("Process", mock.Anything, uint(3), services.ProcessInput{Action: 5}).
			Return(errs.NewBadRequestErrorWithField("Wrong action", "action", "action must be 2 or 3"))

		rec := api.do(t, http.MethodPost, "/projects/processApplication", `{"action":5}`, 3)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "Wrong action", resp.Message)
		assert.Equal(t, "action", resp.Field)
	})

	t.Run("process accepted", func(t *testing.T) {
		api := newTestAPI(t)
		api.applications.On("Process", mock.Anything, uint(3), services.ProcessInput{ApplicationID: 1, Action: models.StatusAccepted}).
			Return(nil)

		rec := api.do(t, http.MethodPost, "/projects/processApplication", `{"applicationId":1,"action":2}`, 3)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("incoming applications failing in storage", func(t *testing.T) {
		api := newTestAPI(t)
		api.applications.On("Incoming", mock.Anything, uint(3)).
			Return([]services.ApplicationView(nil), errors.New("db gone"))

		rec := api.do(t, http.MethodGet, "/projects/getIncomingApplications", "", 3)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, serverErrorMessage, decodeError(t, rec).Message)
	})
}

func TestAccountRoutes(t *testing.T) {
	t.Run("profile of deleted user", func(t *testing.T) {
		api := newTestAPI(t)
		api.accounts.On("Profile", mock.Anything, uint(5)).Return(nil, errs.NewForbiddenError("User does not exist"))

		rec := api.do(t, http.MethodGet, "/account/profile", "", 5)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("update profile", func(t *testing.T) {
		api := newTestAPI(t)
		api.accounts.On("UpdateProfile", mock.Anything, uint(5), mock.MatchedBy(func(p services.ProfilePatch) bool {
			return p.Bio != nil && *p.Bio == "hello" && p.FullName == nil
		})).Return(nil)

		rec := api.do(t, http.MethodPatch, "/account/profile", `{"bio":"hello"}`, 5)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("set categories", func(t *testing.T) {
		api := newTestAPI(t)
		api.accounts.On("SetCategories", mock.Anything, uint(5), services.CategorySelection{
			Categories:       []uint{1, 2},
			CustomCategories: []string{"Rust"},
		}).Return(nil)

		rec := api.do(t, http.MethodPost, "/account/setCategories", `{"categories":[1,2],"customCategories":["Rust"]}`, 5)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("set unknown faculty", func(t *testing.T) {
		api := newTestAPI(t)
		api.accounts.On("SetFaculty", mock.Anything, uint(5), services.FacultyInput{FacultyID: 99}).
			Return(errs.NewBadRequestErrorWithField("Faculty does not exist", "facultyId", ""))

		rec := api.do(t, http.MethodPost, "/account/setFaculty", `{"facultyId":99}`, 5)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "facultyId", decodeError(t, rec).Field)
	})
}

func TestCORS(t *testing.T) {
	preflight := func(api *testAPI, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed origin", func(t *testing.T) {
		api := newTestAPI(t)
		rec := preflight(api, allowedOrigin)

		assert.Less(t, rec.Code, http.StatusMultipleChoices)
		assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		api := newTestAPI(t)
		rec := preflight(api, "http://evil.test")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
