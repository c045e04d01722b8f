package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/service"
	"github.com/safebite/safebite/internal/testhelpers"
)

// staticValidator accepts any token of the form "test-<uuid>".
type staticValidator struct{}

func (staticValidator) ValidateToken(_ context.Context, token string) (*middleware.TokenClaims, error) {
	if !strings.HasPrefix(token, "test-") {
		return nil, fmt.Errorf("invalid token")
	}
	userID, err := uuid.Parse(strings.TrimPrefix(token, "test-"))
	if err != nil {
		return nil, fmt.Errorf("invalid token")
	}
	return &middleware.TokenClaims{UserID: userID}, nil
}

type testEnv struct {
	router *gin.Engine
	userID uuid.UUID
	token  string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	testhelpers.SeedAllergens(t, db)

	profiles := service.NewProfileService(db, service.NopPublisher{})
	logs := service.NewLogService(db, service.NopPublisher{})
	catalog := service.NewCatalogService(db, service.NopPublisher{})
	analyzer := service.NewAnalyzerService(db)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/allergens", NewCatalogHandler(catalog).ListAllergens)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(staticValidator{}))
	protected.GET("/profile", NewProfileHandler(profiles).Get)
	protected.PUT("/profile", NewProfileHandler(profiles).Update)
	protected.GET("/logs", NewLogHandler(logs).List)
	protected.POST("/logs", NewLogHandler(logs).Append)
	protected.POST("/analyze-text", NewAnalyzeHandler(analyzer).Analyze)
	protected.GET("/chef-card", NewChefCardHandler(profiles, catalog).Get)

	userID := uuid.New()
	return &testEnv{
		router: router,
		userID: userID,
		token:  "test-" + userID.String(),
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestProfileRequiresAuth(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileGetBeforeFirstSave(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodGet, "/api/v1/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found")
}

func TestProfileUpdateAndGet(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPut, "/api/v1/profile", `{"allergens":["peanut"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Merge semantics: omitting allergens leaves them in place.
	w = env.do(http.MethodPut, "/api/v1/profile", `{"secondaryRestrictions":"vegan"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/profile", "")
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		Allergens             []string `json:"allergens"`
		SecondaryRestrictions string   `json:"secondaryRestrictions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, []string{"peanut"}, profile.Allergens)
	assert.Equal(t, "vegan", profile.SecondaryRestrictions)
}

func TestLogAppendAndList(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/api/v1/logs", `{"foodIntake":"Pad thai","symptomsExperienced":["Hives"],"severity":"Severe"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Log added successfully")

	w = env.do(http.MethodGet, "/api/v1/logs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []struct {
		FoodIntake string `json:"foodIntake"`
		Severity   string `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Pad thai", entries[0].FoodIntake)
	assert.Equal(t, "Severe", entries[0].Severity)
}

func TestLogAppendRejectsMissingFields(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/api/v1/logs", `{"symptomsExperienced":["Hives"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/v1/logs", `{"foodIntake":"Toast","symptomsExperienced":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/api/v1/analyze-text", `{"text":"satay sauce with whey","userAllergens":["peanut"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result struct {
			DetectedIngredients    []string `json:"detected_ingredients"`
			PotentialAllergyIssues []struct {
				Type string `json:"type"`
			} `json:"potential_allergy_issues"`
		} `json:"analysis_result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"milk", "peanut"}, resp.Result.DetectedIngredients)
	require.Len(t, resp.Result.PotentialAllergyIssues, 1)
	assert.Equal(t, "Direct Match", resp.Result.PotentialAllergyIssues[0].Type)
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/api/v1/analyze-text", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChefCardEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodGet, "/api/v1/chef-card", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPut, "/api/v1/profile", `{"allergens":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/api/v1/chef-card", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/api/v1/profile", `{"allergens":["peanut"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/api/v1/chef-card", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CardText string `json:"card_text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.CardText, "Dear Chef/Restaurant Staff,")
	assert.Contains(t, resp.CardText, "- Peanut (peanuts, groundnut)")
}

func TestAllergenCatalogIsPublic(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/allergens", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var allergens []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &allergens))
	assert.Len(t, allergens, 3)
}
