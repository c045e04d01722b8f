package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
)

func TestAnalyzeRequiresSession(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	c := NewAnalyzerClient(ts.URL, nil, NewSessionManager(ts.URL, nil), nil)
	_, err := c.Analyze(context.Background(), "peanut sauce", nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 0, calls)
}

func TestAnalyzeSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/analyze-text", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"analysis_result":{"detected_ingredients":["peanut"],"potential_allergy_issues":[{"allergenId":"peanut","name":"Peanut","type":"Direct Match","reason":"'Peanut' detected and is in your profile."}]}}`))
	}))
	defer ts.Close()

	c := NewAnalyzerClient(ts.URL, nil, sessionWith("tok", "user-1"), nil)
	result, err := c.Analyze(context.Background(), "peanut sauce", []string{"peanut"})
	require.NoError(t, err)

	assert.Equal(t, []string{"peanut"}, result.DetectedIngredients)
	require.Len(t, result.PotentialAllergyIssues, 1)
	assert.Equal(t, "Direct Match", result.PotentialAllergyIssues[0].Type)
}

func TestAnalyzeSurfacesServerErrorVerbatim(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"no text provided for analysis"}`))
	}))
	defer ts.Close()

	c := NewAnalyzerClient(ts.URL, nil, sessionWith("tok", "user-1"), nil)
	_, err := c.Analyze(context.Background(), "", nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "no text provided for analysis")
}

func TestIssueDisplayNamePrefersCatalog(t *testing.T) {
	subs := newFakeSubscriber()
	catalog := NewCatalogStore(subs)
	require.NoError(t, catalog.Start())
	subs.push(t, docpath.Allergens, []models.Allergen{{ID: "peanut", Name: "Peanut (Arachis)"}})

	c := NewAnalyzerClient("http://127.0.0.1:0", nil, sessionWith("tok", "user-1"), catalog)

	issue := AnalysisIssue{AllergenID: "peanut", Name: "Peanut"}
	assert.Equal(t, "Peanut (Arachis)", c.IssueDisplayName(issue))

	// Unknown ids fall back to the server's echoed name.
	unknown := AnalysisIssue{AllergenID: "durian", Name: "Durian"}
	assert.Equal(t, "Durian", c.IssueDisplayName(unknown))
}
