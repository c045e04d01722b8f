package client

import (
	"context"
	"net/http"

	"github.com/safebite/safebite/internal/types"
)

// AnalysisResult and AnalysisIssue are re-exported for hosts rendering
// analyzer output.
type (
	AnalysisResult = types.AnalysisResult
	AnalysisIssue  = types.AnalysisIssue
)

// AnalyzerClient submits free text to the server-side keyword analyzer.
type AnalyzerClient struct {
	api     *api
	session *SessionManager
	catalog *CatalogStore
}

// NewAnalyzerClient wires the analyzer to the session for auth and the
// catalog store for display-name resolution. catalog may be nil.
func NewAnalyzerClient(baseURL string, httpClient *http.Client, session *SessionManager, catalog *CatalogStore) *AnalyzerClient {
	return &AnalyzerClient{
		api:     newAPI(baseURL, httpClient),
		session: session,
		catalog: catalog,
	}
}

// Analyze submits text plus the caller's allergen ids. Fails fast without
// a session; a non-2xx response surfaces as *HTTPError with the server's
// body verbatim.
func (c *AnalyzerClient) Analyze(ctx context.Context, text string, userAllergens []string) (*AnalysisResult, error) {
	token, ok := c.session.Token()
	if !ok {
		return nil, ErrUnauthenticated
	}

	var resp struct {
		Result *AnalysisResult `json:"analysis_result"`
	}
	err := c.api.do(ctx, http.MethodPost, "/analyze-text", token, types.AnalyzeRequest{
		Text:          text,
		UserAllergens: userAllergens,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// IssueDisplayName resolves an issue's allergen id against the live
// catalog, falling back to the name echoed by the server.
func (c *AnalyzerClient) IssueDisplayName(issue AnalysisIssue) string {
	if c.catalog != nil {
		if allergen, ok := c.catalog.Lookup(issue.AllergenID); ok {
			return allergen.Name
		}
	}
	return issue.Name
}
