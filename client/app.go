// Package client is the application-side layer of SafeBite: session
// management, live document mirrors over the websocket feed, the text
// analyzer client, chef card generation, and tab routing. Hosts embed it
// behind whatever UI they render; all state lives here, the UI reads it.
package client

import (
	"context"
	"net/http"
)

// App bundles the whole client stack against one server.
type App struct {
	Session  *SessionManager
	Feed     *Feed
	Profile  *ProfileStore
	Logs     *LogStore
	Catalog  *CatalogStore
	Analyzer *AnalyzerClient
	Router   *ViewRouter
}

// NewApp wires the full stack for the server at baseURL. Pass a nil
// httpClient for the default.
func NewApp(baseURL string, httpClient *http.Client) *App {
	session := NewSessionManager(baseURL, httpClient)
	feed := NewFeed(baseURL, session)
	catalog := NewCatalogStore(feed)

	return &App{
		Session:  session,
		Feed:     feed,
		Profile:  NewProfileStore(baseURL, httpClient, session, feed),
		Logs:     NewLogStore(baseURL, httpClient, session, feed),
		Catalog:  catalog,
		Analyzer: NewAnalyzerClient(baseURL, httpClient, session, catalog),
		Router:   NewViewRouter(),
	}
}

// Start bootstraps the session, connects the feed, and brings every
// mirror live. Partial failures tear nothing down; the caller decides
// whether to retry or run degraded.
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Bootstrap(ctx); err != nil {
		return err
	}
	if err := a.Feed.Connect(ctx); err != nil {
		return err
	}
	if err := a.Catalog.Start(); err != nil {
		return err
	}
	if err := a.Profile.Load(); err != nil {
		return err
	}
	return a.Logs.SubscribeAll()
}

// Stop cancels the mirrors and closes the feed.
func (a *App) Stop() {
	a.Profile.Close()
	a.Logs.Close()
	a.Catalog.Close()
	a.Feed.Close()
}
