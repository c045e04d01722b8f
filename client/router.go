package client

import "fmt"

// Tab identifies one of the five application panels.
type Tab string

const (
	TabProfile   Tab = "profile"
	TabLog       Tab = "log"
	TabAnalyze   Tab = "analyze"
	TabChefCard  Tab = "chefcard"
	TabEducation Tab = "education"
)

var tabs = map[Tab]bool{
	TabProfile:   true,
	TabLog:       true,
	TabAnalyze:   true,
	TabChefCard:  true,
	TabEducation: true,
}

// ViewRouter tracks which panel is active. It holds only the tab itself;
// panels keep no state across switches and rebuild from the live mirrors
// when reselected.
type ViewRouter struct {
	current Tab
}

// NewViewRouter starts on the profile tab.
func NewViewRouter() *ViewRouter {
	return &ViewRouter{current: TabProfile}
}

// Current returns the active tab.
func (r *ViewRouter) Current() Tab {
	return r.current
}

// Navigate switches to the given tab. Unknown tabs are rejected and the
// active tab is unchanged.
func (r *ViewRouter) Navigate(tab Tab) error {
	if !tabs[tab] {
		return fmt.Errorf("unknown tab %q", tab)
	}
	r.current = tab
	return nil
}
