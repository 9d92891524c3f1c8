// Package settings implements the settings sidebar, its route table and the
// extensions page.
package settings

import (
	"strings"

	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
)

// RoutePrefix is the router path of the settings screen.
const RoutePrefix = "/settings"

// Page is a settings sub-page.
type Page int

const (
	General Page = iota
	Profile
	Privacy
	Audio
	Files
	Extensions
	Notifications
	Developer
)

var pageNames = [...]string{
	General:       "general",
	Profile:       "profile",
	Privacy:       "privacy",
	Audio:         "audio",
	Files:         "files",
	Extensions:    "extensions",
	Notifications: "notifications",
	Developer:     "developer",
}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return pageNames[General]
	}
	return pageNames[p]
}

// Path returns the router path of the page.
func (p Page) Path() string {
	return RoutePrefix + "/" + p.String()
}

// ParsePage maps a route identifier to a page. Unknown identifiers select
// General.
func ParsePage(route string) Page {
	name := strings.ToLower(strings.TrimSpace(route))
	name = strings.TrimPrefix(name, RoutePrefix+"/")
	for i, n := range pageNames {
		if n == name {
			return Page(i)
		}
	}
	events.Settings.UnknownRoute(route)
	return General
}

// Route is one entry of the settings navigation.
type Route struct {
	Page Page
	Name string
	Icon theme.Icon
}

// To returns the route identifier.
func (r Route) To() string {
	return r.Page.String()
}

var routeIcons = [...]theme.Icon{
	General:       theme.IconCog6Tooth,
	Profile:       theme.IconUser,
	Privacy:       theme.IconLockClosed,
	Audio:         theme.IconMusicalNote,
	Files:         theme.IconFolder,
	Extensions:    theme.IconBeaker,
	Notifications: theme.IconBellAlert,
	Developer:     theme.IconCommandLine,
}

// Routes returns the navigation entries in display order with localized names.
func Routes(loc i18n.Localizer) []Route {
	routes := make([]Route, len(pageNames))
	for i := range pageNames {
		p := Page(i)
		routes[i] = Route{Page: p, Name: lookup(loc, "settings."+p.String()), Icon: routeIcons[p]}
	}
	return routes
}

func lookup(loc i18n.Localizer, key string) string {
	if loc == nil {
		return key
	}
	return loc.Lookup(key)
}
