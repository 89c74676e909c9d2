// Package site describes the public page map served to the front end.
package site

import "strings"

type Route struct {
	Path   string `json:"path"`
	Page   string `json:"page"`
	Chrome bool   `json:"chrome"` // shared header/footer
	Admin  bool   `json:"admin"`
}

// Routes is the fixed page table. Admin pages render without chrome.
var Routes = []Route{
	{Path: "/", Page: "home", Chrome: true},
	{Path: "/activities", Page: "activities", Chrome: true},
	{Path: "/gallery", Page: "gallery", Chrome: true},
	{Path: "/contact", Page: "contact", Chrome: true},

	{Path: "/admin", Page: "admin_dashboard", Admin: true},
	{Path: "/admin/activities", Page: "admin_activities", Admin: true},
	{Path: "/admin/bookings", Page: "admin_bookings", Admin: true},
	{Path: "/admin/translations", Page: "admin_translations", Admin: true},
	{Path: "/admin/gallery", Page: "admin_gallery", Admin: true},
}

// NotFound is returned by Match for paths outside the table.
var NotFound = Route{Page: "not_found", Chrome: true}

// Match finds the route for path, ignoring a trailing slash and case.
func Match(path string) (Route, bool) {
	p := strings.ToLower(strings.TrimSpace(path))
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		p = "/"
	}
	for _, r := range Routes {
		if r.Path == p {
			return r, true
		}
	}
	nf := NotFound
	nf.Path = path
	return nf, false
}
