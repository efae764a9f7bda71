// Package viewport classifies a request as coming from a mobile or a wide viewport.
package viewport

import (
	"net/http"
	"regexp"
)

// Query parameter that forces a presentation.
const (
	ViewParam = "view"
	ViewCards = "cards"
	ViewTable = "table"
)

var mobileUA = regexp.MustCompile(`(?i)android.+mobile|iphone|ipod|windows phone|blackberry|opera mini|iemobile|mobile safari`)

// Detect reports whether the request comes from a mobile viewport.
// An explicit ?view=cards|table wins, then the Sec-CH-UA-Mobile client hint,
// then a User-Agent match.
func Detect(r *http.Request) bool {
	switch r.URL.Query().Get(ViewParam) {
	case ViewCards:
		return true
	case ViewTable:
		return false
	}

	switch r.Header.Get("Sec-CH-UA-Mobile") {
	case "?1":
		return true
	case "?0":
		return false
	}

	return mobileUA.MatchString(r.UserAgent())
}
