package player

import "strings"

var mobileUASubstrings = []string{
	"iphone",
	"ipad",
	"ipod",
	"android",
	"blackberry",
	"windows phone",
	"mobile",
}

// IsMobileUserAgent reports whether the hosting environment looks like a
// mobile browser. It is computed once per mount and only routes presentation
// decisions (overlay sizing, auto-unmute); it never affects resolution.
func IsMobileUserAgent(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, s := range mobileUASubstrings {
		if strings.Contains(ua, s) {
			return true
		}
	}
	return false
}
