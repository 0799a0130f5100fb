package share

import (
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link carrying the share content.
func WhatsAppLink(content Content) string {
	return "https://wa.me/?text=" + url.QueryEscape(shareBody(content))
}

// EmailLink builds a mailto link with the share content as subject and body.
func EmailLink(content Content) string {
	body := content.Text
	if body != "" {
		body += "\n\n"
	}
	body += content.URL

	q := url.Values{}
	q.Set("subject", content.Title)
	q.Set("body", body)
	// mailto expects %20, not '+', for spaces.
	return "mailto:?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
