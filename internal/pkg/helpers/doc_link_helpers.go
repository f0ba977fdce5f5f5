package helpers

import (
	"fmt"
	"regexp"
)

// PreviewURLTemplate is the embeddable variant of a shared document link.
const PreviewURLTemplate = "https://docs.google.com/document/d/%s/preview"

var docIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// EmbedURL rewrites a viewable document link into its preview form. Links
// without a document identifier are returned unchanged.
func EmbedURL(link string) string {
	if link == "" {
		return ""
	}
	match := docIDPattern.FindStringSubmatch(link)
	if match == nil {
		return link
	}
	return fmt.Sprintf(PreviewURLTemplate, match[1])
}
