// ABOUTME: Resource detection for request logging.
// ABOUTME: Maps API paths to the console resource they touch.

package logging

import "strings"

// ResourceFromPath returns the resource slug of an /api/{resource} path, or
// "" for anything else.
func ResourceFromPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/api/")
	if !ok {
		return ""
	}
	slug, _, _ := strings.Cut(rest, "/")
	return slug
}
