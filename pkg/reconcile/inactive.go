package reconcile

import "regexp"

// Deactivated records keep their description text but prefix it with DEL and
// an optional sequence number, sometimes behind a leading tab.
var inactiveMarker = regexp.MustCompile(`^\t?DEL\d*`)

// IsInactive reports whether a description carries the deactivation marker.
// Inactive records are treated as absent from the import, which deletes any
// previously persisted counterpart.
func IsInactive(description *string) bool {
	if description == nil {
		return false
	}
	return inactiveMarker.MatchString(*description)
}
