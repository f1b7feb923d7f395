// Package urlutil normalizes base URL + endpoint pairs into a single
// request target.
package urlutil

import (
	"errors"
	"strings"
)

// ErrEmpty is returned when both the base and the endpoint are empty
// after trimming.
var ErrEmpty = errors.New("urlutil: base and endpoint are both empty")

// Join combines a base URL and an endpoint path into one well-formed
// URL. Trailing slashes on base and leading slashes on endpoint are
// stripped before joining. No percent-encoding or query-string handling
// is performed; query params travel separately.
func Join(base, endpoint string) (string, error) {
	base = strings.TrimRight(base, "/")
	endpoint = strings.TrimLeft(endpoint, "/")

	switch {
	case base == "" && endpoint == "":
		return "", ErrEmpty
	case base == "":
		return endpoint, nil
	case endpoint == "":
		return base, nil
	}
	return base + "/" + endpoint, nil
}
