package validators

import (
	"errors"
	"net/http"
	"strings"
)

var ErrMissingToken = errors.New("missing bearer token")

// ExtractBearerToken pulls the JWT out of the Authorization header. An
// x-auth-token header is accepted as a legacy fallback.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			token := strings.TrimSpace(header[7:])
			if token != "" {
				return token, nil
			}
		}
		return "", ErrMissingToken
	}
	if legacy := strings.TrimSpace(r.Header.Get("x-auth-token")); legacy != "" {
		return legacy, nil
	}
	return "", ErrMissingToken
}
