package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Authorizer adds credentials to an outgoing request. A non-nil error
// fails the call before it is sent.
type Authorizer func(*http.Request) error

// BearerAuth sends "Authorization: Bearer <token>".
func BearerAuth(token string) Authorizer {
	return func(r *http.Request) error {
		r.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// BasicAuth sends HTTP basic credentials.
func BasicAuth(username, password string) Authorizer {
	return func(r *http.Request) error {
		r.SetBasicAuth(username, password)
		return nil
	}
}

// APIKeyAuth sends key in header. An empty header means X-API-Key.
func APIKeyAuth(header, key string) Authorizer {
	if header == "" {
		header = "X-API-Key"
	}
	return func(r *http.Request) error {
		r.Header.Set(header, key)
		return nil
	}
}

// APIKeyQueryAuth sends key as the query parameter param.
func APIKeyQueryAuth(param, key string) Authorizer {
	return func(r *http.Request) error {
		q := r.URL.Query()
		q.Set(param, key)
		r.URL.RawQuery = q.Encode()
		return nil
	}
}

// OAuth2Auth takes the access token from ts, reusing it until it expires.
func OAuth2Auth(ts oauth2.TokenSource) Authorizer {
	if ts == nil {
		return func(*http.Request) error {
			return errors.New("oauth2: no token source")
		}
	}
	reuse := oauth2.ReuseTokenSource(nil, ts)
	return func(r *http.Request) error {
		tok, err := reuse.Token()
		if err != nil {
			return fmt.Errorf("oauth2 token: %w", err)
		}
		tok.SetAuthHeader(r)
		return nil
	}
}

// Chain applies each authorizer in order and stops at the first error.
func Chain(auths ...Authorizer) Authorizer {
	return func(r *http.Request) error {
		for _, a := range auths {
			if a == nil {
				continue
			}
			if err := a(r); err != nil {
				return err
			}
		}
		return nil
	}
}

func (a Authorizer) apply(r *http.Request) error {
	if a == nil {
		return nil
	}
	return a(r)
}
