package httpclient

import (
	"errors"
	"net/url"
)

// sensitiveParams are query parameters whose values never reach spans or logs.
var sensitiveParams = []string{"apiKey", "api_key", "key"}

const redacted = "REDACTED"

// RedactURL renders u without userinfo and with sensitive query values replaced.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.User = nil
	if clean.RawQuery != "" {
		q := clean.Query()
		for _, name := range sensitiveParams {
			if q.Has(name) {
				q.Set(name, redacted)
			}
		}
		clean.RawQuery = q.Encode()
	}
	return clean.String()
}

// RedactError rewrites the URL carried by a *url.Error, as returned by
// http.Client.Do, so the error can be logged or shown.
func RedactError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: redacted, Err: urlErr.Err}
	}
	return &url.Error{Op: urlErr.Op, URL: RedactURL(u), Err: urlErr.Err}
}
