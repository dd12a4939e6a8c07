// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package urlclean strips tracking parameters from reference and figure URLs.
package urlclean

import (
	"errors"
	"net/url"
	"strings"
)

// trackingParams are the query keys removed by Clean.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"url_ver":      true,
	"rfr_id":       true,
	"rfr_dat":      true,
}

// IsTrackingParam reports whether key is one of the removed tracking keys.
func IsTrackingParam(key string) bool {
	return trackingParams[key]
}

// Clean removes tracking parameters from rawURL's query string. Remaining
// parameters keep their original order and encoding. If nothing remains the
// "?" is dropped. Clean never fails: input that does not parse is returned
// as-is, except for bad percent escapes, which leave the query readable.
func Clean(rawURL string) string {
	if _, err := url.Parse(rawURL); err != nil {
		var escErr url.EscapeError
		if !errors.As(err, &escErr) {
			return rawURL
		}
	}

	q := strings.IndexByte(rawURL, '?')
	if q < 0 {
		return rawURL
	}
	end := len(rawURL)
	if h := strings.IndexByte(rawURL[q:], '#'); h >= 0 {
		end = q + h
	}
	query := rawURL[q+1 : end]
	if query == "" {
		return rawURL
	}

	pairs := strings.Split(query, "&")
	kept := make([]string, 0, len(pairs))
	removed := false
	for _, pair := range pairs {
		key, _, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if IsTrackingParam(key) {
			removed = true
			continue
		}
		kept = append(kept, pair)
	}
	if !removed {
		return rawURL
	}

	var b strings.Builder
	b.Grow(len(rawURL))
	b.WriteString(rawURL[:q])
	if len(kept) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(kept, "&"))
	}
	b.WriteString(rawURL[end:])
	return b.String()
}
