package cache

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// directives holds the Cache-Control fields that decide whether a response
// already states its own freshness.
type directives struct {
	noStore bool
	noCache bool
	maxAge  bool
	sMaxAge bool
}

func parseCacheControl(header string) directives {
	var d directives
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := part
		if i := strings.IndexByte(part, '='); i >= 0 {
			key = strings.TrimSpace(part[:i])
		}
		switch strings.ToLower(key) {
		case "no-store":
			d.noStore = true
		case "no-cache":
			d.noCache = true
		case "max-age":
			d.maxAge = true
		case "s-maxage":
			d.sMaxAge = true
		}
	}
	return d
}

// freshnessTransport sits below httpcache and gives successful responses a
// max-age when the policy asks for it. httpcache then decides what to store.
type freshnessTransport struct {
	next     http.RoundTripper
	ttl      time.Duration
	override bool
	now      func() time.Time
}

func (t *freshnessTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp == nil {
		return resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}

	// httpcache computes age from Date and treats a missing Date as stale.
	if resp.Header.Get("Date") == "" {
		resp.Header.Set("Date", t.now().UTC().Format(http.TimeFormat))
	}

	maxAge := "max-age=" + strconv.Itoa(int(t.ttl/time.Second))
	if t.override {
		resp.Header.Del("Expires")
		resp.Header.Del("Pragma")
		resp.Header.Set("Cache-Control", maxAge)
		return resp, nil
	}

	cc := parseCacheControl(resp.Header.Get("Cache-Control"))
	if cc.noStore || cc.noCache || cc.maxAge || cc.sMaxAge || resp.Header.Get("Expires") != "" {
		return resp, nil
	}
	if existing := resp.Header.Get("Cache-Control"); existing != "" {
		resp.Header.Set("Cache-Control", existing+", "+maxAge)
	} else {
		resp.Header.Set("Cache-Control", maxAge)
	}
	return resp, nil
}
