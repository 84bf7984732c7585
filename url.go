package pagelens

import (
	"net"
	"net/url"
	"strings"
)

// NormalizedURL is a validated source URL. It carries the parsed form plus
// the derived origin used for internal/external link classification.
type NormalizedURL struct {
	url    *url.URL
	origin string
}

// NormalizeURL validates a raw URL for extraction. A missing scheme defaults
// to https. The hostname must not be a loopback, link-local, or private
// address, and must not be a bare IP literal at all; this check is the sole
// gate against SSRF and must run before any network fetch.
func NormalizeURL(raw string) (*NormalizedURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(EINVALID, "URL required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, Errorf(EINVALID, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EUNSUPPORTED, "unsupported URL scheme %q", u.Scheme)
	}
	if err := checkHostname(u.Hostname()); err != nil {
		return nil, err
	}

	return &NormalizedURL{
		url:    u,
		origin: u.Scheme + "://" + u.Host,
	}, nil
}

// checkHostname rejects hosts that point at internal infrastructure.
func checkHostname(host string) error {
	lower := strings.ToLower(host)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return Errorf(EFORBIDDEN, "host %q is not allowed", host)
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil
	}
	// Loopback (127.0.0.0/8, ::1), private (10/8, 172.16/12, 192.168/16,
	// fc00::/7), link-local (169.254/16, fe80::/10), unspecified (0.0.0.0, ::).
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
		return Errorf(EFORBIDDEN, "host %q is a private or internal address", host)
	}
	// Bare IP literals are how internal infrastructure is usually addressed;
	// reject them even when the range looks public.
	return Errorf(EFORBIDDEN, "IP address hosts are not allowed")
}

// String returns the normalized URL.
func (n *NormalizedURL) String() string {
	return n.url.String()
}

// Origin returns scheme://host (including any port).
func (n *NormalizedURL) Origin() string {
	return n.origin
}

// Hostname returns the host without any port.
func (n *NormalizedURL) Hostname() string {
	return n.url.Hostname()
}

// Resolve returns the absolute form of a possibly relative reference.
// Absolute http(s) references pass through unchanged, protocol-relative
// references inherit the scheme, root-relative paths inherit the origin, and
// anything else resolves against the full base path. Returns "" on
// unparseable input; callers skip such references.
func (n *NormalizedURL) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return n.url.Scheme + ":" + ref
	case strings.HasPrefix(ref, "/"):
		return n.origin + ref
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return n.url.ResolveReference(parsed).String()
}

// IsExternal reports whether an absolute URL belongs to a different origin
// than the source document. Default ports are ignored, so
// https://example.com:443/x is internal to https://example.com.
func (n *NormalizedURL) IsExternal(absolute string) bool {
	u, err := url.Parse(absolute)
	if err != nil {
		return false
	}
	return u.Scheme+"://"+stripDefaultPort(u.Scheme, u.Host) !=
		n.url.Scheme+"://"+stripDefaultPort(n.url.Scheme, n.url.Host)
}

// stripDefaultPort drops an explicit port that matches the scheme's default.
func stripDefaultPort(scheme, host string) string {
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		return strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		return strings.TrimSuffix(host, ":443")
	}
	return host
}
