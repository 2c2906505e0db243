package session

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceSummary renders a short human-readable device description from a
// browser User-Agent header, e.g. "Chrome 120 on Mac OS X (desktop)".
// Used for session display metadata and login audit logs only; it carries
// no identifying precision beyond browser family, OS, and form factor.
func DeviceSummary(userAgentString string) string {
	if userAgentString == "" {
		return "unknown device"
	}

	ua := useragent.New(userAgentString)
	browser, version := ua.Browser()

	browser = strings.TrimSpace(browser)
	if browser == "" {
		browser = "unknown browser"
	}
	major := ""
	if version != "" {
		if parts := strings.Split(version, "."); len(parts) > 0 && parts[0] != "" {
			major = " " + parts[0]
		}
	}

	os := strings.TrimSpace(ua.OS())
	if os == "" {
		os = "unknown OS"
	}

	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}

	return browser + major + " on " + os + " (" + platform + ")"
}
