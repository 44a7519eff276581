// Package device derives a coarse device class from a User-Agent header.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Device classes.
const (
	ClassUnknown = "Unknown"
	ClassBot     = "Bot"
	ClassMobile  = "Mobile"
	ClassTablet  = "Tablet"
	ClassDesktop = "Desktop"
)

// Classify returns the device class for a User-Agent. Empty or
// unrecognizable input yields ClassUnknown.
func Classify(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return ClassUnknown
	}

	ua := useragent.New(userAgent)
	switch {
	case ua.Bot():
		return ClassBot
	case ua.Platform() == "iPad" || (strings.Contains(ua.OS(), "Android") && !ua.Mobile()):
		return ClassTablet
	case ua.Mobile():
		return ClassMobile
	}

	os := ua.OS()
	switch {
	case strings.HasPrefix(os, "Windows"),
		strings.Contains(os, "Mac OS X"),
		strings.Contains(os, "Linux"),
		strings.Contains(os, "CrOS"),
		strings.Contains(os, "FreeBSD"):
		return ClassDesktop
	}

	return ClassUnknown
}
