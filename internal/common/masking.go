package common

import "regexp"

// credentialPatterns match Authorization material that must never reach the
// logs verbatim.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
	regexp.MustCompile(`(?i)Basic\s+[A-Za-z0-9+/]+=*`),
}

// MaskAuthorization replaces credential material in s with a masked marker.
// Values that match no known scheme are masked wholesale: an unknown shape
// is still a credential.
func MaskAuthorization(s string) string {
	if s == "" {
		return ""
	}
	masked := s
	hit := false
	for _, p := range credentialPatterns {
		if p.MatchString(masked) {
			masked = p.ReplaceAllString(masked, "***MASKED***")
			hit = true
		}
	}
	if !hit {
		return "***MASKED***"
	}
	return masked
}
