package types

import "fmt"

// Platform represents a collection platform the backend can ingest from
type Platform string

const (
	PlatformX         Platform = "x"
	PlatformTelegram  Platform = "telegram"
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformWeb       Platform = "web"
)

// AllPlatforms returns all valid platforms
func AllPlatforms() []Platform {
	return []Platform{
		PlatformX,
		PlatformTelegram,
		PlatformYouTube,
		PlatformInstagram,
		PlatformWeb,
	}
}

// IsValid checks if the platform is valid
func (p Platform) IsValid() bool {
	switch p {
	case PlatformX,
		PlatformTelegram,
		PlatformYouTube,
		PlatformInstagram,
		PlatformWeb:
		return true
	default:
		return false
	}
}

// String returns the string representation of the platform
func (p Platform) String() string {
	return string(p)
}

// ParsePlatform parses a string into a Platform
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid platform: %s", s)
	}
	return p, nil
}
