// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort         = "3000"
	DefaultDBPath       = "songboard.db"
	DefaultRatingMax    = 7
	DefaultWeekAnchor   = "Wednesday"
	DefaultRolloverCron = "0 0 * * 3"
	DefaultRetryCount   = 3
	DefaultRetryBase    = 1 * time.Second
	DefaultHTTPTimeout  = 10 * time.Second
)

// Spotify endpoints
const (
	SpotifyAccountsURL = "https://accounts.spotify.com/api/token"
	SpotifyAPIURL      = "https://api.spotify.com/v1"
	// TokenExpiryLeeway is subtracted from the token lifetime so a token is
	// never used within a minute of expiring.
	TokenExpiryLeeway = 60 * time.Second
)

// Week length in days, start date inclusive.
const WeekSpanDays = 6

// Database tables
const (
	SongsTable     = "songs"
	RatingsTable   = "ratings"
	WeeksTable     = "weeks"
	RolloversTable = "rollovers"
	SettingsTable  = "settings"
)

// DateLayout is how week boundaries are stored (dates only, no time).
const DateLayout = "2006-01-02"
