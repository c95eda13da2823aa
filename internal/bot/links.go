package bot

import "regexp"

var (
	trackLinkRegex    = regexp.MustCompile(`https://open\.spotify\.com/track/[a-zA-Z0-9]+`)
	playlistLinkRegex = regexp.MustCompile(`https://open\.spotify\.com/playlist/[a-zA-Z0-9]+`)
	trackIDRegex      = regexp.MustCompile(`/track/([a-zA-Z0-9]+)`)
	playlistIDRegex   = regexp.MustCompile(`/playlist/([a-zA-Z0-9]+)`)
)

// ExtractTrackLinks returns every Spotify track link in the text.
func ExtractTrackLinks(text string) []string {
	return trackLinkRegex.FindAllString(text, -1)
}

// ExtractPlaylistLinks returns every Spotify playlist link in the text.
func ExtractPlaylistLinks(text string) []string {
	return playlistLinkRegex.FindAllString(text, -1)
}

// TrackID extracts the track identifier from a track URL, or "".
func TrackID(url string) string {
	m := trackIDRegex.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// PlaylistID extracts the playlist identifier from a playlist URL, or "".
func PlaylistID(url string) string {
	m := playlistIDRegex.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
