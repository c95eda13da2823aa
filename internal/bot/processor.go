// Package bot turns chat messages containing Spotify links into song
// submissions. The chat gateway itself lives outside this package; it feeds
// messages in and delivers the returned reply text.
package bot

import (
	"context"
	"errors"
	"fmt"

	"songboard/internal/app"
	"songboard/internal/domain"
	"songboard/internal/logger"
	"songboard/internal/spotify"
)

const (
	unknownTitle  = "Unknown Track"
	unknownArtist = "Unknown Artist"
)

// ChatMessage is one inbound message from the watched channel.
type ChatMessage struct {
	ChannelID string
	MessageID string
	Author    string
	Content   string
}

// TrackSource provides track metadata. *spotify.Client implements it.
type TrackSource interface {
	GetTrack(ctx context.Context, trackID string) (*spotify.Track, error)
	GetPlaylistTracks(ctx context.Context, playlistID string) ([]spotify.Track, error)
}

// Processor scans messages for Spotify links and records submissions.
type Processor struct {
	Songs     *app.SongService
	Tracks    TrackSource
	ChannelID string
	Logger    *logger.Logger
}

func NewProcessor(songs *app.SongService, tracks TrackSource, channelID string, log *logger.Logger) *Processor {
	return &Processor{Songs: songs, Tracks: tracks, ChannelID: channelID, Logger: log}
}

// HandleMessage processes one message and returns the reply to send back to
// the channel, or "" when the message needs no reply. Playlist links take
// precedence: when a message carries both, its track links are skipped so
// playlist tracks are not submitted twice.
func (p *Processor) HandleMessage(ctx context.Context, msg ChatMessage) (string, error) {
	if msg.ChannelID != p.ChannelID {
		return "", nil
	}

	if playlists := ExtractPlaylistLinks(msg.Content); len(playlists) > 0 {
		return p.handlePlaylists(ctx, msg, playlists)
	}

	links := ExtractTrackLinks(msg.Content)
	if len(links) == 0 {
		return "", nil
	}

	var lastReply string
	for _, link := range links {
		reply, err := p.submitTrackLink(ctx, msg, link, nil)
		if err != nil {
			p.Logger.Error("Failed to process track link", "url", link, "error", err)
			lastReply = "❌ Sorry, I couldn't process that Spotify link. Please try again."
			continue
		}
		lastReply = reply
	}
	return lastReply, nil
}

func (p *Processor) handlePlaylists(ctx context.Context, msg ChatMessage, playlists []string) (string, error) {
	added := 0
	for _, playlistURL := range playlists {
		id := PlaylistID(playlistURL)
		if id == "" {
			p.Logger.Warn("Could not extract playlist id", "url", playlistURL)
			continue
		}

		tracks, err := p.Tracks.GetPlaylistTracks(ctx, id)
		if err != nil {
			p.Logger.Error("Failed to fetch playlist tracks", "playlist_id", id, "error", err)
			return "❌ Failed to fetch playlist tracks.", nil
		}
		if len(tracks) == 0 {
			return "❌ No tracks found in that playlist.", nil
		}

		for i := range tracks {
			track := &tracks[i]
			link := fmt.Sprintf("https://open.spotify.com/track/%s", track.ID)
			if _, err := p.submitTrackLink(ctx, msg, link, track); err != nil {
				p.Logger.Error("Failed to add playlist track", "track_id", track.ID, "error", err)
				continue
			}
			added++
		}
	}
	return fmt.Sprintf("✅ Added %d tracks from playlist!", added), nil
}

// submitTrackLink submits a single track link. A pre-fetched track (from a
// playlist) skips the metadata lookup.
func (p *Processor) submitTrackLink(ctx context.Context, msg ChatMessage, link string, prefetched *spotify.Track) (string, error) {
	trackID := TrackID(link)
	if trackID == "" {
		return "", fmt.Errorf("could not extract track id from %s", link)
	}

	track := prefetched
	if track == nil {
		fetched, err := p.Tracks.GetTrack(ctx, trackID)
		if err != nil {
			// Record the submission anyway; the link is still worth voting on.
			p.Logger.Warn("Falling back to placeholder metadata", "track_id", trackID, "error", err)
			fetched = &spotify.Track{ID: trackID, Name: unknownTitle}
		}
		track = fetched
	}

	sub := app.Submission{
		SourceURL: link,
		Title:     strptr(titleOf(track)),
		Artist:    strptr(artistOf(track)),
		AddedBy:   strptr(msg.Author),
	}
	if track.Album.Name != "" {
		sub.Album = strptr(track.Album.Name)
	}
	if len(track.Album.Images) > 0 && track.Album.Images[0].URL != "" {
		sub.ImageURL = strptr(track.Album.Images[0].URL)
	}

	song, err := p.Songs.SubmitSong(sub)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSong) {
			return "That song is already in this week's queue.", nil
		}
		return "", err
	}

	return fmt.Sprintf("🎵 **%s** by %s added to the rating queue! (song #%d)",
		titleOf(track), artistOf(track), song.ID), nil
}

func titleOf(t *spotify.Track) string {
	if t.Name == "" {
		return unknownTitle
	}
	return t.Name
}

func artistOf(t *spotify.Track) string {
	if len(t.Artists) == 0 || t.Artists[0].Name == "" {
		return unknownArtist
	}
	return t.Artists[0].Name
}

func strptr(s string) *string {
	return &s
}
