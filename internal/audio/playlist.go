package audio

import (
	"errors"
	"path/filepath"
	"strings"
)

// DefaultTitle is shown for tracks without a usable title.
const DefaultTitle = "Lofi Beats"

// ErrNoTracks indicates an empty playlist.
var ErrNoTracks = errors.New("no tracks configured")

// Track is a single ambient music file.
type Track struct {
	Title string
	Path  string
}

// DisplayTitle returns the configured title, the file name, or DefaultTitle.
func (track Track) DisplayTitle() string {
	if title := strings.TrimSpace(track.Title); title != "" {
		return title
	}
	base := filepath.Base(track.Path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return DefaultTitle
	}
	return name
}

// Playlist cycles through tracks in order, wrapping at the end.
type Playlist struct {
	tracks []Track
	index  int
}

// NewPlaylist creates a playlist positioned at the first track with a non-empty path.
func NewPlaylist(tracks []Track) *Playlist {
	filtered := make([]Track, 0, len(tracks))
	for _, track := range tracks {
		if strings.TrimSpace(track.Path) == "" {
			continue
		}
		filtered = append(filtered, track)
	}
	return &Playlist{tracks: filtered}
}

// Len returns the number of tracks.
func (playlist *Playlist) Len() int {
	return len(playlist.tracks)
}

// Current returns the current track.
func (playlist *Playlist) Current() (Track, error) {
	if len(playlist.tracks) == 0 {
		return Track{}, ErrNoTracks
	}
	return playlist.tracks[playlist.index], nil
}

// Next advances to the following track, wrapping around.
func (playlist *Playlist) Next() (Track, error) {
	if len(playlist.tracks) == 0 {
		return Track{}, ErrNoTracks
	}
	playlist.index = (playlist.index + 1) % len(playlist.tracks)
	return playlist.tracks[playlist.index], nil
}
