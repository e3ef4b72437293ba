package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
	speakerLatency  = time.Second / 10
)

// Player loops the ambient playlist through the system speaker.
type Player struct {
	mu          sync.Mutex
	logger      zerolog.Logger
	playlist    *Playlist
	mixer       *Mixer
	initialized bool
	playing     bool
	generation  int
	stream      beep.StreamSeekCloser
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	onTrack     func(title string)
}

// NewPlayer creates a player for the given tracks. The speaker is opened lazily on first Play.
func NewPlayer(tracks []Track, volume int, logger zerolog.Logger) *Player {
	return &Player{
		logger:   logger,
		playlist: NewPlaylist(tracks),
		mixer:    NewMixer(volume),
	}
}

// SetOnTrackChange registers a callback fired with the title of every newly loaded track.
func (player *Player) SetOnTrackChange(handler func(title string)) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.onTrack = handler
}

// Title returns the title of the current track.
func (player *Player) Title() string {
	player.mu.Lock()
	defer player.mu.Unlock()
	track, err := player.playlist.Current()
	if err != nil {
		return DefaultTitle
	}
	return track.DisplayTitle()
}

// Volume returns the current volume percentage.
func (player *Player) Volume() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.mixer.Volume()
}

// Play starts or resumes playback of the current track.
func (player *Player) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.playlist.Len() == 0 {
		return ErrNoTracks
	}
	if err := player.initLocked(); err != nil {
		return err
	}
	player.playing = true

	if player.ctrl != nil {
		speaker.Lock()
		player.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}
	return player.loadLocked()
}

// Pause halts playback, keeping the position.
func (player *Player) Pause() {
	player.mu.Lock()
	defer player.mu.Unlock()

	player.playing = false
	if player.ctrl == nil {
		return
	}
	speaker.Lock()
	player.ctrl.Paused = true
	speaker.Unlock()
}

// Next switches to the following track and keeps playing if playback was active.
func (player *Player) Next() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if _, err := player.playlist.Next(); err != nil {
		return err
	}
	player.stopLocked()
	if !player.playing {
		player.notifyTrackLocked()
		return nil
	}
	return player.loadLocked()
}

// SetVolume changes the output volume (0-100).
func (player *Player) SetVolume(volume int) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.mixer.Set(volume)
	player.applyVolumeLocked()
}

// ToggleMute mutes or restores the volume and returns the new value.
func (player *Player) ToggleMute() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	volume := player.mixer.ToggleMute()
	player.applyVolumeLocked()
	return volume
}

// Close stops playback and releases the speaker.
func (player *Player) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.stopLocked()
	if player.initialized {
		speaker.Close()
		player.initialized = false
	}
}

func (player *Player) initLocked() error {
	if player.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerLatency)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	player.initialized = true
	return nil
}

// loadLocked opens the current track and starts it, skipping tracks that fail to open.
func (player *Player) loadLocked() error {
	var errs []error
	for attempt := 0; attempt < player.playlist.Len(); attempt++ {
		track, err := player.playlist.Current()
		if err != nil {
			return err
		}

		stream, format, err := openTrack(track)
		if err == nil {
			player.startLocked(stream, format)
			player.logger.Info().Str("track", track.DisplayTitle()).Msg("playing track")
			player.notifyTrackLocked()
			return nil
		}

		player.logger.Warn().Err(err).Str("path", track.Path).Msg("skipping track")
		errs = append(errs, err)
		if _, err := player.playlist.Next(); err != nil {
			return err
		}
	}
	player.playing = false
	return fmt.Errorf("no playable track: %w", errors.Join(errs...))
}

func (player *Player) startLocked(stream beep.StreamSeekCloser, format beep.Format) {
	player.generation++
	generation := player.generation

	var source beep.Streamer = stream
	if format.SampleRate != sampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, sampleRate, stream)
	}

	player.stream = stream
	player.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(source, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker locked.
			go player.trackEnded(generation)
		})),
	}
	player.volume = &effects.Volume{Streamer: player.ctrl, Base: 2}
	player.applyVolumeLocked()
	speaker.Play(player.volume)
}

func (player *Player) trackEnded(generation int) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if generation != player.generation {
		return
	}
	if _, err := player.playlist.Next(); err != nil {
		return
	}
	player.stopLocked()
	if !player.playing {
		return
	}
	if err := player.loadLocked(); err != nil {
		player.logger.Error().Err(err).Msg("advance playlist")
	}
}

func (player *Player) stopLocked() {
	player.generation++
	if player.ctrl != nil {
		speaker.Clear()
	}
	if player.stream != nil {
		if err := player.stream.Close(); err != nil {
			player.logger.Debug().Err(err).Msg("close track")
		}
	}
	player.stream = nil
	player.ctrl = nil
	player.volume = nil
}

func (player *Player) applyVolumeLocked() {
	if player.volume == nil {
		return
	}
	gain, silent := Gain(player.mixer.Volume())
	speaker.Lock()
	player.volume.Volume = gain
	player.volume.Silent = silent
	speaker.Unlock()
}

func (player *Player) notifyTrackLocked() {
	if player.onTrack == nil {
		return
	}
	track, err := player.playlist.Current()
	if err != nil {
		return
	}
	handler := player.onTrack
	title := track.DisplayTitle()
	go handler(title)
}
