package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackDisplayTitle(t *testing.T) {
	assert.Equal(t, "Velvet Sky", Track{Title: " Velvet Sky ", Path: "/music/a.mp3"}.DisplayTitle())
	assert.Equal(t, "lofi-study", Track{Path: "/music/lofi-study.mp3"}.DisplayTitle())
	assert.Equal(t, DefaultTitle, Track{}.DisplayTitle())
}

func TestPlaylist_NextWraps(t *testing.T) {
	playlist := NewPlaylist([]Track{
		{Path: "one.mp3"},
		{Path: "  "},
		{Path: "two.ogg"},
		{Path: "three.wav"},
	})
	require.Equal(t, 3, playlist.Len())

	current, err := playlist.Current()
	require.NoError(t, err)
	assert.Equal(t, "one.mp3", current.Path)

	var order []string
	for i := 0; i < 4; i++ {
		track, err := playlist.Next()
		require.NoError(t, err)
		order = append(order, track.Path)
	}
	assert.Equal(t, []string{"two.ogg", "three.wav", "one.mp3", "two.ogg"}, order)
	current, err = playlist.Current()
	require.NoError(t, err)
	assert.Equal(t, "two.ogg", current.Path)
}

func TestPlaylist_Empty(t *testing.T) {
	playlist := NewPlaylist(nil)

	_, err := playlist.Current()
	assert.ErrorIs(t, err, ErrNoTracks)
	_, err = playlist.Next()
	assert.ErrorIs(t, err, ErrNoTracks)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelMuted, LevelFor(0))
	assert.Equal(t, LevelLow, LevelFor(1))
	assert.Equal(t, LevelLow, LevelFor(49))
	assert.Equal(t, LevelHigh, LevelFor(50))
	assert.Equal(t, LevelHigh, LevelFor(100))
}

func TestMixer_ToggleMuteRestoresLastVolume(t *testing.T) {
	mixer := NewMixer(70)

	assert.Equal(t, 0, mixer.ToggleMute())
	assert.Equal(t, 70, mixer.ToggleMute())

	mixer.Set(0)
	assert.Equal(t, 70, mixer.ToggleMute())
}

func TestMixer_UnmuteDefaultsWithoutHistory(t *testing.T) {
	mixer := NewMixer(0)

	assert.Equal(t, DefaultVolume, mixer.ToggleMute())
}

func TestMixer_Clamps(t *testing.T) {
	mixer := NewMixer(250)
	assert.Equal(t, 100, mixer.Volume())
	mixer.Set(-3)
	assert.Equal(t, 0, mixer.Volume())
}

func TestGain(t *testing.T) {
	gain, silent := Gain(100)
	assert.False(t, silent)
	assert.InDelta(t, 0, gain, 1e-9)

	gain, silent = Gain(50)
	assert.False(t, silent)
	assert.InDelta(t, -1, gain, 1e-9)

	_, silent = Gain(0)
	assert.True(t, silent)
}

func TestDecoderFor(t *testing.T) {
	for _, path := range []string{"a.mp3", "b.OGG", "c.wav", "d.flac"} {
		decode, err := decoderFor(path)
		require.NoError(t, err, path)
		assert.NotNil(t, decode, path)
	}

	_, err := decoderFor("clip.mp4")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpenTrack_Errors(t *testing.T) {
	_, _, err := openTrack(Track{Path: filepath.Join(t.TempDir(), "missing.mp3")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(t.TempDir(), "noise.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("not a wave file"), 0o644))
	_, _, err = openTrack(Track{Path: garbage})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode track noise")
}

func TestPlayer_PlayWithoutTracks(t *testing.T) {
	player := NewPlayer(nil, 40, zerolog.Nop())

	assert.ErrorIs(t, player.Play(), ErrNoTracks)
	assert.ErrorIs(t, player.Next(), ErrNoTracks)
	assert.Equal(t, DefaultTitle, player.Title())
	assert.Equal(t, 40, player.Volume())
	assert.Equal(t, 0, player.ToggleMute())
	assert.Equal(t, 40, player.ToggleMute())
}

func TestPlayer_NextWhileStoppedNotifies(t *testing.T) {
	player := NewPlayer([]Track{{Path: "a.mp3"}, {Title: "Second", Path: "b.mp3"}}, 50, zerolog.Nop())
	titles := make(chan string, 1)
	player.SetOnTrackChange(func(title string) { titles <- title })

	require.NoError(t, player.Next())

	assert.Equal(t, "Second", <-titles)
	assert.Equal(t, "Second", player.Title())
}
