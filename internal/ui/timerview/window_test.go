package timerview

import (
	"testing"

	"lofitimer/internal/audio"
	"lofitimer/internal/core/sessionclock"
	"lofitimer/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

type recordingCommands struct {
	toggles int
	resets  int
}

func (commands *recordingCommands) Toggle() { commands.toggles++ }
func (commands *recordingCommands) Reset()  { commands.resets++ }

func TestLitSegments(t *testing.T) {
	assert.Equal(t, 0, litSegments(100, 100, 60))
	assert.Equal(t, 60, litSegments(0, 100, 60))
	assert.Equal(t, 30, litSegments(50, 100, 60))
	assert.Equal(t, 0, litSegments(120, 100, 60))
	assert.Equal(t, 0, litSegments(0, 0, 60))
}

func TestLitSegments_FromSnapshot(t *testing.T) {
	snapshot := sessionclock.Snapshot{RemainingSeconds: 750, PhaseSeconds: 1500}
	assert.Equal(t, ringSegments/2, litSegments(snapshot.DashOffset(ringCircumference), ringCircumference, ringSegments))
}

func TestSegmentCenter_StartsAtTop(t *testing.T) {
	center := fyne.NewPos(100, 100)
	top := segmentCenter(0, 4, center, 50)
	right := segmentCenter(1, 4, center, 50)

	assert.InDelta(t, 100, top.X, 0.01)
	assert.InDelta(t, 50, top.Y, 0.01)
	assert.InDelta(t, 150, right.X, 0.01)
	assert.InDelta(t, 100, right.Y, 0.01)
}

func TestSceneByName(t *testing.T) {
	assert.Equal(t, "forest", SceneByName("forest").Name)
	assert.Equal(t, DefaultScene, SceneByName("unknown").Name)

	scene, ok := sceneByTitle("Night City")
	assert.True(t, ok)
	assert.Equal(t, "night", scene.Name)
}

func TestWeatherTitles_RoundTrip(t *testing.T) {
	for _, weather := range animation.Weathers {
		assert.Equal(t, weather, weatherByTitle(weatherTitle(weather)))
	}
	assert.Equal(t, animation.WeatherNone, weatherByTitle("Hail"))
}

func TestSessionsLabel(t *testing.T) {
	assert.Equal(t, "0 sessions completed", sessionsLabel(0))
	assert.Equal(t, "1 session completed", sessionsLabel(1))
	assert.Equal(t, "4 sessions completed", sessionsLabel(4))
}

func TestVolumeIcon(t *testing.T) {
	assert.Equal(t, theme.VolumeMuteIcon().Name(), volumeIcon(audio.LevelMuted).Name())
	assert.Equal(t, theme.VolumeDownIcon().Name(), volumeIcon(audio.LevelLow).Name())
	assert.Equal(t, theme.VolumeUpIcon().Name(), volumeIcon(audio.LevelHigh).Name())
}

func TestWindow_RenderSnapshot(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	view := New(app, State{Scene: "ocean", Volume: 40, Track: "Lofi Beats"}, nil, Callbacks{})
	defer view.Close()

	view.renderUnsafe(sessionclock.Snapshot{
		Phase:                 sessionclock.PhaseShortBreak,
		RemainingSeconds:      150,
		PhaseSeconds:          300,
		CompletedWorkSessions: 1,
		Running:               true,
	})

	assert.Equal(t, "02:30", view.timeText.Text)
	assert.Equal(t, "Short Break", view.modeText.Text)
	assert.Equal(t, "1 session completed", view.sessionsText.Text)
	assert.False(t, view.startButton.Visible())
	assert.True(t, view.pauseButton.Visible())
	assert.Equal(t, SceneByName("ocean").Accent, view.segments[0].FillColor)
	assert.Equal(t, trackColor, view.segments[ringSegments-1].FillColor)
}

func TestWindow_KeyboardShortcuts(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	commands := &recordingCommands{}
	view := New(app, State{}, commands, Callbacks{})
	defer view.Close()

	onKey := view.window.Canvas().OnTypedKey()
	onKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	onKey(&fyne.KeyEvent{Name: fyne.KeyR})
	onKey(&fyne.KeyEvent{Name: fyne.KeyX})

	assert.Equal(t, 1, commands.toggles)
	assert.Equal(t, 1, commands.resets)
}

func TestWindow_ControlsInvokeCallbacks(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	toggles := 0
	var scenes []string
	view := New(app, State{}, nil, Callbacks{
		OnToggle: func() { toggles++ },
		OnScene:  func(name string) { scenes = append(scenes, name) },
	})
	defer view.Close()

	test.Tap(view.startButton)
	view.sceneSelect.SetSelected("Forest")

	assert.Equal(t, 1, toggles)
	assert.Equal(t, []string{"forest"}, scenes)
	assert.Equal(t, SceneByName("forest").Top, view.background.StartColor)
}

func TestWindow_DropsFramesOfPreviousWeather(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	view := New(app, State{Weather: animation.WeatherNone}, nil, Callbacks{})
	defer view.Close()

	view.drawParticles(animation.WeatherRain, []animation.Particle{{X: 0.5, Y: 0.5, Visible: true}})
	assert.Empty(t, view.weatherLayer.Objects)

	view.drawParticles(animation.WeatherNone, nil)
	assert.Empty(t, view.weatherLayer.Objects)
}
