package timerview

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"lofitimer/internal/audio"
	"lofitimer/internal/core/sessionclock"
	"lofitimer/internal/ui/animation"
	"lofitimer/internal/ui/shortcuts"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	flashDuration = 500 * time.Millisecond
	// ringCircumference matches the stroke length of the indicator drawn by ringLayout.
	ringCircumference = 2 * math.Pi * float64(ringDiameter/2-segmentSize)
)

var (
	textColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	mutedTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}
	trackColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
	rainColor      = color.NRGBA{R: 0xc7, G: 0xd2, B: 0xfe, A: 0x99}
	snowColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}
)

// Callbacks defines the handlers of the timer window controls.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnVolume      func(volume int)
	OnMute        func()
	OnNextTrack   func()
	OnScene       func(name string)
	OnWeather     func(weather animation.Weather)
	OnPreferences func()
}

// State is the initial look of the window.
type State struct {
	Scene   string
	Weather animation.Weather
	Volume  int
	Track   string
}

// Window is the main timer window.
type Window struct {
	app       fyne.App
	window    fyne.Window
	callbacks Callbacks
	engine    *animation.Engine
	cancelCtx context.CancelFunc

	background   *canvas.LinearGradient
	segments     []*canvas.Circle
	timeText     *canvas.Text
	modeText     *canvas.Text
	sessionsText *canvas.Text
	trackText    *canvas.Text
	startButton  *widget.Button
	pauseButton  *widget.Button
	muteButton   *widget.Button
	volume       *widget.Slider
	sceneSelect  *widget.Select
	weatherPick  *widget.Select
	weatherLayer *fyne.Container
	flash        *canvas.Rectangle
	flashText    *canvas.Text
	flashLayer   *fyne.Container

	scene       Scene
	snapshot    sessionclock.Snapshot
	suppressUI  bool
	flashCancel *time.Timer
}

// New creates the timer window. commands receives the keyboard shortcuts.
func New(app fyne.App, state State, commands shortcuts.Commands, callbacks Callbacks) *Window {
	window := app.NewWindow("LofiTimer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	view := &Window{
		app:       app,
		window:    window,
		callbacks: callbacks,
		scene:     SceneByName(state.Scene),
	}

	view.background = canvas.NewLinearGradient(view.scene.Top, view.scene.Bottom, 0)

	ringObjects := make([]fyne.CanvasObject, 0, ringSegments+1)
	for i := 0; i < ringSegments; i++ {
		segment := canvas.NewCircle(trackColor)
		view.segments = append(view.segments, segment)
		ringObjects = append(ringObjects, segment)
	}

	view.timeText = newText("25:00", textColor, 56, true)
	view.modeText = newText(sessionclock.PhaseWork.Label(), mutedTextColor, 18, false)
	view.sessionsText = newText(sessionsLabel(0), mutedTextColor, 13, false)
	ringObjects = append(ringObjects, container.NewVBox(
		container.NewCenter(view.timeText),
		container.NewCenter(view.modeText),
		container.NewCenter(view.sessionsText),
	))
	ring := container.New(&ringLayout{segments: ringSegments}, ringObjects...)

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), view.handle(&view.callbacks.OnToggle))
	view.startButton.Importance = widget.HighImportance
	view.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), view.handle(&view.callbacks.OnToggle))
	view.pauseButton.Hide()
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), view.handle(&view.callbacks.OnReset))
	controls := container.NewHBox(layout.NewSpacer(), view.startButton, view.pauseButton, resetButton, layout.NewSpacer())

	view.trackText = newText(state.Track, textColor, 14, false)
	nextButton := widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), view.handle(&view.callbacks.OnNextTrack))
	view.muteButton = widget.NewButtonWithIcon("", volumeIcon(audio.LevelFor(state.Volume)), view.handle(&view.callbacks.OnMute))
	view.volume = widget.NewSlider(audio.MinVolume, audio.MaxVolume)
	view.volume.Step = 1
	view.volume.SetValue(float64(state.Volume))
	view.volume.OnChanged = func(value float64) {
		volume := int(value)
		view.muteButton.SetIcon(volumeIcon(audio.LevelFor(volume)))
		if !view.suppressUI && view.callbacks.OnVolume != nil {
			view.callbacks.OnVolume(volume)
		}
	}
	player := container.NewBorder(nil, nil,
		container.NewHBox(view.muteButton, nextButton),
		nil,
		container.NewVBox(view.trackText, view.volume),
	)

	view.sceneSelect = widget.NewSelect(sceneTitles(), func(title string) {
		scene, ok := sceneByTitle(title)
		if !ok || view.suppressUI {
			return
		}
		view.applyScene(scene)
		if view.callbacks.OnScene != nil {
			view.callbacks.OnScene(scene.Name)
		}
	})
	view.weatherPick = widget.NewSelect(weatherTitles(), func(title string) {
		if view.suppressUI {
			return
		}
		weather := weatherByTitle(title)
		view.startWeather(weather)
		if view.callbacks.OnWeather != nil {
			view.callbacks.OnWeather(weather)
		}
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), view.handle(&view.callbacks.OnPreferences))
	pickers := container.NewHBox(view.sceneSelect, view.weatherPick, layout.NewSpacer(), settingsButton)

	view.weatherLayer = container.NewWithoutLayout()
	view.flash = canvas.NewRectangle(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40})
	view.flashText = newText("", textColor, 18, true)
	view.flashLayer = container.NewStack(view.flash, container.NewCenter(view.flashText))
	view.flashLayer.Hide()

	body := container.NewBorder(
		container.NewPadded(pickers),
		container.NewPadded(container.NewVBox(controls, player)),
		nil, nil,
		container.NewCenter(ring),
	)
	window.SetContent(container.NewStack(view.background, view.weatherLayer, body, view.flashLayer))
	window.Resize(fyne.NewSize(420, 560))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if commands != nil {
			shortcuts.Dispatch(string(event.Name), commands)
		}
	})

	view.engine = animation.New(animation.DefaultConfig(), view.renderWeather)

	view.suppressUI = true
	view.sceneSelect.SetSelected(view.scene.Title)
	view.weatherPick.SetSelected(weatherTitle(state.Weather))
	view.suppressUI = false
	view.applyScene(view.scene)
	view.startWeather(state.Weather)

	return view
}

// Show displays the window and brings it to the front.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Close stops the weather animation.
func (view *Window) Close() {
	if view.cancelCtx != nil {
		view.cancelCtx()
		view.cancelCtx = nil
	}
	view.engine.Stop()
}

// Render updates the window from a clock snapshot. Safe from any goroutine.
func (view *Window) Render(snapshot sessionclock.Snapshot) {
	fyne.Do(func() {
		view.renderUnsafe(snapshot)
	})
}

// SetTrackTitle updates the now-playing label. Safe from any goroutine.
func (view *Window) SetTrackTitle(title string) {
	fyne.Do(func() {
		view.trackText.Text = title
		view.trackText.Refresh()
	})
}

// SetVolume moves the volume slider without reporting the change back.
func (view *Window) SetVolume(volume int) {
	fyne.Do(func() {
		view.suppressUI = true
		view.volume.SetValue(float64(volume))
		view.suppressUI = false
		view.muteButton.SetIcon(volumeIcon(audio.LevelFor(volume)))
	})
}

// Flash briefly highlights the window with a completion message.
func (view *Window) Flash(message string) {
	fyne.Do(func() {
		view.flashText.Text = message
		view.flashText.Refresh()
		view.flashLayer.Show()
		if view.flashCancel != nil {
			view.flashCancel.Stop()
		}
		view.flashCancel = time.AfterFunc(flashDuration, func() {
			fyne.Do(view.flashLayer.Hide)
		})
	})
}

func (view *Window) renderUnsafe(snapshot sessionclock.Snapshot) {
	view.snapshot = snapshot
	view.timeText.Text = snapshot.Display()
	view.timeText.Refresh()
	view.modeText.Text = snapshot.ModeLabel()
	view.modeText.Refresh()
	view.sessionsText.Text = sessionsLabel(snapshot.CompletedWorkSessions)
	view.sessionsText.Refresh()

	if snapshot.Running {
		view.startButton.Hide()
		view.pauseButton.Show()
	} else {
		view.pauseButton.Hide()
		view.startButton.Show()
	}

	lit := litSegments(snapshot.DashOffset(ringCircumference), ringCircumference, len(view.segments))
	for index, segment := range view.segments {
		fill := trackColor
		if index < lit {
			fill = view.scene.Accent
		}
		if segment.FillColor != fill {
			segment.FillColor = fill
			segment.Refresh()
		}
	}
	view.window.SetTitle(fmt.Sprintf("%s - %s", snapshot.Display(), snapshot.ModeLabel()))
}

func (view *Window) applyScene(scene Scene) {
	view.scene = scene
	view.background.StartColor = scene.Top
	view.background.EndColor = scene.Bottom
	view.background.Refresh()
	view.renderUnsafe(view.snapshot)
}

func (view *Window) startWeather(weather animation.Weather) {
	if view.cancelCtx != nil {
		view.cancelCtx()
	}
	ctx, cancel := context.WithCancel(context.Background())
	view.cancelCtx = cancel
	view.engine.Start(ctx, weather)
}

// renderWeather is called from the animation goroutine.
func (view *Window) renderWeather(weather animation.Weather, particles []animation.Particle) {
	fyne.Do(func() {
		view.drawParticles(weather, particles)
	})
}

func (view *Window) drawParticles(weather animation.Weather, particles []animation.Particle) {
	// Frames queued before a weather switch arrive after it; drop them.
	if weather != view.engine.Weather() {
		return
	}
	objects := view.weatherLayer.Objects
	if len(objects) != len(particles) || (len(objects) > 0 && !matchesWeather(objects[0], weather)) {
		objects = make([]fyne.CanvasObject, 0, len(particles))
		for range particles {
			objects = append(objects, newParticle(weather))
		}
		view.weatherLayer.Objects = objects
	}

	size := view.window.Canvas().Size()
	for index, particle := range particles {
		object := objects[index]
		if !particle.Visible {
			object.Hide()
			continue
		}
		object.Move(fyne.NewPos(particle.X*size.Width, particle.Y*size.Height))
		object.Show()
	}
	view.weatherLayer.Refresh()
}

func newParticle(weather animation.Weather) fyne.CanvasObject {
	if weather == animation.WeatherSnow {
		flake := canvas.NewCircle(snowColor)
		flake.Resize(fyne.NewSize(5, 5))
		return flake
	}
	drop := canvas.NewRectangle(rainColor)
	drop.Resize(fyne.NewSize(1.5, 18))
	return drop
}

func matchesWeather(object fyne.CanvasObject, weather animation.Weather) bool {
	_, isFlake := object.(*canvas.Circle)
	return isFlake == (weather == animation.WeatherSnow)
}

func (view *Window) handle(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}

func newText(value string, fill color.Color, size float32, bold bool) *canvas.Text {
	text := canvas.NewText(value, fill)
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = size
	text.TextStyle = fyne.TextStyle{Bold: bold}
	return text
}

func sessionsLabel(completed int) string {
	if completed == 1 {
		return "1 session completed"
	}
	return fmt.Sprintf("%d sessions completed", completed)
}

func volumeIcon(level audio.Level) fyne.Resource {
	switch level {
	case audio.LevelMuted:
		return theme.VolumeMuteIcon()
	case audio.LevelLow:
		return theme.VolumeDownIcon()
	default:
		return theme.VolumeUpIcon()
	}
}

func weatherTitle(weather animation.Weather) string {
	switch weather {
	case animation.WeatherRain:
		return "Rain"
	case animation.WeatherSnow:
		return "Snow"
	default:
		return "Clear"
	}
}

func weatherTitles() []string {
	titles := make([]string, 0, len(animation.Weathers))
	for _, weather := range animation.Weathers {
		titles = append(titles, weatherTitle(weather))
	}
	return titles
}

func weatherByTitle(title string) animation.Weather {
	for _, weather := range animation.Weathers {
		if weatherTitle(weather) == title {
			return weather
		}
	}
	return animation.WeatherNone
}
