package timerview

import "image/color"

// Scene is a named gradient background.
type Scene struct {
	Name   string
	Title  string
	Top    color.NRGBA
	Bottom color.NRGBA
	Accent color.NRGBA
}

// DefaultScene is used when a stored scene name is unknown.
const DefaultScene = "dusk"

// Scenes lists the selectable backgrounds in menu order.
var Scenes = []Scene{
	{
		Name:   "dusk",
		Title:  "Dusk",
		Top:    color.NRGBA{R: 0x3b, G: 0x1d, B: 0x5c, A: 0xff},
		Bottom: color.NRGBA{R: 0xd9, G: 0x6c, B: 0x8a, A: 0xff},
		Accent: color.NRGBA{R: 0xf4, G: 0x72, B: 0xb6, A: 0xff},
	},
	{
		Name:   "forest",
		Title:  "Forest",
		Top:    color.NRGBA{R: 0x0f, G: 0x2e, B: 0x26, A: 0xff},
		Bottom: color.NRGBA{R: 0x4a, G: 0x7c, B: 0x59, A: 0xff},
		Accent: color.NRGBA{R: 0x86, G: 0xef, B: 0xac, A: 0xff},
	},
	{
		Name:   "ocean",
		Title:  "Ocean",
		Top:    color.NRGBA{R: 0x0b, G: 0x1e, B: 0x3f, A: 0xff},
		Bottom: color.NRGBA{R: 0x1d, G: 0x7c, B: 0xa8, A: 0xff},
		Accent: color.NRGBA{R: 0x67, G: 0xe8, B: 0xf9, A: 0xff},
	},
	{
		Name:   "night",
		Title:  "Night City",
		Top:    color.NRGBA{R: 0x0a, G: 0x0a, B: 0x1a, A: 0xff},
		Bottom: color.NRGBA{R: 0x2e, G: 0x1a, B: 0x47, A: 0xff},
		Accent: color.NRGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff},
	},
	{
		Name:   "cafe",
		Title:  "Cafe",
		Top:    color.NRGBA{R: 0x2b, G: 0x1b, B: 0x12, A: 0xff},
		Bottom: color.NRGBA{R: 0x8c, G: 0x5a, B: 0x3c, A: 0xff},
		Accent: color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff},
	},
}

// SceneByName returns the named scene, or the default one.
func SceneByName(name string) Scene {
	for _, scene := range Scenes {
		if scene.Name == name {
			return scene
		}
	}
	return Scenes[0]
}

func sceneTitles() []string {
	titles := make([]string, 0, len(Scenes))
	for _, scene := range Scenes {
		titles = append(titles, scene.Title)
	}
	return titles
}

func sceneByTitle(title string) (Scene, bool) {
	for _, scene := range Scenes {
		if scene.Title == title {
			return scene, true
		}
	}
	return Scene{}, false
}
