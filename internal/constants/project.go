package constants

// Color tokens a project may carry. Rendering is up to the client.
const (
	ColorRed    = "red"
	ColorOrange = "orange"
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorPurple = "purple"
	ColorPink   = "pink"
)

const DefaultProjectColor = ColorBlue

// Seed values for the project that is created when none exists.
const (
	DefaultProjectName = "Personal"
	DefaultProjectIcon = "person"
)

func ValidProjectColor(color string) bool {
	switch color {
	case ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple, ColorPink:
		return true
	}
	return false
}
