package config

const (
	// --- Window ---
	WindowTitle   = "viewer2d"
	DefaultWidth  = 640
	DefaultHeight = 480

	// --- Input ---
	// WheelNotch is the ebiten wheel offset that counts as one scroll unit.
	WheelNotch = 1.0

	// --- UI ---
	ButtonWidth   = 30.0
	ButtonHeight  = 30.0
	ButtonPadding = 10.0
	ButtonMargin  = 10.0
	PanelWidth    = 360.0
	HUDLineHeight = 16.0
)
