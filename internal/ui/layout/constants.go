package layout

// Spacing constants for consistent padding and margins
const (
	SpacingXS = 1
	SpacingSM = 2
	SpacingMD = 3
)

// Standard UI element heights
const (
	HeaderHeight = 2
	InputHeight  = 3
	FooterHeight = 2
)

// Dropdown sizing
const (
	DropdownMinItems = 3
	DropdownMaxItems = 12
	DropdownMinWidth = 40
)

// DropdownItems returns how many option rows fit in a window of the given
// height, clamped to the dropdown bounds. A zero height means unknown.
func DropdownItems(windowHeight int) int {
	if windowHeight <= 0 {
		return DropdownMaxItems
	}
	n := windowHeight - HeaderHeight - InputHeight - FooterHeight - SpacingMD
	if n < DropdownMinItems {
		return DropdownMinItems
	}
	if n > DropdownMaxItems {
		return DropdownMaxItems
	}
	return n
}

// DropdownWidth returns the dropdown width for a window, never narrower than
// DropdownMinWidth. A zero width means unknown.
func DropdownWidth(windowWidth int) int {
	w := windowWidth - SpacingSM*2
	if w < DropdownMinWidth {
		return DropdownMinWidth
	}
	return w
}
