package ui

// Color accessors return the escape code of the active theme, or "" when
// colors are disabled.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed is used for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for successes and values.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for warnings and durations.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue is used for algorithm names.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta is used for function calls.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan is used for metadata.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline starts underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
