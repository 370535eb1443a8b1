package contentgen

// Config controls the behavior of the Engine.
type Config struct {
	// RecentThemeLimit is how many persisted themes feed the avoidance
	// list when the model picks a theme.
	RecentThemeLimit int

	// ThemeMaxTokens is the token budget for theme-pick responses.
	ThemeMaxTokens int

	// BatchMaxTokens is the token budget for batch-generation responses.
	// A full week of problems with test cases is large.
	BatchMaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		RecentThemeLimit: 10,
		ThemeMaxTokens:   256,
		BatchMaxTokens:   16384,
		Temperature:      0.8,
	}
}
