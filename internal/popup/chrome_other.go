//go:build !darwin

package popup

type platformChrome struct{}

// SupportsCustomChrome reports false on platforms without title bar styling.
func (platformChrome) SupportsCustomChrome() bool { return false }
