//go:build darwin

package popup

type platformChrome struct{}

// SupportsCustomChrome reports true: macOS windows get a transparent title
// bar and an accent background.
func (platformChrome) SupportsCustomChrome() bool { return true }
