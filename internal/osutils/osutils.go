// Package osutils holds small OS-specific checks that affect key injection.
package osutils

import "errors"

// ErrNotElevated means injected keys will not reach elevated windows.
var ErrNotElevated = errors.New("not running as administrator, keys will not reach elevated windows")
