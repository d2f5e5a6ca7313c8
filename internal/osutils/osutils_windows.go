//go:build windows

package osutils

import (
	"golang.org/x/sys/windows"
)

// IsElevated reports whether the process token is elevated.
func IsElevated() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	if err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()
	return token.IsElevated()
}

// CheckInjectionRights reports ErrNotElevated when injected input would be
// dropped by windows running at a higher integrity level.
func CheckInjectionRights() error {
	if IsElevated() {
		return nil
	}
	return ErrNotElevated
}
