//go:build !windows

package osutils

// IsElevated is always false outside Windows.
func IsElevated() bool {
	return false
}

// CheckInjectionRights has nothing to check outside Windows.
func CheckInjectionRights() error {
	return nil
}
