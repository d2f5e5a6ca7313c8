//go:build !windows

package osutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInjectionRights(t *testing.T) {
	assert.False(t, IsElevated())
	assert.NoError(t, CheckInjectionRights())
}
