package sysinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostMatchesRuntime(t *testing.T) {
	p := Host()

	assert.Equal(t, runtime.GOOS, p.String())
	assert.Equal(t, runtime.GOOS == "linux", p.IsLinux())
	assert.Equal(t, runtime.GOOS == "darwin", p.IsMac())
	assert.Equal(t, runtime.GOOS == "windows", p.IsWindows())
}
