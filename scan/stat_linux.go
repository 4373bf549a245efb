//go:build linux

package scan

import (
	"os"
	"syscall"
	"time"
)

// Linux exposes no portable birth time through os.Stat, so the inode change
// time is reported as the creation timestamp.
func creationTime(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
}
