package models

import (
	"os"
	"syscall"
	"time"
)

//inode change time, which is the closest thing to a creation time that Linux reports through stat
func changeTime(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
