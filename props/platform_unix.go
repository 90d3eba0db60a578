//go:build unix

package props

import "golang.org/x/sys/unix"

func isPrivileged() bool { return unix.Geteuid() == 0 }

func readable(path string) bool { return unix.Access(path, unix.R_OK) == nil }
