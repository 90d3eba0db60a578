//go:build !unix

package props

import "os"

func isPrivileged() bool { return os.Geteuid() == 0 }

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
