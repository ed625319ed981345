//go:build linux

package mntns

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Move calling thread to new mount namespace with every mount private,
// so unmounts not propagate to parent namespace.
//
// Thread stay locked, namespace is per thread and goroutine must not move
// to another thread while reconciling or before exec.
func Unshare() (Private, error) {
	runtime.LockOSThread()
	if err := unix.Unshare(unix.CLONE_NEWNS); err != nil {
		runtime.UnlockOSThread()
		return Private{}, errors.Wrap(err, "unshare mount namespace")
	}

	if err := unix.Mount("", "/", "", unix.MS_REC|unix.MS_PRIVATE, ""); err != nil {
		return Private{}, errors.Wrap(err, "make / rprivate")
	}

	// chdir needed to prevent relative symlink vuln
	if err := unix.Chdir("/"); err != nil {
		return Private{}, errors.Wrap(err, "chdir /")
	}
	return Private{unshared: true}, nil
}
