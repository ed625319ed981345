//go:build linux

package sysmount

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

const (
	ReadOnly Flags = unix.MS_RDONLY
	NoSuid   Flags = unix.MS_NOSUID
	Relatime Flags = unix.MS_RELATIME
)

// Kernel mount namespace of calling thread
type Kernel struct{}

// Detach target from namespace with MNT_DETACH, filesystem is released
// when last reference drop
func (Kernel) Detach(target string) error {
	if err := unix.Unmount(target, unix.MNT_DETACH); err != nil {
		return &fs.PathError{Op: "umount2", Path: target, Err: err}
	}
	return nil
}

func (Kernel) Mount(source, target, fstype string, flags Flags, data string) error {
	if err := unix.Mount(source, target, fstype, uintptr(flags), data); err != nil {
		return &fs.PathError{Op: "mount", Path: target, Err: err}
	}
	return nil
}
