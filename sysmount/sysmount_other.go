//go:build !linux

package sysmount

// Same values as linux <sys/mount.h>
const (
	ReadOnly Flags = 0x1
	NoSuid   Flags = 0x2
	Relatime Flags = 0x200000
)

type Kernel struct{}

// Current platform not supported to unmount, returning ErrNotAvaible
func (Kernel) Detach(target string) error { return ErrNotAvaible }

// Current platform not supported to mount, returning ErrNotAvaible
func (Kernel) Mount(source, target, fstype string, flags Flags, data string) error {
	return ErrNotAvaible
}
