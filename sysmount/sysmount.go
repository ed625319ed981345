// Mount and unmount primitives
//
// Kernel call syscalls directly, on non linux platforms return ErrNotAvaible.
// DryRun only log requests.
package sysmount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotAvaible error = errors.New("mount syscalls not avaible") // Current platform cannot mount or unmount
)

// Flags passed to mount(2)
type Flags uintptr

func (flags Flags) String() string {
	names := []string{}
	for _, flag := range []struct {
		flag Flags
		name string
	}{{ReadOnly, "ro"}, {NoSuid, "nosuid"}, {Relatime, "relatime"}} {
		if flags&flag.flag != 0 {
			names = append(names, flag.name)
			flags &^= flag.flag
		}
	}
	if flags != 0 {
		names = append(names, fmt.Sprintf("%#x", uintptr(flags)))
	}
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}

// Mount and unmount requests to namespace
type Mounter interface {
	// Lazy unmount, same `umount -l`
	Detach(target string) error
	// mount(2) with source, target, fstype, flags and data
	Mount(source, target, fstype string, flags Flags, data string) error
}

// Log requests and never touch namespace
type DryRun struct {
	Log logrus.FieldLogger
}

func (dry DryRun) logger() logrus.FieldLogger {
	if dry.Log == nil {
		return logrus.StandardLogger()
	}
	return dry.Log
}

func (dry DryRun) Detach(target string) error {
	dry.logger().WithField("target", target).Info("dry-run: umount2 MNT_DETACH")
	return nil
}

func (dry DryRun) Mount(source, target, fstype string, flags Flags, data string) error {
	dry.logger().WithFields(logrus.Fields{
		"source": source,
		"target": target,
		"type":   fstype,
		"flags":  flags,
		"data":   data,
	}).Info("dry-run: mount")
	return nil
}
