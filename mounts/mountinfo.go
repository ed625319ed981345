package mounts

import (
	"strings"

	"github.com/moby/sys/mountinfo"
	"github.com/pkg/errors"
)

// Mount table built from /proc/self/mountinfo
//
// Options join per-mount options with superblock options, same
// order /proc/self/mounts show them, superblock rw/ro is dropped
// because per-mount options already carry it.
type Mountinfo struct {
	Filter mountinfo.FilterFunc // Optional filter, nil to all mounts
}

func (info Mountinfo) Snapshot() (Table, error) {
	infos, err := mountinfo.GetMounts(info.Filter)
	if err != nil {
		return nil, errors.Wrap(err, "read mountinfo")
	}

	out := make(Table, 0, len(infos))
	for _, entry := range infos {
		out = append(out, FromInfo(entry))
	}
	return out, nil
}

// Convert mountinfo entry to Record
func FromInfo(entry *mountinfo.Info) Record {
	opts := entry.Options
	for _, opt := range strings.Split(entry.VFSOptions, ",") {
		switch opt {
		case "", "rw", "ro":
			continue
		}
		if opts == "" {
			opts = opt
			continue
		}
		opts += "," + opt
	}

	return Record{
		Source:  entry.Source,
		Path:    entry.Mountpoint,
		Type:    entry.FSType,
		Options: opts,
	}
}
