package overlayfs

import (
	"strings"

	"sirherobrine23.com.br/go-bds/mountrevert/mounts"
	"sirherobrine23.com.br/go-bds/mountrevert/sysmount"
)

// Overlay mount point and options as seen before unmount
type Backup struct {
	Target  string `json:"target" yaml:"target"`
	Options string `json:"options" yaml:"options"`
}

// Options to mount(2) flags and data
//
// ro, nosuid and relatime become flags, everything else stay in data
// in original order. Do not add options here, each new flag change how
// overlays are remounted.
func ParseOptions(options string) (sysmount.Flags, string) {
	var flags sysmount.Flags
	data := []string{}
	for _, opt := range strings.Split(options, ",") {
		switch opt {
		case "ro":
			flags |= sysmount.ReadOnly
		case "nosuid":
			flags |= sysmount.NoSuid
		case "relatime":
			flags |= sysmount.Relatime
		default:
			data = append(data, opt)
		}
	}
	return flags, strings.Join(data, ",")
}

// Mount overlay again with saved options
func (backup Backup) Restore(m sysmount.Mounter) (sysmount.Flags, string, error) {
	flags, data := ParseOptions(backup.Options)
	return flags, data, m.Mount(FSType, backup.Target, FSType, flags, data)
}

// Overlays to restore, in discovery order
type BackupSet []Backup

func (set *BackupSet) Add(rec mounts.Record) {
	*set = append(*set, Backup{Target: rec.Path, Options: rec.Options})
}

// Drop every backup still mounted with same target and options in table,
// returning the dropped entries
func (set *BackupSet) Prune(table mounts.Table) (pruned BackupSet) {
	keep := make(BackupSet, 0, len(*set))
	for _, backup := range *set {
		if backup.mountedIn(table) {
			pruned = append(pruned, backup)
			continue
		}
		keep = append(keep, backup)
	}
	*set = keep
	return
}

func (backup Backup) mountedIn(table mounts.Table) bool {
	for _, rec := range table {
		if rec.Type == FSType && rec.Path == backup.Target && rec.Options == backup.Options {
			return true
		}
	}
	return false
}
