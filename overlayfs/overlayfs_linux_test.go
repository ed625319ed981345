//go:build linux

package overlayfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
	"sirherobrine23.com.br/go-bds/mountrevert/mounts"
	"sirherobrine23.com.br/go-bds/mountrevert/sysmount"
)

func overlayAt(table mounts.Table, target string) (mounts.Record, bool) {
	for _, rec := range table.OfType(FSType) {
		if rec.Path == target {
			return rec, true
		}
	}
	return mounts.Record{}, false
}

func TestLinuxOverlayRestore(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	low1, low2 := filepath.Join(root, "low 1"), filepath.Join(root, "low2")
	for _, folderPath := range []string{target, low1, low2} {
		if err := os.Mkdir(folderPath, 0777); err != nil {
			t.Skipf("skiping, cannot make folders: %q", err.Error())
			return
		}
	}

	var kernel sysmount.Kernel
	first := Backup{Target: target, Options: "ro,nosuid,lowerdir=" + low1 + ":" + low2}
	if _, _, err := first.Restore(kernel); err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.ENODEV) {
			t.Skip("cannot mount overlayfs, run with unshare or root user")
		}
		t.Fatalf("Cannot mount overlayfs: %q", err.Error())
	}
	defer kernel.Detach(target)

	table, err := mounts.File("").Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := overlayAt(table, target)
	if !ok {
		t.Fatalf("%s not in mount table", target)
	}

	var set BackupSet
	set.Add(rec)
	if err = kernel.Detach(target); err != nil {
		t.Fatalf("unmount overlayfs: %q", err.Error())
	}

	if table, err = mounts.File("").Snapshot(); err != nil {
		t.Fatal(err)
	}
	if pruned := set.Prune(table); len(pruned) != 0 {
		t.Fatalf("detached overlay pruned: %v", pruned)
	}

	// Layer path with space come back decoded from mount table
	if _, data, err := set[0].Restore(kernel); err != nil {
		t.Fatalf("restore overlay with %q: %q", data, err.Error())
	}

	if table, err = mounts.File("").Snapshot(); err != nil {
		t.Fatal(err)
	}
	if _, ok := overlayAt(table, target); !ok {
		t.Errorf("overlay not restored at %s", target)
	}
}
