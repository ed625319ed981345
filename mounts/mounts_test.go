package mounts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moby/sys/mountinfo"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const androidMounts = `/dev/block/dm-0 / ext4 ro,seclabel,relatime 0 0
tmpfs /dev tmpfs rw,seclabel,nosuid,relatime,mode=755 0 0
/dev/loop0 /data/adb/ksu/modules ext4 rw,seclabel,relatime 0 0
/dev/loop0 /data/adb/modules ext4 rw,seclabel,relatime 0 0
KSU /system overlay ro,seclabel,relatime,lowerdir=/data/adb/ksu/modules/a/system:/system 0 0
overlay /vendor overlay ro,nosuid,relatime,lowerdir=/mnt/vendor_extra:/vendor 0 0
/dev/block/sda1 /mnt/my\040disk vfat rw,relatime 0 0
`

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(androidMounts))
	require.NoError(t, err)
	require.Len(t, table, 7)

	assert.Equal(t, Record{Source: "/dev/loop0", Path: "/data/adb/ksu/modules", Type: "ext4", Options: "rw,seclabel,relatime"}, table[2])
	assert.Equal(t, "/mnt/my disk", table[6].Path)

	overlays := table.OfType("overlay")
	require.Len(t, overlays, 2)
	assert.Equal(t, "/vendor", overlays[1].Path)
	assert.Empty(t, table.OfType("f2fs"))
}

func TestParseEscapedOptions(t *testing.T) {
	table, err := Parse(strings.NewReader(`overlay /my\040vendor overlay ro,lowerdir=/mnt/my\040extra:/mnt/tab\011:/vendor\134x 0 0`))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "/my vendor", table[0].Path)
	assert.Equal(t, "ro,lowerdir=/mnt/my extra:/mnt/tab\t:/vendor\\x", table[0].Options)
}

func TestParseWithoutDumpPass(t *testing.T) {
	table, err := Parse(strings.NewReader("proc /proc proc rw\n\n"))
	require.NoError(t, err)
	assert.Equal(t, Table{{Source: "proc", Path: "/proc", Type: "proc", Options: "rw"}}, table)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader("rootfs / rootfs\n"))
	assert.True(t, errors.Is(err, ErrInvalidLine))
}

func TestUnescape(t *testing.T) {
	for input, expected := range map[string]string{
		`/mnt/plain`:          "/mnt/plain",
		`/mnt/a\040b`:         "/mnt/a b",
		`/mnt/tab\011`:        "/mnt/tab\t",
		`/mnt/back\134slash`:  `/mnt/back\slash`,
		`/mnt/short\04`:       `/mnt/short\04`,
		`/mnt/not\999octal`:   `/mnt/not\999octal`,
		`/mnt/new\012line\40`: "/mnt/new\nline\\40",
	} {
		assert.Equal(t, expected, Unescape(input), "unescape %q", input)
	}
}

func TestFileSnapshot(t *testing.T) {
	mountsFile := filepath.Join(t.TempDir(), "mounts")
	require.NoError(t, os.WriteFile(mountsFile, []byte(androidMounts), 0600))

	first, err := File(mountsFile).Snapshot()
	require.NoError(t, err)
	second, err := File(mountsFile).Snapshot()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Snapshots not share memory
	first[0].Path = "/changed"
	assert.Equal(t, "/", second[0].Path)

	_, err = File(filepath.Join(t.TempDir(), "missing")).Snapshot()
	assert.True(t, os.IsNotExist(err))
}

func TestFromInfo(t *testing.T) {
	rec := FromInfo(&mountinfo.Info{
		Mountpoint: "/vendor",
		Source:     "overlay",
		FSType:     "overlay",
		Options:    "ro,nosuid,relatime",
		VFSOptions: "ro,seclabel,lowerdir=/a:/b",
	})
	assert.Equal(t, Record{Source: "overlay", Path: "/vendor", Type: "overlay", Options: "ro,nosuid,relatime,seclabel,lowerdir=/a:/b"}, rec)

	rec = FromInfo(&mountinfo.Info{Mountpoint: "/", Source: "rootfs", FSType: "rootfs", VFSOptions: "rw"})
	assert.Equal(t, "", rec.Options)
}

func TestSourceFunc(t *testing.T) {
	calls := 0
	var src Source = SourceFunc(func() (Table, error) {
		calls++
		return Table{{Path: "/"}}, nil
	})
	table, err := src.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, Table{{Path: "/"}}, table)
	assert.Equal(t, 1, calls)
}
