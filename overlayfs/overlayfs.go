// Overlay mounts saved before unmount and restored after
//
// Only ro, nosuid and relatime are translated to mount flags when restoring,
// every other option go to mount data as is.
package overlayfs

const FSType = "overlay" // Filesystem type and source used by kernel overlayfs
