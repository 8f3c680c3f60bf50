//go:build !windows

package fs

import "golang.org/x/sys/unix"

// DirIdentity identifies a directory independently of the path used to reach it.
type DirIdentity struct {
	Dev uint64
	Ino uint64
}

// IdentityOf resolves the identity of path, following symlinks.
func IdentityOf(path string) (DirIdentity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return DirIdentity{}, err
	}
	return DirIdentity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil
}
