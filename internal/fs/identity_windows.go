//go:build windows

package fs

import "golang.org/x/sys/windows"

// DirIdentity identifies a directory independently of the path used to reach it.
type DirIdentity struct {
	Volume    uint32
	IndexHigh uint32
	IndexLow  uint32
}

// IdentityOf resolves the identity of path, following reparse points.
func IdentityOf(path string) (DirIdentity, error) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return DirIdentity{}, err
	}

	// FILE_FLAG_BACKUP_SEMANTICS is required to open a directory handle.
	handle, err := windows.CreateFile(
		ptr,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return DirIdentity{}, err
	}
	defer func() {
		_ = windows.CloseHandle(handle)
	}()

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &info); err != nil {
		return DirIdentity{}, err
	}
	return DirIdentity{
		Volume:    info.VolumeSerialNumber,
		IndexHigh: info.FileIndexHigh,
		IndexLow:  info.FileIndexLow,
	}, nil
}
