//go:build windows

package fs

// ShouldHideFromListing reports whether an entry must never be shown or
// crawled, even with hidden files enabled. Windows compatibility junctions
// such as "Application Data" carry both the system and reparse-point bits
// and loop back into the profile.
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}

	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}

	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
