// Package file contains file name utilities
package file

import (
	"path"
	"strings"
)

// ExtractSuffix returns the extension of the last path element of s,
// including the dot, and the index of that dot within the element.
// A name without a dot, or whose only dot is the first character, has no
// suffix and idx is -1.
func ExtractSuffix(s string) (suffix string, idx int) {
	base := path.Base(strings.ReplaceAll(s, "\\", "/"))
	idx = strings.LastIndex(base, ".")
	if idx <= 0 {
		return "", -1
	}
	return base[idx:], idx
}
