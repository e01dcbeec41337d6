package storage

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// URLPrefix is the public URL prefix uploaded files are served under
const URLPrefix = "/uploads/"

// GenerateFileName generates a file name from the upload time in milliseconds
// and the extension of the original file name
func GenerateFileName(now time.Time, originalName string) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + filepath.Ext(originalName)
}

// PublicPath returns the path recorded on a recipe for a stored file
func PublicPath(name string) string {
	return URLPrefix + name
}

// NameFromPublicPath returns the stored file name for a recorded public path,
// or "" when the path does not point into the upload directory
func NameFromPublicPath(publicPath string) string {
	name, ok := strings.CutPrefix(publicPath, URLPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return ""
	}
	return name
}
