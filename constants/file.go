package constants

import "strings"

// Source formats accepted for lap analysis documents.
const PDF = "PDF"

// AllowedExtensions holds the document extensions the extractor accepts.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the source format for a normalized extension, or "" if unsupported.
func MapExtToFormat(ext string) string {
	if _, ok := AllowedExtensions[NormalizeExt(ext)]; ok {
		return PDF
	}
	return ""
}
