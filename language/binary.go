package language

import (
	"path/filepath"
	"strings"
)

// binaryExtensions is the static set of extensions treated as binary.
// Classification is extension-only so that binary files are never opened;
// content sniffing would defeat the read short-circuit.
var binaryExtensions = map[string]bool{
	// Executables / libraries
	"exe": true, "dll": true, "so": true, "dylib": true,
	"o": true, "a": true, "lib": true, "bin": true,
	"class": true, "jar": true, "war": true,
	"pyc": true, "pyo": true, "wasm": true,
	// Archives
	"zip": true, "tar": true, "gz": true, "tgz": true,
	"bz2": true, "xz": true, "rar": true, "7z": true,
	// Images
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"bmp": true, "ico": true, "webp": true, "tiff": true, "icns": true,
	// Fonts
	"woff": true, "woff2": true, "ttf": true, "eot": true, "otf": true,
	// Media
	"mp3": true, "mp4": true, "avi": true, "mov": true,
	"mkv": true, "wav": true, "flac": true, "ogg": true, "webm": true,
	// Documents
	"pdf": true, "doc": true, "docx": true, "xls": true,
	"xlsx": true, "ppt": true, "pptx": true,
	// Databases
	"sqlite": true, "sqlite3": true, "db": true, "mdb": true,
	// Misc
	"dat": true, "iso": true, "dmg": true, "pak": true,
}

// IsBinaryPath reports whether the file's lower-cased extension is in the
// binary set.
func IsBinaryPath(filePath string) bool {
	return binaryExtensions[extOf(filePath)]
}

// FileTypeTag returns the upper-cased extension used to label binary files in
// listings ("PNG", "ZIP"), or "BIN" when the file has no extension.
func FileTypeTag(filePath string) string {
	ext := extOf(filePath)
	if ext == "" {
		return "BIN"
	}
	return strings.ToUpper(ext)
}

func extOf(filePath string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
}
