package source

import "strings"

var tableExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt returns true if a file with this extension can be loaded into a table.
func IsSupportedExt(ext string) bool {
	return tableExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of loadable formats.
func SupportedExtsList() string {
	return ".wav, .mp3, .flac, .ogg"
}
