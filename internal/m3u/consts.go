// Package m3u parses extended M3U playlists.
//
// Supported lines:
//
//	#EXTM3U                                  header, optional
//	#EXTINF:<seconds>[ attrs],<artist> - <title>
//	<path or URL>                            one entry per non-comment line
//
// Any other line starting with '#' is a comment. .m3u files are read as
// Windows-1252 (the encoding most players write them in); .m3u8 files are
// UTF-8.
package m3u

const (
	// HeaderTag is the optional first line of an extended playlist.
	HeaderTag = "#EXTM3U"

	// InfoTag prefixes the duration/title line that describes the next entry.
	InfoTag = "#EXTINF:"

	// CommentPrefix marks a comment line.
	CommentPrefix = "#"

	// TitleSeparator splits "<artist> - <title>" display names.
	TitleSeparator = " - "

	// UnknownDuration is the #EXTINF duration players write for streams.
	UnknownDuration = -1

	// ScannerInitialBufferSize is the initial buffer size for the playlist scanner.
	ScannerInitialBufferSize = 4 * 1024 // 4KB

	// ScannerMaxLineSize is the maximum line size for the playlist scanner.
	ScannerMaxLineSize = 64 * 1024 // 64KB

	// utf8BOM is stripped from the start of .m3u8 files.
	utf8BOM = "\ufeff"
)
