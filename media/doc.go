// Package media defines the items that get packed onto media segments.
//
// # Overview
//
// An Item is anything with a playing time. The allocator in media/alloc only
// ever looks at an item's Duration; everything else about the item belongs to
// the source that produced it and the writer that persists it.
//
// Song is the concrete item used throughout the module:
//
//	s := media.Song{Title: "Blue in Green", Artist: "Miles Davis", Length: 337 * time.Second}
//	s.Duration() // 5m37s
//
// # Related Packages
//
//   - github.com/joshuapare/mediakit/media/segment: capacity tracking for one storage unit
//   - github.com/joshuapare/mediakit/media/alloc: the packing loop
//   - github.com/joshuapare/mediakit/media/source: item sources (slices, playlists)
package media
