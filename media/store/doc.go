// Package store persists songs into fixed-size media image files.
//
// # Overview
//
// A Store is a directory of images named <prefix>.<NNN>.img. Exactly one
// image is active at a time; Append writes a record into it and Seal
// finalizes it, after which the next Append opens a new image:
//
//	st, err := store.Open(store.DefaultOptions("out"))
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	err = st.Append(store.Record{Title: "So What", Duration: 562 * time.Second})
//	err = st.Seal(ctx) // image 000 is now read-only and marked sealed
//
// Images are memory-mapped read/write (see internal/mmfile). Their byte size
// and, optionally, their playing time are the physical limits of the medium:
// an append beyond either fails with ErrNoSpace or ErrDurationLimit. These
// limits are independent of the logical capacity media/segment tracks.
//
// # Durability
//
// Seal flushes the dirty record range, stamps the header with the sealed
// flag, timestamp and checksum, flushes the header and, unless FlushDataOnly
// is selected, syncs the file.
//
// # Thread Safety
//
// Store is NOT thread-safe. It is owned by a single allocator run.
package store
