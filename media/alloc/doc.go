// Package alloc packs a stream of items onto a sequence of media segments.
//
// # Overview
//
// An Allocator pulls items from a source one at a time and, for each one:
//
//  1. Admission: asks the Validator whether the active segment can take
//     another item. If not, the segment is finalized, a new one is opened and
//     the item is dropped for this run (see WithRetryRejected).
//  2. Write: hands the item to the Writer and, on success, consumes its
//     duration from the active segment.
//  3. Rollback/rollover: undoes the consumption from step 2, finalizes the
//     active segment (opening a replacement if finalizing fails) and writes
//     the item again, without another admission check.
//
// Step 3 runs after every write attempt, successful or not. If the first
// write failed, a *CapacityOverflowError is returned once step 3 completes
// and the rest of the stream is not processed.
//
// # Policies
//
// RolloverAlways (the default) is the sequence above. RolloverOnFailure keeps
// successful writes where they are and only rolls the segment when a write
// fails:
//
//	a, err := alloc.New(src, validate.Capacity{}, w, f,
//	    alloc.WithPolicy(alloc.RolloverOnFailure))
//
// # Hooks
//
// A Hook observes every decision the allocator makes (segments opened,
// items admitted or rejected, writes, finalizes). Hooks never influence the
// run; media/ledger records them to SQLite.
//
// # Thread Safety
//
// Allocator is NOT thread-safe and processes exactly one item at a time.
// Running two allocators against the same writer breaks the single-writer
// assumption the segment accounting relies on.
package alloc
