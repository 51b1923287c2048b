// Package resource provides the opaque handle table behind the
// shaping boundary.
//
// Resources are opaque handles representing host-controlled values
// that cross a memory-management boundary. A handle is a plain
// uint32: the far side of the boundary never sees an address or an
// object graph, only the token.
//
// # Handle Table
//
// The Table maps integer handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert(typeID, myValue)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Remove and get value (for ownership transfer or free)
//	value, ok := table.Remove(handle)
//
// # Type Safety
//
// Handles are typed - each resource type gets a unique type ID:
//
//	const BufferTypeID = 1
//	const FontTypeID = 2
//
//	value, ok := table.GetTyped(h, BufferTypeID) // ok
//	value, ok := table.GetTyped(h, FontTypeID)   // !ok
//
// # Handle Reuse
//
// Handle 0 is reserved and always invalid. Handles are allocated from
// a monotonic counter and never reused: a freed handle stays dead, so
// accidental use-after-free is detectable as a failed lookup instead
// of silently aliasing an unrelated live object.
//
// # Memory Management
//
// Resources are not garbage collected out of the table. The owner
// must call Remove when the far side drops a handle; values
// implementing Dropper are cleaned up at that point. Call Close to
// release everything when the boundary shuts down.
package resource
