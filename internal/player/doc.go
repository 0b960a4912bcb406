// Package player implements the playback state machine that walks a
// precomputed step sequence.
//
// A [Store] belongs to exactly one visualization. It tracks the cursor, the
// playing flag, the speed multiplier and the state derived from the steps
// applied so far: six highlight sets, the current pointers, the accumulated
// variables and a snapshot of the data array that swap and set-value steps
// write into.
//
// # Transitions
//
//	SetSteps/Load  Ready(0, paused), derived state rebuilt from step 0
//	Next           advance one step, or stop playing at the last step
//	Previous       replay from step 0 to index-1
//	Goto           replay from step 0 to i, ignored when i is out of range
//	Play/Pause     flip the playing flag, never advance
//	Reset          Ready(0, paused), sequence kept
//
// None of the transitions can fail. Invalid navigation is a no-op.
//
// # Autoplay
//
// [Scheduler] arms one tick at a time at BaseInterval/speed. Pausing bumps its
// generation so a tick that was already scheduled is dropped when it fires.
// [Autoplay] drives a scheduler with real timers on the caller's goroutine.
//
// # Thread Safety
//
// Store and Scheduler are NOT safe for concurrent use. The owning event loop
// serializes every transition.
package player
