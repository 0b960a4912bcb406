// Package step defines the immutable records an algorithm emits while it runs.
//
// A [Step] describes one narrated moment: which indices are touched, where the
// named pointers sit, and a snapshot of the variables that changed. Steps are
// built through kind-specific constructors so a step never declares a kind it
// does not carry the fields for:
//
//   - [Compare]: indices under comparison
//   - [Swap]: two indices whose values are exchanged
//   - [Mark]: indices tagged with an explicit [Role] (active, sorted, target)
//   - [Found]: the indices of a result
//   - [SetValue]: a write into the data array
//   - [MovePointers]: pointer motion only
//   - [Narrate]: narrative and variables only
//
// Variables and data items are [Value]s, a closed variant of integer, text and
// index pair.
package step
