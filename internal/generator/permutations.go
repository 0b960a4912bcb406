package generator

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/step"
)

// maxPermutationItems keeps the backtracking trace small enough to step
// through.
const maxPermutationItems = 5

func PermutationsAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "permutations",
		Title:   "Permutations",
		Summary: "backtracking over every ordering of the input",
		Data:    Number,
		Generate: func(data []step.Value, _ Params) step.Sequence {
			return Permutations(ints(data))
		},
	})
}

// Permutations traces the choose, explore and backtrack moves of the classic
// backtracking solution. Inputs longer than maxPermutationItems are truncated.
func Permutations(nums []int) step.Sequence {
	intro := fmt.Sprintf("Generate all permutations of %s", joinInts(nums))
	if len(nums) > maxPermutationItems {
		intro = fmt.Sprintf("Generate all permutations of %s, using the first %d of %d items",
			joinInts(nums[:maxPermutationItems]), maxPermutationItems, len(nums))
		nums = nums[:maxPermutationItems]
	}
	seq := step.Sequence{step.Narrate(intro).WithVars("count", 0)}

	count := 0
	used := make([]bool, len(nums))
	current := make([]int, 0, len(nums))

	var backtrack func(depth int)
	backtrack = func(depth int) {
		if depth == len(nums) {
			count++
			seq = append(seq, step.Mark(fmt.Sprintf("Add permutation %s", joinInts(current)), step.RoleFound, usedIndices(used)...).
				WithVars("current", joinInts(current), "count", count, "depth", depth))
			return
		}
		for i, n := range nums {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, n)
			seq = append(seq, step.Mark(fmt.Sprintf("Choose %d at depth %d", n, depth), step.RoleActive, i).
				WithPointers(step.Pointer{Name: fmt.Sprintf("d%d", depth), Index: i}).
				WithVars("current", joinInts(current), "remaining", joinInts(unused(nums, used)), "depth", depth+1).
				WithCode("current = append(current, nums[i])"))

			backtrack(depth + 1)

			current = current[:len(current)-1]
			used[i] = false
			seq = append(seq, step.Narrate(fmt.Sprintf("Backtrack from %d", n)).
				WithVars("current", joinInts(current), "remaining", joinInts(unused(nums, used)), "depth", depth).
				WithCode("current = current[:len(current)-1]"))
		}
	}
	backtrack(0)

	return append(seq, step.Narrate(fmt.Sprintf("Generated %d permutations", count)).WithVars("result", count))
}

func usedIndices(used []bool) []int {
	var out []int
	for i, u := range used {
		if u {
			out = append(out, i)
		}
	}
	return out
}

func unused(nums []int, used []bool) []int {
	out := make([]int, 0, len(nums))
	for i, n := range nums {
		if !used[i] {
			out = append(out, n)
		}
	}
	return out
}
