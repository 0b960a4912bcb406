package generator

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/step"
)

func BubbleSortAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "bubble-sort",
		Title:   "Bubble Sort",
		Summary: "swap adjacent pairs until the largest values settle at the end",
		Data:    Number,
		Generate: func(data []step.Value, _ Params) step.Sequence {
			return BubbleSort(ints(data))
		},
	})
}

// BubbleSort works on a private copy of nums.
func BubbleSort(nums []int) step.Sequence {
	a := append([]int(nil), nums...)
	n := len(a)
	seq := step.Sequence{step.Narrate(fmt.Sprintf("Sort %s in ascending order", joinInts(a)))}
	swaps := 0

	for end := n - 1; end > 0; end-- {
		swapped := false
		for i := 0; i < end; i++ {
			seq = append(seq, step.Compare(fmt.Sprintf("Compare %d and %d", a[i], a[i+1]), i, i+1).
				WithPointers(step.Pointer{Name: "i", Index: i}).
				WithCode("if a[i] > a[i+1]"))
			if a[i] > a[i+1] {
				a[i], a[i+1] = a[i+1], a[i]
				swaps++
				swapped = true
				seq = append(seq, step.Swap(fmt.Sprintf("%d > %d, swap them", a[i+1], a[i]), i, i+1).
					WithVars("swaps", swaps).
					WithCode("a[i], a[i+1] = a[i+1], a[i]"))
			}
		}
		seq = append(seq, step.Mark(fmt.Sprintf("%d is in its final place", a[end]), step.RoleSorted, end))
		if !swapped {
			seq = append(seq, step.Mark("No swaps in this pass, the rest is sorted", step.RoleSorted, span(0, end-1)...))
			return append(seq, step.Narrate("Sorted").WithVars("result", joinInts(a)))
		}
	}
	if n > 0 {
		seq = append(seq, step.Mark(fmt.Sprintf("%d is in its final place", a[0]), step.RoleSorted, 0))
	}
	return append(seq, step.Narrate("Sorted").WithVars("result", joinInts(a)))
}
