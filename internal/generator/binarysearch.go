package generator

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/step"
)

func BinarySearchAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "binary-search",
		Title:   "Binary Search",
		Summary: "halve a sorted range until the target is found",
		Data:    Number,
		Params: []ParamSpec{
			{Name: "target", Label: "Target", Type: Number, Default: 9},
		},
		Generate: func(data []step.Value, params Params) step.Sequence {
			var p struct {
				Target int `param:"target"`
			}
			_ = params.Decode(&p)
			return BinarySearch(ints(data), p.Target)
		},
	})
}

func span(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

// BinarySearch expects nums in ascending order.
func BinarySearch(nums []int, target int) step.Sequence {
	seq := step.Sequence{
		step.Narrate(fmt.Sprintf("Search for %d in %s", target, joinInts(nums))).WithVars("target", target),
	}

	left, right := 0, len(nums)-1
	for left <= right {
		mid := left + (right-left)/2
		ptrs := []step.Pointer{
			{Name: "L", Index: left, Color: "blue"},
			{Name: "M", Index: mid, Color: "yellow"},
			{Name: "R", Index: right, Color: "blue"},
		}
		seq = append(seq,
			step.Mark(fmt.Sprintf("Searching [%d..%d]", left, right), step.RoleActive, span(left, right)...).
				WithPointers(ptrs...).
				WithVars("left", left, "right", right),
			step.Compare(fmt.Sprintf("Mid = %d, nums[%d] = %d, comparing with target %d", mid, mid, nums[mid], target), mid).
				WithVars("mid", mid).
				WithCode("mid := left + (right-left)/2"),
		)

		switch {
		case nums[mid] == target:
			return append(seq, step.Found(fmt.Sprintf("Found target %d at index %d", target, mid), mid).
				WithPointers(step.Pointer{Name: "M", Index: mid, Color: "green"}).
				WithVars("result", mid))
		case nums[mid] < target:
			seq = append(seq, step.Narrate(fmt.Sprintf("%d < %d, search right half", nums[mid], target)).
				WithCode("left = mid + 1"))
			left = mid + 1
		default:
			seq = append(seq, step.Narrate(fmt.Sprintf("%d > %d, search left half", nums[mid], target)).
				WithCode("right = mid - 1"))
			right = mid - 1
		}
	}

	return append(seq, step.Narrate(fmt.Sprintf("Target %d not found in array", target)).WithVars("result", -1))
}
