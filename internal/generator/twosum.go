package generator

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/step"
)

func TwoSumAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "two-sum",
		Title:   "Two Sum",
		Summary: "find two indices whose values add up to the target",
		Data:    Number,
		Params: []ParamSpec{
			{Name: "target", Label: "Target", Type: Number, Default: 9},
		},
		Generate: func(data []step.Value, params Params) step.Sequence {
			var p struct {
				Target int `param:"target"`
			}
			_ = params.Decode(&p)
			return TwoSum(ints(data), p.Target)
		},
	})
}

// TwoSum scans nums once with a value to index map and stops at the first
// complementary pair.
func TwoSum(nums []int, target int) step.Sequence {
	seen := make(map[int]int, len(nums))
	seq := step.Sequence{
		step.Narrate(fmt.Sprintf("Starting with array %s, target = %d", joinInts(nums), target)).
			WithVars("target", target),
	}

	for i, current := range nums {
		complement := target - current
		seq = append(seq, step.Compare(
			fmt.Sprintf("Check index %d: value = %d, looking for %d - %d = %d", i, current, target, current, complement), i).
			WithVars("target", target, "current", current, "needed", complement).
			WithPointers(step.Pointer{Name: "i", Index: i, Color: "blue"}).
			WithCode("complement := target - nums[i]"))

		if j, ok := seen[complement]; ok {
			return append(seq, step.Found(
				fmt.Sprintf("Found! nums[%d] = %d and nums[%d] = %d sum to %d", j, nums[j], i, current, target), j, i).
				WithVars("target", target, "result", step.Pair(j, i)).
				WithPointers(
					step.Pointer{Name: "i", Index: j, Color: "green"},
					step.Pointer{Name: "j", Index: i, Color: "green"},
				).
				WithCode("return []int{seen[complement], i}"))
		}
		seen[current] = i
	}

	return append(seq, step.Narrate("No two numbers sum to the target value").
		WithVars("target", target, "result", "No solution"))
}
