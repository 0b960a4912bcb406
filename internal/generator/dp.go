package generator

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/step"
)

// maxStairs bounds the climbing-stairs table.
const maxStairs = 45

func ClimbingStairsAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "climbing-stairs",
		Title:   "Climbing Stairs",
		Summary: "count the ways to climb n stairs taking 1 or 2 steps",
		Data:    Number,
		Params: []ParamSpec{
			{Name: "n", Label: "Stairs", Type: Number, Default: 5},
		},
		Table: func(params Params) []step.Value {
			n := stairs(params)
			cells := make([]step.Value, n+1)
			for i := range cells {
				cells[i] = step.Text("?")
			}
			return cells
		},
		Generate: func(_ []step.Value, params Params) step.Sequence {
			return ClimbingStairs(stairs(params))
		},
	})
}

func stairs(params Params) int {
	var p struct {
		N int `param:"n"`
	}
	_ = params.Decode(&p)
	if p.N < 0 {
		return 0
	}
	if p.N > maxStairs {
		return maxStairs
	}
	return p.N
}

// ClimbingStairs fills dp[0..n] where dp[i] = dp[i-1] + dp[i-2].
func ClimbingStairs(n int) step.Sequence {
	seq := step.Sequence{
		step.Narrate(fmt.Sprintf("Count the distinct ways to climb %d stairs", n)).WithVars("n", n),
		step.SetValue("Base case: 1 way to stay at ground (step 0)", 0, step.Int(1)).
			WithVars("dp[0]", 1).
			WithCode("dp[0] = 1"),
		step.Mark("dp[0] is final", step.RoleSorted, 0),
	}
	if n == 0 {
		return append(seq, step.Found("Complete! 1 way to climb 0 stairs", 0).WithVars("result", 1))
	}

	dp := make([]int, n+1)
	dp[0], dp[1] = 1, 1
	seq = append(seq,
		step.SetValue("Base case: 1 way to reach step 1 (take one step)", 1, step.Int(1)).
			WithVars("dp[1]", 1).
			WithCode("dp[1] = 1"),
		step.Mark("dp[1] is final", step.RoleSorted, 1),
	)

	for i := 2; i <= n; i++ {
		dp[i] = dp[i-1] + dp[i-2]
		seq = append(seq,
			step.Compare(fmt.Sprintf("Step %d: %d ways (from %d) + %d ways (from %d)", i, dp[i-1], i-1, dp[i-2], i-2), i-2, i-1).
				WithPointers(step.Pointer{Name: "i", Index: i}).
				WithCode(fmt.Sprintf("dp[%d] = dp[%d] + dp[%d]", i, i-1, i-2)),
			step.SetValue(fmt.Sprintf("dp[%d] = %d + %d = %d", i, dp[i-1], dp[i-2], dp[i]), i, step.Int(dp[i])).
				WithVars(fmt.Sprintf("dp[%d]", i), dp[i], "ways", dp[i]),
			step.Mark(fmt.Sprintf("dp[%d] is final", i), step.RoleSorted, i),
		)
	}

	return append(seq, step.Found(fmt.Sprintf("Complete! %d distinct ways to climb %d stairs", dp[n], n), n).
		WithVars("result", dp[n]))
}

func HouseRobberAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "house-robber",
		Title:   "House Robber",
		Summary: "maximum loot without robbing two adjacent houses",
		Data:    Number,
		Generate: func(data []step.Value, _ Params) step.Sequence {
			return HouseRobber(ints(data))
		},
	})
}

// HouseRobber computes dp[i] = max(dp[i-1], dp[i-2] + houses[i]).
func HouseRobber(houses []int) step.Sequence {
	n := len(houses)
	seq := step.Sequence{step.Narrate(fmt.Sprintf("Rob houses %s without robbing two neighbours", joinInts(houses)))}
	if n == 0 {
		return append(seq, step.Narrate("No houses, nothing to rob").WithVars("result", 0))
	}

	dp := make([]int, n)
	dp[0] = houses[0]
	seq = append(seq, step.Mark(fmt.Sprintf("Base case: with one house, rob it for $%d", houses[0]), step.RoleSorted, 0).
		WithVars("dp[0]", dp[0], "best", dp[0]).
		WithCode("dp[0] = houses[0]"))

	if n > 1 {
		dp[1] = max(houses[0], houses[1])
		seq = append(seq,
			step.Compare(fmt.Sprintf("dp[1] = max(%d, %d)", houses[0], houses[1]), 0, 1).
				WithCode("dp[1] = max(houses[0], houses[1])"),
			step.Mark(fmt.Sprintf("With 2 houses, rob the one with more money: $%d", dp[1]), step.RoleSorted, 1).
				WithVars("dp[1]", dp[1], "best", dp[1]),
		)
	}

	for i := 2; i < n; i++ {
		rob := dp[i-2] + houses[i]
		skip := dp[i-1]
		dp[i] = max(rob, skip)
		verdict := fmt.Sprintf("Rob house %d: $%d beats skipping it ($%d)", i, rob, skip)
		if skip >= rob {
			verdict = fmt.Sprintf("Skip house %d: keeping $%d beats $%d", i, skip, rob)
		}
		seq = append(seq,
			step.Compare(fmt.Sprintf("House %d: rob = dp[%d] + %d = %d, skip = dp[%d] = %d", i, i-2, houses[i], rob, i-1, skip), i-2, i).
				WithPointers(step.Pointer{Name: "i", Index: i}).
				WithVars("rob", rob, "skip", skip).
				WithCode("dp[i] = max(dp[i-1], dp[i-2]+houses[i])"),
			step.Mark(verdict, step.RoleSorted, i).
				WithVars(fmt.Sprintf("dp[%d]", i), dp[i], "best", dp[i]),
		)
	}

	return append(seq, step.Found(fmt.Sprintf("Done! Maximum loot is $%d", dp[n-1]), n-1).
		WithVars("result", dp[n-1]))
}
