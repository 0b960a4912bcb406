package player_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/step"
)

func narrated(n int) step.Sequence {
	seq := make(step.Sequence, n)
	for i := range seq {
		seq[i] = step.Narrate("step").WithVars("i", i)
	}
	return seq
}

var _ = Describe("Store", func() {
	var s *player.Store

	BeforeEach(func() {
		s = player.New()
	})

	Describe("an empty sequence", func() {
		It("is inert", func() {
			Expect(s.Len()).To(Equal(0))
			Expect(s.Index()).To(Equal(0))
			Expect(s.IsAtEnd()).To(BeTrue())

			s.Play()
			Expect(s.IsPlaying()).To(BeFalse())

			s.Next()
			s.Previous()
			Expect(s.Goto(0)).To(BeFalse())
			Expect(s.Index()).To(Equal(0))

			_, ok := s.Current()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("SetSteps", func() {
		It("returns to a paused first step with cleared derived state", func() {
			s.Load(step.Ints(1, 2, 3), step.Sequence{
				step.Narrate("start"),
				step.Compare("cmp", 0, 1).WithPointers(step.Pointer{Name: "i", Index: 0}),
				step.Mark("done", step.RoleSorted, 2),
			})
			s.Play()
			s.Next()
			s.Next()

			s.SetSteps(step.Sequence{step.Narrate("fresh"), step.Narrate("more")})

			Expect(s.Index()).To(Equal(0))
			Expect(s.IsPlaying()).To(BeFalse())
			Expect(s.Indices(step.RoleSorted)).To(BeEmpty())
			Expect(s.Indices(step.RoleComparing)).To(BeEmpty())
			Expect(s.Pointers()).To(BeEmpty())
			Expect(s.Variables()).To(BeEmpty())
		})
	})

	Describe("boundary clamp", func() {
		for _, n := range []int{1, 2, 5, 17} {
			n := n
			It("never leaves [0, N-1]", func() {
				s.SetSteps(narrated(n))
				for i := 0; i < n+5; i++ {
					s.Next()
					Expect(s.Index()).To(BeNumerically("<=", n-1))
				}
				Expect(s.Index()).To(Equal(n - 1))
				for i := 0; i < n+5; i++ {
					s.Previous()
					Expect(s.Index()).To(BeNumerically(">=", 0))
				}
				Expect(s.Index()).To(Equal(0))
			})
		}
	})

	Describe("terminal autoplay stop", func() {
		It("stops playing without moving at the last step", func() {
			s.SetSteps(narrated(3))
			s.Play()
			s.Next()
			s.Next()
			Expect(s.IsPlaying()).To(BeTrue())

			s.Next()
			Expect(s.IsPlaying()).To(BeFalse())
			Expect(s.Index()).To(Equal(2))
		})

		It("restarts when played from the last step", func() {
			s.SetSteps(narrated(3))
			Expect(s.Goto(2)).To(BeTrue())
			s.Play()
			Expect(s.Index()).To(Equal(0))
			Expect(s.IsPlaying()).To(BeTrue())
		})
	})

	Describe("highlights", func() {
		BeforeEach(func() {
			s.Load(step.Ints(4, 1, 3, 2), step.Sequence{
				step.Narrate("start"),
				step.Compare("cmp", 0, 1),
				step.Mark("sorted", step.RoleSorted, 3),
				step.Compare("cmp", 2, 3),
				step.Mark("sorted", step.RoleSorted, 2),
				step.Narrate("narrative only"),
				step.Found("found", 0),
			})
		})

		It("recomputes transient sets on every step", func() {
			s.Next()
			Expect(s.Indices(step.RoleComparing)).To(Equal([]int{0, 1}))
			s.Next()
			Expect(s.Indices(step.RoleComparing)).To(BeEmpty())
		})

		It("accumulates sorted until reset", func() {
			s.Next()
			s.Next()
			Expect(s.Indices(step.RoleSorted)).To(Equal([]int{3}))
			for i := 0; i < 4; i++ {
				s.Next()
				Expect(s.Indices(step.RoleSorted)).To(ContainElement(3))
			}
			Expect(s.Indices(step.RoleSorted)).To(Equal([]int{2, 3}))

			s.Reset()
			Expect(s.Indices(step.RoleSorted)).To(BeEmpty())
		})

		It("resolves comparing and sorted to sorted", func() {
			s.Goto(3)
			Expect(s.Indices(step.RoleComparing)).To(ContainElement(3))
			Expect(s.Indices(step.RoleSorted)).To(ContainElement(3))
			Expect(s.ElementState(3)).To(Equal(step.RoleSorted))
			Expect(s.ElementState(2)).To(Equal(step.RoleComparing))
			Expect(s.ElementState(0)).To(Equal(step.RoleDefault))
		})

		It("lets found win over everything", func() {
			s.Goto(6)
			Expect(s.ElementState(0)).To(Equal(step.RoleFound))
			Expect(s.ElementState(3)).To(Equal(step.RoleSorted))
		})
	})

	Describe("data snapshot", func() {
		It("swaps exactly two named positions", func() {
			s.Load(step.Ints(5, 3), step.Sequence{
				step.Narrate("start"),
				step.Swap("swap", 0, 1),
			})
			s.Next()
			Expect(s.Data()).To(Equal(step.Ints(3, 5)))
			Expect(s.Indices(step.RoleSwapping)).To(Equal([]int{0, 1}))
		})

		It("ignores swaps that do not name two indices", func() {
			s.Load(step.Ints(5, 3, 1), step.Sequence{
				step.Narrate("start"),
				{Kind: step.KindSwap, Indices: []int{0, 1, 2}, Description: "bad"},
			})
			s.Next()
			Expect(s.Data()).To(Equal(step.Ints(5, 3, 1)))
		})

		It("writes set-value steps", func() {
			s.Load(step.Ints(0, 0, 0), step.Sequence{
				step.Narrate("start"),
				step.SetValue("dp[1]", 1, step.Int(7)),
			})
			s.Next()
			Expect(s.Data()).To(Equal(step.Ints(0, 7, 0)))
		})

		It("restores the source data when stepping back", func() {
			s.Load(step.Ints(5, 3), step.Sequence{
				step.Narrate("start"),
				step.Swap("swap", 0, 1),
			})
			s.Next()
			s.Previous()
			Expect(s.Data()).To(Equal(step.Ints(5, 3)))
		})

		It("does not alias the caller's slice", func() {
			src := step.Ints(5, 3)
			s.Load(src, step.Sequence{step.Narrate("start"), step.Swap("swap", 0, 1)})
			s.Next()
			Expect(src).To(Equal(step.Ints(5, 3)))
		})
	})

	Describe("variables", func() {
		It("merges with overwrite and keeps first-seen order", func() {
			s.SetSteps(step.Sequence{
				step.Narrate("start").WithVars("target", 9),
				step.Narrate("a").WithVars("current", 2, "needed", 7),
				step.Narrate("b").WithVars("current", 7),
			})
			s.Next()
			s.Next()
			Expect(s.Variables()).To(Equal([]player.Variable{
				{Name: "target", Value: step.Int(9)},
				{Name: "current", Value: step.Int(7)},
				{Name: "needed", Value: step.Int(7)},
			}))
		})

		It("rewinds to a true replay", func() {
			s.SetSteps(step.Sequence{
				step.Narrate("start"),
				step.Narrate("a").WithVars("x", 1),
				step.Narrate("b").WithVars("y", 2),
			})
			s.Next()
			s.Next()
			s.Previous()
			_, hasY := s.Variable("y")
			Expect(hasY).To(BeFalse())
			x, _ := s.Variable("x")
			Expect(x).To(Equal(step.Int(1)))
		})
	})

	Describe("pointers", func() {
		It("keeps the last declared pointers across pointerless steps", func() {
			s.Load(step.Ints(1, 2), step.Sequence{
				step.Narrate("start"),
				step.MovePointers("move", step.Pointer{Name: "i", Index: 1}),
				step.Narrate("talk"),
			})
			s.Goto(2)
			p, ok := s.PointerAt(1)
			Expect(ok).To(BeTrue())
			Expect(p.Name).To(Equal("i"))
		})
	})

	Describe("Goto", func() {
		It("ignores out of range targets", func() {
			s.SetSteps(narrated(4))
			s.Goto(2)
			Expect(s.Goto(-1)).To(BeFalse())
			Expect(s.Goto(4)).To(BeFalse())
			Expect(s.Index()).To(Equal(2))
		})

		It("matches a forward walk", func() {
			seq := step.Sequence{
				step.Narrate("start"),
				step.Swap("s", 0, 2),
				step.Mark("m", step.RoleSorted, 2),
				step.Compare("c", 0, 1).WithVars("k", 3),
			}
			walker := player.New()
			walker.Load(step.Ints(3, 2, 1), seq)
			walker.Next()
			walker.Next()
			walker.Next()

			s.Load(step.Ints(3, 2, 1), seq)
			s.Goto(3)
			Expect(s.Data()).To(Equal(walker.Data()))
			Expect(s.Indices(step.RoleSorted)).To(Equal(walker.Indices(step.RoleSorted)))
			Expect(s.Variables()).To(Equal(walker.Variables()))
		})
	})

	Describe("Reset", func() {
		It("is idempotent", func() {
			s.Load(step.Ints(1, 2, 3), step.Sequence{
				step.Narrate("start"),
				step.Mark("m", step.RoleSorted, 0),
				step.Compare("c", 1, 2),
			})
			s.Play()
			s.Next()
			s.Next()

			s.Reset()
			first := []interface{}{s.Index(), s.IsPlaying(), s.Indices(step.RoleSorted), s.Indices(step.RoleComparing), s.Data()}
			s.Reset()
			second := []interface{}{s.Index(), s.IsPlaying(), s.Indices(step.RoleSorted), s.Indices(step.RoleComparing), s.Data()}

			Expect(second).To(Equal(first))
			Expect(s.Index()).To(Equal(0))
			Expect(s.IsPlaying()).To(BeFalse())
			Expect(s.Len()).To(Equal(3))
		})
	})

	Describe("speed", func() {
		It("ignores non-positive multipliers", func() {
			s.SetSpeed(2)
			s.SetSpeed(0)
			s.SetSpeed(-1)
			Expect(s.Speed()).To(Equal(2.0))
			Expect(s.Interval(time.Second)).To(Equal(500 * time.Millisecond))
		})

		It("clamps tiny and huge multipliers", func() {
			s.SetSpeed(1e-12)
			Expect(s.Speed()).To(Equal(player.MinSpeed))
			Expect(s.Interval(time.Second)).To(BeNumerically("~", 100*time.Second, time.Millisecond))

			s.SetSpeed(math.Inf(1))
			Expect(s.Speed()).To(Equal(player.MaxSpeed))
			Expect(s.Interval(time.Second)).To(Equal(10 * time.Millisecond))
		})

		It("saturates instead of overflowing", func() {
			s.SetSpeed(player.MinSpeed)
			Expect(s.Interval(time.Duration(math.MaxInt64))).To(Equal(time.Duration(math.MaxInt64)))
		})
	})

	Describe("Play and Pause", func() {
		It("never advance the cursor", func() {
			s.SetSteps(narrated(3))
			s.Play()
			Expect(s.Index()).To(Equal(0))
			s.Pause()
			Expect(s.Index()).To(Equal(0))
			s.Toggle()
			Expect(s.IsPlaying()).To(BeTrue())
			s.Toggle()
			Expect(s.IsPlaying()).To(BeFalse())
		})
	})
})
