package player_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/step"
)

var _ = Describe("Scheduler", func() {
	var (
		s  *player.Store
		sc *player.Scheduler
	)

	BeforeEach(func() {
		s = player.New()
		s.SetSteps(narrated(4))
		sc = player.NewScheduler(s, time.Second)
	})

	It("derives the delay from the speed", func() {
		s.SetSpeed(4)
		_, delay := sc.Arm()
		Expect(delay).To(Equal(250 * time.Millisecond))
	})

	It("advances on a live tick while playing", func() {
		s.Play()
		tok, _ := sc.Arm()
		Expect(sc.Fire(tok)).To(BeTrue())
		Expect(s.Index()).To(Equal(1))
		Expect(sc.Pending()).To(BeFalse())
	})

	It("drops a tick cancelled by pause", func() {
		s.Play()
		tok, _ := sc.Arm()
		s.Pause()
		sc.Cancel()

		s.Play()
		Expect(sc.Fire(tok)).To(BeFalse())
		Expect(s.Index()).To(Equal(0))
	})

	It("drops a tick superseded by a re-arm", func() {
		s.Play()
		old, _ := sc.Arm()
		fresh, _ := sc.Arm()
		Expect(sc.Fire(old)).To(BeFalse())
		Expect(sc.Fire(fresh)).To(BeTrue())
		Expect(s.Index()).To(Equal(1))
	})

	It("ignores ticks while paused", func() {
		tok, _ := sc.Arm()
		Expect(sc.Fire(tok)).To(BeFalse())
		Expect(s.Index()).To(Equal(0))
	})
})

var _ = Describe("Autoplay", func() {
	It("plays to the last step and stops", func() {
		s := player.New()
		s.SetSteps(narrated(5))
		var seen []int

		err := player.Autoplay(context.Background(), s, player.AutoplayOptions{
			BaseInterval: time.Millisecond,
			OnStep:       func(st *player.Store) { seen = append(seen, st.Index()) },
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]int{1, 2, 3, 4}))
		Expect(s.IsPlaying()).To(BeFalse())
		Expect(s.Index()).To(Equal(4))
	})

	It("stops when a step callback pauses", func() {
		s := player.New()
		s.SetSteps(narrated(5))

		err := player.Autoplay(context.Background(), s, player.AutoplayOptions{
			BaseInterval: time.Millisecond,
			OnStep: func(st *player.Store) {
				if st.Index() == 2 {
					st.Pause()
				}
			},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Index()).To(Equal(2))
	})

	It("returns the context error on cancellation", func() {
		s := player.New()
		s.SetSteps(narrated(5))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := player.Autoplay(ctx, s, player.AutoplayOptions{BaseInterval: time.Hour})
		Expect(err).To(MatchError(context.Canceled))
		Expect(s.IsPlaying()).To(BeFalse())
		Expect(s.Index()).To(Equal(0))
	})

	It("does nothing for an empty sequence", func() {
		s := player.New()
		Expect(player.Autoplay(context.Background(), s, player.AutoplayOptions{})).To(Succeed())
	})

	It("keeps the swap result visible after playback", func() {
		s := player.New()
		s.Load(step.Ints(2, 1), step.Sequence{step.Narrate("start"), step.Swap("swap", 0, 1)})
		Expect(player.Autoplay(context.Background(), s, player.AutoplayOptions{BaseInterval: time.Millisecond})).To(Succeed())
		Expect(s.Data()).To(Equal(step.Ints(1, 2)))
	})
})
