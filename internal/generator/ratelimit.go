package generator

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/step"
)

func DebounceAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "debounce",
		Title:   "Debounce",
		Summary: "only the last event of a burst fires, after a quiet delay",
		Data:    Number,
		Params: []ParamSpec{
			{Name: "delay", Label: "Delay (ms)", Type: Number, Default: 300},
		},
		Generate: func(data []step.Value, params Params) step.Sequence {
			var p struct {
				Delay int `param:"delay"`
			}
			_ = params.Decode(&p)
			return Debounce(ints(data), p.Delay)
		},
	})
}

// Debounce treats times as event timestamps in milliseconds, in ascending
// order. An event fires when no later event arrives within delay.
func Debounce(times []int, delay int) step.Sequence {
	seq := step.Sequence{
		step.Narrate(fmt.Sprintf("Debounce %d events with a %dms delay", len(times), delay)).
			WithVars("delay", delay, "executed", 0, "cancelled", 0),
	}
	executed, cancelled := 0, 0

	for i, t := range times {
		seq = append(seq, step.Compare(fmt.Sprintf("Event at %dms restarts the %dms timer", t, delay), i).
			WithPointers(step.Pointer{Name: "t", Index: i}).
			WithVars("deadline", t+delay).
			WithCode("clearTimeout(timer); timer = setTimeout(fn, delay)"))

		if i+1 < len(times) && times[i+1]-t < delay {
			cancelled++
			seq = append(seq, step.Mark(fmt.Sprintf("Next event at %dms arrives before %dms, this call is cancelled", times[i+1], t+delay), step.RoleTarget, i).
				WithVars("cancelled", cancelled))
			continue
		}
		executed++
		seq = append(seq, step.Mark(fmt.Sprintf("Quiet until %dms, the call executes", t+delay), step.RoleSorted, i).
			WithVars("executed", executed))
	}

	return append(seq, step.Narrate(fmt.Sprintf("%d executed, %d cancelled", executed, cancelled)).
		WithVars("result", step.Pair(executed, cancelled)))
}

func ThrottleAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "throttle",
		Title:   "Throttle",
		Summary: "at most one execution per interval, extra events are ignored",
		Data:    Number,
		Params: []ParamSpec{
			{Name: "interval", Label: "Interval (ms)", Type: Number, Default: 300},
		},
		Generate: func(data []step.Value, params Params) step.Sequence {
			var p struct {
				Interval int `param:"interval"`
			}
			_ = params.Decode(&p)
			return Throttle(ints(data), p.Interval)
		},
	})
}

// Throttle executes an event when at least interval ms passed since the last
// execution and ignores it otherwise.
func Throttle(times []int, interval int) step.Sequence {
	seq := step.Sequence{
		step.Narrate(fmt.Sprintf("Throttle %d events to one per %dms", len(times), interval)).
			WithVars("interval", interval, "executed", 0, "ignored", 0),
	}
	executed, ignored := 0, 0
	last, fired := 0, false

	for i, t := range times {
		ptr := step.Pointer{Name: "t", Index: i}
		if !fired || t-last >= interval {
			executed++
			last, fired = t, true
			seq = append(seq, step.Mark(fmt.Sprintf("Event at %dms executes, next allowed at %dms", t, t+interval), step.RoleSorted, i).
				WithPointers(ptr).
				WithVars("executed", executed, "next", t+interval).
				WithCode("if now-last >= interval { last = now; fn() }"))
			continue
		}
		ignored++
		seq = append(seq, step.Compare(fmt.Sprintf("Event at %dms is %dms after the last execution, ignored", t, t-last), i).
			WithPointers(ptr).
			WithVars("ignored", ignored))
	}

	return append(seq, step.Narrate(fmt.Sprintf("%d executed, %d ignored", executed, ignored)).
		WithVars("result", step.Pair(executed, ignored)))
}
