package compute

import (
	"time"

	"github.com/subsplits/subsplits/pkg/types"
)

const pb = "Personal Best"

func sec(n float64) types.Time {
	return types.Known(time.Duration(n * float64(time.Second)))
}

// rt builds a Times with only a real-time value.
func rt(t types.Time) types.Times {
	return types.Times{types.RealTime: t}
}

// segment builds a segment with one real-time split and a PB comparison.
func segment(name string, split, target types.Time) types.Segment {
	return types.Segment{
		Name:        name,
		SplitTime:   rt(split),
		Comparisons: map[string]types.Times{pb: rt(target)},
	}
}

// threeSegmentLive is the reference scenario: PB targets 10s/25s/40s,
// segments 0 and 1 split at 9s and 24s, segment 2 running.
func threeSegmentLive(elapsed types.Time) *types.Live {
	run := &types.Run{
		Segments: []types.Segment{
			segment("Start", sec(9), sec(10)),
			segment("Middle", sec(24), sec(25)),
			segment("End", types.Unknown(), sec(40)),
		},
		Comparisons: []string{pb},
	}
	return &types.Live{
		Phase:             types.Running,
		CurrentSplitIndex: 2,
		CurrentTime:       rt(elapsed),
		CurrentComparison: pb,
		Run:               run,
	}
}

// castleLive has a three-segment section "{Castle}" (two subsplits and the
// closing segment) followed by a final segment.
func castleLive(current int, elapsed types.Time) *types.Live {
	splits := []types.Time{sec(9), sec(21), sec(28), types.Unknown()}
	for i := current; i < len(splits); i++ {
		splits[i] = types.Unknown()
	}
	run := &types.Run{
		Segments: []types.Segment{
			segment("-Door", splits[0], sec(10)),
			segment("-Key", splits[1], sec(20)),
			segment("{Castle} Boss", splits[2], sec(30)),
			segment("Exit", splits[3], sec(50)),
		},
		Comparisons: []string{pb},
	}
	return &types.Live{
		Phase:             types.Running,
		CurrentSplitIndex: current,
		CurrentTime:       rt(elapsed),
		CurrentComparison: pb,
		Run:               run,
	}
}
