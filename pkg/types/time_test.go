package types

import (
	"testing"
	"time"
)

func TestTime_SubPropagatesUnknown(t *testing.T) {
	tests := []struct {
		name string
		a, b Time
		want Time
	}{
		{"both known", Known(5 * time.Second), Known(2 * time.Second), Known(3 * time.Second)},
		{"left unknown", Unknown(), Known(2 * time.Second), Unknown()},
		{"right unknown", Known(5 * time.Second), Unknown(), Unknown()},
		{"both unknown", Unknown(), Unknown(), Unknown()},
		{"minus zero", Known(time.Second), Zero, Known(time.Second)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Sub(tc.b); got != tc.want {
				t.Errorf("Sub = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTime_ComparisonsWithUnknownAreFalse(t *testing.T) {
	k := Known(time.Second)
	if Unknown().Less(k) || k.Less(Unknown()) {
		t.Error("Less with an unknown operand should be false")
	}
	if Unknown().Greater(k) || k.Greater(Unknown()) {
		t.Error("Greater with an unknown operand should be false")
	}
	if !k.Greater(Zero) || !Zero.Less(k) {
		t.Error("known comparisons should hold")
	}
}

func TestTime_Sign(t *testing.T) {
	if _, ok := Unknown().Sign(); ok {
		t.Error("Sign of unknown should report ok=false")
	}
	if s, _ := Known(-time.Second).Sign(); s != -1 {
		t.Errorf("Sign(-1s) = %d, want -1", s)
	}
	if s, ok := Zero.Sign(); s != 0 || !ok {
		t.Errorf("Sign(0) = %d,%v, want 0,true", s, ok)
	}
}

func TestTimes_GetOutOfRange(t *testing.T) {
	ts := Times{Known(time.Second), Known(2 * time.Second)}
	if got := ts.Get(GameTime); got != Known(2*time.Second) {
		t.Errorf("Get(GameTime) = %v", got)
	}
	if got := ts.Get(TimingMethod(7)); got.Known {
		t.Errorf("Get(7) = %v, want unknown", got)
	}
}

func TestRun_HasComparisonNil(t *testing.T) {
	var r *Run
	if r.HasComparison("Personal Best") {
		t.Error("nil run should have no comparisons")
	}
	if r.Len() != 0 {
		t.Error("nil run should have zero length")
	}
}
