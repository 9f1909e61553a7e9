package anm

import (
	"reflect"
	"testing"
)

func TestBuildLabelSpans(t *testing.T) {
	for _, c := range []struct {
		name       string
		labels     map[string]int
		frameCount int
		want       []LabelSpan
	}{
		{
			name:       "no labels",
			frameCount: 4,
			want:       []LabelSpan{{StartFrame: 0, Duration: 4}},
		},
		{
			name:       "walk idle",
			labels:     map[string]int{"walk": 1, "idle": 6},
			frameCount: 10,
			want: []LabelSpan{
				{StartFrame: 0, Duration: 5, Name: "walk"},
				{StartFrame: 5, Duration: 5, Name: "idle"},
			},
		},
		{
			name:       "unlabeled head span",
			labels:     map[string]int{"end": 8},
			frameCount: 10,
			want: []LabelSpan{
				{StartFrame: 0, Duration: 7},
				{StartFrame: 7, Duration: 3, Name: "end"},
			},
		},
		{
			name:       "out of range dropped",
			labels:     map[string]int{"beyond": 99, "hit": 2},
			frameCount: 3,
			want: []LabelSpan{
				{StartFrame: 0, Duration: 1},
				{StartFrame: 1, Duration: 2, Name: "hit"},
			},
		},
		{
			name:       "negative clamped to start",
			labels:     map[string]int{"intro": -5},
			frameCount: 2,
			want:       []LabelSpan{{StartFrame: 0, Duration: 2, Name: "intro"}},
		},
		{
			name:       "colliding names pick smallest",
			labels:     map[string]int{"zeta": 1, "alpha": 1},
			frameCount: 2,
			want:       []LabelSpan{{StartFrame: 0, Duration: 2, Name: "alpha"}},
		},
		{
			name:       "zero frames",
			labels:     map[string]int{"x": 1},
			frameCount: 0,
			want:       nil,
		},
	} {
		got := BuildLabelSpans(c.labels, c.frameCount)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%v: got %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestBuildLabelSpansPartition(t *testing.T) {
	spans := BuildLabelSpans(map[string]int{"a": 3, "b": 7, "c": 7}, 12)
	covered := 0
	for i, s := range spans {
		if s.StartFrame != covered {
			t.Errorf("span %d starts at %d, want %d", i, s.StartFrame, covered)
		}
		if s.Duration < 1 {
			t.Errorf("span %d has duration %d", i, s.Duration)
		}
		covered += s.Duration
	}
	if covered != 12 {
		t.Errorf("spans cover %d frames, want 12", covered)
	}
}
