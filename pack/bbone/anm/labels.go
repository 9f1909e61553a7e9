package anm

import (
	"sort"
)

// LabelSpan is one contiguous frame range. Name is empty for gap spans.
type LabelSpan struct {
	StartFrame int
	Duration   int
	Name       string
}

// BuildLabelSpans run-length encodes a label table (name -> 1-based frame)
// into spans partitioning [0, frameCount). Frame 0 is forced as a span
// start even when no label claims it. A span is named only when a label
// maps exactly onto its start frame; when several do, the lexicographically
// smallest name wins to keep the output deterministic.
func BuildLabelSpans(labels map[string]int, frameCount int) []LabelSpan {
	if frameCount < 1 {
		return nil
	}

	startSet := map[int]struct{}{0: {}}
	nameAt := make(map[int]string)

	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		start := labels[name] - 1
		if start < 0 {
			start = 0
		}
		if start >= frameCount {
			continue
		}
		startSet[start] = struct{}{}
		if _, taken := nameAt[start]; !taken {
			nameAt[start] = name
		}
	}

	starts := make([]int, 0, len(startSet)+1)
	for s := range startSet {
		starts = append(starts, s)
	}
	sort.Ints(starts)
	starts = append(starts, frameCount)

	spans := make([]LabelSpan, 0, len(starts)-1)
	for i := 0; i+1 < len(starts); i++ {
		duration := starts[i+1] - starts[i]
		if duration < 1 {
			duration = 1
		}
		spans = append(spans, LabelSpan{
			StartFrame: starts[i],
			Duration:   duration,
			Name:       nameAt[starts[i]],
		})
	}
	return spans
}
