// Package healer implements the geometry-healing state machine of
// spec.md §4.5: it turns an unordered, possibly-reversed, possibly-gapped
// set of way fragments into one or more ordered line-strings, reporting
// which stage (if any) collapsed them to a single connected line.
package healer

import (
	"github.com/cualbondi/osmptparser/internal/model"
)

// Result is the output of Flatten: one line-string per surviving fragment,
// plus the status of the stage that produced them.
type Result struct {
	LineStrings []Fragment
	Status      model.ParseStatus
}

// Flatten runs the four-stage state machine against ways (already hydrated
// into node sequences). The first stage to collapse the input to a single
// line-string wins.
func Flatten(ways []model.WayView, tolerance float64) Result {
	fragments := fragmentsFromWays(ways)
	return flattenFragments(fragments, tolerance)
}

func flattenFragments(fragments []Fragment, tolerance float64) Result {
	if len(fragments) == 0 {
		return Result{Status: model.ParseStatus{Kind: model.StatusBroken}}
	}

	// Stage 0: first_pass on the raw input.
	stage0 := firstPass(fragments)
	if len(stage0) == 1 {
		return Result{LineStrings: stage0, Status: model.ParseStatus{Kind: model.StatusOK}}
	}

	// Stage 1: sort_ways(stage0 input), first_pass again.
	sorted := sortWays(stage0)
	stage1 := firstPass(sorted)
	if len(stage1) == 1 {
		return Result{LineStrings: stage1, Status: model.ParseStatus{Kind: model.StatusSorted}}
	}

	// Stage 2: join_ways(stage0, T).
	stage2 := joinWays(stage0, tolerance)
	if len(stage2) == 1 {
		return Result{LineStrings: stage2, Status: model.ParseStatus{Kind: model.StatusJoined}}
	}

	// Stage 3: join_ways(sort_ways result, T).
	stage3 := joinWays(sorted, tolerance)
	if len(stage3) == 1 {
		return Result{LineStrings: stage3, Status: model.ParseStatus{Kind: model.StatusJoinedSorted}}
	}

	return Result{Status: model.ParseStatus{Kind: model.StatusBroken}}
}

// Close applies spec.md §4.5's ring-closing rule per line-string, used for
// Area output (closed=true). A ring already equal at both ends is kept
// unchanged; a ring within tolerance is closed by duplicating its first
// node, elevating an Ok status to Joined; otherwise the whole feature's
// status degrades to Broken (the unclosed fragment is still kept in the
// output, per the source's close_linestring behavior).
func Close(result Result, tolerance float64) Result {
	if result.Status.Broken() {
		return result
	}

	closedLines := make([]Fragment, len(result.LineStrings))
	status := result.Status
	anyBroken := false

	for i, line := range result.LineStrings {
		if len(line) == 0 {
			closedLines[i] = line
			continue
		}
		first, last := line.first(), line.last()
		switch {
		case sameNode(first, last):
			closedLines[i] = line
		case haversine(first, last) <= tolerance:
			closed := make(Fragment, 0, len(line)+1)
			closed = append(closed, line...)
			closed = append(closed, first)
			closedLines[i] = closed
			if status.Kind == model.StatusOK {
				status = model.ParseStatus{Kind: model.StatusJoined}
			}
		default:
			closedLines[i] = line
			anyBroken = true
		}
	}

	if anyBroken {
		status = model.ParseStatus{Kind: model.StatusBroken}
	}

	return Result{LineStrings: closedLines, Status: status}
}
