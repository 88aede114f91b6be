// Package aggregate runs the area computation over every visible segment
// and assembles the aligned series set.
package aggregate

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"sliceareaplot/internal/models"
	"sliceareaplot/internal/monitoring"
	"sliceareaplot/pkg/segmentation"
	"sliceareaplot/pkg/slicearea"
)

// Aggregator computes one area series per visible segment.
type Aggregator struct {
	Extractor *segmentation.Extractor
	Computer  *slicearea.Computer

	// Workers bounds how many segments are computed at once. Values below
	// 2 compute segments one after another.
	Workers int
}

// NewAggregator creates an Aggregator using computer and up to workers
// concurrent segment computations.
func NewAggregator(computer *slicearea.Computer, workers int) *Aggregator {
	return &Aggregator{
		Extractor: segmentation.NewExtractor(),
		Computer:  computer,
		Workers:   workers,
	}
}

type segmentResult struct {
	series  models.AreaSeries
	summary slicearea.Summary
	err     error
}

// Run computes the series set for all visible segments of seg along axis.
//
// An invalid axis aborts the call. Any other per-segment error is recorded
// in the returned set's Failures and the remaining segments still run. An
// empty visible set yields an empty series set and no error.
func (a *Aggregator) Run(vol segmentation.VolumeSource, seg segmentation.SegmentationSource, axis models.SweepAxis) (*SegmentSeriesSet, error) {
	numSlices, err := segmentation.NumSlices(vol, axis)
	if err != nil {
		return nil, err
	}

	set := newSeriesSet(axis, numSlices)
	visible := seg.VisibleSegments()
	if len(visible) == 0 {
		monitoring.Logf("slice area: %v, nothing to compute", segmentation.ErrNoVisibleSegments)
		return set, nil
	}

	results := make([]segmentResult, len(visible))
	if a.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(a.Workers)
		for i, info := range visible {
			i, info := i, info
			g.Go(func() error {
				results[i] = a.computeSegment(seg, info, axis, numSlices)
				return nil
			})
		}
		g.Wait()
	} else {
		for i, info := range visible {
			results[i] = a.computeSegment(seg, info, axis, numSlices)
		}
	}

	for i, info := range visible {
		res := results[i]
		if res.err == nil {
			if _, dup := set.Series[info.ID]; dup {
				res.err = fmt.Errorf("segment %q: %w", info.ID, segmentation.ErrDuplicateSegment)
			}
		}
		if res.err != nil {
			monitoring.Logf("slice area: skipping segment %q: %v", info.ID, res.err)
			set.Failures = append(set.Failures, Failure{Segment: info, Err: res.err})
			continue
		}

		set.IDs = append(set.IDs, info.ID)
		set.Names[info.ID] = info.DisplayName()
		set.Series[info.ID] = res.series
		set.Summaries[info.ID] = res.summary
	}

	return set, nil
}

// computeSegment extracts and computes a single segment. It shares no
// mutable state with other segments.
func (a *Aggregator) computeSegment(seg segmentation.SegmentationSource, info segmentation.SegmentInfo, axis models.SweepAxis, numSlices int) segmentResult {
	ex, err := a.Extractor.Extract(seg, info.ID, axis)
	if err != nil {
		return segmentResult{err: err}
	}

	series, err := a.Computer.Compute(ex.Grid, ex.Extent, ex.InPlaneSpacing, axis, numSlices)
	if err != nil {
		return segmentResult{err: fmt.Errorf("segment %q: %w", info.ID, err)}
	}

	return segmentResult{
		series:  series,
		summary: slicearea.Summarize(series, ex.SweepSpacing),
	}
}
