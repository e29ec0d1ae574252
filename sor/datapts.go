package sor

import (
	"fmt"

	"github.com/arloliu/otdr/errs"
	"github.com/arloliu/otdr/internal/cursor"
)

// DataPoint is one calibrated sample of the power-vs-distance trace.
type DataPoint struct {
	// Distance from the instrument, in the units declared by FxdParams.
	Distance float64
	// Power in dB.
	Power float64
}

// DataPts holds the sampled trace. Points has exactly NumberOfDataPoints
// entries in acquisition order: index 0 is the sample nearest the
// instrument.
type DataPts struct {
	BlockInfo
	NumberOfDataPoints uint32
	NumberOfTraces     uint16
	// NumberOfDataPoints2 repeats the point count in most files, but the
	// standard does not say so; it is decoded verbatim and never checked
	// against NumberOfDataPoints.
	NumberOfDataPoints2 uint32
	ScalingFactor       uint16
	Points              []DataPoint
}

func parseDataPts(info BlockInfo, r *cursor.Reader, calib Calibration) (*DataPts, error) {
	d := &DataPts{BlockInfo: info}

	var err error
	if d.NumberOfDataPoints, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("number of data points: %w", err)
	}
	if d.NumberOfTraces, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("number of traces: %w", err)
	}
	if d.NumberOfDataPoints2, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("number of data points 2: %w", err)
	}
	if d.ScalingFactor, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("scaling factor: %w", err)
	}

	calib.ScalingFactor = d.ScalingFactor

	// Each sample is two bytes and the block body is fully materialized,
	// so the declared count is bounded by the bytes remaining. Checking up
	// front keeps a crafted count from driving the preallocation below;
	// the loop would fail with the same error on the first missing sample.
	if uint64(d.NumberOfDataPoints)*2 > uint64(r.Remaining()) {
		return nil, fmt.Errorf("number of data points %d exceeds %d remaining bytes: %w",
			d.NumberOfDataPoints, r.Remaining(), errs.ErrTruncatedData)
	}

	// Exactly NumberOfDataPoints records are read, regardless of how many
	// bytes remain; a short buffer fails with truncated data rather than
	// returning a partial trace.
	d.Points = make([]DataPoint, 0, d.NumberOfDataPoints)
	for i := 0; i < int(d.NumberOfDataPoints); i++ {
		raw, err := r.Uint16()
		if err != nil {
			return nil, fmt.Errorf("data point %d: %w", i, err)
		}
		distance, power := calib.DistancePower(i, raw)
		d.Points = append(d.Points, DataPoint{Distance: distance, Power: power})
	}

	return d, nil
}
