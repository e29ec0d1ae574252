package sor

import (
	"fmt"
	"time"

	"github.com/arloliu/otdr/format"
	"github.com/arloliu/otdr/internal/cursor"
)

// FxdParams holds the fixed parameters block: the acquisition settings the
// instrument used for this trace. SampleSpacing, IndexOfRefraction,
// ScalingFactor (from DataPts) and Units together calibrate raw samples into
// (distance, power) pairs.
//
// Only a single pulse width entry is decoded; the format permits more for
// multi-trace files, which this decoder does not support.
type FxdParams struct {
	BlockInfo
	DateTime                   time.Time
	Units                      format.DistanceUnit
	Wavelength                 float64
	AcquisitionOffset          int32
	AcquisitionOffsetDistance  int32
	PulseWidthEntries          uint16
	PulseWidth                 uint16
	SampleSpacing              uint32
	NumberOfDataPoints         uint32
	IndexOfRefraction          float64
	BackscatteringCoefficient  float64
	NumberOfAverages           uint32
	AveragingTime              uint16
	Range                      float64
	AcquisitionRangeDistance   int32
	FrontPanelOffset           int32
	NoiseFloorLevel            uint16
	NoiseFloorScalingFactor    int16
	PowerOffsetFirstPoint      uint16
	LossThreshold              float64
	ReflectionThreshold        float64
	EndOfTransmissionThreshold float64
	TraceType                  string
	TraceTypeDescription       string
	X1                         int32
	Y1                         int32
	X2                         int32
	Y2                         int32
}

func parseFxdParams(info BlockInfo, r *cursor.Reader) (*FxdParams, error) {
	f := &FxdParams{BlockInfo: info}

	epoch, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("date/time: %w", err)
	}
	f.DateTime = time.Unix(int64(epoch), 0).UTC()

	units, err := r.FixedString(2)
	if err != nil {
		return nil, fmt.Errorf("units: %w", err)
	}
	f.Units = format.DistanceUnit(units)

	wavelength, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("wavelength: %w", err)
	}
	f.Wavelength = float64(wavelength) / 10

	if f.AcquisitionOffset, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("acquisition offset: %w", err)
	}
	if f.AcquisitionOffsetDistance, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("acquisition offset distance: %w", err)
	}
	if f.PulseWidthEntries, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("pulse width entries: %w", err)
	}
	if f.PulseWidth, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("pulse width: %w", err)
	}
	if f.SampleSpacing, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("sample spacing: %w", err)
	}
	if f.NumberOfDataPoints, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("number of data points: %w", err)
	}

	ior, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("index of refraction: %w", err)
	}
	f.IndexOfRefraction = float64(ior) / 100000

	backscatter, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("backscattering coefficient: %w", err)
	}
	f.BackscatteringCoefficient = float64(backscatter) * -0.1

	if f.NumberOfAverages, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("number of averages: %w", err)
	}
	if f.AveragingTime, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("averaging time: %w", err)
	}

	acqRange, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}
	f.Range = float64(acqRange) * 2 * 1e5

	if f.AcquisitionRangeDistance, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("acquisition range distance: %w", err)
	}
	if f.FrontPanelOffset, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("front panel offset: %w", err)
	}
	if f.NoiseFloorLevel, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("noise floor level: %w", err)
	}
	if f.NoiseFloorScalingFactor, err = r.Int16(); err != nil {
		return nil, fmt.Errorf("noise floor scaling factor: %w", err)
	}
	if f.PowerOffsetFirstPoint, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("power offset first point: %w", err)
	}

	lossThreshold, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("loss threshold: %w", err)
	}
	f.LossThreshold = float64(lossThreshold) * 0.001

	reflectionThreshold, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("reflection threshold: %w", err)
	}
	f.ReflectionThreshold = float64(reflectionThreshold) * 0.001

	eotThreshold, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("end of transmission threshold: %w", err)
	}
	f.EndOfTransmissionThreshold = float64(eotThreshold) * -0.001

	if f.TraceType, err = r.FixedString(2); err != nil {
		return nil, fmt.Errorf("trace type: %w", err)
	}
	f.TraceTypeDescription = format.TraceTypeDescription(f.TraceType)

	if f.X1, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("x1: %w", err)
	}
	if f.Y1, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("y1: %w", err)
	}
	if f.X2, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("x2: %w", err)
	}
	if f.Y2, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("y2: %w", err)
	}

	return f, nil
}
