package sor

import "github.com/arloliu/otdr/format"

// Speed of light in vacuum, in meters per microsecond.
const lightSpeedMPerUs = 299.792458

// Calibration converts raw sample indices and power codes into calibrated
// (distance, power) pairs using the instrument parameters carried by
// FxdParams. It is a pure value: methods depend only on the fields and their
// arguments, so they are tested without any file I/O.
type Calibration struct {
	// SampleSpacing is the raw spacing between samples in units of 1e-8
	// microseconds, as stored in FxdParams.
	SampleSpacing uint32
	// IndexOfRefraction is the fiber's group index. Values <= 0 fall back
	// to 1 so uncalibrated decodes never divide by zero; with the zero
	// value's SampleSpacing every sample distance is still 0.
	IndexOfRefraction float64
	// ScalingFactor is the divisor converting a raw power code into dB.
	ScalingFactor uint16
	// Units is the distance unit declared by FxdParams.
	Units format.DistanceUnit
}

// Distance returns the calibrated distance of sample index i in the declared
// units. Sample 0 is at distance 0; distance grows linearly with
// SampleSpacing/IndexOfRefraction. The index-of-refraction correction is
// always applied.
func (c Calibration) Distance(i int) float64 {
	travelUs := float64(i) * float64(c.SampleSpacing) * 1e-8

	return travelUs * lightSpeedMPerUs / c.ior() * c.Units.PerMeter()
}

// TravelDistance converts a key event's time of travel (in the 0.1-unit
// scaled form stored on Event.TimeOfTravel) into a distance in the declared
// units, with the same index-of-refraction correction.
func (c Calibration) TravelDistance(timeOfTravel float64) float64 {
	return timeOfTravel / 1000 * lightSpeedMPerUs / c.ior() * c.Units.PerMeter()
}

// Power converts a raw power code into dB using the scaling factor.
func (c Calibration) Power(raw uint16) float64 {
	return float64(raw) * -float64(c.ScalingFactor) / 1e6
}

// DistancePower converts one raw sample into its calibrated (distance, power)
// pair.
func (c Calibration) DistancePower(i int, raw uint16) (float64, float64) {
	return c.Distance(i), c.Power(raw)
}

func (c Calibration) ior() float64 {
	if c.IndexOfRefraction <= 0 {
		return 1
	}

	return c.IndexOfRefraction
}
