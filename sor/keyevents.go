package sor

import (
	"fmt"
	"strconv"

	"github.com/arloliu/otdr/format"
	"github.com/arloliu/otdr/internal/cursor"
)

// EventTypeDetails is the decomposition of an event-type code such as
// "0F9999LS" into its four fixed-width substrings: event category, detection
// note, landmark number, and loss measurement technique. Unrecognized codes
// yield "unknown (...)" descriptions, never an error.
type EventTypeDetails struct {
	Event                    string
	Note                     string
	LandmarkNumber           int
	LossMeasurementTechnique string
}

// Event is one detected discrete feature along the fiber: a splice, a
// reflection, a break, or the fiber end.
type Event struct {
	EventNumber             uint16
	TimeOfTravel            float64
	Slope                   float64
	SpliceLoss              float64
	ReflectionLoss          float64
	EventType               string
	EventTypeDetails        EventTypeDetails
	EndOfPreviousEvent      uint32
	BeginningOfCurrentEvent uint32
	EndOfCurrentEvent       uint32
	BeginningOfNextEvent    uint32
	PeakPoint               uint32
	Comment                 string
	// DistanceOfTravel is derived from TimeOfTravel using the
	// index-of-refraction-corrected speed of light, in the units declared
	// by FxdParams.
	DistanceOfTravel float64
}

// KeyEvents holds the detected fiber events and the link summary that
// follows them. Events has exactly NumberOfEvents entries.
type KeyEvents struct {
	BlockInfo
	NumberOfEvents     uint16
	Events             []Event
	TotalLoss          float64
	FiberStartPosition int32
	FiberLength        uint32
	OpticalReturnLoss  float64
	// FiberStartPosition2 and FiberLength2 repeat the summary fields in
	// most files; they are decoded verbatim as independent fields.
	FiberStartPosition2 int32
	FiberLength2        uint32
}

func parseKeyEvents(info BlockInfo, r *cursor.Reader, calib Calibration) (*KeyEvents, error) {
	k := &KeyEvents{BlockInfo: info}

	var err error
	if k.NumberOfEvents, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("number of events: %w", err)
	}

	k.Events = make([]Event, 0, k.NumberOfEvents)
	for i := 0; i < int(k.NumberOfEvents); i++ {
		event, err := parseEvent(r, calib)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		k.Events = append(k.Events, event)
	}

	totalLoss, err := r.Int32()
	if err != nil {
		return nil, fmt.Errorf("total loss: %w", err)
	}
	k.TotalLoss = float64(totalLoss) * 0.001

	if k.FiberStartPosition, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("fiber start position: %w", err)
	}
	if k.FiberLength, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("fiber length: %w", err)
	}

	returnLoss, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("optical return loss: %w", err)
	}
	k.OpticalReturnLoss = float64(returnLoss) * 0.001

	if k.FiberStartPosition2, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("fiber start position 2: %w", err)
	}
	if k.FiberLength2, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("fiber length 2: %w", err)
	}

	return k, nil
}

func parseEvent(r *cursor.Reader, calib Calibration) (Event, error) {
	var e Event

	number, err := r.Uint16()
	if err != nil {
		return e, fmt.Errorf("event number: %w", err)
	}
	e.EventNumber = number

	travel, err := r.Uint32()
	if err != nil {
		return e, fmt.Errorf("time of travel: %w", err)
	}
	e.TimeOfTravel = float64(travel) * 0.1

	slope, err := r.Int16()
	if err != nil {
		return e, fmt.Errorf("slope: %w", err)
	}
	e.Slope = float64(slope) * 0.001

	spliceLoss, err := r.Int16()
	if err != nil {
		return e, fmt.Errorf("splice loss: %w", err)
	}
	e.SpliceLoss = float64(spliceLoss) * 0.001

	reflectionLoss, err := r.Int32()
	if err != nil {
		return e, fmt.Errorf("reflection loss: %w", err)
	}
	e.ReflectionLoss = float64(reflectionLoss) * 0.001

	if e.EventType, err = r.FixedString(8); err != nil {
		return e, fmt.Errorf("event type: %w", err)
	}
	e.EventTypeDetails = interpretEventType(e.EventType)

	if e.EndOfPreviousEvent, err = r.Uint32(); err != nil {
		return e, fmt.Errorf("end of previous event: %w", err)
	}
	if e.BeginningOfCurrentEvent, err = r.Uint32(); err != nil {
		return e, fmt.Errorf("beginning of current event: %w", err)
	}
	if e.EndOfCurrentEvent, err = r.Uint32(); err != nil {
		return e, fmt.Errorf("end of current event: %w", err)
	}
	if e.BeginningOfNextEvent, err = r.Uint32(); err != nil {
		return e, fmt.Errorf("beginning of next event: %w", err)
	}
	if e.PeakPoint, err = r.Uint32(); err != nil {
		return e, fmt.Errorf("peak point: %w", err)
	}
	if e.Comment, err = r.String(); err != nil {
		return e, fmt.Errorf("comment: %w", err)
	}

	e.DistanceOfTravel = calib.TravelDistance(e.TimeOfTravel)

	return e, nil
}

// interpretEventType decomposes an event-type code of the form "nx0000yy":
// category digit, detection-note letter, four-digit landmark number ("9999"
// when unused), and two-letter loss measurement technique. Short or
// malformed codes are interpreted best-effort.
func interpretEventType(code string) EventTypeDetails {
	details := EventTypeDetails{
		Event: format.EventCategoryDescription(sub(code, 0, 1)),
		Note:  format.EventNoteDescription(sub(code, 1, 2)),
		LossMeasurementTechnique: format.LossMeasurementDescription(
			sub(code, len(code)-2, len(code))),
	}
	if n, err := strconv.Atoi(sub(code, 2, 6)); err == nil {
		details.LandmarkNumber = n
	}

	return details
}

func sub(s string, from, to int) string {
	if from < 0 || from >= len(s) || to > len(s) || from >= to {
		return ""
	}

	return s[from:to]
}
