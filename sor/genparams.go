package sor

import (
	"fmt"

	"github.com/arloliu/otdr/format"
	"github.com/arloliu/otdr/internal/cursor"
)

// GenParams holds the general parameters block: identifiers and free-text
// metadata describing the measured fiber link.
type GenParams struct {
	BlockInfo
	CableID                   string
	FiberID                   string
	FiberType                 uint16
	FiberTypeDescription      string
	Wavelength                uint16
	LocationA                 string
	LocationB                 string
	CableCode                 string
	BuildCondition            string
	BuildConditionDescription string
	UserOffset                uint32
	UserOffsetDistance        uint32
	Operator                  string
	Comments                  string
}

func parseGenParams(info BlockInfo, r *cursor.Reader) (*GenParams, error) {
	g := &GenParams{BlockInfo: info}

	var err error
	if g.CableID, err = r.String(); err != nil {
		return nil, fmt.Errorf("cable id: %w", err)
	}
	if g.FiberID, err = r.String(); err != nil {
		return nil, fmt.Errorf("fiber id: %w", err)
	}
	if g.FiberType, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("fiber type: %w", err)
	}
	if g.Wavelength, err = r.Uint16(); err != nil {
		return nil, fmt.Errorf("wavelength: %w", err)
	}
	if g.LocationA, err = r.String(); err != nil {
		return nil, fmt.Errorf("location a: %w", err)
	}
	if g.LocationB, err = r.String(); err != nil {
		return nil, fmt.Errorf("location b: %w", err)
	}
	if g.CableCode, err = r.String(); err != nil {
		return nil, fmt.Errorf("cable code: %w", err)
	}
	if g.BuildCondition, err = r.FixedString(2); err != nil {
		return nil, fmt.Errorf("build condition: %w", err)
	}
	if g.UserOffset, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("user offset: %w", err)
	}
	if g.UserOffsetDistance, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("user offset distance: %w", err)
	}
	if g.Operator, err = r.String(); err != nil {
		return nil, fmt.Errorf("operator: %w", err)
	}
	if g.Comments, err = r.String(); err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}

	g.FiberTypeDescription = format.FiberTypeDescription(g.FiberType)
	g.BuildConditionDescription = format.BuildConditionDescription(g.BuildCondition)

	return g, nil
}
