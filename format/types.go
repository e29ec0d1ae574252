package format

import (
	"strconv"
	"strings"
)

// Standard block names defined by Telcordia SR-4731. A directory entry whose
// name matches none of these identifies a vendor/proprietary block that is
// carried through as raw bytes.
const (
	BlockMap       = "Map"
	BlockGenParams = "GenParams"
	BlockSupParams = "SupParams"
	BlockFxdParams = "FxdParams"
	BlockDataPts   = "DataPts"
	BlockKeyEvents = "KeyEvents"
	BlockChecksum  = "Cksum"
)

// KnownBlock reports whether name is one of the standard block names this
// decoder interprets field-by-field.
func KnownBlock(name string) bool {
	switch name {
	case BlockMap, BlockGenParams, BlockSupParams, BlockFxdParams,
		BlockDataPts, BlockKeyEvents, BlockChecksum:
		return true
	default:
		return false
	}
}

// Version is a block format revision as stored on the wire: an unsigned
// little-endian 16-bit integer holding the revision multiplied by 100
// (e.g. 200 means revision "2.0").
type Version uint16

// Major returns the revision's integral part (2 for "2.0").
func (v Version) Major() int {
	return int(v) / 100
}

// Supported reports whether this decoder understands the revision. Only
// major version 2 layouts are supported; other revisions are decoded
// best-effort with the v2 layout assumed unchanged.
func (v Version) Supported() bool {
	return v.Major() == 2
}

// String renders the revision the way instruments print it: "2.0", "2.05",
// "210.62".
func (v Version) String() string {
	s := strconv.FormatFloat(float64(v)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// DistanceUnit is the two-character unit-of-distance code carried by
// FxdParams ("mt", "km", "mi", "kf").
type DistanceUnit string

const (
	UnitMeter     DistanceUnit = "mt"
	UnitKilometer DistanceUnit = "km"
	UnitMile      DistanceUnit = "mi"
	UnitKilofoot  DistanceUnit = "kf"
)

// PerMeter returns the number of declared units per meter. Unrecognized
// codes fall back to meters so that distances stay usable.
func (u DistanceUnit) PerMeter() float64 {
	switch u {
	case UnitMeter:
		return 1.0
	case UnitKilometer:
		return 1.0 / 1000.0
	case UnitMile:
		return 1.0 / 1609.344
	case UnitKilofoot:
		return 1.0 / 304.8
	default:
		return 1.0
	}
}

func (u DistanceUnit) String() string {
	switch u {
	case UnitMeter:
		return "meters"
	case UnitKilometer:
		return "kilometers"
	case UnitMile:
		return "miles"
	case UnitKilofoot:
		return "kilofeet"
	default:
		return string(u)
	}
}
