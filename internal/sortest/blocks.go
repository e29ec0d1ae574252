package sortest

// Canonical body builders producing a small, internally consistent trace:
// 10 samples at 1550nm over standard single-mode fiber, two events, one
// vendor block. Tests that need specific values build bodies by hand with
// Writer instead.

const (
	// Calibration values used by the canonical FxdParams body.
	SampleSpacing     = 100000 // raw, 1e-8 us units: 1 us between samples
	IndexOfRefraction = 150000 // raw, /1e5: 1.5
	NumberOfPoints    = 10
	ScalingFactor     = 1000
)

// GenParamsBody builds a canonical GenParams body.
func GenParamsBody() []byte {
	w := &Writer{}
	w.Str("CABLE-001").
		Str("FIBER-42").
		U16(652).  // fiber type
		U16(1550). // wavelength
		Str("STATION-A").
		Str("STATION-B").
		Str("CC-17").
		Fixed("BC"). // build condition
		U32(0).      // user offset
		U32(0).      // user offset distance
		Str("operator-1").
		Str("acceptance test")

	return w.Bytes()
}

// SupParamsBody builds a canonical SupParams body.
func SupParamsBody() []byte {
	w := &Writer{}
	w.Str("ACME Photonics").
		Str("ACME OTDR 9000").
		Str("SN-0042").
		Str("SM-1550 module").
		Str("MSN-0007").
		Str("4.2.1").
		Str("")

	return w.Bytes()
}

// FxdParamsBody builds a canonical FxdParams body with the package's
// calibration constants, meter units and a standard trace type.
func FxdParamsBody() []byte {
	w := &Writer{}
	w.U32(1700000000). // acquisition time, epoch seconds
		Fixed("mt").
		U16(15500). // wavelength x10
		I32(0).     // acquisition offset
		I32(0).     // acquisition offset distance
		U16(1).     // pulse width entries
		U16(30).    // pulse width, ns
		U32(SampleSpacing).
		U32(NumberOfPoints).
		U32(IndexOfRefraction).
		U16(790). // backscattering coefficient x-10
		U32(64).  // number of averages
		U16(120). // averaging time
		U32(100). // range
		I32(0).   // acquisition range distance
		I32(0).   // front panel offset
		U16(5).   // noise floor level
		I16(-1).  // noise floor scaling factor
		U16(0).   // power offset first point
		U16(50).  // loss threshold x1000
		U16(65).  // reflection threshold x1000
		U16(3).   // end of transmission threshold x-1000
		Fixed("ST").
		I32(0).I32(0).I32(0).I32(0) // x1 y1 x2 y2

	return w.Bytes()
}

// DataPtsBody builds a DataPts body holding the given raw power codes.
func DataPtsBody(raws []uint16, scaling uint16) []byte {
	w := &Writer{}
	w.U32(uint32(len(raws))).
		U16(1). // number of traces
		U32(uint32(len(raws))).
		U16(scaling)
	for _, raw := range raws {
		w.U16(raw)
	}

	return w.Bytes()
}

// CanonicalDataPtsBody builds a DataPts body with NumberOfPoints samples of
// monotonically rising raw codes.
func CanonicalDataPtsBody() []byte {
	raws := make([]uint16, NumberOfPoints)
	for i := range raws {
		raws[i] = uint16(10000 + i*100)
	}

	return DataPtsBody(raws, ScalingFactor)
}

// EventRecord appends one key event record to w.
func EventRecord(w *Writer, number uint16, travel uint32, eventType, comment string) {
	w.U16(number).
		U32(travel).
		I16(100).  // slope x1000
		I16(50).   // splice loss x1000
		I32(-420). // reflection loss x1000
		Fixed(eventType).
		U32(0).U32(1).U32(2).U32(3).U32(2). // event span sample indices
		Str(comment)
}

// KeyEventsBody builds a canonical two-event KeyEvents body: a splice found
// by software and the fiber end.
func KeyEventsBody() []byte {
	w := &Writer{}
	w.U16(2)
	EventRecord(w, 1, 12500, "0F9999LS", "splice")
	EventRecord(w, 2, 50000, "2E9999LS", "fiber end")
	w.I32(1234). // total loss x1000
		I32(-25).  // fiber start position
		U32(50210) // fiber length
	w.U16(18000). // optical return loss x1000
		I32(-25).
		U32(50210)

	return w.Bytes()
}

// ChecksumBody builds a Cksum body with the given stored checksum.
func ChecksumBody(value uint16) []byte {
	w := &Writer{}
	w.U16(value)

	return w.Bytes()
}

// CanonicalBlocks returns the block list of the canonical trace file, in
// standard directory order, with a vendor block between KeyEvents and Cksum.
func CanonicalBlocks() []Block {
	return []Block{
		{Name: "GenParams", Version: 200, Body: GenParamsBody()},
		{Name: "SupParams", Version: 200, Body: SupParamsBody()},
		{Name: "FxdParams", Version: 200, Body: FxdParamsBody()},
		{Name: "DataPts", Version: 200, Body: CanonicalDataPtsBody()},
		{Name: "KeyEvents", Version: 200, Body: KeyEventsBody()},
		{Name: "AcmeProprietary", Version: 200, Body: []byte{0xde, 0xad, 0xbe, 0xef}},
		{Name: "Cksum", Version: 200, Body: ChecksumBody(0xbeef)},
	}
}

// CanonicalFile assembles the canonical trace file.
func CanonicalFile() []byte {
	return BuildFile(CanonicalBlocks())
}
