package sor

import (
	"fmt"

	"github.com/arloliu/otdr/internal/cursor"
)

// Checksum holds the trailing checksum block. The value is surfaced exactly
// as stored; it is never computed or validated against the file content.
type Checksum struct {
	BlockInfo
	Value uint16
	// Hex is the value formatted as 4 lowercase hex digits, the form
	// instruments print.
	Hex string
}

func parseChecksum(info BlockInfo, r *cursor.Reader) (*Checksum, error) {
	value, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("checksum value: %w", err)
	}

	return &Checksum{
		BlockInfo: info,
		Value:     value,
		Hex:       fmt.Sprintf("%04x", value),
	}, nil
}
