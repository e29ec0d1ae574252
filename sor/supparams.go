package sor

import (
	"fmt"

	"github.com/arloliu/otdr/internal/cursor"
)

// SupParams holds the supplier parameters block: the instrument's make,
// model, serial numbers and software revision.
type SupParams struct {
	BlockInfo
	SupplierName       string
	OtdrName           string
	OtdrSerialNumber   string
	ModuleName         string
	ModuleSerialNumber string
	SoftwareVersion    string
	Other              string
}

func parseSupParams(info BlockInfo, r *cursor.Reader) (*SupParams, error) {
	s := &SupParams{BlockInfo: info}

	fields := []struct {
		name string
		dst  *string
	}{
		{"supplier name", &s.SupplierName},
		{"otdr name", &s.OtdrName},
		{"otdr serial number", &s.OtdrSerialNumber},
		{"module name", &s.ModuleName},
		{"module serial number", &s.ModuleSerialNumber},
		{"software version", &s.SoftwareVersion},
		{"other", &s.Other},
	}
	for _, f := range fields {
		v, err := r.String()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	return s, nil
}
