// Package section decodes the structural skeleton of an SR-4731 trace file:
// the Map (directory) block that enumerates every block in the file, and the
// per-block header that delimits a block's body.
package section

import (
	"fmt"

	"github.com/arloliu/otdr/errs"
	"github.com/arloliu/otdr/format"
	"github.com/arloliu/otdr/internal/cursor"
)

// minEntrySize is the smallest possible directory entry: a one-byte name
// terminator plus a 2-byte version and a 4-byte byte count.
const minEntrySize = 7

// Entry describes one block of the file as declared by the directory.
type Entry struct {
	// Name is the block's name, either one of the format.Block* constants or
	// an arbitrary vendor string.
	Name string
	// Version is the block's declared format revision.
	Version format.Version
	// Numbytes is the block's total length in bytes, including the block's
	// own leading name header.
	Numbytes uint32
}

// Directory is the decoded Map block: the ordered list of entries describing
// every block in the file, the Map itself included as Entries[0].
type Directory struct {
	Version format.Version
	// Numbytes is the byte length of the Map block itself.
	Numbytes uint32
	// DeclaredBlocks is the block count the Map claims (numblocks). It is
	// compared against len(Entries) but never trusted for iteration; every
	// later block is self-delimited by its directory entry.
	DeclaredBlocks uint16
	Entries        []Entry
	// Substitutions counts entry names that required undecodable-text
	// substitution while parsing the directory body.
	Substitutions int
}

// Mismatch reports whether the declared block count disagrees with the
// number of entries actually present. A mismatch is a warning, not a fatal
// condition.
func (d *Directory) Mismatch() bool {
	return int(d.DeclaredBlocks) != len(d.Entries)
}

// ParseDirectory decodes the Map block from the cursor, which must be
// positioned at the start of the file.
//
// The directory body is consumed under the Map's own declared byte length,
// independent of how many entries it claims; trailing bytes that do not form
// a complete entry are ignored and surface as a count mismatch.
//
// Returns:
//   - *Directory: Decoded directory, Map itself as Entries[0]
//   - error: errs.ErrNotSorFile if the first block is not named "Map",
//     errs.ErrInvalidBlockHeader or errs.ErrTruncatedData on malformed input
func ParseDirectory(r *cursor.Reader) (*Directory, error) {
	name, err := r.String()
	if err != nil {
		return nil, fmt.Errorf("directory name: %w", err)
	}
	if name != format.BlockMap {
		return nil, fmt.Errorf("%w: first block is %q, want %q",
			errs.ErrNotSorFile, name, format.BlockMap)
	}

	version, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("directory version: %w", err)
	}
	numbytes, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("directory length: %w", err)
	}
	numblocks, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("directory block count: %w", err)
	}

	headerSize := r.Offset()
	if int(numbytes) < headerSize {
		return nil, fmt.Errorf("%w: directory claims %d bytes, header alone is %d",
			errs.ErrInvalidBlockHeader, numbytes, headerSize)
	}

	body, err := r.Sub(int(numbytes) - headerSize)
	if err != nil {
		return nil, fmt.Errorf("directory body: %w", err)
	}

	dir := &Directory{
		Version:        format.Version(version),
		Numbytes:       numbytes,
		DeclaredBlocks: numblocks,
		Entries: []Entry{{
			Name:     name,
			Version:  format.Version(version),
			Numbytes: numbytes,
		}},
	}

	for body.Remaining() >= minEntrySize {
		entry, err := parseEntry(body)
		if err != nil {
			// An incomplete trailing entry; the count check reports it.
			break
		}
		dir.Entries = append(dir.Entries, entry)
	}
	dir.Substitutions = body.Replacements()

	return dir, nil
}

func parseEntry(r *cursor.Reader) (Entry, error) {
	name, err := r.String()
	if err != nil {
		return Entry{}, err
	}
	version, err := r.Uint16()
	if err != nil {
		return Entry{}, err
	}
	numbytes, err := r.Uint32()
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:     name,
		Version:  format.Version(version),
		Numbytes: numbytes,
	}, nil
}
