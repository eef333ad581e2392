package persist

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic and CurrentVersion identify a persisted world file (spec.md 6:
// "fixed header {magic, version}"), grounded on internal/hv/snapshot.go's
// SnapshotMagic/SnapshotVersion constants and read/written the same way
// internal/hv/kvm/snapshot_io.go reads/writes its own header via
// encoding/binary; here the header is two little-endian uint32s (magic,
// then version).
const (
	Magic          uint32 = 0x424f_5457 // "BOTW"
	CurrentVersion uint32 = 1
)

type fileHeader struct {
	Magic   uint32
	Version uint32
}

func writeHeader(w io.Writer, version uint32) error {
	if err := binary.Write(w, binary.LittleEndian, Magic); err != nil {
		return fmt.Errorf("persist: write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return fmt.Errorf("persist: write version: %w", err)
	}
	return nil
}

func readHeader(r io.Reader) (fileHeader, error) {
	var h fileHeader
	if err := binary.Read(r, binary.LittleEndian, &h.Magic); err != nil {
		return h, fmt.Errorf("persist: read magic: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Version); err != nil {
		return h, fmt.Errorf("persist: read version: %w", err)
	}
	if h.Magic != Magic {
		return h, fmt.Errorf("persist: bad magic %#x, want %#x", h.Magic, Magic)
	}
	return h, nil
}
