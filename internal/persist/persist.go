// Package persist saves and loads a world to/from disk: a fixed
// {magic, version} header followed by a CBOR-encoded record, with
// sequential version migrations applied to the decoded value tree before
// the final typed decode (spec.md 6, 9).
package persist

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Save writes rec to path: header, then the CBOR-encoded body, mirroring
// internal/hv/kvm/snapshot_io.go's create-file/write-header/write-body
// shape.
func Save(path string, rec Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", path, err)
	}
	defer f.Close()

	if err := writeHeader(f, CurrentVersion); err != nil {
		return err
	}

	body, err := cbor.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("persist: encode %s: %w", path, err)
	}
	if _, err := f.Write(body); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	return nil
}

// Load reads path back into a Record, running any needed version
// migrations over the decoded value tree before the final typed decode
// (spec.md 6: "loading applies sequential version migrations before
// decoding into the current schema"), grounded on original_source's
// storage/systems/load.rs: decode raw, migrate the dynamic tree,
// re-encode, decode again into the typed target.
func Load(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return Record{}, err
	}

	body, err := io.ReadAll(f)
	if err != nil {
		return Record{}, fmt.Errorf("persist: read %s: %w", path, err)
	}

	var doc map[string]any
	if err := cbor.Unmarshal(body, &doc); err != nil {
		return Record{}, fmt.Errorf("persist: decode dynamic tree: %w", err)
	}

	if err := runMigrations(doc, h.Version); err != nil {
		return Record{}, fmt.Errorf("persist: migrate %s: %w", path, err)
	}

	migrated, err := cbor.Marshal(doc)
	if err != nil {
		return Record{}, fmt.Errorf("persist: re-encode migrated tree: %w", err)
	}

	var rec Record
	if err := cbor.Unmarshal(migrated, &rec); err != nil {
		return Record{}, fmt.Errorf("persist: decode record: %w", err)
	}
	return rec, nil
}
