package persist

import "fmt"

// migrationFunc mutates a decoded-but-not-yet-typed document in place,
// advancing it from the version its registry key names to the next one.
// Grounded on original_source's storage/migrations/v09/mod.rs, which does
// the same thing over a ciborium::Value tree ("/bots/alive/*" rewrites);
// here the tree is a plain map[string]any produced by cbor.Unmarshal into
// an interface{}, so a migration walks it with ordinary type assertions
// instead of a query helper.
type migrationFunc func(doc map[string]any)

// migrations is keyed by the version a step moves away from. Empty today
// -- CurrentVersion is 1 and this implementation has never shipped a
// version before it -- but Load always runs the chain unconditionally so
// a future format change only ever needs a new entry here, never a
// rewrite of the load path.
var migrations = map[uint32]migrationFunc{}

// runMigrations advances doc from fromVersion to CurrentVersion in place,
// applying each registered step in order.
func runMigrations(doc map[string]any, fromVersion uint32) error {
	if fromVersion > CurrentVersion {
		return fmt.Errorf("persist: file version %d is newer than this build supports (%d)", fromVersion, CurrentVersion)
	}
	for v := fromVersion; v < CurrentVersion; v++ {
		fn, ok := migrations[v]
		if !ok {
			return fmt.Errorf("persist: no migration registered from version %d", v)
		}
		fn(doc)
	}
	return nil
}
