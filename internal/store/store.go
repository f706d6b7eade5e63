// Package store provides the key-value persistence port for durable
// snapshots. The ledger and risk evaluator are persistence-agnostic: they
// save and load flat JSON records through this interface at defined
// boundaries (on mutation, on init) and never reach into storage directly.
package store

// Record keys. These mirror the browser-local storage keys of the web UI so
// exported state stays recognizable.
const (
	KeyPortfolio    = "paper-trading-portfolio"
	KeyRiskSettings = "risk-control-settings"
	KeyProgress     = "paper-trading-progress"
)

// Store persists independent JSON snapshot records by key.
type Store interface {
	// Load reads the record for key into the given value. It returns false
	// with a nil error when the record is missing or malformed, so callers
	// fall back to documented defaults instead of failing.
	Load(key string, into any) (bool, error)

	// Save serializes value and writes it as the record for key,
	// replacing any previous record.
	Save(key string, value any) error

	// Delete removes the record for key. Deleting a missing key is not an error.
	Delete(key string) error
}
