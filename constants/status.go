package constants

// EntryStatus is the canonical status of a catalog entry as carried by the
// reference catalog source.
type EntryStatus string

// Stable values (store these exact strings in the snapshot db).
const (
	EntryStatusActive   EntryStatus = "ACTIVE"
	EntryStatusInactive EntryStatus = "INACTIVE"
	EntryStatusUnknown  EntryStatus = "UNKNOWN" // source carried no status column
)

// CatalogMatch is the per-item outcome of the catalog lookup.
type CatalogMatch string

const (
	CatalogFoundActive   CatalogMatch = "FOUND_ACTIVE"
	CatalogFoundInactive CatalogMatch = "FOUND_INACTIVE"
	CatalogNotFound      CatalogMatch = "NOT_FOUND"
)

// UnitMatch is the per-item outcome of the unit-of-supply check.
type UnitMatch string

const (
	UnitMatchOK       UnitMatch = "MATCH"
	UnitMismatch      UnitMatch = "MISMATCH"
	UnitNotApplicable UnitMatch = "NOT_APPLICABLE"
)

// ArithmeticCheck is the per-item outcome of quantity × unit price vs total.
type ArithmeticCheck string

const (
	ArithmeticConsistent    ArithmeticCheck = "CONSISTENT"
	ArithmeticInconsistent  ArithmeticCheck = "INCONSISTENT"
	ArithmeticNotApplicable ArithmeticCheck = "NOT_APPLICABLE"
)
