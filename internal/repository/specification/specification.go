package specification

import "gorm.io/gorm"

// Specification is a composable query fragment. Repositories apply a chain
// of these to scope lookups (by id, by status, recent-first) without leaking
// gorm clauses into the service layer.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
