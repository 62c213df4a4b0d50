package specification

import "gorm.io/gorm"

// Specification composes query conditions for the relational repository.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
