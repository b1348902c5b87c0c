package model

import "github.com/google/uuid"

// assignID gives new rows a UUID unless the caller chose one.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// AllModels is the migration set in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&Admin{},
		&TeamApplication{},
		&Team{},
		&Payment{},
		&Setting{},
	}
}
