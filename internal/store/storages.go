package store

import "github.com/MKhiriev/go-user-accounts/internal/logger"

// Storages groups the repositories built on top of one database connection.
type Storages struct {
	AccountRepository AccountRepository
	Pinger            Pinger
}

// NewStorages wires every repository to db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		Pinger:            db,
	}
}
