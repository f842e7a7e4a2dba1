package repository

import (
	"lotto/application"
	"lotto/database"
	"lotto/domain/interfaces"
)

// NewTestUnitOfWorkFactory creates a unit of work factory for tests
// Tests should provide their own transactional publisher
func NewTestUnitOfWorkFactory(db *database.DB, publisherFactory func() interfaces.TransactionalEventPublisher) application.UnitOfWorkFactory {
	return NewUnitOfWorkFactory(db, publisherFactory)
}

// CreateTestUnitOfWork creates a unit of work for testing with the provided transactional publisher
func CreateTestUnitOfWork(db *database.DB, publisher interfaces.TransactionalEventPublisher) application.UnitOfWork {
	factory := NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return publisher
	})
	return factory.Create()
}
