package services

import (
	"audora/config"
	"audora/internal/database"
)

type Service struct {
	Transaction *TransactionService
	JWT         *JWTService
	Mail        *MailService
	Storage     *StorageService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	jwtService := NewJWTService(config)
	mailService := NewMailService(config)
	schedulerService := NewSchedulerService()

	storageService, err := NewStorageService(config)
	if err != nil {
		return Service{}, err
	}

	return Service{
		Transaction: transactionService,
		JWT:         jwtService,
		Mail:        mailService,
		Storage:     storageService,
		Scheduler:   schedulerService,
	}, nil
}
