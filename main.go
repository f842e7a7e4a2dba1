package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"lotto/cmd"
	"lotto/config"
	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/services"
	"lotto/infrastructure"
	"lotto/repository"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error:", err)
		}
		return
	}

	// Check for balance adjustment subcommands
	if len(os.Args) > 1 && os.Args[1] == "update-balance" {
		if err := handleBalanceAdjustment(); err != nil {
			log.Fatal("Balance adjustment error:", err)
		}
		return
	}

	// Check for pot funding subcommands
	if len(os.Args) > 1 && os.Args[1] == "add-pot" {
		if err := handlePotAddition(); err != nil {
			log.Fatal("Pot addition error:", err)
		}
		return
	}

	// Normal bot operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error:", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: lotto migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handlePotAddition funds the pot from outside the economy. The console actor
// has no account, so nothing is withdrawn and the deposit limit does not apply.
func handlePotAddition() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: lotto add-pot amount")
	}
	amount, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewNATSTransactionalPublisher(infrastructure.NewNoopEventPublisher())
	})
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	economy := services.NewEconomyService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		cfg.StartingBalance,
	)
	potService := services.NewPotService(
		uow.LedgerRepository(),
		uow.SettingsRepository(),
		economy,
		uow.EventBus(),
	)

	newPot, err := potService.Deposit(ctx, interfaces.Actor{Console: true, Admin: true}, amount)
	if err != nil {
		return fmt.Errorf("failed to deposit to pot: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	fmt.Printf("Pot funded with %d, now %d\n", amount, newPot)
	return nil
}

// handleBalanceAdjustment sets a participant's balance directly. Operator
// tooling; events are not published.
func handleBalanceAdjustment() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: lotto update-balance participant-id balance")
	}
	participantID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid participant ID: %w", err)
	}
	balance, err := strconv.ParseInt(os.Args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid balance: %w", err)
	}

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewNATSTransactionalPublisher(infrastructure.NewNoopEventPublisher())
	})
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByParticipantID(ctx, participantID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return fmt.Errorf("no account for participant %d", participantID)
	}

	if err := uow.AccountRepository().UpdateBalance(ctx, participantID, balance); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	history := &entities.BalanceHistory{
		ParticipantID:   participantID,
		BalanceBefore:   account.Balance,
		BalanceAfter:    balance,
		ChangeAmount:    balance - account.Balance,
		TransactionType: entities.TransactionTypeAdminAdjustment,
		TransactionMetadata: map[string]any{
			"admin": "true",
		},
	}
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	fmt.Printf("Balance for %d set to %d (was %d)\n", participantID, balance, account.Balance)
	return nil
}
