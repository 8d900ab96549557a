// Command backfill recomputes every bank account balance from its
// transaction history. Balances are derived data; run this after a
// manual data fix or an interrupted import.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"setflow/internal/config"
	"setflow/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	accountRepo := postgres.NewBankAccountRepo(db)

	ctx := context.Background()

	var accounts []struct {
		ID    uuid.UUID `db:"id"`
		OrgID uuid.UUID `db:"org_id"`
		Name  string    `db:"name"`
	}
	err = db.SelectContext(ctx, &accounts,
		`SELECT id, org_id, name FROM bank_accounts ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("querying bank accounts: %w", err)
	}

	total := 0
	for _, account := range accounts {
		balance, err := accountRepo.RecomputeBalance(ctx, account.OrgID, account.ID)
		if err != nil {
			log.Printf("WARN: failed to recompute balance for account %s (%s): %v", account.ID, account.Name, err)
			continue
		}
		log.Printf("account %s (%s): balance %d cents", account.ID, account.Name, balance)
		total++
	}

	log.Printf("Backfill complete: %d account balances recomputed", total)
	return nil
}
