package service

import (
	"context"
	"log"
	"time"

	"setflow/internal/port"
)

// ExpirySweeperConfig holds settings for the expiry sweeper.
type ExpirySweeperConfig struct {
	PollInterval time.Duration
}

// ExpirySweeper periodically transitions pending invites past their
// expiry and sent proposals past their validity deadline to expired.
// Both flows also settle expiry lazily at read time; the sweeper keeps
// listed state honest in between.
type ExpirySweeper struct {
	inviteRepo   port.InviteRepository
	proposalRepo port.ProposalRepository
	cfg          ExpirySweeperConfig
}

// NewExpirySweeper creates a new ExpirySweeper.
func NewExpirySweeper(inviteRepo port.InviteRepository, proposalRepo port.ProposalRepository, cfg ExpirySweeperConfig) *ExpirySweeper {
	return &ExpirySweeper{inviteRepo: inviteRepo, proposalRepo: proposalRepo, cfg: cfg}
}

// Start runs the sweep loop until ctx is canceled.
func (w *ExpirySweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("expirySweeper: started (poll=%s)", w.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("expirySweeper: shutdown complete")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one expiry pass over invites and proposals.
func (w *ExpirySweeper) Sweep(ctx context.Context) {
	if n, err := w.inviteRepo.MarkExpired(ctx); err != nil {
		if ctx.Err() == nil {
			log.Printf("expirySweeper: invite MarkExpired error: %v", err)
		}
	} else if n > 0 {
		log.Printf("expirySweeper: expired %d invites", n)
	}

	if n, err := w.proposalRepo.MarkExpired(ctx); err != nil {
		if ctx.Err() == nil {
			log.Printf("expirySweeper: proposal MarkExpired error: %v", err)
		}
	} else if n > 0 {
		log.Printf("expirySweeper: expired %d proposals", n)
	}
}
