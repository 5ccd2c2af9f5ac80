package services

import (
	"context"
	"log"
	"time"

	"smartspend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// cleanupTimeout bounds a single cleanup run.
const cleanupTimeout = 30 * time.Second

// CleanupService clears expired refresh-token slots on a schedule. An
// expired slot is already unusable for refresh; this keeps stale secrets
// out of the users table.
type CleanupService struct {
	userRepo repositories.UserRepository
	cron     *cron.Cron
}

// NewCleanupService creates the cleanup service
func NewCleanupService(userRepo repositories.UserRepository) *CleanupService {
	return &CleanupService{
		userRepo: userRepo,
		cron:     cron.New(),
	}
}

// Start schedules the nightly cleanup (03:00)
func (s *CleanupService) Start() {
	_, err := s.cron.AddFunc("0 3 * * *", s.run)
	if err != nil {
		log.Printf("⚠️ Failed to schedule session cleanup: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 Session cleanup scheduled (daily 03:00)")
}

// Stop stops the scheduler
func (s *CleanupService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Session cleanup stopped")
}

func (s *CleanupService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	cleared, err := s.userRepo.ClearExpiredRefreshTokens(ctx)
	if err != nil {
		log.Printf("⚠️ Session cleanup failed: %v", err)
		return
	}
	if cleared > 0 {
		log.Printf("✅ Cleared %d expired refresh tokens", cleared)
	}
}
