package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloglist/internal/repository"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 5 * time.Minute

// Reconciler periodically repairs drift between the blog collection and the
// owners' reverse index: owned blogs missing from an index are appended,
// entries pointing at absent blogs are pruned, duplicates are collapsed.
// The API keeps both sides in one transaction, so sweeps normally find
// nothing; they catch rows touched outside the API.
type Reconciler struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
	interval time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewReconciler creates a reconciler sweeping at the given interval.
func NewReconciler(blogRepo repository.BlogRepository, userRepo repository.UserRepository, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &Reconciler{
		blogRepo: blogRepo,
		userRepo: userRepo,
		interval: interval,
	}
}

// Start begins the sweep loop. Call Stop() to gracefully shut down.
func (r *Reconciler) Start(ctx context.Context) {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	log.Printf("[Reconciler] Started (interval=%s)", r.interval)
}

// Stop shuts down the sweep loop. Blocks until the worker has finished.
func (r *Reconciler) Stop() {
	log.Printf("[Reconciler] Stopping...")
	r.cancel()
	r.wg.Wait()
	log.Printf("[Reconciler] Stopped")
}

func (r *Reconciler) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(r.ctx); err != nil {
				log.Printf("[Reconciler] Sweep failed: %v", err)
			}
		}
	}
}

// Sweep runs a single reconciliation pass over all users.
func (r *Reconciler) Sweep(ctx context.Context) error {
	sweepID := uuid.New().String()[:8]

	blogs, err := r.blogRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load blogs: %w", err)
	}
	users, err := r.userRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	// Ownership per the blogs table, the authoritative forward direction
	owned := make(map[int64][]int64)
	blogOwner := make(map[int64]int64, len(blogs))
	for _, b := range blogs {
		owned[b.UserID] = append(owned[b.UserID], b.ID)
		blogOwner[b.ID] = b.UserID
	}

	repaired := 0
	for _, u := range users {
		indexed := make(map[int64]bool, len(u.BlogIDs))
		fixed := make([]int64, 0, len(u.BlogIDs))
		dirty := false

		for _, id := range u.BlogIDs {
			if owner, ok := blogOwner[id]; !ok || owner != u.ID || indexed[id] {
				// Dangling, misfiled or duplicate entry
				dirty = true
				continue
			}
			indexed[id] = true
			fixed = append(fixed, id)
		}

		for _, id := range owned[u.ID] {
			if !indexed[id] {
				// Orphan blog missing from the index
				fixed = append(fixed, id)
				dirty = true
			}
		}

		if !dirty {
			continue
		}

		if err := r.userRepo.SetBlogIDs(ctx, u.ID, fixed); err != nil {
			log.Printf("[Reconciler] sweep=%s user=%d repair failed: %v", sweepID, u.ID, err)
			continue
		}
		repaired++
	}

	if repaired > 0 {
		log.Printf("[Reconciler] sweep=%s repaired %d user(s)", sweepID, repaired)
	}
	return nil
}
