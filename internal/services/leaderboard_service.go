package services

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

const defaultLeaderboardInterval = 10 * time.Minute

// LeaderboardService serves the top-traders feed. There is no real social
// backend; the feed is a simulated dataset whose returns drift a little on
// every refresh cycle, like the original dashboard's mock.
type LeaderboardService struct {
	interval time.Duration

	mu      sync.RWMutex
	traders []models.Trader
	rnd     *rand.Rand
}

var leaderboardSeed = []models.Trader{
	{Name: "Priya Nair", ReturnPct: 34.2, Followers: 12800},
	{Name: "Rohit Menon", ReturnPct: 28.7, Followers: 9400},
	{Name: "Ananya Iyer", ReturnPct: 25.1, Followers: 15200},
	{Name: "Vikram Shah", ReturnPct: 21.9, Followers: 7100},
	{Name: "Sneha Kulkarni", ReturnPct: 19.4, Followers: 5600},
	{Name: "Aditya Rao", ReturnPct: 16.8, Followers: 4300},
	{Name: "Kavya Reddy", ReturnPct: 14.5, Followers: 3800},
	{Name: "Arnav Gupta", ReturnPct: 11.2, Followers: 2900},
}

func NewLeaderboardService(interval time.Duration) *LeaderboardService {
	return newLeaderboardService(interval, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newLeaderboardService(interval time.Duration, rnd *rand.Rand) *LeaderboardService {
	if interval <= 0 {
		interval = defaultLeaderboardInterval
	}
	s := &LeaderboardService{
		interval: interval,
		traders:  append([]models.Trader(nil), leaderboardSeed...),
		rnd:      rnd,
	}
	s.refresh()
	return s
}

// Start refreshes the feed on its own slow ticker until ctx is cancelled.
func (s *LeaderboardService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Leaderboard service stopping...")
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

// Top returns the current leaderboard, best return first.
func (s *LeaderboardService) Top() []models.Trader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Trader, len(s.traders))
	copy(out, s.traders)
	return out
}

func (s *LeaderboardService) refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.traders {
		drift := (s.rnd.Float64() - 0.5) * 2.0 // +/- 1 percentage point
		s.traders[i].ReturnPct += drift
	}
	sort.SliceStable(s.traders, func(i, j int) bool {
		return s.traders[i].ReturnPct > s.traders[j].ReturnPct
	})
	for i := range s.traders {
		s.traders[i].Rank = i + 1
	}
}
