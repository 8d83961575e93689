package onboarding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"hearts/internal/ports"
)

// AvatarCount is the number of avatar images the client ships; bots use the same range.
const AvatarCount = 12

var (
	ErrNotConfigured = errors.New("onboarding service not configured")

	nameAdjectives = []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nameNouns      = []string{"Heart", "Spade", "Club", "Diamond", "Queen", "Jack", "King", "Ace", "Joker", "Trick"}
)

// Result reports what onboarding applied. ProfileUpdateErr is set when the profile write
// failed and onboarding carried on without it.
type Result struct {
	Profile          ports.Profile
	ProfileUpdateErr error
}

// Service prepares newly created accounts for their first table.
type Service struct {
	accounts     ports.AccountPort
	leaderboards ports.LeaderboardPort
	rng          *rand.Rand
}

// NewService wires the ports; a nil rng is replaced by a time-seeded one.
func NewService(accounts ports.AccountPort, leaderboards ports.LeaderboardPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{accounts: accounts, leaderboards: leaderboards, rng: rng}
}

// OnboardNewUser gives userID a generated name and avatar, then creates its leaderboard
// record. Only the leaderboard failure is fatal.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.leaderboards == nil {
		return Result{}, ErrNotConfigured
	}

	name := s.friendlyName()
	result := Result{Profile: ports.Profile{
		Username:    name,
		DisplayName: name,
		AvatarIndex: s.rng.Intn(AvatarCount),
	}}
	result.ProfileUpdateErr = s.accounts.UpdateProfile(ctx, userID, result.Profile)

	if err := s.leaderboards.Register(ctx, userID, result.Profile.DisplayName); err != nil {
		return result, fmt.Errorf("register leaderboard record for %s: %w", userID, err)
	}
	return result, nil
}

// friendlyName builds names like "SlyQueen4821".
func (s *Service) friendlyName() string {
	return fmt.Sprintf("%s%s%d",
		nameAdjectives[s.rng.Intn(len(nameAdjectives))],
		nameNouns[s.rng.Intn(len(nameNouns))],
		s.rng.Intn(9000)+1000,
	)
}
