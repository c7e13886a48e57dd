package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"banterhall/internal/models"
	"banterhall/internal/repository"
	"banterhall/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var banterLines = []string{
	"Who keeps folding with a pair of kings? Own up.",
	"Casino War is pure luck and I will not be told otherwise.",
	"The house always wins, and tonight I am the house.",
	"Roshambo is 90% psychology and 10% regret.",
	"New lobby up, bring coins or bring excuses.",
	"I lost 20 coins and my dignity in the same hand.",
}

var stakes = []string{models.StakeFun, "1", "2", "5+"}

var gameTypes = []string{
	models.GameTypeBlackjack,
	models.GameTypeCasinoWar,
	models.GameTypeRoshambo,
}

// Factory builds domain records and persists them to the store. It is a thin
// helper used by the demo preset and tests.
type Factory struct {
	users    repository.UserRepository
	games    repository.GameRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	opts     Options
	rng      *rand.Rand
}

// NewFactory creates a new Factory bound to the provided store.
func NewFactory(st store.Store, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		users:    repository.NewUserRepository(st),
		games:    repository.NewGameRepository(st),
		posts:    repository.NewPostRepository(st),
		comments: repository.NewCommentRepository(st),
		opts:     opts,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a demo user with a random balance.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().Add(-time.Duration(f.rng.Intn(60*24)) * time.Hour)
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Gamertag(), gofakeit.Number(10, 99)),
		Password: string(hashed),
		Balance:  gofakeit.Number(5, 200),
		Stats: models.UserStats{
			LastLogin:      time.Now().Add(-time.Duration(f.rng.Intn(72)) * time.Hour),
			TotalLogins:    gofakeit.Number(1, 40),
			TotalTimeSpent: gofakeit.Number(60, 7200),
			GamesPlayed:    gofakeit.Number(0, 25),
		},
		CreatedAt: createdAt,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.users.Create(ctx, user); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// CreateUsers persists up to n demo users, skipping username collisions.
func (f *Factory) CreateUsers(ctx context.Context, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return nil, err
		}
		if u != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

// CreateGames persists n open lobbies hosted by random seeded users.
func (f *Factory) CreateGames(ctx context.Context, users []*models.User, n int) error {
	for i := 0; i < n; i++ {
		host := users[f.rng.Intn(len(users))]
		gameType := gameTypes[f.rng.Intn(len(gameTypes))]
		game := &models.Game{
			ID:             uuid.NewString(),
			Name:           fmt.Sprintf("%s's %s table", host.Username, gameType),
			GameType:       gameType,
			Host:           host.Username,
			Stake:          stakes[f.rng.Intn(len(stakes))],
			Status:         models.GameStatusWaiting,
			CurrentPlayers: 1,
			MaxPlayers:     models.MaxPlayersFor(gameType),
			Players:        []string{host.Username},
			CreatedAt:      time.Now(),
			ExpiryTime:     time.Now().Add(time.Hour),
		}
		if err := f.games.Create(ctx, game); err != nil {
			return err
		}
	}
	return nil
}

// CreatePosts persists n board posts with votes and a few comments each.
func (f *Factory) CreatePosts(ctx context.Context, users []*models.User, n int) error {
	for i := 0; i < n; i++ {
		author := users[f.rng.Intn(len(users))]
		post := &models.Post{
			ID:        uuid.NewString(),
			Author:    author.Username,
			Content:   banterLines[f.rng.Intn(len(banterLines))],
			Voters:    []models.Vote{},
			CreatedAt: time.Now().Add(-time.Duration(f.rng.Intn(48)) * time.Hour),
		}
		for _, voter := range users {
			if voter.Username == author.Username || f.rng.Intn(3) != 0 {
				continue
			}
			direction := models.VoteUp
			if f.rng.Intn(4) == 0 {
				direction = models.VoteDown
			}
			post.Votes, post.Voters = models.ApplyVote(post.Votes, post.Voters, voter.Username, direction)
		}
		if err := f.posts.Create(ctx, post); err != nil {
			return err
		}

		for j := 0; j < f.rng.Intn(f.opts.MaxComments+1); j++ {
			commenter := users[f.rng.Intn(len(users))]
			comment := &models.Comment{
				ID:        uuid.NewString(),
				PostID:    post.ID,
				Author:    commenter.Username,
				Content:   gofakeit.HipsterSentence(f.rng.Intn(8) + 3),
				Voters:    []models.Vote{},
				CreatedAt: post.CreatedAt.Add(time.Duration(j+1) * time.Minute),
			}
			if err := f.comments.Create(ctx, comment); err != nil {
				return err
			}
		}
	}
	return nil
}
