package seeds

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const PostCount = 40

type spot struct {
	name     string
	lng, lat float64
}

var spots = []spot{
	{"Huntington Beach, California", -118.0048, 33.6553},
	{"Santa Cruz, California", -122.0308, 36.9741},
	{"Cocoa Beach, Florida", -80.6077, 28.3200},
	{"Outer Banks, North Carolina", -75.5547, 35.5585},
	{"Montauk, New York", -71.9545, 41.0359},
	{"Haleiwa, Hawaii", -158.1030, 21.5928},
	{"Seaside, Oregon", -123.9226, 45.9932},
	{"Port Aransas, Texas", -97.0611, 27.8339},
}

var words = strings.Fields(`longboard shortboard fish gun funboard wetsuit leash fin wax
	quiver glassy offshore barrel swell reef point break tube nose rail deck
	soft top epoxy thruster quad twin single vintage custom`)

func phrase(r *rand.Rand, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = words[r.IntN(len(words))]
	}
	return strings.Join(out, " ")
}

// RandomPost builds a post near one of a handful of surf towns.
func RandomPost(r *rand.Rand, author primitive.ObjectID) *models.Post {
	s := spots[r.IntN(len(spots))]
	title := phrase(r, 1+r.IntN(3))
	return &models.Post{
		Title:       strings.ToUpper(title[:1]) + title[1:],
		Price:       float64(10 + r.IntN(990)),
		Description: fmt.Sprintf("%s. %s.", phrase(r, 8), phrase(r, 12)),
		Location:    s.name,
		Geometry:    models.NewPoint(s.lng+(r.Float64()-0.5)*0.2, s.lat+(r.Float64()-0.5)*0.2),
		Author:      author,
	}
}

// SeedPosts replaces every post with PostCount random posts authored by the
// oldest account.
func SeedPosts(ctx context.Context, users repository.UserRepository, posts repository.PostRepository, r *rand.Rand, logger *zap.Logger) error {
	author, err := users.First(ctx)
	if err != nil {
		return fmt.Errorf("seed needs at least one registered user: %w", err)
	}

	if err := posts.DeleteAll(ctx); err != nil {
		return err
	}
	for range PostCount {
		if err := posts.Create(ctx, RandomPost(r, author.ID)); err != nil {
			return err
		}
	}

	logger.Info("posts seeded", zap.Int("count", PostCount), zap.String("author", author.Username))
	return nil
}
