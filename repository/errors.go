package repository

import (
	"errors"
	"fmt"

	"github.com/jonascoder/surf-shop/utils"
	"go.mongodb.org/mongo-driver/mongo"
)

func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", what, utils.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", what, utils.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}
