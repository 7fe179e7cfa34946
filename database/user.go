package database

import (
	"context"
	"errors"
	"strings"

	"kkj123/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"
)

var errEmptyEmail = errors.New("email must not be empty")

// RegisterUser inserts a user and returns it with its assigned id.
// Email uniqueness is left to the store: a duplicate yields a
// *WriteError matching ErrConflict.
func (s *Store) RegisterUser(ctx context.Context, email string) (*models.User, error) {
	const op = "register user"
	if strings.TrimSpace(email) == "" {
		return nil, rejected(op, errEmptyEmail)
	}

	user := models.User{Email: email}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&user).Error; err != nil {
		werr := writeError(op, err)
		s.log.WithFields(logrus.Fields{"op": op, "kind": werr.Kind}).WithError(err).Warn("write failed")
		return nil, werr
	}

	s.log.WithFields(logrus.Fields{"op": op, "user_id": user.ID}).Debug("user registered")
	return &user, nil
}
