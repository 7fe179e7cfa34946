package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kkj123/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateChannel inserts a channel and enrolls its creator as the first
// member. Both rows are written in one transaction: if either insert
// fails, nothing is committed and the caller gets a single *WriteError.
func (s *Store) CreateChannel(ctx context.Context, userID uint, title string, isPublic bool) (*models.Channel, error) {
	const op = "create channel"
	log := s.log.WithFields(logrus.Fields{"op": op, "user_id": userID})

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		werr := writeError(op, fmt.Errorf("begin: %w", tx.Error))
		log.WithField("kind", werr.Kind).WithError(tx.Error).Warn("write failed")
		return nil, werr
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.WithError(rbErr).Warn("rollback failed")
		}
	}()

	channel := models.Channel{
		UserID:   userID,
		Title:    title,
		IsPublic: isPublic,
	}
	if err := tx.Omit(clause.Associations).Create(&channel).Error; err != nil {
		werr := writeError(op, fmt.Errorf("insert channel: %w", err))
		log.WithField("kind", werr.Kind).WithError(err).Warn("write failed")
		return nil, werr
	}

	if _, err := addMember(tx, channel.ID, userID); err != nil {
		werr := writeError(op, fmt.Errorf("insert creator membership: %w", err))
		log.WithFields(logrus.Fields{"kind": werr.Kind, "channel_id": channel.ID}).WithError(err).Warn("write failed")
		return nil, werr
	}

	if err := tx.Commit().Error; err != nil {
		werr := writeError(op, fmt.Errorf("commit: %w", err))
		log.WithField("kind", werr.Kind).WithError(err).Warn("write failed")
		return nil, werr
	}
	committed = true

	log.WithField("channel_id", channel.ID).Debug("channel created")
	return &channel, nil
}

// AddMember enrolls a user in an existing channel. Adding a user who is
// already a member fails with ErrConflict.
func (s *Store) AddMember(ctx context.Context, channelID, userID uint) (*models.Membership, error) {
	const op = "add member"
	membership, err := addMember(s.db.WithContext(ctx), channelID, userID)
	if err != nil {
		werr := writeError(op, err)
		s.log.WithFields(logrus.Fields{
			"op":         op,
			"kind":       werr.Kind,
			"channel_id": channelID,
			"user_id":    userID,
		}).WithError(err).Warn("write failed")
		return nil, werr
	}
	return membership, nil
}

// addMember runs on whatever db it is handed, so inside CreateChannel it
// is part of the open transaction.
func addMember(db *gorm.DB, channelID, userID uint) (*models.Membership, error) {
	membership := models.Membership{UserID: userID, ChannelID: channelID}
	if err := db.Create(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetChannel returns ErrNotFound when no row has that id.
func (s *Store) GetChannel(ctx context.Context, id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := s.db.WithContext(ctx).First(&channel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("channel %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get channel %d: %w", id, err)
	}
	return &channel, nil
}

// ListMembers returns the memberships of a channel ordered by user id.
func (s *Store) ListMembers(ctx context.Context, channelID uint) ([]models.Membership, error) {
	members := []models.Membership{}
	if err := s.db.WithContext(ctx).Where("channel_id = ?", channelID).Order("user_id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members of channel %d: %w", channelID, err)
	}
	return members, nil
}

// UserChannels returns every channel the user belongs to.
func (s *Store) UserChannels(ctx context.Context, userID uint) ([]models.Channel, error) {
	channels := []models.Channel{}
	user := models.User{ID: userID}
	if err := s.db.WithContext(ctx).Model(&user).Association("Channels").Find(&channels); err != nil {
		return nil, fmt.Errorf("list channels of user %d: %w", userID, err)
	}
	return channels, nil
}
