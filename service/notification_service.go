// api/service/notification_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spop-ops/commander/api/dao"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// INotificationService defines the interface for notification operations
type INotificationService interface {
	Notify(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, recipientID uint, filter dao.NotificationFilter) ([]model.Notification, error)
	Get(ctx context.Context, id, recipientID uint) (*model.Notification, error)
	Delete(ctx context.Context, id, recipientID uint) error
	MarkRead(ctx context.Context, id, recipientID uint) error
	MarkUnread(ctx context.Context, id, recipientID uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error
	ClearAll(ctx context.Context, recipientID uint) error
	UnreadCount(ctx context.Context, recipientID uint) (int64, error)
}

type NotificationService struct {
	notificationDAO *dao.NotificationDAO
	cacheService    *util.CacheService
	notifier        *util.ChangeNotifier
}

var _ INotificationService = &NotificationService{}

func NewNotificationService(notificationDAO *dao.NotificationDAO, cacheService *util.CacheService, notifier *util.ChangeNotifier) *NotificationService {
	return &NotificationService{
		notificationDAO: notificationDAO,
		cacheService:    cacheService,
		notifier:        notifier,
	}
}

// Notify persists the notification and pushes it to the recipient's live
// connections. Best-effort cache invalidation keeps the unread counter fresh.
func (s *NotificationService) Notify(ctx context.Context, n *model.Notification) error {
	if err := s.notificationDAO.Create(ctx, n); err != nil {
		return err
	}
	s.invalidateUnread(ctx, n.RecipientID)
	s.notifier.NotificationCreated(ctx, n)
	return nil
}

func (s *NotificationService) List(ctx context.Context, recipientID uint, filter dao.NotificationFilter) ([]model.Notification, error) {
	return s.notificationDAO.ListForRecipient(ctx, recipientID, filter)
}

func (s *NotificationService) Get(ctx context.Context, id, recipientID uint) (*model.Notification, error) {
	return s.notificationDAO.GetForRecipient(ctx, id, recipientID)
}

func (s *NotificationService) Delete(ctx context.Context, id, recipientID uint) error {
	if err := s.notificationDAO.Delete(ctx, id, recipientID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, recipientID)
	return nil
}

// MarkRead is monotonic: marking an already-read notification is a no-op,
// and the original read timestamp is preserved.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uint) error {
	n, err := s.notificationDAO.GetForRecipient(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !n.MarkRead(time.Now().UTC()) {
		return nil
	}
	if err := s.notificationDAO.Save(ctx, n); err != nil {
		return err
	}
	s.invalidateUnread(ctx, recipientID)
	return nil
}

func (s *NotificationService) MarkUnread(ctx context.Context, id, recipientID uint) error {
	n, err := s.notificationDAO.GetForRecipient(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !n.MarkUnread() {
		return nil
	}
	if err := s.notificationDAO.Save(ctx, n); err != nil {
		return err
	}
	s.invalidateUnread(ctx, recipientID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	if err := s.notificationDAO.MarkAllRead(ctx, recipientID, time.Now().UTC()); err != nil {
		return err
	}
	s.invalidateUnread(ctx, recipientID)
	return nil
}

func (s *NotificationService) ClearAll(ctx context.Context, recipientID uint) error {
	if err := s.notificationDAO.ClearAll(ctx, recipientID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, recipientID)
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	if count, ok, err := s.cacheService.GetUnreadCount(ctx, recipientID); err == nil && ok {
		return count, nil
	}

	count, err := s.notificationDAO.UnreadCount(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	if err := s.cacheService.SetUnreadCount(ctx, recipientID, count); err != nil {
		logger.Warn("Failed to cache unread count", zap.Error(err), zap.Uint("recipientID", recipientID))
	}
	return count, nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, recipientID uint) {
	if err := s.cacheService.InvalidateUnreadCount(ctx, recipientID); err != nil {
		logger.Warn("Failed to invalidate unread count cache", zap.Error(err), zap.Uint("recipientID", recipientID))
	}
}
