// api/service/order_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// AcknowledgeRequest carries the optional acknowledgment comment plus the
// client-reported device context.
type AcknowledgeRequest struct {
	Comments   string `json:"comments"`
	DeviceInfo string `json:"device_info"`
}

// IOrderService defines the interface for order operations
type IOrderService interface {
	Create(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error)
	Update(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error)
	Delete(ctx context.Context, id, actorID uint) error
	Get(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter dao.OrderFilter) ([]model.Order, error)
	Urgent(ctx context.Context, requesterUserID uint, isCommander bool) ([]model.Order, error)
	Acknowledge(ctx context.Context, id, userID uint, req AcknowledgeRequest) (*model.Order, error)
	MarkUrgent(ctx context.Context, id, actorID uint, isCommander bool) (*model.Order, error)
}

type OrderService struct {
	orderDAO        *dao.OrderDAO
	officerDAO      *dao.OfficerDAO
	validationUtil  *util.ValidationUtil
	notificationSvc INotificationService
}

var _ IOrderService = &OrderService{}

func NewOrderService(orderDAO *dao.OrderDAO, officerDAO *dao.OfficerDAO, validationUtil *util.ValidationUtil, notificationSvc INotificationService) *OrderService {
	return &OrderService{
		orderDAO:        orderDAO,
		officerDAO:      officerDAO,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
	}
}

func (s *OrderService) Create(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error) {
	if err := s.validationUtil.ValidateOrder(order); err != nil {
		return nil, api_errors.ErrInvalidOrderData
	}
	if order.Priority == model.OrderPriorityUrgent {
		order.IsUrgent = true
	}
	if err := s.orderDAO.Create(ctx, order, actorID, "rest"); err != nil {
		return nil, err
	}
	s.notifyAssignment(ctx, order)
	return order, nil
}

func (s *OrderService) Update(ctx context.Context, order *model.Order, actorID uint) (*model.Order, error) {
	if err := s.validationUtil.ValidateOrder(order); err != nil {
		return nil, api_errors.ErrInvalidOrderData
	}
	if _, err := s.orderDAO.GetByID(ctx, order.ID); err != nil {
		return nil, err
	}
	if err := s.orderDAO.Update(ctx, order, actorID, "rest"); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id, actorID uint) error {
	return s.orderDAO.Delete(ctx, id, actorID)
}

func (s *OrderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	return s.orderDAO.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter dao.OrderFilter) ([]model.Order, error) {
	return s.orderDAO.List(ctx, filter)
}

func (s *OrderService) Urgent(ctx context.Context, requesterUserID uint, isCommander bool) ([]model.Order, error) {
	urgent := true
	filter := dao.OrderFilter{IsUrgent: &urgent}
	if !isCommander {
		filter.AssignedToUserID = requesterUserID
	}
	return s.orderDAO.List(ctx, filter)
}

// Acknowledge records the explicit acknowledgment row and stamps the order.
// Orders that do not require acknowledgment reject the call.
func (s *OrderService) Acknowledge(ctx context.Context, id, userID uint, req AcknowledgeRequest) (*model.Order, error) {
	order, err := s.orderDAO.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.AcknowledgmentRequired {
		return nil, api_errors.ErrAckNotRequired
	}

	ack := &model.OrderAcknowledgment{
		OrderID:  order.ID,
		UserID:   userID,
		Comments: req.Comments,
	}
	if err := s.orderDAO.CreateAcknowledgment(ctx, ack); err != nil {
		return nil, err
	}

	if order.AcknowledgedAt == nil {
		return s.orderDAO.PartialUpdate(ctx, id,
			map[string]interface{}{"acknowledged_at": time.Now().UTC()}, userID, "rest")
	}
	return order, nil
}

// MarkUrgent flips the urgency flag; only commanders may escalate.
func (s *OrderService) MarkUrgent(ctx context.Context, id, actorID uint, isCommander bool) (*model.Order, error) {
	if !isCommander {
		return nil, api_errors.ErrCommanderOnly
	}
	return s.orderDAO.PartialUpdate(ctx, id, map[string]interface{}{
		"is_urgent": true,
		"priority":  model.OrderPriorityUrgent,
	}, actorID, "rest")
}

func (s *OrderService) notifyAssignment(ctx context.Context, order *model.Order) {
	if order.AssignedToID == 0 {
		return
	}
	officer, err := s.officerDAO.GetByID(ctx, order.AssignedToID)
	if err != nil {
		logger.Warn("Cannot resolve order assignee for notification",
			zap.Error(err), zap.Uint("orderID", order.ID))
		return
	}

	n := &model.Notification{
		RecipientID: officer.UserID,
		Type:        model.NotificationOrder,
		Title:       fmt.Sprintf("New Order: %s", order.Title),
		Body:        order.Description,
		Related:     model.Ref{Kind: model.RefOrder, ID: fmt.Sprint(order.ID)},
	}
	if order.IsUrgent {
		n.Type = model.NotificationUrgent
		n.Priority = 1
	}
	if err := s.notificationSvc.Notify(ctx, n); err != nil {
		logger.Warn("Failed to create order notification", zap.Error(err), zap.Uint("orderID", order.ID))
	}
}
