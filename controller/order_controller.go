// api/controller/order_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/middleware"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

type OrderController struct {
	orderService service.IOrderService
}

func NewOrderController(orderService service.IOrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// RegisterRoutes registers the API routes. Order CRUD writes are reserved
// for commanders; acknowledging stays open to the assigned officer.
func (oc *OrderController) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.POST("", middleware.CommanderOnly(), oc.CreateOrder)
		orders.GET("", oc.ListOrders)
		orders.GET("/urgent", oc.UrgentOrders)
		orders.GET("/:id", oc.GetOrder)
		orders.PUT("/:id", middleware.CommanderOnly(), oc.UpdateOrder)
		orders.DELETE("/:id", middleware.CommanderOnly(), oc.DeleteOrder)
		orders.POST("/:id/acknowledge", oc.Acknowledge)
		orders.POST("/:id/mark_urgent", oc.MarkUrgent)
	}
}

// CreateOrder endpoint
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var order model.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order data", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	order.CreatedByID = actorID

	created, err := oc.orderService.Create(c, &order, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrInvalidOrderData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid order data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create order", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListOrders endpoint. Non-commanders only ever see orders assigned to
// their own officer profile.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	filter := dao.OrderFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("is_urgent"); raw != "" {
		urgent := raw == "true"
		filter.IsUrgent = &urgent
	}
	if !util.IsCommanderFromContext(c) {
		filter.AssignedToUserID = userID
	}

	orders, err := oc.orderService.List(c, filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list orders", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UrgentOrders endpoint
func (oc *OrderController) UrgentOrders(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	orders, err := oc.orderService.Urgent(c, userID, util.IsCommanderFromContext(c))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list urgent orders", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder endpoint
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order id", err)
		return
	}

	order, err := oc.orderService.Get(c, id)
	if err != nil {
		if err == api_errors.ErrOrderNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get order", err)
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder endpoint
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order id", err)
		return
	}
	var order model.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order data", err)
		return
	}
	order.ID = id
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := oc.orderService.Update(c, &order, actorID)
	if err != nil {
		switch err {
		case api_errors.ErrOrderNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		case api_errors.ErrInvalidOrderData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid order data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update order", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteOrder endpoint
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order id", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := oc.orderService.Delete(c, id, actorID); err != nil {
		if err == api_errors.ErrOrderNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Acknowledge endpoint
func (oc *OrderController) Acknowledge(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order id", err)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	var req service.AcknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid acknowledgment data", err)
		return
	}

	order, err := oc.orderService.Acknowledge(c, id, userID, req)
	if err != nil {
		switch err {
		case api_errors.ErrOrderNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		case api_errors.ErrAckNotRequired:
			util.RespondWithError(c, http.StatusBadRequest, "Order does not require acknowledgment", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to acknowledge order", err)
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// MarkUrgent endpoint
func (oc *OrderController) MarkUrgent(c *gin.Context) {
	id, err := util.ParseUintParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order id", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	order, err := oc.orderService.MarkUrgent(c, id, actorID, util.IsCommanderFromContext(c))
	if err != nil {
		switch err {
		case api_errors.ErrCommanderOnly:
			util.RespondWithError(c, http.StatusForbidden, "Commander role required", err)
		case api_errors.ErrOrderNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to mark order urgent", err)
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
