// Package http exposes the order API over REST using the Echo framework.
package http

import (
	"errors"
	"net/http"

	"canteen/internal/core/application/usecases/commands"
	"canteen/internal/core/application/usecases/queries"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/domain/services"
	"canteen/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler

	// Query handlers
	getOrdersHandler     queries.GetOrdersQueryHandler
	getOrderHandler      queries.GetOrderQueryHandler
	getOrderBoardHandler queries.GetOrderBoardQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderBoardHandler queries.GetOrderBoardQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		getOrdersHandler:       getOrdersHandler,
		getOrderHandler:        getOrderHandler,
		getOrderBoardHandler:   getOrderBoardHandler,
	}
}

// RegisterRoutes mounts every order endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/board", s.GetOrderBoard)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
}

// CreateOrder handles POST /api/v1/orders - prices and records a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]services.LineItemRequest, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, services.LineItemRequest{
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	customer, err := order.NewCustomer(
		request.Customer.Email,
		request.Customer.DisplayName,
		request.Customer.FirstName,
		request.Customer.LastName,
		request.Customer.Phone,
	)
	if err != nil {
		return badRequest(ctx, "Invalid customer data: "+err.Error())
	}

	paymentStatus, err := order.ParsePaymentStatus(request.Payment.Status)
	if err != nil {
		return badRequest(ctx, "Invalid payment status: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		items,
		customer,
		paymentStatus,
		request.Payment.Method,
		request.Payment.TransactionID,
		request.Notes,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrders handles GET /api/v1/orders - lists orders oldest first, with an
// optional status filter and limit.
func (s *Server) GetOrders(ctx echo.Context) error {
	status := order.Unknown
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.ParseStatus(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+err.Error())
		}
		status = parsed
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
			return badRequest(ctx, "Invalid limit")
		}
	}

	query, err := queries.NewGetOrdersQuery(status, limit)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	summaries, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesToResponse(summaries))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order's full detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, detailToResponse(detail))
}

// GetOrderBoard handles GET /api/v1/orders/board - returns every order
// grouped into one bucket per status, with per-bucket counts.
func (s *Server) GetOrderBoard(ctx echo.Context) error {
	board, err := s.getOrderBoardHandler.Handle(
		ctx.Request().Context(), queries.NewGetOrderBoardQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderBoardResponse{
		Pending:   summariesToResponse(board.Pending),
		Accepted:  summariesToResponse(board.Accepted),
		Ready:     summariesToResponse(board.Ready),
		Completed: summariesToResponse(board.Completed),
		Cancelled: summariesToResponse(board.Cancelled),
		Counts: BoardCountsResponse{
			Pending:   board.Counts.Pending,
			Accepted:  board.Counts.Accepted,
			Ready:     board.Counts.Ready,
			Completed: board.Counts.Completed,
			Cancelled: board.Counts.Cancelled,
			Total:     board.Counts.Total,
		},
	})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an
// order to a new status on behalf of an actor.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request TransitionOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.ParseStatus(request.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	role, err := services.ParseRole(request.Role)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(
		orderID,
		target,
		services.NewActor(request.Actor, role),
		request.Reason,
	)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors to HTTP problem payloads.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, commands.ErrTransitionNotPermitted):
		code = http.StatusForbidden
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, errs.ErrConcurrencyConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrStoreUnavailable):
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
