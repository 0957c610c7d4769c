// Package http exposes the order lifecycle over a JSON HTTP API built on echo.
package http

import (
	"context"
	"net/http"
	"strconv"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type (
	// CommandHandler runs one order transition.
	CommandHandler[C any] interface {
		Handle(ctx context.Context, cmd C) (*order.Order, error)
	}

	// QueryHandler answers one read.
	QueryHandler[Q any, R any] interface {
		Handle(ctx context.Context, query Q) (R, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateOrder    CommandHandler[commands.CreateOrderCommand]
	UpdateOrder    CommandHandler[commands.UpdateOrderCommand]
	CancelOrder    CommandHandler[commands.CancelOrderCommand]
	AssignAgent    CommandHandler[commands.AssignAgentCommand]
	VerifyDelivery CommandHandler[commands.VerifyDeliveryCommand]

	GetOrder            QueryHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	ListCustomerOrders  QueryHandler[queries.ListCustomerOrdersQuery, []queries.OrderSummary]
	ListAvailableAgents QueryHandler[queries.ListAvailableAgentsQuery, []queries.AgentView]
}

// Server implements the order API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts the API under /api/v1 behind the auth middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	api := e.Group("/api/v1", auth)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id", s.UpdateOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/assign", s.AssignAgent)
	api.POST("/orders/:id/verify", s.VerifyDelivery)

	api.GET("/agents/available", s.ListAvailableAgents)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	lines, err := toLineInputs(req.Lines)
	if err != nil {
		return err
	}
	expectedTotal, err := parseOptionalMoney(req.ExpectedTotal)
	if err != nil {
		return err
	}
	paymentMode, err := order.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(caller, lines, paymentMode, expectedTotal)
	if err != nil {
		return err
	}
	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newOrderResponse(o, true))
}

// ListOrders handles GET /api/v1/orders?limit=&offset=.
func (s *Server) ListOrders(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}
	offset, err := intParam(c, "offset")
	if err != nil {
		return err
	}

	query, err := queries.NewListCustomerOrdersQuery(caller, limit, offset)
	if err != nil {
		return err
	}
	summaries, err := s.handlers.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]OrderResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = newOrderSummaryResponse(summary, caller.ID)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(caller, orderID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderViewResponse(view))
}

// UpdateOrder handles PUT /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	var req updateOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	lines, err := toLineInputs(req.Lines)
	if err != nil {
		return err
	}
	expectedTotal, err := parseOptionalMoney(req.ExpectedTotal)
	if err != nil {
		return err
	}
	var paymentMode *order.PaymentMode
	if req.PaymentMode != nil {
		mode, err := order.ParsePaymentMode(*req.PaymentMode)
		if err != nil {
			return err
		}
		paymentMode = &mode
	}

	cmd, err := commands.NewUpdateOrderCommand(caller, orderID, lines, paymentMode, expectedTotal)
	if err != nil {
		return err
	}
	o, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o, true))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	var req cancelOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(caller, orderID, req.Reason)
	if err != nil {
		return err
	}
	o, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o, false))
}

// AssignAgent handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignAgent(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	var req assignAgentRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAssignAgentCommand(caller, orderID, kernel.ID(req.AgentID))
	if err != nil {
		return err
	}
	o, err := s.handlers.AssignAgent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o, false))
}

// VerifyDelivery handles POST /api/v1/orders/:id/verify.
func (s *Server) VerifyDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	orderID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	var req verifyDeliveryRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewVerifyDeliveryCommand(caller, orderID, req.Code)
	if err != nil {
		return err
	}
	o, err := s.handlers.VerifyDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o, false))
}

// ListAvailableAgents handles GET /api/v1/agents/available.
func (s *Server) ListAvailableAgents(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	agents, err := s.handlers.ListAvailableAgents.Handle(c.Request().Context(), queries.NewListAvailableAgentsQuery(caller))
	if err != nil {
		return err
	}

	response := make([]AgentResponse, len(agents))
	for i, a := range agents {
		response[i] = AgentResponse{ID: a.ID.Int64(), Email: a.Email, FirstName: a.FirstName}
	}
	return c.JSON(http.StatusOK, response)
}

func bindAndValidate(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(dest)
}

// intParam reads an optional integer query parameter; absent means 0.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
