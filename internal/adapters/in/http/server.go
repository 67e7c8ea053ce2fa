package http

import (
	"context"
	"net/http"
	"strings"

	"otcdesk/internal/core/application/usecases/commands"
	"otcdesk/internal/core/application/usecases/queries"
	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

type (
	ConnectWalletHandler interface {
		Handle(ctx context.Context, command commands.ConnectWalletCommand) (*user.User, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, command commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, command commands.UpdateOrderCommand) (*order.Order, error)
	}
	UpdateUserHandler interface {
		Handle(ctx context.Context, command commands.UpdateUserCommand) (*user.User, error)
	}
	UpdateFeeConfigHandler interface {
		Handle(ctx context.Context, command commands.UpdateFeeConfigCommand) (*fee.Config, error)
	}
	GetUserHandler interface {
		Handle(ctx context.Context, query queries.GetUserQuery) (queries.UserView, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
	ListOrderEventsHandler interface {
		Handle(ctx context.Context, query queries.ListOrderEventsQuery) ([]queries.OrderEventView, error)
	}
	ListUsersHandler interface {
		Handle(ctx context.Context, query queries.ListUsersQuery) ([]queries.UserView, error)
	}
	GetFeeConfigsHandler interface {
		Handle(ctx context.Context, query queries.GetFeeConfigsQuery) ([]queries.FeeConfigView, error)
	}
	GetPricesHandler interface {
		Handle(ctx context.Context, query queries.GetPricesQuery) ([]ports.Price, error)
	}
)

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	ConnectWallet   ConnectWalletHandler
	CreateOrder     CreateOrderHandler
	UpdateOrder     UpdateOrderHandler
	UpdateUser      UpdateUserHandler
	UpdateFeeConfig UpdateFeeConfigHandler

	GetUser         GetUserHandler
	GetOrder        GetOrderHandler
	ListOrders      ListOrdersHandler
	ListOrderEvents ListOrderEventsHandler
	ListUsers       ListUsersHandler
	GetFeeConfigs   GetFeeConfigsHandler
	GetPrices       GetPricesHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers     Handlers
	sessions     *SessionManager
	secureCookie bool
	logger       *zap.Logger
}

// NewServer builds the server. secureCookie marks the session cookie Secure
// and should be set whenever the service is reached over TLS.
func NewServer(handlers Handlers, sessions *SessionManager, secureCookie bool, logger *zap.Logger) *Server {
	return &Server{
		handlers:     handlers,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger.With(zap.String("component", "http")),
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// Connect handles POST /api/auth/connect: signs the wallet in, registering it
// on first use, and sets the session cookie.
func (s *Server) Connect(c echo.Context) error {
	body, err := readObject(c)
	if err != nil {
		return err
	}
	wallet := body.String("wallet_address")
	if wallet == nil {
		return NewRequestError("Invalid wallet address")
	}

	cmd, err := commands.NewConnectWalletCommand(*wallet)
	if err != nil {
		return NewRequestError("Invalid wallet address")
	}
	u, err := s.handlers.ConnectWallet.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	token, err := s.sessions.Issue(u.ID(), u.WalletAddress().String(), u.Role().String())
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	return ok(c, ConnectResponse{User: userFromDomain(u), Token: token})
}

// Me handles GET /api/auth/me.
func (s *Server) Me(c echo.Context) error {
	return ok(c, userFromView(currentUser(c)))
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var params struct {
		Status     *[]string
		Asset      *string
		QuoteToken *string
		Mine       *bool
	}
	if err := bindQuery(c, "status", &params.Status); err != nil {
		return err
	}
	if err := bindQuery(c, "asset", &params.Asset); err != nil {
		return err
	}
	if err := bindQuery(c, "quote_token", &params.QuoteToken); err != nil {
		return err
	}
	if err := bindQuery(c, "mine", &params.Mine); err != nil {
		return err
	}

	filter := queries.ListOrdersFilter{
		Statuses:   splitList(params.Status),
		Asset:      deref(params.Asset),
		QuoteToken: deref(params.QuoteToken),
	}
	if params.Mine != nil && *params.Mine {
		filter.SellerID = currentUser(c).ID
	}
	return s.listOrders(c, filter, queries.TraderListLimit)
}

// AdminListOrders handles GET /api/admin/orders.
func (s *Server) AdminListOrders(c echo.Context) error {
	var status *[]string
	var asset *string
	if err := bindQuery(c, "status", &status); err != nil {
		return err
	}
	if err := bindQuery(c, "asset", &asset); err != nil {
		return err
	}
	filter := queries.ListOrdersFilter{Statuses: splitList(status), Asset: deref(asset)}
	return s.listOrders(c, filter, queries.AdminListLimit)
}

func (s *Server) listOrders(c echo.Context, filter queries.ListOrdersFilter, limit int) error {
	query, err := queries.NewListOrdersQuery(filter, limit)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]OrderResponse, len(views))
	for i, v := range views {
		resp[i] = orderFromView(v)
	}
	return ok(c, resp)
}

// CreateOrder handles POST /api/orders: mirrors an on-chain order.
func (s *Server) CreateOrder(c echo.Context) error {
	me := currentUser(c)
	if me.KYCStatus != string(user.KYCApproved) {
		return commands.ErrKYCNotApproved
	}

	body, err := readObject(c)
	if err != nil {
		return err
	}
	req, err := parseCreateOrder(body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.ID, callerOf(me), req.CreateTxHash, req.Asset, req.QuoteToken,
		req.Quantity, req.PricePerUnit, req.TotalAmount,
	)
	if err != nil {
		return err
	}
	result, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	env := Envelope{Success: true, Data: orderFromDomain(result.Order)}
	if result.AlreadyMirrored {
		env.Message = "Order already mirrored"
	}
	return c.JSON(http.StatusOK, env)
}

// GetOrder handles GET /api/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, orderFromView(view))
}

// UpdateOrder handles PATCH /api/orders/{id}. Every decision is made by the
// order transition authority behind the command handler.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	body, err := readObject(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(id, callerOf(currentUser(c)), parseOrderPatch(body))
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(c, orderFromDomain(updated))
}

// ListOrderEvents handles GET /api/orders/{id}/events.
func (s *Server) ListOrderEvents(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListOrderEventsQuery(id)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListOrderEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]OrderEventResponse, len(views))
	for i, v := range views {
		resp[i] = OrderEventResponse{
			ID:        v.ID.String(),
			OrderID:   v.OrderID,
			EventType: v.EventType,
			TxHash:    v.TxHash,
			TradeID:   v.TradeID,
			ActorID:   v.ActorID,
			CreatedAt: v.CreatedAt,
		}
	}
	return ok(c, resp)
}

// Prices handles GET /api/prices.
func (s *Server) Prices(c echo.Context) error {
	prices, err := s.handlers.GetPrices.Handle(c.Request().Context(), queries.NewGetPricesQuery())
	if err != nil {
		return err
	}

	resp := make([]PriceResponse, len(prices))
	for i, p := range prices {
		resp[i] = priceFromPort(p)
	}
	return ok(c, resp)
}

// ListUsers handles GET /api/admin/users.
func (s *Server) ListUsers(c echo.Context) error {
	var role, kycStatus *string
	if err := bindQuery(c, "role", &role); err != nil {
		return err
	}
	if err := bindQuery(c, "kyc_status", &kycStatus); err != nil {
		return err
	}

	views, err := s.handlers.ListUsers.Handle(c.Request().Context(),
		queries.NewListUsersQuery(deref(role), deref(kycStatus)))
	if err != nil {
		return err
	}

	resp := make([]UserResponse, len(views))
	for i, v := range views {
		resp[i] = userFromView(v)
	}
	return ok(c, resp)
}

// UpdateUser handles PATCH /api/admin/users/{id}.
func (s *Server) UpdateUser(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	body, err := readObject(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateUserCommand(id,
		body.String("kyc_tier"), body.String("kyc_status"), body.String("role"))
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(c, userFromDomain(updated))
}

// ListFees handles GET /api/admin/fees.
func (s *Server) ListFees(c echo.Context) error {
	return s.respondFees(c)
}

// UpdateFee handles PATCH /api/admin/fees and answers with the full list.
func (s *Server) UpdateFee(c echo.Context) error {
	body, err := readObject(c)
	if err != nil {
		return err
	}
	asset := body.String("asset")
	if asset == nil {
		return NewRequestError("Invalid asset")
	}
	feeBps, valid := body.Int("fee_bps")
	if !valid {
		return NewRequestError("Invalid fee_bps")
	}
	spreadBps, valid := body.Int("spread_bps")
	if !valid {
		return NewRequestError("Invalid spread_bps")
	}

	cmd, err := commands.NewUpdateFeeConfigCommand(*asset, feeBps, spreadBps)
	if err != nil {
		return err
	}
	if _, err = s.handlers.UpdateFeeConfig.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondFees(c)
}

func (s *Server) respondFees(c echo.Context) error {
	views, err := s.handlers.GetFeeConfigs.Handle(c.Request().Context(), queries.NewGetFeeConfigsQuery())
	if err != nil {
		return err
	}

	resp := make([]FeeConfigResponse, len(views))
	for i, v := range views {
		resp[i] = feeFromView(v)
	}
	return ok(c, resp)
}

func bindID(c echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, NewRequestError("Invalid format for parameter id")
	}
	return id, nil
}

func bindQuery(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return NewRequestError("Invalid format for parameter %s", name)
	}
	return nil
}

// splitList accepts both repeated parameters and comma separated values.
func splitList(values *[]string) []string {
	if values == nil {
		return nil
	}
	var out []string
	for _, v := range *values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
