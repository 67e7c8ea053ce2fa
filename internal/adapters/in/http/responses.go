package http

import (
	"time"

	"otcdesk/internal/core/application/usecases/queries"
	"otcdesk/internal/core/domain/model/fee"
	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/core/ports"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID                int64           `json:"id"`
	SellerID          int64           `json:"seller_id"`
	WalletAddress     string          `json:"wallet_address,omitempty"`
	CompanyName       *string         `json:"company_name,omitempty"`
	CounterpartyID    *int64          `json:"counterparty_id"`
	Asset             string          `json:"asset"`
	QuoteToken        string          `json:"quote_token"`
	Quantity          decimal.Decimal `json:"quantity"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	IsIndicativePrice bool            `json:"is_indicative_price"`
	Status            string          `json:"status"`
	CreateTxHash      string          `json:"create_tx_hash"`
	EscrowTxHash      *string         `json:"escrow_tx_hash"`
	DeliveryTxHash    *string         `json:"delivery_tx_hash"`
	TradeID           *int64          `json:"trade_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func orderFromView(v queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:                v.ID,
		SellerID:          v.SellerID,
		WalletAddress:     v.SellerWallet,
		CompanyName:       v.SellerCompany,
		CounterpartyID:    v.CounterpartyID,
		Asset:             v.Asset,
		QuoteToken:        v.QuoteToken,
		Quantity:          v.Quantity,
		PricePerUnit:      v.PricePerUnit,
		TotalAmount:       v.TotalAmount,
		IsIndicativePrice: v.IsIndicativePrice,
		Status:            v.Status,
		CreateTxHash:      v.CreateTxHash,
		EscrowTxHash:      v.EscrowTxHash,
		DeliveryTxHash:    v.DeliveryTxHash,
		TradeID:           v.TradeID,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

// orderFromDomain renders a freshly written order. Seller details are not
// loaded on the write path and are omitted.
func orderFromDomain(o *order.Order) OrderResponse {
	s := o.Snapshot()
	resp := OrderResponse{
		ID:                s.ID,
		SellerID:          s.SellerID,
		CounterpartyID:    s.CounterpartyID,
		Asset:             s.Terms.Asset.String(),
		QuoteToken:        s.Terms.QuoteToken.String(),
		Quantity:          s.Terms.Quantity,
		PricePerUnit:      s.Terms.PricePerUnit,
		TotalAmount:       s.Terms.TotalAmount,
		IsIndicativePrice: s.IsIndicativePrice,
		Status:            s.Status.String(),
		CreateTxHash:      s.CreateTxHash.String(),
		TradeID:           s.TradeID,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.EscrowTxHash != nil {
		h := s.EscrowTxHash.String()
		resp.EscrowTxHash = &h
	}
	if s.DeliveryTxHash != nil {
		h := s.DeliveryTxHash.String()
		resp.DeliveryTxHash = &h
	}
	return resp
}

type OrderEventResponse struct {
	ID        string    `json:"id"`
	OrderID   int64     `json:"order_id"`
	EventType string    `json:"event_type"`
	TxHash    *string   `json:"tx_hash"`
	TradeID   *int64    `json:"trade_id"`
	ActorID   int64     `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

type UserResponse struct {
	ID            int64     `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Role          string    `json:"role"`
	KYCTier       string    `json:"kyc_tier"`
	KYCStatus     string    `json:"kyc_status"`
	CompanyName   *string   `json:"company_name"`
	CreatedAt     time.Time `json:"created_at"`
}

func userFromView(v queries.UserView) UserResponse {
	return UserResponse{
		ID:            v.ID,
		WalletAddress: v.WalletAddress,
		Role:          v.Role,
		KYCTier:       v.KYCTier,
		KYCStatus:     v.KYCStatus,
		CompanyName:   v.CompanyName,
		CreatedAt:     v.CreatedAt,
	}
}

func userFromDomain(u *user.User) UserResponse {
	return UserResponse{
		ID:            u.ID(),
		WalletAddress: u.WalletAddress().String(),
		Role:          u.Role().String(),
		KYCTier:       string(u.KYCTier()),
		KYCStatus:     string(u.KYCStatus()),
		CompanyName:   u.CompanyName(),
		CreatedAt:     u.CreatedAt(),
	}
}

type ConnectResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type FeeConfigResponse struct {
	Asset     string    `json:"asset"`
	FeeBps    int       `json:"fee_bps"`
	SpreadBps int       `json:"spread_bps"`
	UpdatedAt time.Time `json:"updated_at"`
}

func feeFromView(v queries.FeeConfigView) FeeConfigResponse {
	return FeeConfigResponse{Asset: v.Asset, FeeBps: v.FeeBps, SpreadBps: v.SpreadBps, UpdatedAt: v.UpdatedAt}
}

func feeFromDomain(c *fee.Config) FeeConfigResponse {
	return FeeConfigResponse{
		Asset:     c.Asset().String(),
		FeeBps:    c.FeeBps(),
		SpreadBps: c.SpreadBps(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// PriceResponse keeps the ticker shape clients already consume; the market
// fields are not sourced and are always zero.
type PriceResponse struct {
	Symbol      string    `json:"symbol"`
	Price       float64   `json:"price"`
	Change24h   float64   `json:"change_24h"`
	Volume24h   float64   `json:"volume_24h"`
	MarketCap   float64   `json:"market_cap"`
	LastUpdated time.Time `json:"last_updated"`
	Fallback    bool      `json:"fallback"`
}

func priceFromPort(p ports.Price) PriceResponse {
	return PriceResponse{
		Symbol:      p.Asset.String(),
		Price:       p.USD.InexactFloat64(),
		LastUpdated: p.UpdatedAt,
		Fallback:    p.Fallback,
	}
}
