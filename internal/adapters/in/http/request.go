package http

import (
	"bytes"
	"encoding/json"
	"io"
	"math"

	"otcdesk/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 64 << 10

// jsonObject is a request body decoded with numbers kept verbatim.
type jsonObject map[string]any

func readObject(c echo.Context) (jsonObject, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes+1))
	if err != nil {
		return nil, NewRequestError("Invalid request body")
	}
	if len(raw) > maxBodyBytes {
		return nil, NewRequestError("Request body too large")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj jsonObject
	if err = dec.Decode(&obj); err != nil || obj == nil {
		return nil, NewRequestError("Invalid request body")
	}
	return obj, nil
}

// String returns the field when it holds a JSON string.
func (o jsonObject) String(key string) *string {
	s, isString := o[key].(string)
	if !isString {
		return nil
	}
	return &s
}

// Number returns the field when it holds a JSON number.
func (o jsonObject) Number(key string) *decimal.Decimal {
	n, isNumber := o[key].(json.Number)
	if !isNumber {
		return nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil
	}
	return &d
}

// Numeric accepts a JSON number or a string holding one.
func (o jsonObject) Numeric(key string) (decimal.Decimal, bool) {
	if d := o.Number(key); d != nil {
		return *d, true
	}
	if s := o.String(key); s != nil {
		d, err := decimal.NewFromString(*s)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// Int returns the field when it holds an integral JSON number within int
// range. The second result is false when the field is present and numeric
// but not a usable integer.
func (o jsonObject) Int(key string) (*int, bool) {
	d := o.Number(key)
	if d == nil {
		return nil, true
	}
	if !d.IsInteger() || d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return nil, false
	}
	v := int(d.IntPart())
	return &v, true
}

// parseOrderPatch keeps every value as received. A field that is null or of
// the wrong JSON type is treated as absent, and so is an empty status; an
// unrecognized status string becomes order.Unknown so that it fails
// transition legality.
func parseOrderPatch(body jsonObject) order.Patch {
	var patch order.Patch

	if s := body.String("status"); s != nil && *s != "" {
		status, err := order.ParseStatus(*s)
		if err != nil {
			status = order.Unknown
		}
		patch.Status = &status
	}
	patch.EscrowTxHash = body.String("escrow_tx_hash")
	patch.DeliveryTxHash = body.String("delivery_tx_hash")
	patch.TradeID = body.Number("trade_id")
	patch.CounterpartyID = body.Number("counterparty_id")

	return patch
}

// createOrderRequest is the mirror of an on-chain order.
type createOrderRequest struct {
	ID           int64
	CreateTxHash string
	Asset        string
	QuoteToken   string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	TotalAmount  decimal.Decimal
}

func parseCreateOrder(body jsonObject) (createOrderRequest, error) {
	id := body.Number("id")
	hash := body.String("create_tx_hash")
	asset := body.String("asset")
	quote := body.String("quote_token")
	_, hasQty := body["quantity"]
	_, hasPrice := body["price_per_unit"]
	_, hasTotal := body["total_amount"]

	if id == nil || hash == nil || *hash == "" || asset == nil || *asset == "" ||
		quote == nil || *quote == "" || !hasQty || !hasPrice || !hasTotal {
		return createOrderRequest{}, NewRequestError("Missing required fields")
	}
	if !id.IsInteger() || !id.IsPositive() || id.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return createOrderRequest{}, NewRequestError("Invalid id")
	}

	req := createOrderRequest{
		ID:           id.IntPart(),
		CreateTxHash: *hash,
		Asset:        *asset,
		QuoteToken:   *quote,
	}

	var valid bool
	if req.Quantity, valid = body.Numeric("quantity"); !valid {
		return createOrderRequest{}, NewRequestError("Invalid quantity")
	}
	if req.PricePerUnit, valid = body.Numeric("price_per_unit"); !valid {
		return createOrderRequest{}, NewRequestError("Invalid price_per_unit")
	}
	if req.TotalAmount, valid = body.Numeric("total_amount"); !valid {
		return createOrderRequest{}, NewRequestError("Invalid total_amount")
	}
	return req, nil
}
