package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"otcdesk/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectFrom(t *testing.T, body string) jsonObject {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	c := echo.New().NewContext(req, httptest.NewRecorder())
	obj, err := readObject(c)
	require.NoError(t, err)
	return obj
}

func TestReadObject(t *testing.T) {
	for _, body := range []string{"", "[]", "null", "42", "{"} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		c := echo.New().NewContext(req, httptest.NewRecorder())

		_, err := readObject(c)

		var reqErr *RequestError
		assert.ErrorAs(t, err, &reqErr, body)
	}

	t.Run("too large", func(t *testing.T) {
		body := `{"pad":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		c := echo.New().NewContext(req, httptest.NewRecorder())

		_, err := readObject(c)

		require.Error(t, err)
		assert.Equal(t, "Request body too large", err.Error())
	})
}

func TestParseOrderPatch(t *testing.T) {
	t.Run("keeps values verbatim", func(t *testing.T) {
		patch := parseOrderPatch(objectFrom(t, `{
			"status": "DELIVERED",
			"delivery_tx_hash": "0xABC",
			"trade_id": 12.5,
			"counterparty_id": 9
		}`))

		require.NotNil(t, patch.Status)
		assert.Equal(t, order.Delivered, *patch.Status)
		require.NotNil(t, patch.DeliveryTxHash)
		assert.Equal(t, "0xABC", *patch.DeliveryTxHash)
		require.NotNil(t, patch.TradeID)
		assert.True(t, patch.TradeID.Equal(decimal.RequireFromString("12.5")))
		require.NotNil(t, patch.CounterpartyID)
		assert.True(t, patch.CounterpartyID.Equal(decimal.NewFromInt(9)))
		assert.Nil(t, patch.EscrowTxHash)
	})

	t.Run("unrecognized status", func(t *testing.T) {
		patch := parseOrderPatch(objectFrom(t, `{"status":"SHIPPED"}`))

		require.NotNil(t, patch.Status)
		assert.Equal(t, order.Unknown, *patch.Status)
	})

	t.Run("null and mistyped fields are absent", func(t *testing.T) {
		patch := parseOrderPatch(objectFrom(t, `{
			"status": null,
			"escrow_tx_hash": 5,
			"trade_id": "7",
			"counterparty_id": null
		}`))

		assert.Nil(t, patch.Status)
		assert.Nil(t, patch.EscrowTxHash)
		assert.Nil(t, patch.TradeID)
		assert.Nil(t, patch.CounterpartyID)
	})

	t.Run("empty status is absent", func(t *testing.T) {
		patch := parseOrderPatch(objectFrom(t, `{"status":"","escrow_tx_hash":""}`))

		assert.Nil(t, patch.Status)
		require.NotNil(t, patch.EscrowTxHash, "an empty hash is still evidence and fails its format check")
		assert.Equal(t, "", *patch.EscrowTxHash)
	})
}

func TestParseCreateOrder(t *testing.T) {
	const hash = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	t.Run("numbers and numeric strings", func(t *testing.T) {
		req, err := parseCreateOrder(objectFrom(t, `{
			"id": 42, "create_tx_hash": "`+hash+`", "asset": "WETH", "quote_token": "USDT",
			"quantity": "10.25", "price_per_unit": 3450, "total_amount": 35362.5
		}`))

		require.NoError(t, err)
		assert.Equal(t, int64(42), req.ID)
		assert.Equal(t, "WETH", req.Asset)
		assert.True(t, req.Quantity.Equal(decimal.RequireFromString("10.25")))
		assert.True(t, req.TotalAmount.Equal(decimal.RequireFromString("35362.5")))
	})

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing hash", `{"id":1,"asset":"WBTC","quote_token":"USDC","quantity":1,"price_per_unit":1,"total_amount":1}`, "Missing required fields"},
		{"empty asset", `{"id":1,"create_tx_hash":"` + hash + `","asset":"","quote_token":"USDC","quantity":1,"price_per_unit":1,"total_amount":1}`, "Missing required fields"},
		{"fractional id", `{"id":1.5,"create_tx_hash":"` + hash + `","asset":"WBTC","quote_token":"USDC","quantity":1,"price_per_unit":1,"total_amount":1}`, "Invalid id"},
		{"negative id", `{"id":-3,"create_tx_hash":"` + hash + `","asset":"WBTC","quote_token":"USDC","quantity":1,"price_per_unit":1,"total_amount":1}`, "Invalid id"},
		{"non numeric quantity", `{"id":1,"create_tx_hash":"` + hash + `","asset":"WBTC","quote_token":"USDC","quantity":"lots","price_per_unit":1,"total_amount":1}`, "Invalid quantity"},
		{"boolean total", `{"id":1,"create_tx_hash":"` + hash + `","asset":"WBTC","quote_token":"USDC","quantity":1,"price_per_unit":1,"total_amount":true}`, "Invalid total_amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCreateOrder(objectFrom(t, tc.body))

			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestJSONObjectInt(t *testing.T) {
	obj := objectFrom(t, `{"a":25,"b":2.5,"c":"25","d":99999999999}`)

	v, valid := obj.Int("a")
	require.True(t, valid)
	assert.Equal(t, 25, *v)

	_, valid = obj.Int("b")
	assert.False(t, valid)

	v, valid = obj.Int("c")
	assert.True(t, valid)
	assert.Nil(t, v)

	_, valid = obj.Int("d")
	assert.False(t, valid)

	v, valid = obj.Int("missing")
	assert.True(t, valid)
	assert.Nil(t, v)
}
