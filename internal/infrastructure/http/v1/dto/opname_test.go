package dto

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
)

func bindReconcile(t *testing.T, body string) (ReconcileRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/opname",
		bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req ReconcileRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestReconcileRequest_NegativeCountBinds(t *testing.T) {
	productID := id.New()

	req, err := bindReconcile(t,
		`{"productId":"`+productID.String()+`","qtyAfter":-5,"reason":"count"}`)
	require.NoError(t, err)

	input, err := req.ToInput()
	require.NoError(t, err)
	assert.Equal(t, int64(-5), input.QtyAfter)
	assert.Equal(t, productID, input.ProductID)
}

func TestReconcileRequest_ZeroCountBinds(t *testing.T) {
	req, err := bindReconcile(t,
		`{"productId":"`+id.New().String()+`","qtyAfter":0,"reason":"empty shelf"}`)
	require.NoError(t, err)
	assert.Zero(t, req.QtyAfter)
}

func TestReconcileRequest_MissingReasonRejected(t *testing.T) {
	_, err := bindReconcile(t,
		`{"productId":"`+id.New().String()+`","qtyAfter":10}`)
	require.Error(t, err)
}

func TestReconcileRequest_BadProductIDRejected(t *testing.T) {
	req, err := bindReconcile(t,
		`{"productId":"not-an-id","qtyAfter":3,"reason":"count"}`)
	require.NoError(t, err)

	_, err = req.ToInput()
	require.Error(t, err)
}
