package dto

// InitializePaymentRequest starts a gateway checkout for an order.
type InitializePaymentRequest struct {
	OrderID int64 `json:"order_id"`
}

// InitializePaymentResponse hands the buyer the hosted checkout page.
type InitializePaymentResponse struct {
	IframeURL string `json:"iframe_url"`
	Reference string `json:"reference"`
	OrderID   int64  `json:"order_id"`
}

// VerifyPaymentRequest asks the gateway for a transaction's state.
type VerifyPaymentRequest struct {
	OrderID     int64  `json:"order_id"`
	ReferenceID string `json:"reference_id"`
}

// VerifyPaymentResponse reports the applied payment state.
type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	OrderID int64  `json:"order_id"`
}

// CallbackRequest is the gateway's server-to-server notification. The
// gateway may post JSON or form data; field names follow its vocabulary.
type CallbackRequest struct {
	TrackingID        string `json:"pesapal_transaction_tracking_id" form:"pesapal_transaction_tracking_id"`
	MerchantReference string `json:"pesapal_merchant_reference" form:"pesapal_merchant_reference"`
	Status            string `json:"pesapal_status" form:"pesapal_status"`
}

// CallbackResponse acknowledges a processed callback.
type CallbackResponse struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// PaymentStatusResponse is the buyer's payment polling view.
type PaymentStatusResponse struct {
	OrderID          int64   `json:"order_id"`
	Paid             bool    `json:"paid"`
	Status           string  `json:"status"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	PaymentReference string  `json:"payment_reference,omitempty"`
	TotalPrice       float64 `json:"total_price"`
}
