package test

import (
	"context"

	"github.com/wambui/florax/internal/adapter/pesapal"
)

// GatewayStub simulates the payment gateway for tests.
type GatewayStub struct {
	CreateFn func(context.Context, pesapal.PaymentRequest) (*pesapal.PaymentPage, error)
	VerifyFn func(context.Context, string) (*pesapal.PaymentStatus, error)

	Created  []pesapal.PaymentRequest
	Verified []string
}

// CreatePaymentPage records the request and returns a configured or
// synthetic checkout page.
func (s *GatewayStub) CreatePaymentPage(ctx context.Context, req pesapal.PaymentRequest) (*pesapal.PaymentPage, error) {
	s.Created = append(s.Created, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &pesapal.PaymentPage{IframeURL: "https://gateway.example/pay", Reference: "ORD_1_1"}, nil
}

// VerifyPayment records the reference and returns a configured or
// completed status.
func (s *GatewayStub) VerifyPayment(ctx context.Context, reference string) (*pesapal.PaymentStatus, error) {
	s.Verified = append(s.Verified, reference)
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference)
	}
	return &pesapal.PaymentStatus{Status: "completed", Reference: reference, Currency: "KES"}, nil
}

var _ pesapal.Client = (*GatewayStub)(nil)
