package client

import (
	"context"

	"braintree-gateway/internal/config"
	"braintree-gateway/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// breakerClient fails fast while Braintree is unreachable. It never retries;
// only transport errors count as failures, a declined sale is a success here.
type breakerClient struct {
	next BraintreeClient
	cb   *gobreaker.CircuitBreaker[any]
}

func CreateCircuitBreaker(name string, cfg config.Breaker) *gobreaker.CircuitBreaker[any] {
	var st gobreaker.Settings
	st.Name = name
	st.MaxRequests = cfg.MaxRequests
	st.Interval = cfg.Interval
	st.Timeout = cfg.Timeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
	}

	return gobreaker.NewCircuitBreaker[any](st)
}

// NewBreakerClient wraps next with a circuit breaker. A disabled breaker
// returns next unchanged.
func NewBreakerClient(next BraintreeClient, cfg config.Breaker) BraintreeClient {
	if !cfg.Enabled {
		return next
	}
	return &breakerClient{
		next: next,
		cb:   CreateCircuitBreaker("braintree", cfg),
	}
}

func (c *breakerClient) GenerateClientToken(ctx context.Context) (string, error) {
	res, err := c.cb.Execute(func() (any, error) {
		return c.next.GenerateClientToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (c *breakerClient) Sale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error) {
	res, err := c.cb.Execute(func() (any, error) {
		return c.next.Sale(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*model.SaleResult), nil
}

func (c *breakerClient) FindTransaction(ctx context.Context, transactionID string) (*model.Transaction, error) {
	res, err := c.cb.Execute(func() (any, error) {
		return c.next.FindTransaction(ctx, transactionID)
	})
	if err != nil {
		return nil, err
	}
	return res.(*model.Transaction), nil
}

func (c *breakerClient) SubmitForSettlement(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.Transaction, error) {
	res, err := c.cb.Execute(func() (any, error) {
		return c.next.SubmitForSettlement(ctx, transactionID, amount)
	})
	if err != nil {
		return nil, err
	}
	return res.(*model.Transaction), nil
}
