package backend

import (
	"context"

	"event-ticketing-frontend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockService is a testify mock of Service for tests
type MockService struct {
	mock.Mock
}

func (m *MockService) ListEvents(ctx context.Context, filters models.EventFilters) ([]models.Event, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Event), args.Int(1), args.Error(2)
}

func (m *MockService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockService) GetSeatingMap(ctx context.Context, eventID string) (*models.SeatingMap, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SeatingMap), args.Error(1)
}

func (m *MockService) CreateOrder(ctx context.Context, token string, req models.OrderCreateRequest) (*models.Order, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockService) ListMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockService) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	args := m.Called(ctx, token, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockService) CreatePaymentIntent(ctx context.Context, token string, req models.PaymentCreateRequest) (*models.Payment, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockService) GetPaymentStatus(ctx context.Context, token, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, token, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockService) ConfirmPayment(ctx context.Context, token, paymentID, externalPaymentID string) (*models.Payment, error) {
	args := m.Called(ctx, token, paymentID, externalPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockService) ValidateTicket(ctx context.Context, token, qrHash string) (*models.TicketValidation, error) {
	args := m.Called(ctx, token, qrHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketValidation), args.Error(1)
}
