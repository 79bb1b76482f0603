package portal_test

import (
	"context"

	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, d complaint.Draft) (*models.Complaint, error) {
	args := m.Called(ctx, d)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) Track(ctx context.Context, query string) (*models.Complaint, error) {
	args := m.Called(ctx, query)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}
