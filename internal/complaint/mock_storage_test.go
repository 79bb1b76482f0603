package complaint_test

import (
	"context"

	"complaintportal/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStore) Append(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}
