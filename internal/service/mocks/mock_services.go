package mocks

import (
	"context"
	"io"

	"meterportal/internal/model"
	"meterportal/internal/service"
	"meterportal/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockAccessService struct {
	mock.Mock
}

var _ service.AccessService = (*MockAccessService)(nil)

func (m *MockAccessService) ResolveParticipants(ctx context.Context, email, idToken string) ([]model.Grant, error) {
	args := m.Called(ctx, email, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Grant), args.Error(1)
}

func (m *MockAccessService) Grants(ctx context.Context, user model.User) ([]model.Grant, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Grant), args.Error(1)
}

func (m *MockAccessService) StartSession(ctx context.Context, email, idToken string) (*model.Session, error) {
	args := m.Called(ctx, email, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

type MockPortalService struct {
	mock.Mock
}

var _ service.PortalService = (*MockPortalService)(nil)

func (m *MockPortalService) Build(ctx context.Context, user model.User) (*model.Portal, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Portal), args.Error(1)
}

func (m *MockPortalService) Participant(ctx context.Context, user model.User, env string, number int) (*model.Participant, error) {
	args := m.Called(ctx, user, env, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

var _ service.DashboardService = (*MockDashboardService)(nil)

func (m *MockDashboardService) List(ctx context.Context, user model.User) ([]model.Dashboard, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Dashboard), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

var _ service.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) Upload(ctx context.Context, user model.User, env string, number int, path string, files []service.UploadFile) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx, user, env, number, path, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ObjectInfo), args.Error(1)
}

func (m *MockUploadService) Download(ctx context.Context, user model.User, env string, number int, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, user, env, number, key)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockUploadService) PresignDownload(ctx context.Context, user model.User, env string, number int, key string) (string, error) {
	args := m.Called(ctx, user, env, number, key)
	return args.String(0), args.Error(1)
}
