package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"meterportal/internal/auth"
	"meterportal/internal/model"
	repoMocks "meterportal/internal/repository/mocks"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, email, idToken string) (*auth.TokenInfo, error) {
	args := m.Called(ctx, email, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenInfo), args.Error(1)
}

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) Issue(user model.User) (model.Session, error) {
	args := m.Called(user)
	return args.Get(0).(model.Session), args.Error(1)
}

func TestAccessService_ResolveParticipants(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		token      string
		setupMocks func(v *mockVerifier, r *repoMocks.MockGroupRepository)
		want       []model.Grant
		wantErr    error
	}{
		{
			name:  "happy path",
			email: "jane@example.com",
			token: "tok",
			setupMocks: func(v *mockVerifier, r *repoMocks.MockGroupRepository) {
				v.On("Verify", ctx, "jane@example.com", "tok").Return(&auth.TokenInfo{Email: "jane@example.com"}, nil)
				r.On("GroupsByEmail", ctx, "jane@example.com").
					Return([]string{"participant7_operator", "staff", "participant2_admin"}, nil)
			},
			want: []model.Grant{{Number: 2, Role: "admin"}, {Number: 7, Role: "operator"}},
		},
		{
			name:       "missing token",
			email:      "jane@example.com",
			setupMocks: func(v *mockVerifier, r *repoMocks.MockGroupRepository) {},
			wantErr:    auth.ErrTokenRequired,
		},
		{
			name:  "verification failure yields empty list",
			email: "jane@example.com",
			token: "tok",
			setupMocks: func(v *mockVerifier, r *repoMocks.MockGroupRepository) {
				v.On("Verify", ctx, "jane@example.com", "tok").Return(nil, auth.ErrEmailMismatch)
			},
			want: []model.Grant{},
		},
		{
			name:  "lookup failure yields empty list",
			email: "jane@example.com",
			token: "tok",
			setupMocks: func(v *mockVerifier, r *repoMocks.MockGroupRepository) {
				v.On("Verify", ctx, "jane@example.com", "tok").Return(&auth.TokenInfo{Email: "jane@example.com"}, nil)
				r.On("GroupsByEmail", ctx, "jane@example.com").Return(nil, errors.New("db down"))
			},
			want: []model.Grant{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := new(mockVerifier)
			r := new(repoMocks.MockGroupRepository)
			tt.setupMocks(v, r)
			svc := NewAccessService(v, r, new(mockIssuer), nil)

			got, err := svc.ResolveParticipants(ctx, tt.email, tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			v.AssertExpectations(t)
			r.AssertExpectations(t)
		})
	}
}

func TestAccessService_StartSession(t *testing.T) {
	ctx := context.Background()
	expires := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	t.Run("issues session", func(t *testing.T) {
		v := new(mockVerifier)
		iss := new(mockIssuer)
		v.On("Verify", ctx, "Jane@example.com", "tok").Return(&auth.TokenInfo{Email: "Jane@Example.com", Name: "Jane"}, nil)
		iss.On("Issue", model.User{Email: "jane@example.com", Name: "Jane"}).
			Return(model.Session{Token: "signed", ExpiresAt: expires}, nil)

		svc := NewAccessService(v, new(repoMocks.MockGroupRepository), iss, nil)
		s, err := svc.StartSession(ctx, "Jane@example.com", "tok")

		require.NoError(t, err)
		assert.Equal(t, "signed", s.Token)
		assert.Equal(t, expires, s.ExpiresAt)
	})

	t.Run("rejected token", func(t *testing.T) {
		v := new(mockVerifier)
		v.On("Verify", ctx, "jane@example.com", "bad").Return(nil, errors.New("tokeninfo status 400"))

		svc := NewAccessService(v, new(repoMocks.MockGroupRepository), new(mockIssuer), nil)
		_, err := svc.StartSession(ctx, "jane@example.com", "bad")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("missing parameters", func(t *testing.T) {
		v := new(mockVerifier)
		v.On("Verify", ctx, "", "").Return(nil, auth.ErrTokenRequired)

		svc := NewAccessService(v, new(repoMocks.MockGroupRepository), new(mockIssuer), nil)
		_, err := svc.StartSession(ctx, "", "")

		assert.ErrorIs(t, err, auth.ErrTokenRequired)
	})
}
