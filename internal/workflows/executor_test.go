package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/mocks"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/store/schema"
	"github.com/chainpass/ticketing/internal/workflows"
)

type testExecutorMocks struct {
	store    *mocks.MockStore
	mailer   *mocks.MockMailer
	executor workflows.Executor
}

func setupTestExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)

	tm := &testExecutorMocks{
		store:  mocks.NewMockStore(ctrl),
		mailer: mocks.NewMockMailer(ctrl),
	}
	tm.executor = workflows.NewExecutor(tm.store, tm.mailer)

	return tm
}

func TestLoadTicketRecipient(t *testing.T) {
	assetID := uint64(42)

	tests := []struct {
		name    string
		request *store.RegistrationRequestWithEmail
		want    *workflows.TicketRecipient
	}{
		{
			name: "approved with email",
			request: &store.RegistrationRequestWithEmail{
				RegistrationRequest: schema.RegistrationRequest{
					RequestID:     1,
					WalletAddress: "ADDR1",
					Status:        domain.RequestStatusApproved,
					AssetID:       &assetID,
				},
				Email: "ada@example.com",
			},
			want: &workflows.TicketRecipient{Email: "ada@example.com", WalletAddress: "ADDR1", AssetID: 42},
		},
		{
			name: "pending",
			request: &store.RegistrationRequestWithEmail{
				RegistrationRequest: schema.RegistrationRequest{RequestID: 1, Status: domain.RequestStatusPending},
				Email:               "ada@example.com",
			},
		},
		{
			name: "approved without email",
			request: &store.RegistrationRequestWithEmail{
				RegistrationRequest: schema.RegistrationRequest{RequestID: 1, Status: domain.RequestStatusApproved},
			},
		},
		{
			name: "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestExecutor(t)
			ctx := context.Background()

			tm.store.EXPECT().GetRegistrationRequest(ctx, uint64(1)).Return(tt.request, nil)

			got, err := tm.executor.LoadTicketRecipient(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSendTicketEmail_ErrorClassification(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()
	req := notification.TicketEmailRequest{RequestID: 1}

	tm.mailer.EXPECT().SendTicketEmail(ctx, req).Return("", domain.ErrConfiguration)
	_, err := tm.executor.SendTicketEmail(ctx, req)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.NonRetryable())

	tm.mailer.EXPECT().SendTicketEmail(ctx, req).Return("", errors.New("503 from provider"))
	_, err = tm.executor.SendTicketEmail(ctx, req)
	require.Error(t, err)
	assert.False(t, errors.As(err, &appErr))

	tm.mailer.EXPECT().SendTicketEmail(ctx, req).Return("msg_1", nil)
	id, err := tm.executor.SendTicketEmail(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "msg_1", id)
}
