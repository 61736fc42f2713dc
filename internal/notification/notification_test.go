package notification_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	temporalmocks "go.temporal.io/sdk/mocks"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/mocks"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/ticket"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestComposeTicketEmail(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	email, err := notification.ComposeTicketEmail("Tickets <t@chainpass.app>", "ada@example.com", notification.TicketEmailData{
		EventName:     "Demo <Con>",
		EventID:       "7",
		WalletAddress: "ADDR1",
		AssetID:       42,
		Location:      "Hall A",
	}, png)
	require.NoError(t, err)

	assert.Equal(t, "Your Ticket for Demo <Con> is Confirmed!", email.Subject)
	assert.Equal(t, []string{"ada@example.com"}, email.To)
	assert.Contains(t, email.HTML, `src="cid:qrcode"`)
	assert.Contains(t, email.HTML, "Demo &lt;Con&gt;")
	assert.Contains(t, email.HTML, "Hall A")
	assert.NotContains(t, email.HTML, "When:")

	require.Len(t, email.Attachments, 1)
	assert.Equal(t, "ticket-qr.png", email.Attachments[0].Filename)
	assert.Equal(t, "qrcode", email.Attachments[0].ContentID)
	assert.Equal(t, base64.StdEncoding.EncodeToString(png), email.Attachments[0].Content)

	_, err = notification.ComposeTicketEmail("from", " ", notification.TicketEmailData{}, png)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = notification.ComposeTicketEmail("from", "ada@example.com", notification.TicketEmailData{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestComposeCustomEmail(t *testing.T) {
	email, err := notification.ComposeCustomEmail("from", []string{"a@example.com"}, "Doors open at 6", "<p>See you</p>")
	require.NoError(t, err)
	assert.Equal(t, "Doors open at 6", email.Subject)

	_, err = notification.ComposeCustomEmail("from", nil, "s", "h")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = notification.ComposeCustomEmail("from", []string{"a@example.com"}, "", "h")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResendSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	ctx := context.Background()

	_, err := notification.NewResendSender(httpClient, notification.ResendConfig{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	sender, err := notification.NewResendSender(httpClient, notification.ResendConfig{
		APIURL:     "https://resend.test/",
		APIKey:     "re_123",
		AudienceID: "aud/1",
	})
	require.NoError(t, err)

	headers := map[string]string{"Authorization": "Bearer re_123"}

	httpClient.EXPECT().
		PostJSON(ctx, "https://resend.test/emails", headers, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, body []byte) ([]byte, error) {
			var sent map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &sent))
			assert.Equal(t, "hello", sent["subject"])
			return []byte(`{"id":"msg_1"}`), nil
		})

	id, err := sender.Send(ctx, notification.Email{From: "f", To: []string{"a@example.com"}, Subject: "hello", HTML: "<p/>"})
	require.NoError(t, err)
	assert.Equal(t, "msg_1", id)

	httpClient.EXPECT().
		PostJSON(ctx, "https://resend.test/audiences/aud%2F1/contacts", headers, gomock.Any()).
		Return([]byte(`{"id":"c_1"}`), nil)
	require.NoError(t, sender.AddContact(ctx, "a@example.com"))

	httpClient.EXPECT().PostJSON(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("503"))
	_, err = sender.Send(ctx, notification.Email{})
	assert.Error(t, err)
}

func TestResendSender_NoAudience(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	sender, err := notification.NewResendSender(httpClient, notification.ResendConfig{APIKey: "re_123"})
	require.NoError(t, err)

	// no HTTP call expected
	assert.NoError(t, sender.AddContact(context.Background(), "a@example.com"))
}

func TestUnavailableSender(t *testing.T) {
	sender := notification.NewUnavailableSender(nil)

	_, err := sender.Send(context.Background(), notification.Email{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, sender.AddContact(context.Background(), "a@example.com"), domain.ErrConfiguration)
}

type testMailerMocks struct {
	signer *mocks.MockTicketSigner
	codec  *mocks.MockQRCodec
	sender *mocks.MockEmailSender
	clock  *mocks.MockClock
	mailer notification.Mailer
}

func setupTestMailer(t *testing.T) *testMailerMocks {
	ctrl := gomock.NewController(t)

	tm := &testMailerMocks{
		signer: mocks.NewMockTicketSigner(ctrl),
		codec:  mocks.NewMockQRCodec(ctrl),
		sender: mocks.NewMockEmailSender(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()
	tm.mailer = notification.NewMailer(tm.signer, tm.codec, tm.sender, tm.clock, notification.MailerConfig{
		FromAddress: "Tickets <t@chainpass.app>",
	})

	return tm
}

func TestMailer_SendTicketEmail(t *testing.T) {
	tm := setupTestMailer(t)
	ctx := context.Background()

	req := notification.TicketEmailRequest{
		RequestID:     3,
		EventID:       7,
		EventName:     "Demo Con",
		StartTime:     time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
		WalletAddress: "ADDR1",
		Email:         "ada@example.com",
		AssetID:       42,
	}
	want := ticket.Payload{
		AssetID:     42,
		UserAddress: "ADDR1",
		EventID:     ticket.StringEventID("7"),
		EventName:   "Demo Con",
		Timestamp:   "2024-01-01T00:00:00.000Z",
	}
	signed := ticket.SignedTicket{Payload: want, Signature: "ab"}

	tm.signer.EXPECT().Issue(want).Return(signed, nil)
	tm.codec.EXPECT().Encode(signed).Return([]byte("png"), nil)
	tm.sender.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, email notification.Email) (string, error) {
		assert.Equal(t, "Your Ticket for Demo Con is Confirmed!", email.Subject)
		assert.Equal(t, []string{"ada@example.com"}, email.To)
		assert.Contains(t, email.HTML, "Sat, 01 Jun 2024 18:00 UTC")
		return "msg_1", nil
	})

	id, err := tm.mailer.SendTicketEmail(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "msg_1", id)
}

func TestMailer_SendTicketEmail_SignerUnavailable(t *testing.T) {
	tm := setupTestMailer(t)

	tm.signer.EXPECT().Issue(gomock.Any()).Return(ticket.SignedTicket{}, domain.ErrConfiguration)

	_, err := tm.mailer.SendTicketEmail(context.Background(), notification.TicketEmailRequest{EventID: 7, AssetID: 42})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestTemporalDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	dispatcher := notification.NewTemporalDispatcher(orchestrator, "ticket-notification")
	ctx := context.Background()
	req := notification.TicketEmailRequest{RequestID: 9, EventID: 7}

	run := &temporalmocks.WorkflowRun{}
	run.On("GetID").Return("ticket-email-9")
	run.On("GetRunID").Return("run-1")

	orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), notification.TicketEmailWorkflowName, req).
		DoAndReturn(func(_ context.Context, options client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, "ticket-email-9", options.ID)
			assert.Equal(t, "ticket-notification", options.TaskQueue)
			return run, nil
		})
	require.NoError(t, dispatcher.DispatchTicketEmail(ctx, req))

	// a second approval of the same request does not start another delivery
	orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), notification.TicketEmailWorkflowName, req).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("started", "", "run-1"))
	require.NoError(t, dispatcher.DispatchTicketEmail(ctx, req))

	orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), notification.TicketEmailWorkflowName, req).
		Return(nil, errors.New("unavailable"))
	assert.Error(t, dispatcher.DispatchTicketEmail(ctx, req))
}

func TestInlineDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)
	dispatcher := notification.NewInlineDispatcher(mailer, notification.InlineConfig{PoolSize: 2, QueueSize: 8})

	var mu sync.Mutex
	sent := []uint64{}

	mailer.EXPECT().SendTicketEmail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req notification.TicketEmailRequest) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, req.RequestID)
			if req.RequestID == 2 {
				return "", errors.New("bounced")
			}
			return "msg", nil
		}).Times(3)
	// contacts are only added after a successful send
	mailer.EXPECT().AddContact(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	for id := uint64(1); id <= 3; id++ {
		require.NoError(t, dispatcher.DispatchTicketEmail(context.Background(), notification.TicketEmailRequest{
			RequestID: id,
			Email:     strings.Repeat("a", int(id)) + "@example.com",
		}))
	}

	dispatcher.Close()
	assert.ElementsMatch(t, []uint64{1, 2, 3}, sent)
}
