package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/mocks"
	publisherpkg "github.com/chainpass/ticketing/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testPublisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
	clock  *mocks.MockClock
}

func setupTestPublisher(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
}

var testConfig = publisherpkg.Config{
	URL:            "nats://localhost:4222",
	StreamName:     "TICKETING",
	SubjectPrefix:  "ticketing.",
	MaxReconnects:  3,
	ReconnectWait:  time.Second,
	ConnectionName: "chainpass-test",
}

func TestNewPublisher(t *testing.T) {
	t.Run("ensures stream", func(t *testing.T) {
		m := setupTestPublisher(t)
		m.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(gomock.Any(), "TICKETING", []string{"ticketing.>"}).Return(nil)
		m.conn.EXPECT().Close()

		pub, err := publisherpkg.NewPublisher(context.Background(), testConfig, m.natsJS, m.clock)
		require.NoError(t, err)
		pub.Close()
	})

	t.Run("connect fails", func(t *testing.T) {
		m := setupTestPublisher(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("no servers available"))

		_, err := publisherpkg.NewPublisher(context.Background(), testConfig, m.natsJS, m.clock)
		assert.Error(t, err)
	})

	t.Run("stream fails closes connection", func(t *testing.T) {
		m := setupTestPublisher(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("insufficient resources"))
		m.conn.EXPECT().Close()

		_, err := publisherpkg.NewPublisher(context.Background(), testConfig, m.natsJS, m.clock)
		assert.ErrorContains(t, err, "TICKETING")
	})
}

func TestPublishTicketEvent(t *testing.T) {
	now := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)

	t.Run("fills id and time", func(t *testing.T) {
		m := setupTestPublisher(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.clock.EXPECT().Now().Return(now).Times(2)

		var published domain.TicketEvent
		m.js.EXPECT().Publish(gomock.Any(), "ticketing.7.registration.approved", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
				require.NoError(t, json.Unmarshal(data, &published))
				return &jetstream.PubAck{Stream: "TICKETING", Sequence: 1}, nil
			})

		pub, err := publisherpkg.NewPublisher(context.Background(), testConfig, m.natsJS, m.clock)
		require.NoError(t, err)

		event := &domain.TicketEvent{
			Type:          domain.TicketEventRegistrationApproved,
			EventID:       "7",
			RequestID:     12,
			WalletAddress: "WALLET",
			AssetID:       1001,
		}
		require.NoError(t, pub.PublishTicketEvent(context.Background(), event))

		assert.Len(t, event.ID, 26)
		assert.Equal(t, event.ID, published.ID)
		assert.True(t, now.Equal(published.OccurredAt))
		assert.Equal(t, uint64(12), published.RequestID)
	})

	t.Run("keeps caller id", func(t *testing.T) {
		m := setupTestPublisher(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.js.EXPECT().Publish(gomock.Any(), "ticketing.7.ticket.checked_in", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("nats: timeout"))

		pub, err := publisherpkg.NewPublisher(context.Background(), testConfig, m.natsJS, m.clock)
		require.NoError(t, err)

		err = pub.PublishTicketEvent(context.Background(), &domain.TicketEvent{
			ID:         "01J0000000000000000000TEST",
			Type:       domain.TicketEventTicketCheckedIn,
			EventID:    "7",
			OccurredAt: now,
		})
		assert.ErrorContains(t, err, "failed to publish event")
	})
}
