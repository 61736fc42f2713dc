package qrcode_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/mocks"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/ticket"
)

func signedDemoTicket() ticket.SignedTicket {
	return ticket.SignedTicket{
		Payload: ticket.Payload{
			AssetID:     42,
			UserAddress: "ADDR1",
			EventID:     ticket.StringEventID("7"),
			EventName:   "Demo Con",
			Timestamp:   "2024-01-01T00:00:00.000Z",
		},
		Signature: strings.Repeat("ab", 64),
	}
}

func TestCodec_Encode(t *testing.T) {
	codec := qrcode.NewCodec(adapter.NewJCS(), 0)

	data, err := codec.Encode(signedDemoTicket())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qrcode.DefaultImageSize, img.Bounds().Dx())
	assert.Equal(t, qrcode.DefaultImageSize, img.Bounds().Dy())
}

func TestCodec_EncodeDataURL(t *testing.T) {
	codec := qrcode.NewCodec(adapter.NewJCS(), 0)

	url, err := codec.EncodeDataURL(signedDemoTicket())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, qrcode.DataURLPrefix))

	data, err := qrcode.DecodeDataURL(url)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)

	_, err = qrcode.DecodeDataURL("data:image/jpeg;base64,AAAA")
	assert.Error(t, err)
}

func TestCodec_EncodeRejectsIncompleteTicket(t *testing.T) {
	codec := qrcode.NewCodec(adapter.NewJCS(), 0)

	unsigned := signedDemoTicket()
	unsigned.Signature = ""
	_, err := codec.Encode(unsigned)
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)

	missing := signedDemoTicket()
	missing.Payload.UserAddress = ""
	_, err = codec.Encode(missing)
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestCodec_Decode(t *testing.T) {
	codec := qrcode.NewCodec(adapter.NewJCS(), 0)
	jcs := adapter.NewJCS()

	content, err := jcs.Canonicalize(signedDemoTicket())
	require.NoError(t, err)

	format, err := codec.Decode(string(content))
	require.NoError(t, err)

	n := ticket.Normalize(format)
	assert.Equal(t, ticket.FormatCurrent, n.Format)
	assert.Equal(t, signedDemoTicket().Payload, n.Payload)
	assert.Equal(t, signedDemoTicket().Signature, n.Signature)

	for _, raw := range []string{"not json", "", "   ", "{broken"} {
		_, err := codec.Decode(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, raw)
		assert.ErrorIs(t, err, domain.ErrMalformedPayload, raw)
	}
}

type testScanner struct {
	clock   *mocks.MockClock
	scanner *qrcode.Scanner
	now     time.Time
}

func setupTestScanner(t *testing.T) *testScanner {
	ctrl := gomock.NewController(t)

	ts := &testScanner{
		clock: mocks.NewMockClock(ctrl),
		now:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	ts.clock.EXPECT().Now().DoAndReturn(func() time.Time { return ts.now }).AnyTimes()
	ts.scanner = qrcode.NewScanner(ts.clock, 2*time.Second)

	return ts
}

func TestScanner_PausesAfterDetection(t *testing.T) {
	ts := setupTestScanner(t)

	assert.True(t, ts.scanner.Ready())
	assert.True(t, ts.scanner.Detect("first"))

	// the same code is still in front of the camera
	ts.now = ts.now.Add(500 * time.Millisecond)
	assert.False(t, ts.scanner.Detect("first"))
	assert.False(t, ts.scanner.Detect("second"))
	assert.False(t, ts.scanner.Ready())

	state := ts.scanner.State()
	assert.False(t, state.Armed)
	assert.Equal(t, "first", state.LastRaw)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 2, 0, time.UTC), state.ResumesAt)
}

func TestScanner_ResumesAfterCooldown(t *testing.T) {
	ts := setupTestScanner(t)

	require.True(t, ts.scanner.Detect("not json"))

	ts.now = ts.now.Add(1999 * time.Millisecond)
	assert.False(t, ts.scanner.Ready())

	ts.now = ts.now.Add(time.Millisecond)
	assert.True(t, ts.scanner.Ready())
	assert.Equal(t, "not json", ts.scanner.State().LastRaw)

	assert.True(t, ts.scanner.Detect("next"))
	assert.Equal(t, "next", ts.scanner.State().LastRaw)
}

func TestScanner_Reset(t *testing.T) {
	ts := setupTestScanner(t)

	require.True(t, ts.scanner.Detect("first"))
	ts.scanner.Reset()

	state := ts.scanner.State()
	assert.True(t, state.Armed)
	assert.Empty(t, state.LastRaw)
	assert.True(t, state.ResumesAt.IsZero())

	assert.True(t, ts.scanner.Detect("second"))
}

func TestScanner_DefaultCooldown(t *testing.T) {
	ts := setupTestScanner(t)
	scanner := qrcode.NewScanner(ts.clock, 0)

	require.True(t, scanner.Detect("a"))
	ts.now = ts.now.Add(qrcode.DefaultScanCooldown)
	assert.True(t, scanner.Ready())
}
