package ticket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ticket"
)

func TestParse_NestedAndFlatAreEquivalent(t *testing.T) {
	encoder, signer := setupTestTicket(t, keyK)
	verifier, err := ticket.NewVerifier([]string{signer.PublicKey()}, encoder)
	require.NoError(t, err)

	sig, err := signer.Sign(demoPayload())
	require.NoError(t, err)

	nested := `{"payload":{"assetId":42,"userAddress":"ADDR1","eventId":"7","eventName":"Demo Con","timestamp":"2024-01-01T00:00:00.000Z"},"signature":"` + sig + `"}`
	flat := `{"assetId":42,"userAddress":"ADDR1","eventId":"7","eventName":"Demo Con","timestamp":"2024-01-01T00:00:00.000Z","signature":"` + sig + `"}`

	nestedFormat, err := ticket.Parse([]byte(nested))
	require.NoError(t, err)
	assert.Equal(t, ticket.FormatCurrent, nestedFormat.Kind())

	flatFormat, err := ticket.Parse([]byte(flat))
	require.NoError(t, err)
	assert.Equal(t, ticket.FormatLegacy, flatFormat.Kind())

	a := ticket.Normalize(nestedFormat)
	b := ticket.Normalize(flatFormat)
	assert.Equal(t, a.Payload, b.Payload)
	assert.Equal(t, a.Signature, b.Signature)

	for _, n := range []ticket.NormalizedTicket{a, b} {
		ok, err := verifier.Verify(n.Payload, n.Signature)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestParse_LegacyShapes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ticket.Payload
		signed   bool
	}{
		{
			name: "unsigned flat ticket without assetId",
			raw:  `{"userAddress":"ADDR1","eventId":"7","eventName":"Demo Con","timestamp":"2024-01-01T00:00:00.000Z"}`,
			expected: ticket.Payload{
				UserAddress: "ADDR1",
				EventID:     ticket.StringEventID("7"),
				EventName:   "Demo Con",
				Timestamp:   "2024-01-01T00:00:00.000Z",
			},
		},
		{
			name: "epoch milliseconds timestamp",
			raw:  `{"userAddress":"ADDR1","eventId":7,"eventName":"Demo Con","timestamp":1704067200000}`,
			expected: ticket.Payload{
				UserAddress: "ADDR1",
				EventID:     ticket.NumericEventID(7),
				EventName:   "Demo Con",
				Timestamp:   "2024-01-01T00:00:00.000Z",
			},
		},
		{
			name: "assetId as string and null signature",
			raw:  `{"assetId":"42","userAddress":"ADDR1","eventId":"7","eventName":"Demo Con","timestamp":"2024-01-01T00:00:00.000Z","signature":null}`,
			expected: ticket.Payload{
				AssetID:     42,
				UserAddress: "ADDR1",
				EventID:     ticket.StringEventID("7"),
				EventName:   "Demo Con",
				Timestamp:   "2024-01-01T00:00:00.000Z",
			},
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n{\"assetId\":42,\"userAddress\":\"ADDR1\",\"eventId\":\"7\",\"eventName\":\"Demo Con\",\"timestamp\":\"2024-01-01T00:00:00.000Z\",\"signature\":\"ab\"}\n",
			expected: ticket.Payload{
				AssetID:     42,
				UserAddress: "ADDR1",
				EventID:     ticket.StringEventID("7"),
				EventName:   "Demo Con",
				Timestamp:   "2024-01-01T00:00:00.000Z",
			},
			signed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ticket.Parse([]byte(tt.raw))
			require.NoError(t, err)

			n := ticket.Normalize(format)
			assert.Equal(t, ticket.FormatLegacy, n.Format)
			assert.Equal(t, tt.expected, n.Payload)
			assert.Equal(t, tt.signed, n.Signed())
		})
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not JSON", raw: "hello world"},
		{name: "JSON array", raw: `[1,2,3]`},
		{name: "JSON string", raw: `"ticket"`},
		{name: "JSON null", raw: `null`},
		{name: "empty", raw: ""},
		{name: "numeric signature", raw: `{"payload":{},"signature":12}`},
		{name: "payload not an object", raw: `{"payload":"x","signature":"ab"}`},
		{name: "negative assetId", raw: `{"assetId":-1,"userAddress":"ADDR1"}`},
		{name: "boolean timestamp", raw: `{"userAddress":"ADDR1","timestamp":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ticket.Parse([]byte(tt.raw))
			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
			assert.Nil(t, format)
		})
	}
}

func TestParse_UnsignedNestedTicket(t *testing.T) {
	format, err := ticket.Parse([]byte(`{"payload":{"assetId":42,"userAddress":"ADDR1","eventId":"7","eventName":"Demo Con","timestamp":"2024-01-01T00:00:00.000Z"}}`))
	require.NoError(t, err)

	n := ticket.Normalize(format)
	assert.Equal(t, ticket.FormatCurrent, n.Format)
	assert.False(t, n.Signed())

	encoder := ticket.NewEncoder(adapter.NewJCS())
	_, err = encoder.Encode(n.Payload)
	assert.NoError(t, err)
}
