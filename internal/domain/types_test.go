package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRequestStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   RequestStatus
		expected bool
	}{
		{name: "pending", status: RequestStatusPending, expected: true},
		{name: "approved", status: RequestStatusApproved, expected: true},
		{name: "rejected", status: RequestStatusRejected, expected: true},
		{name: "empty", status: RequestStatus(""), expected: false},
		{name: "unknown", status: RequestStatus("cancelled"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidRequestStatus(tt.status))
		})
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, RequestStatusPending.IsTerminal())
	assert.True(t, RequestStatusApproved.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
}

func TestEventConfig_Capacity(t *testing.T) {
	tests := []struct {
		name        string
		event       EventConfig
		available   uint64
		hasCapacity bool
	}{
		{
			name:        "seats left",
			event:       EventConfig{MaxParticipants: 10, RegisteredCount: 3},
			available:   7,
			hasCapacity: true,
		},
		{
			name:        "full",
			event:       EventConfig{MaxParticipants: 10, RegisteredCount: 10},
			available:   0,
			hasCapacity: false,
		},
		{
			name:        "over registered",
			event:       EventConfig{MaxParticipants: 10, RegisteredCount: 12},
			available:   0,
			hasCapacity: false,
		},
		{
			name:        "zero capacity",
			event:       EventConfig{},
			available:   0,
			hasCapacity: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, tt.event.Available())
			assert.Equal(t, tt.hasCapacity, tt.event.HasCapacity())
		})
	}
}

func TestEventConfig_ImageURL(t *testing.T) {
	event := EventConfig{ImageRef: "ipfs://bafybeigdyrzt"}
	assert.Equal(t, "https://ipfs.io/ipfs/bafybeigdyrzt", event.ImageURL(""))
	assert.Equal(t, "https://gw.example.com/ipfs/bafybeigdyrzt", event.ImageURL("https://gw.example.com/ipfs"))

	plain := EventConfig{ImageRef: "https://cdn.example.com/a.png"}
	assert.Equal(t, "https://cdn.example.com/a.png", plain.ImageURL(""))
}

func TestSameAddress(t *testing.T) {
	assert.True(t, SameAddress("ADDR1", "addr1"))
	assert.True(t, SameAddress(" ADDR1", "ADDR1 "))
	assert.False(t, SameAddress("ADDR1", "ADDR2"))
}

func TestIsValidRedemptionMode(t *testing.T) {
	assert.True(t, IsValidRedemptionMode(RedemptionModeOff))
	assert.True(t, IsValidRedemptionMode(RedemptionModeFlag))
	assert.True(t, IsValidRedemptionMode(RedemptionModeReject))
	assert.False(t, IsValidRedemptionMode(RedemptionMode("strict")))
}
