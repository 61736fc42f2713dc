package ticket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/chainpass/ticketing/internal/domain"
)

// TimestampLayout is the issuance timestamp format: RFC 3339, UTC, millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// maxSafeInteger is the largest integer every JSON implementation reproduces exactly
const maxSafeInteger = 1<<53 - 1

// EventID identifies the event a ticket admits to.
// On the wire it is either a JSON string or a JSON integer and keeps that kind through a round trip.
type EventID struct {
	value   string
	numeric bool
}

// StringEventID returns an event id carried as a JSON string
func StringEventID(id string) EventID {
	return EventID{value: id}
}

// NumericEventID returns an event id carried as a JSON integer
func NumericEventID(id uint64) EventID {
	return EventID{value: strconv.FormatUint(id, 10), numeric: true}
}

// String returns the event id as text regardless of its wire kind
func (e EventID) String() string {
	return e.value
}

// IsNumeric reports whether the id is carried as a JSON integer
func (e EventID) IsNumeric() bool {
	return e.numeric
}

// IsZero reports whether the id is unset
func (e EventID) IsZero() bool {
	return e.value == ""
}

// MarshalJSON implements json.Marshaler
func (e EventID) MarshalJSON() ([]byte, error) {
	if e.numeric {
		return []byte(e.value), nil
	}
	return json.Marshal(e.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (e *EventID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = EventID{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = StringEventID(s)
		return nil
	}

	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("event id must be a string or a non-negative integer: %s", data)
	}
	*e = NumericEventID(n)
	return nil
}

// Payload is the signed unit of truth for a ticket
type Payload struct {
	AssetID     uint64  `json:"assetId"`
	UserAddress string  `json:"userAddress"`
	EventID     EventID `json:"eventId"`
	EventName   string  `json:"eventName"`
	Timestamp   string  `json:"timestamp"`
}

// NewPayload builds a payload stamped with issuedAt
func NewPayload(assetID uint64, userAddress string, eventID EventID, eventName string, issuedAt time.Time) Payload {
	return Payload{
		AssetID:     assetID,
		UserAddress: userAddress,
		EventID:     eventID,
		EventName:   eventName,
		Timestamp:   FormatTimestamp(issuedAt),
	}
}

// FormatTimestamp renders t in the issuance timestamp format
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Validate checks that every field is present and representable on the wire
func (p Payload) Validate() error {
	switch {
	case p.AssetID == 0:
		return fmt.Errorf("%w: missing assetId", domain.ErrMalformedPayload)
	case p.AssetID > maxSafeInteger:
		return fmt.Errorf("%w: assetId %d exceeds the exact JSON integer range", domain.ErrMalformedPayload, p.AssetID)
	case p.UserAddress == "":
		return fmt.Errorf("%w: missing userAddress", domain.ErrMalformedPayload)
	case p.EventID.IsZero():
		return fmt.Errorf("%w: missing eventId", domain.ErrMalformedPayload)
	case p.EventName == "":
		return fmt.Errorf("%w: missing eventName", domain.ErrMalformedPayload)
	case p.Timestamp == "":
		return fmt.Errorf("%w: missing timestamp", domain.ErrMalformedPayload)
	}

	if p.EventID.IsNumeric() {
		n, _ := strconv.ParseUint(p.EventID.String(), 10, 64)
		if n > maxSafeInteger {
			return fmt.Errorf("%w: eventId %d exceeds the exact JSON integer range", domain.ErrMalformedPayload, n)
		}
	}

	if _, err := time.Parse(time.RFC3339Nano, p.Timestamp); err != nil {
		return fmt.Errorf("%w: timestamp is not ISO-8601: %s", domain.ErrMalformedPayload, p.Timestamp)
	}

	return nil
}

// SignedTicket wraps a payload with its hex encoded signature.
// Its JSON form is exactly what the QR image carries.
type SignedTicket struct {
	Payload   Payload `json:"payload"`
	Signature string  `json:"signature"`
}
