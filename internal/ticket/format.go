package ticket

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chainpass/ticketing/internal/domain"
)

// FormatKind names one of the QR payload shapes that have been issued
type FormatKind string

const (
	// FormatCurrent is {"payload": {...}, "signature": "..."}
	FormatCurrent FormatKind = "current"
	// FormatLegacy has the payload fields and an optional signature at the top level
	FormatLegacy FormatKind = "legacy"
)

// TicketFormat is the tagged union of QR payload shapes.
// The only implementations are CurrentTicketFormat and LegacyTicketFormat.
type TicketFormat interface {
	Kind() FormatKind
	isTicketFormat()
}

// CurrentTicketFormat is the nested payload shape
type CurrentTicketFormat struct {
	Payload   Payload
	Signature string
}

func (CurrentTicketFormat) Kind() FormatKind { return FormatCurrent }
func (CurrentTicketFormat) isTicketFormat()  {}

// LegacyTicketFormat is the flat shape. Early tickets carried no assetId and a numeric timestamp.
type LegacyTicketFormat struct {
	AssetID     uint64
	UserAddress string
	EventID     EventID
	EventName   string
	Timestamp   string
	Signature   string
}

func (LegacyTicketFormat) Kind() FormatKind { return FormatLegacy }
func (LegacyTicketFormat) isTicketFormat()  {}

// NormalizedTicket is the single shape every check-in step works with
type NormalizedTicket struct {
	Payload   Payload    `json:"payload"`
	Signature string     `json:"signature,omitempty"`
	Format    FormatKind `json:"format"`
}

// Signed reports whether the ticket carries a signature
func (t NormalizedTicket) Signed() bool {
	return t.Signature != ""
}

// Normalize maps any ticket shape onto NormalizedTicket
func Normalize(t TicketFormat) NormalizedTicket {
	switch f := t.(type) {
	case CurrentTicketFormat:
		return NormalizedTicket{Payload: f.Payload, Signature: f.Signature, Format: FormatCurrent}
	case LegacyTicketFormat:
		return NormalizedTicket{
			Payload: Payload{
				AssetID:     f.AssetID,
				UserAddress: f.UserAddress,
				EventID:     f.EventID,
				EventName:   f.EventName,
				Timestamp:   f.Timestamp,
			},
			Signature: f.Signature,
			Format:    FormatLegacy,
		}
	default:
		return NormalizedTicket{}
	}
}

// wirePayload accepts the loose field types older issuers produced
type wirePayload struct {
	AssetID     json.RawMessage `json:"assetId"`
	UserAddress string          `json:"userAddress"`
	EventID     EventID         `json:"eventId"`
	EventName   string          `json:"eventName"`
	Timestamp   json.RawMessage `json:"timestamp"`
}

func (w wirePayload) toPayload() (Payload, error) {
	assetID, err := parseLooseUint(w.AssetID)
	if err != nil {
		return Payload{}, fmt.Errorf("assetId: %w", err)
	}

	timestamp, err := parseLooseTimestamp(w.Timestamp)
	if err != nil {
		return Payload{}, fmt.Errorf("timestamp: %w", err)
	}

	return Payload{
		AssetID:     assetID,
		UserAddress: w.UserAddress,
		EventID:     w.EventID,
		EventName:   w.EventName,
		Timestamp:   timestamp,
	}, nil
}

// Parse classifies raw QR text as one of the ticket shapes.
// It fails with domain.ErrInvalidFormat when the text is not a JSON object of ticket fields.
func Parse(raw []byte) (TicketFormat, error) {
	raw = bytes.TrimSpace(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not a JSON object", domain.ErrInvalidFormat)
	}

	var signature string
	if sig, ok := fields["signature"]; ok && !isNull(sig) {
		if err := json.Unmarshal(sig, &signature); err != nil {
			return nil, fmt.Errorf("%w: signature must be a string", domain.ErrInvalidFormat)
		}
	}

	if nested, ok := fields["payload"]; ok {
		var w wirePayload
		if err := json.Unmarshal(nested, &w); err != nil {
			return nil, fmt.Errorf("%w: payload: %v", domain.ErrInvalidFormat, err)
		}
		p, err := w.toPayload()
		if err != nil {
			return nil, fmt.Errorf("%w: payload.%v", domain.ErrInvalidFormat, err)
		}
		return CurrentTicketFormat{Payload: p, Signature: signature}, nil
	}

	var w wirePayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	p, err := w.toPayload()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	return LegacyTicketFormat{
		AssetID:     p.AssetID,
		UserAddress: p.UserAddress,
		EventID:     p.EventID,
		EventName:   p.EventName,
		Timestamp:   p.Timestamp,
		Signature:   signature,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseLooseUint accepts a JSON integer, a decimal string or nothing
func parseLooseUint(raw json.RawMessage) (uint64, error) {
	if isNull(raw) {
		return 0, nil
	}

	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
	}

	return strconv.ParseUint(text, 10, 64)
}

// parseLooseTimestamp accepts an ISO-8601 string verbatim or epoch milliseconds
func parseLooseTimestamp(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}

	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return "", errors.New("expected ISO-8601 string or epoch milliseconds")
	}

	return FormatTimestamp(time.UnixMilli(ms)), nil
}
