package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ticket"
)

const (
	// DefaultImageSize is the width and height of a rendered ticket in pixels
	DefaultImageSize = 400

	// DataURLPrefix prefixes a base64 PNG embedded in JSON or HTML
	DataURLPrefix = "data:image/png;base64,"
)

// Codec converts signed tickets to scannable images and scanned text back to tickets
//
//go:generate mockgen -source=codec.go -destination=../mocks/qrcode_codec.go -package=mocks -mock_names=Codec=MockQRCodec
type Codec interface {
	// Encode renders the ticket JSON as a square PNG
	Encode(t ticket.SignedTicket) ([]byte, error)

	// EncodeDataURL renders the ticket and returns it as a data URL
	EncodeDataURL(t ticket.SignedTicket) (string, error)

	// Decode parses scanned text into one of the ticket shapes.
	// Fails with domain.ErrInvalidFormat when the text is not a ticket.
	Decode(raw string) (ticket.TicketFormat, error)
}

type codec struct {
	jcs  adapter.JCS
	size int
}

// NewCodec creates a codec rendering images of size pixels. A non-positive size uses DefaultImageSize.
func NewCodec(jcs adapter.JCS, size int) Codec {
	if size <= 0 {
		size = DefaultImageSize
	}
	return &codec{jcs: jcs, size: size}
}

func (c *codec) Encode(t ticket.SignedTicket) ([]byte, error) {
	if err := t.Payload.Validate(); err != nil {
		return nil, err
	}
	if t.Signature == "" {
		return nil, fmt.Errorf("%w: missing signature", domain.ErrMalformedPayload)
	}

	content, err := c.jcs.Canonicalize(t)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize ticket: %w", err)
	}

	// Highest is level H, roughly 30% of the symbol can be recovered
	qr, err := goqrcode.New(string(content), goqrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}

	png, err := qr.PNG(c.size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	return png, nil
}

func (c *codec) EncodeDataURL(t ticket.SignedTicket) (string, error) {
	png, err := c.Encode(t)
	if err != nil {
		return "", err
	}
	return DataURL(png), nil
}

func (c *codec) Decode(raw string) (ticket.TicketFormat, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty scan", domain.ErrInvalidFormat)
	}
	return ticket.Parse([]byte(raw))
}

// DataURL wraps PNG bytes in a data URL
func DataURL(png []byte) string {
	return DataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeDataURL extracts the PNG bytes from a data URL produced by DataURL
func DecodeDataURL(url string) ([]byte, error) {
	if !strings.HasPrefix(url, DataURLPrefix) {
		return nil, errors.New("not a PNG data URL")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(url, DataURLPrefix))
}
