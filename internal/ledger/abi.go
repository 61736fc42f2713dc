package ledger

import (
	"fmt"
	"math/big"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/chainpass/ticketing/internal/domain"
)

// EventConfigABI is the tuple the events registry stores per event:
// id, name, category, creator, image, cost, max participants, location,
// start, end, registered count, ticket application id
const EventConfigABI = "(uint64,string,string,address,string,uint64,uint64,string,uint64,uint64,uint64,uint64)"

var (
	stringType      = mustABIType("string")
	eventConfigType = mustABIType(EventConfigABI)
)

func mustABIType(s string) abi.Type {
	t, err := abi.TypeOf(s)
	if err != nil {
		panic(fmt.Sprintf("invalid ABI type %s: %v", s, err))
	}
	return t
}

// DecodeABIString decodes a length-prefixed ABI string such as a registrant email box value
func DecodeABIString(value []byte) (string, error) {
	decoded, err := stringType.Decode(value)
	if err != nil {
		return "", fmt.Errorf("failed to decode ABI string: %w", err)
	}
	s, ok := decoded.(string)
	if !ok {
		return "", fmt.Errorf("unexpected ABI string value %T", decoded)
	}
	return s, nil
}

// EncodeABIString encodes s as a length-prefixed ABI string
func EncodeABIString(s string) ([]byte, error) {
	return stringType.Encode(s)
}

// DecodeEventConfig decodes an events registry box value
func DecodeEventConfig(value []byte) (domain.EventConfig, error) {
	decoded, err := eventConfigType.Decode(value)
	if err != nil {
		return domain.EventConfig{}, fmt.Errorf("failed to decode event config: %w", err)
	}

	fields, ok := decoded.([]interface{})
	if !ok || len(fields) != 12 {
		return domain.EventConfig{}, fmt.Errorf("unexpected event config shape %T", decoded)
	}

	var cfg domain.EventConfig
	var start, end uint64
	var errs []error
	u := func(i int, dst *uint64) {
		v, err := toUint64(fields[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("field %d: %w", i, err))
		}
		*dst = v
	}
	s := func(i int, dst *string) {
		v, ok := fields[i].(string)
		if !ok {
			errs = append(errs, fmt.Errorf("field %d: expected string, got %T", i, fields[i]))
		}
		*dst = v
	}

	u(0, &cfg.EventID)
	s(1, &cfg.Name)
	s(2, &cfg.Category)
	creator, err := toAddress(fields[3])
	if err != nil {
		errs = append(errs, fmt.Errorf("field 3: %w", err))
	}
	cfg.CreatorAddress = creator
	s(4, &cfg.ImageRef)
	u(5, &cfg.Cost)
	u(6, &cfg.MaxParticipants)
	s(7, &cfg.Location)
	u(8, &start)
	u(9, &end)
	u(10, &cfg.RegisteredCount)
	u(11, &cfg.TicketAppID)

	if len(errs) > 0 {
		return domain.EventConfig{}, fmt.Errorf("invalid event config: %v", errs)
	}

	cfg.StartTime = time.Unix(int64(start), 0).UTC()
	cfg.EndTime = time.Unix(int64(end), 0).UTC()

	return cfg, nil
}

func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case *big.Int:
		if !n.IsUint64() {
			return 0, fmt.Errorf("integer %s overflows uint64", n.String())
		}
		return n.Uint64(), nil
	default:
		return 0, fmt.Errorf("expected unsigned integer, got %T", v)
	}
}

func toAddress(v interface{}) (string, error) {
	switch a := v.(type) {
	case string:
		return a, nil
	case types.Address:
		return a.String(), nil
	case [32]byte:
		return types.Address(a).String(), nil
	case []byte:
		if len(a) != len(types.Address{}) {
			return "", fmt.Errorf("address has %d bytes", len(a))
		}
		return types.EncodeAddress(a)
	default:
		return "", fmt.Errorf("expected address, got %T", v)
	}
}
