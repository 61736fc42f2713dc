package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/store/schema"
)

// defaultListLimit caps ListRegistrationRequests when no limit is given
const defaultListLimit = 100

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool applies pool settings to the sql.DB under a GORM connection.
// Zero values fall back to NormalizeConnectionPoolSettings defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings fills zero settings with defaults
// (20 open, 5 idle, 5m lifetime, 10m idle time) and keeps idle <= open.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// NormalizeWallet returns the stored form of a ledger address
func NormalizeWallet(address string) string {
	return strings.ToUpper(strings.TrimSpace(address))
}

var activeStatuses = []domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusApproved}

// GetUserByWallet retrieves the directory entry for a wallet
func (s *pgStore) GetUserByWallet(ctx context.Context, walletAddress string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("wallet_address = ?", NormalizeWallet(walletAddress)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CreateRegistrationRequest upserts the user and inserts a pending request in one transaction
func (s *pgStore) CreateRegistrationRequest(ctx context.Context, input CreateRegistrationRequestInput) (*schema.RegistrationRequest, bool, error) {
	wallet := NormalizeWallet(input.WalletAddress)

	var request schema.RegistrationRequest
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Reuse a live request for the same event and wallet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND wallet_address = ? AND request_status IN ?", input.EventID, wallet, activeStatuses).
			Order("requested_at DESC").
			First(&request).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing request: %w", err)
		}

		// 2. Upsert the wallet -> email directory entry
		var userID *uint64
		if email := strings.TrimSpace(input.Email); email != "" {
			user := schema.User{WalletAddress: wallet, Email: email}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "wallet_address"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"email":      email,
					"updated_at": time.Now(),
				}),
			}).Create(&user).Error
			if err != nil {
				return fmt.Errorf("failed to upsert user: %w", err)
			}
			if user.UserID == 0 {
				if err := tx.Where("wallet_address = ?", wallet).First(&user).Error; err != nil {
					return fmt.Errorf("failed to reload user: %w", err)
				}
			}
			userID = &user.UserID
		}

		// 3. Insert the pending request
		requestedAt := input.RequestedAt
		if requestedAt.IsZero() {
			requestedAt = time.Now()
		}
		request = schema.RegistrationRequest{
			EventID:       input.EventID,
			UserID:        userID,
			WalletAddress: wallet,
			Status:        domain.RequestStatusPending,
			RequestedAt:   requestedAt,
			AssetID:       input.AssetID,
		}
		if err := tx.Create(&request).Error; err != nil {
			return fmt.Errorf("failed to create registration request: %w", err)
		}
		created = true

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &request, created, nil
}

// requestsWithEmail selects requests joined with their requester's email
func (s *pgStore) requestsWithEmail(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("registration_requests AS r").
		Select("r.*, COALESCE(u.email, '') AS email").
		Joins("LEFT JOIN users u ON u.wallet_address = r.wallet_address")
}

// GetRegistrationRequest retrieves a request by id
func (s *pgStore) GetRegistrationRequest(ctx context.Context, requestID uint64) (*RegistrationRequestWithEmail, error) {
	var result RegistrationRequestWithEmail
	err := s.requestsWithEmail(ctx).
		Where("r.request_id = ?", requestID).
		Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration request: %w", err)
	}

	return &result, nil
}

// GetLatestRegistrationRequest retrieves the newest request of a wallet for an event
func (s *pgStore) GetLatestRegistrationRequest(ctx context.Context, eventID uint64, walletAddress string) (*schema.RegistrationRequest, error) {
	var request schema.RegistrationRequest
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND wallet_address = ?", eventID, NormalizeWallet(walletAddress)).
		Order("requested_at DESC").
		Order("request_id DESC").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest registration request: %w", err)
	}

	return &request, nil
}

// ListRegistrationRequests returns matching requests newest first
func (s *pgStore) ListRegistrationRequests(ctx context.Context, filter RegistrationRequestFilter) ([]*RegistrationRequestWithEmail, uint64, error) {
	where := func(q *gorm.DB) *gorm.DB {
		if filter.EventID != nil {
			q = q.Where("r.event_id = ?", *filter.EventID)
		}
		if filter.WalletAddress != "" {
			q = q.Where("r.wallet_address = ?", NormalizeWallet(filter.WalletAddress))
		}
		if len(filter.Statuses) > 0 {
			q = q.Where("r.request_status IN ?", filter.Statuses)
		}
		return q
	}

	var total int64
	err := where(s.db.WithContext(ctx).Table("registration_requests AS r")).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count registration requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var results []*RegistrationRequestWithEmail
	err = where(s.requestsWithEmail(ctx)).
		Order("r.requested_at DESC").
		Order("r.request_id DESC").
		Limit(limit).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&results).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list registration requests: %w", err)
	}

	return results, uint64(total), nil //nolint:gosec,G115
}

// MarkRegistrationRequestApproved moves a pending request to approved
func (s *pgStore) MarkRegistrationRequestApproved(ctx context.Context, input ApproveRequestInput) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.RegistrationRequest{}).
		Where("request_id = ? AND request_status = ?", input.RequestID, domain.RequestStatusPending).
		Updates(map[string]interface{}{
			"request_status": domain.RequestStatusApproved,
			"asset_id":       input.AssetID,
			"transfer_tx_id": input.TransferTxID,
			"reviewed_at":    input.ReviewedAt,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to approve registration request: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// RecordTransferSubmission stores the submitted transfer of a pending request
func (s *pgStore) RecordTransferSubmission(ctx context.Context, requestID, assetID uint64, txID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.RegistrationRequest{}).
		Where("request_id = ? AND request_status = ?", requestID, domain.RequestStatusPending).
		Updates(map[string]interface{}{
			"asset_id":       assetID,
			"transfer_tx_id": txID,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to record transfer submission: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// MarkRegistrationRequestRejected moves a pending request to rejected
func (s *pgStore) MarkRegistrationRequestRejected(ctx context.Context, requestID uint64, reviewedAt time.Time) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.RegistrationRequest{}).
		Where("request_id = ? AND request_status = ?", requestID, domain.RequestStatusPending).
		Updates(map[string]interface{}{
			"request_status": domain.RequestStatusRejected,
			"reviewed_at":    reviewedAt,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to reject registration request: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// UpdateRegistrationRequestNotes replaces the admin notes of a request
func (s *pgStore) UpdateRegistrationRequestNotes(ctx context.Context, requestID uint64, notes string) error {
	var value *string
	if strings.TrimSpace(notes) != "" {
		value = &notes
	}

	result := s.db.WithContext(ctx).
		Model(&schema.RegistrationRequest{}).
		Where("request_id = ?", requestID).
		Updates(map[string]interface{}{
			"admin_notes": value,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update admin notes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", domain.ErrRequestNotFound, requestID)
	}

	return nil
}

// CreateCheckIn records the first admission of a wallet to an event
func (s *pgStore) CreateCheckIn(ctx context.Context, input CreateCheckInInput) (*schema.CheckIn, bool, error) {
	checkedInAt := input.CheckedInAt
	if checkedInAt.IsZero() {
		checkedInAt = time.Now()
	}

	checkIn := schema.CheckIn{
		EventID:         input.EventID,
		WalletAddress:   NormalizeWallet(input.WalletAddress),
		AssetID:         input.AssetID,
		SignatureStatus: input.SignatureStatus,
		SessionID:       input.SessionID,
		ScanPayload:     input.ScanPayload,
		CheckedInAt:     checkedInAt,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "wallet_address"}},
			DoNothing: true,
		}).
		Create(&checkIn)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create check-in: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return &checkIn, true, nil
	}

	existing, err := s.GetCheckIn(ctx, input.EventID, input.WalletAddress)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("check-in for event %d vanished after conflict", input.EventID)
	}

	return existing, false, nil
}

// GetCheckIn retrieves the admission of a wallet to an event
func (s *pgStore) GetCheckIn(ctx context.Context, eventID uint64, walletAddress string) (*schema.CheckIn, error) {
	var checkIn schema.CheckIn
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND wallet_address = ?", eventID, NormalizeWallet(walletAddress)).
		First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}

	return &checkIn, nil
}

// SetKeyValue sets a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
