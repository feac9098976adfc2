package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageStatus is the quota block returned to clients.
type UsageStatus struct {
	Count     int `json:"count"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// QuotaExceededError reports a user who has used up today's allowance.
type QuotaExceededError struct {
	Count int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("Daily analysis limit reached (%d analyses per day)", e.Limit)
}

// Reservation marks one about-to-be-consumed analysis slot. It pins the day
// bucket computed at request start, so a request that crosses midnight still
// commits against the bucket it was checked in.
type Reservation struct {
	UserID uuid.UUID
	Day    time.Time
}

type UsageService struct {
	store UsageStoreDB
	limit int
}

func NewUsageService(store UsageStoreDB, limit int) *UsageService {
	return &UsageService{store: store, limit: limit}
}

// DayBucket truncates t to midnight in its own location.
func DayBucket(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// GetStatus reports today's count against the daily limit. A missing record
// counts as zero and is not created.
func (s *UsageService) GetStatus(userID uuid.UUID) (UsageStatus, error) {
	count := 0
	usage, err := s.store.GetUsageDB(userID, DayBucket(time.Now()))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return UsageStatus{}, err
		}
	} else {
		count = usage.Count
	}
	return s.status(count), nil
}

// Reserve gates a new analysis attempt. It lazily creates today's usage
// record with a zero count and fails with QuotaExceededError once the limit
// is reached. Nothing is consumed until Commit.
func (s *UsageService) Reserve(userID uuid.UUID) (*Reservation, error) {
	day := DayBucket(time.Now())
	if err := s.store.EnsureUsageDB(userID, day); err != nil {
		return nil, err
	}
	usage, err := s.store.GetUsageDB(userID, day)
	if err != nil {
		return nil, err
	}
	if usage.Count >= s.limit {
		return nil, &QuotaExceededError{Count: usage.Count, Limit: s.limit}
	}
	return &Reservation{UserID: userID, Day: day}, nil
}

// Commit consumes the reserved slot and returns the updated status. Call it
// only after the analysis has succeeded; a failed provider call must not
// burn the user's quota.
func (s *UsageService) Commit(res *Reservation) (UsageStatus, error) {
	usage, err := s.store.IncrementUsageDB(res.UserID, res.Day)
	if err != nil {
		return UsageStatus{}, err
	}
	return s.status(usage.Count), nil
}

func (s *UsageService) status(count int) UsageStatus {
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return UsageStatus{Count: count, Limit: s.limit, Remaining: remaining}
}
