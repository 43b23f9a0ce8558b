package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gymadmin/gym-api/internal/models"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

type attendanceRepository interface {
	ListDatesByClient(ctx context.Context, clientID string) ([]time.Time, error)
	Create(ctx context.Context, attendance *models.Attendance) error
}

type clientDNIFinder interface {
	FindByDNI(ctx context.Context, dni string) (*models.Client, error)
}

const attendanceLookupKeyPattern = "attendance:lookup:*"

func attendanceLookupKey(dni string) string {
	return "attendance:lookup:" + dni
}

// AttendanceLookup is the find-by-dni payload: the client, their membership
// with the computed expiration date, and every recorded check-in date.
type AttendanceLookup struct {
	FullName        string   `json:"full_name"`
	DNI             string   `json:"dni"`
	RegisteredAt    string   `json:"registered_at"`
	ExpiresAt       string   `json:"expires_at"`
	MembershipType  string   `json:"membership_type"`
	MembershipPrice float64  `json:"membership_price"`
	AttendanceDates []string `json:"attendance_dates"`
}

// AttendanceService resolves clients by national ID for check-in desks. Find
// and Register are independent: a lookup never records a check-in and a
// check-in never returns the lookup payload.
type AttendanceService struct {
	repo        attendanceRepository
	clients     clientDNIFinder
	memberships membershipFinder
	cache       *CacheService
	logger      *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, clients clientDNIFinder, memberships membershipFinder, cache *CacheService, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, clients: clients, memberships: memberships, cache: cache, logger: logger}
}

// Find resolves a client by national ID and returns their membership details,
// computed expiration date and attendance history.
func (s *AttendanceService) Find(ctx context.Context, dni string) (*AttendanceLookup, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dni is required")
	}

	key := attendanceLookupKey(dni)
	var cached AttendanceLookup
	if hit := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	client, err := s.clients.FindByDNI(ctx, dni)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "client not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load client")
	}

	membership, err := s.memberships.FindByID(ctx, client.MembershipID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "membership not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load membership")
	}

	expires, err := ResolveExpiration(membership.Type, client.RegisteredAt)
	if err != nil {
		return nil, err
	}

	dates, err := s.repo.ListDatesByClient(ctx, client.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance history")
	}

	lookup := &AttendanceLookup{
		FullName:        client.FullName,
		DNI:             client.DNI,
		RegisteredAt:    FormatDate(client.RegisteredAt),
		ExpiresAt:       FormatDate(expires),
		MembershipType:  membership.Type,
		MembershipPrice: membership.Price,
		AttendanceDates: make([]string, 0, len(dates)),
	}
	for _, date := range dates {
		lookup.AttendanceDates = append(lookup.AttendanceDates, FormatDate(date))
	}

	s.cache.Set(ctx, key, lookup)
	return lookup, nil
}

// Register appends a check-in dated now for the client matching the national
// ID. Repeated check-ins on the same date are kept as separate rows.
func (s *AttendanceService) Register(ctx context.Context, dni string) error {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return appErrors.Clone(appErrors.ErrValidation, "dni is required")
	}

	client, err := s.clients.FindByDNI(ctx, dni)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "client not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load client")
	}

	attendance := &models.Attendance{ClientID: client.ID}
	if err := s.repo.Create(ctx, attendance); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register attendance")
	}

	s.cache.Invalidate(ctx, attendanceLookupKey(dni))
	return nil
}
