package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
	"github.com/scholarbase/scholarbase/internal/pkg/auth"
	"github.com/scholarbase/scholarbase/internal/pkg/email"
	"github.com/scholarbase/scholarbase/internal/pkg/logger"
)

// InvitationService defines the interface for invitation operations
type InvitationService interface {
	Create(ctx context.Context, req dto.CreateInvitationRequest, invitedBy int64) (*dto.InvitationResponse, error)
	Resend(ctx context.Context, id int64) (*dto.InvitationResponse, error)
	Cancel(ctx context.Context, id int64) error
	Accept(ctx context.Context, req dto.AcceptInvitationRequest) (*models.User, error)
	List(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]dto.InvitationResponse, dto.PaginationInfo, error)
}

type invitationServiceImpl struct {
	invitationRepo repositories.IInvitationRepository
	userRepo       repositories.IUserRepository
	emailService   email.EmailService
	expiry         time.Duration
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(invitationRepo repositories.IInvitationRepository, userRepo repositories.IUserRepository, emailService email.EmailService, expiry time.Duration) InvitationService {
	return &invitationServiceImpl{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		expiry:         expiry,
	}
}

// expireIfStale lazily flips a pending invitation past its expiry to
// expired. There is no background sweeper; staleness is detected on read.
func (s *invitationServiceImpl) expireIfStale(ctx context.Context, inv *models.Invitation) bool {
	if inv.Status != models.InvitationStatusPending || !inv.IsExpired(time.Now()) {
		return false
	}
	if err := s.invitationRepo.MarkExpired(ctx, inv.ID); err != nil {
		logger.Warn().Err(err).Int64("invitationId", inv.ID).Msg("Failed to mark invitation expired")
	}
	inv.Status = models.InvitationStatusExpired
	return true
}

// Create issues a new invitation and emails the signup link. The email is
// best effort: a delivery failure never rolls the invitation back.
func (s *invitationServiceImpl) Create(ctx context.Context, req dto.CreateInvitationRequest, invitedBy int64) (*dto.InvitationResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	pending, err := s.invitationRepo.GetPendingByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrInvitationNotFound) {
		return nil, err
	}
	if pending != nil && !s.expireIfStale(ctx, pending) {
		return nil, apperrors.ErrInvitationPending
	}

	token, err := email.GenerateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	var scholarData []byte
	if req.ScholarData != nil {
		scholarData, err = json.Marshal(req.ScholarData)
		if err != nil {
			return nil, fmt.Errorf("failed to encode scholar prefill: %w", err)
		}
	}

	inv := &models.Invitation{
		Email:       req.Email,
		UserType:    models.UserType(req.UserType),
		Token:       token,
		Status:      models.InvitationStatusPending,
		InvitedBy:   invitedBy,
		ExpiresAt:   time.Now().Add(s.expiry),
		ScholarData: scholarData,
	}

	inv, err = s.invitationRepo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendInvitationEmail(inv.Email, string(inv.UserType), inv.Token); err != nil {
		logger.Warn().Err(err).Str("email", inv.Email).Msg("Failed to send invitation email")
	}

	response := dto.FromInvitation(inv)
	return &response, nil
}

// Resend re-delivers a pending invitation's email with its original token.
// Neither the token nor the expiry is refreshed, and at most
// MaxInvitationResends resends are allowed.
func (s *invitationServiceImpl) Resend(ctx context.Context, id int64) (*dto.InvitationResponse, error) {
	inv, err := s.invitationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.expireIfStale(ctx, inv) {
		return nil, apperrors.ErrInvitationExpired
	}
	if inv.Status != models.InvitationStatusPending {
		return nil, apperrors.ErrInvitationNotPending
	}
	if inv.ResentCount >= models.MaxInvitationResends {
		return nil, apperrors.ErrResendLimitReached
	}

	if err := s.invitationRepo.IncrementResend(ctx, id); err != nil {
		return nil, err
	}
	inv.ResentCount++

	if err := s.emailService.SendInvitationEmail(inv.Email, string(inv.UserType), inv.Token); err != nil {
		logger.Warn().Err(err).Str("email", inv.Email).Msg("Failed to resend invitation email")
	}

	response := dto.FromInvitation(inv)
	return &response, nil
}

// Cancel withdraws a pending invitation
func (s *invitationServiceImpl) Cancel(ctx context.Context, id int64) error {
	inv, err := s.invitationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s.expireIfStale(ctx, inv) {
		return apperrors.ErrInvitationExpired
	}
	if inv.Status != models.InvitationStatusPending {
		return apperrors.ErrInvitationNotPending
	}

	return s.invitationRepo.UpdateStatus(ctx, id, models.InvitationStatusCancelled)
}

// Accept redeems an invitation token and creates the invited account.
// Scholar invitations also materialize the pre-filled scholar profile.
func (s *invitationServiceImpl) Accept(ctx context.Context, req dto.AcceptInvitationRequest) (*models.User, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvitationNotFound) {
			return nil, apperrors.ErrInvalidInviteToken
		}
		return nil, err
	}
	if s.expireIfStale(ctx, inv) {
		return nil, apperrors.ErrInvalidInviteToken
	}
	if inv.Status != models.InvitationStatusPending {
		return nil, apperrors.ErrInvalidInviteToken
	}

	exists, err := s.userRepo.EmailExists(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var prefill *dto.ScholarPrefill
	if len(inv.ScholarData) > 0 {
		prefill = &dto.ScholarPrefill{}
		if err := json.Unmarshal(inv.ScholarData, prefill); err != nil {
			return nil, fmt.Errorf("failed to decode scholar prefill: %w", err)
		}
	}

	user := &models.User{
		Email:    inv.Email,
		Password: hashedPassword,
		Name:     req.Name,
		UserType: inv.UserType,
	}

	userID, err := s.invitationRepo.Accept(ctx, inv, user, prefill)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("invitationId", inv.ID).
		Int64("userId", userID).
		Str("userType", string(inv.UserType)).
		Msg("Invitation accepted")

	return s.userRepo.GetByID(ctx, userID)
}

// List returns a page of invitations. Stale pending invitations are
// lazily flipped to expired on the way out.
func (s *invitationServiceImpl) List(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]dto.InvitationResponse, dto.PaginationInfo, error) {
	invitations, pagination, err := s.invitationRepo.List(ctx, status, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.InvitationResponse, len(invitations))
	for i, inv := range invitations {
		s.expireIfStale(ctx, inv)
		responses[i] = dto.FromInvitation(inv)
	}

	return responses, pagination, nil
}
