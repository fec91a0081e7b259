package services

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"confeitaria/internal/config"
	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

const temporaryPasswordBytes = 16

// inviteService creates members inside an existing workspace.
type inviteService struct {
	db             *gorm.DB
	profileService ProfileServicer
	mode           config.ConsistencyMode
	log            *zap.SugaredLogger
}

// NewInviteService creates a new InviteServicer.
func NewInviteService(db *gorm.DB, profileService ProfileServicer, mode config.ConsistencyMode, log *zap.SugaredLogger) InviteServicer {
	return &inviteService{
		db:             db,
		profileService: profileService,
		mode:           mode,
		log:            log,
	}
}

// InviteMember creates a user with a random temporary password and a
// profile in the caller's workspace. Only admins and superadmins may invite,
// and only a superadmin may grant superadmin.
func (s *inviteService) InviteMember(callerID string, input InviteInput) (*InviteResult, error) {
	caller, err := s.profileService.GetProfile(callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanInvite() {
		return nil, apperrors.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: email")
	}
	role := input.Role
	if role == "" {
		role = models.RoleMember
	}
	switch role {
	case models.RoleMember, models.RoleAdmin:
	case models.RoleSuperadmin:
		if caller.Role != models.RoleSuperadmin {
			return nil, apperrors.ErrForbidden
		}
	default:
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Papel inválido")
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = emailLocalPart(email)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	password, err := temporaryPassword()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{Email: email, Password: string(hashed), IsActive: true}
	inviter := callerID

	err = runSteps(s.db, s.mode, s.log,
		step{
			name: "user",
			do: func(tx *gorm.DB) error {
				if err := tx.Create(user).Error; err != nil {
					if apperrors.IsUniqueViolation(err) {
						return apperrors.ErrDuplicateEmail
					}
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				return nil
			},
			undo: func(db *gorm.DB) error {
				return db.Unscoped().Delete(&models.User{}, "id = ?", user.ID).Error
			},
		},
		step{
			name: "profile",
			do: func(tx *gorm.DB) error {
				profile := &models.Profile{
					ID:          user.ID,
					Email:       email,
					FullName:    fullName,
					Role:        role,
					WorkspaceID: caller.WorkspaceID,
					InvitedBy:   &inviter,
				}
				if err := tx.Create(profile).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInviteFailed, err)
				}
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	return &InviteResult{
		ID:                user.ID,
		Email:             email,
		Role:              role,
		FullName:          fullName,
		TemporaryPassword: password,
	}, nil
}

func temporaryPassword() (string, error) {
	b := make([]byte, temporaryPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
