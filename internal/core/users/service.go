package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"Murmur/internal/core/pagination"
)

const MsgProfileUpdated = "profile updated"

type userService struct {
	userRepo UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, stats, err := s.loadWithStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := newProfile(user, stats)
	return &profile, nil
}

func (s *userService) GetMyProfile(ctx context.Context, callerID string) (*MyProfile, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	user, stats, err := s.loadWithStats(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return &MyProfile{Profile: newProfile(user, stats), Email: user.Email}, nil
}

func (s *userService) UpdateMyProfile(ctx context.Context, callerID string, req UpdateProfileRequest) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	var upd ProfileUpdate
	if req.Bio != nil {
		bio, err := validateBio(*req.Bio)
		if err != nil {
			return nil, err
		}
		upd.Bio, upd.SetBio = bio, true
	}
	if req.AvatarURL != nil {
		avatarURL, err := validateAvatarURL(*req.AvatarURL)
		if err != nil {
			return nil, err
		}
		upd.AvatarURL, upd.SetAvatarURL = avatarURL, true
	}

	// Omitted fields never reach the write, so concurrent edits of different
	// fields can't revert each other.
	if err := s.userRepo.UpdateProfile(ctx, callerID, upd); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", callerID)

	return &MessageResponse{Message: MsgProfileUpdated}, nil
}

func (s *userService) GetUserPosts(ctx context.Context, userID string, skip, take int) ([]*UserPost, error) {
	page, err := s.pageForUser(ctx, userID, skip, take)
	if err != nil {
		return nil, err
	}

	result, err := s.userRepo.ListPosts(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	return result, nil
}

func (s *userService) GetUserComments(ctx context.Context, userID string, skip, take int) ([]*UserComment, error) {
	page, err := s.pageForUser(ctx, userID, skip, take)
	if err != nil {
		return nil, err
	}

	result, err := s.userRepo.ListComments(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list user comments: %w", err)
	}
	return result, nil
}

func (s *userService) GetLikedPosts(ctx context.Context, userID string, skip, take int) ([]*LikedPost, error) {
	page, err := s.pageForUser(ctx, userID, skip, take)
	if err != nil {
		return nil, err
	}

	result, err := s.userRepo.ListLikedPosts(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked posts: %w", err)
	}
	return result, nil
}

func (s *userService) loadWithStats(ctx context.Context, userID string) (*User, *ProfileStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.userRepo.GetProfileStats(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile stats: %w", err)
	}

	return user, stats, nil
}

// pageForUser validates pagination, then checks the user exists
func (s *userService) pageForUser(ctx context.Context, userID string, skip, take int) (pagination.Page, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return pagination.Page{}, err
	}

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return pagination.Page{}, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return pagination.Page{}, ErrUserNotFound
	}
	return page, nil
}

// validateBio trims the bio; an empty result clears the field
func validateBio(raw string) (*string, error) {
	bio := strings.TrimSpace(raw)
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return nil, ErrBioTooLong
	}
	if bio == "" {
		return nil, nil
	}
	return &bio, nil
}

// validateAvatarURL trims the URL; an empty result clears the field
func validateAvatarURL(raw string) (*string, error) {
	avatar := strings.TrimSpace(raw)
	if utf8.RuneCountInString(avatar) > MaxAvatarURLLength {
		return nil, ErrAvatarURLTooLong
	}
	if avatar == "" {
		return nil, nil
	}
	if !isAbsoluteURL(avatar) {
		return nil, ErrInvalidAvatarURL
	}
	return &avatar, nil
}

func isAbsoluteURL(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
