package account_service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null"

	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/store"
	"github.com/zsmartex/rebate/types"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const inviteCodeAttempts = 10

var ErrInviteCodeExhausted = errors.New("unable to generate a unique invite code")

// ValidationError is a registration failure. Key is the error key returned
// by the API, Message the text shown to the user.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Key
}

var (
	ErrUsernameRequired  = &ValidationError{Key: "register.username_required", Message: "请输入用户名"}
	ErrEmailRequired     = &ValidationError{Key: "register.email_required", Message: "请输入邮箱地址"}
	ErrEmailInvalid      = &ValidationError{Key: "register.email_invalid", Message: "请输入有效的邮箱地址"}
	ErrEmailTaken        = &ValidationError{Key: "register.email_taken", Message: "该邮箱已被注册"}
	ErrUsernameTaken     = &ValidationError{Key: "register.username_taken", Message: "该用户名已被使用"}
	ErrInviteCodeInvalid = &ValidationError{Key: "register.invite_code_invalid", Message: "无效的邀请码"}
)

type RegisterParams struct {
	Username   string `json:"username" form:"username"`
	Email      string `json:"email" form:"email"`
	InviteCode string `json:"invite_code" form:"invite_code"`
}

type AccountService struct {
	repo store.Repository
	now  func() time.Time
}

func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{
		repo: repo,
		now:  time.Now,
	}
}

// Login selects an existing user. There is no credential check.
func (s *AccountService) Login(uid string) (*models.User, error) {
	return s.repo.GetUserByID(strings.TrimSpace(uid))
}

// ResolveInvite returns the owner of an invite code.
func (s *AccountService) ResolveInvite(code string) (*models.User, error) {
	code = strings.TrimSpace(code)
	if len(code) == 0 {
		return nil, store.ErrRecordNotFound
	}

	return s.repo.GetUserByInviteCode(code)
}

// Validate checks params in order and reports the first failure. It returns
// the inviter when a valid invite code was given.
func (s *AccountService) Validate(params RegisterParams) (*models.User, error) {
	// only the username is trimmed; the email and invite code are checked as typed
	username := strings.TrimSpace(params.Username)
	email := params.Email
	invite_code := params.InviteCode

	if len(username) == 0 {
		return nil, ErrUsernameRequired
	}
	if len(strings.TrimSpace(email)) == 0 {
		return nil, ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if _, err := s.repo.GetUserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	if len(invite_code) == 0 {
		return nil, nil
	}

	inviter, err := s.repo.GetUserByInviteCode(invite_code)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, ErrInviteCodeInvalid
	} else if err != nil {
		return nil, err
	}

	return inviter, nil
}

// Register creates a user from params. A *ValidationError is returned when
// params are rejected.
func (s *AccountService) Register(params RegisterParams) (*models.User, error) {
	inviter, err := s.Validate(params)
	if err != nil {
		return nil, err
	}

	invite_code, err := s.generateInviteCode()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &models.User{
		UID:        "user_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Username:   strings.TrimSpace(params.Username),
		Email:      params.Email,
		InviteCode: invite_code,
		CreatedAt:  now,
	}

	var invite *models.InviteRecord
	if inviter != nil {
		user.InviterUID = null.StringFrom(inviter.UID)
		invite = &models.InviteRecord{
			ID:         "invite_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
			InviterUID: inviter.UID,
			InviteeUID: user.UID,
			InviteCode: inviter.InviteCode,
			Timestamp:  now,
			Status:     types.InviteStatusActive,
		}
	}

	if err := s.repo.CreateUser(user, invite); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			// lost a race against a concurrent registration
			return nil, s.retryValidation(params, err)
		}

		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *AccountService) retryValidation(params RegisterParams, cause error) error {
	if _, err := s.Validate(params); err != nil {
		return err
	}

	return cause
}

func (s *AccountService) generateInviteCode() (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		id := uuid.New()
		code := "INV" + strings.ToUpper(fmt.Sprintf("%x", id[:3]))

		if _, err := s.repo.GetUserByInviteCode(code); errors.Is(err, store.ErrRecordNotFound) {
			return code, nil
		}
	}

	return "", ErrInviteCodeExhausted
}
