package processor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"storefront-server/internal/clients/platform"
	"storefront-server/internal/i18n"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"

	"golang.org/x/crypto/bcrypt"
)

const maxNameLength = 100

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name is too long")
	ErrInvalidMobile      = errors.New("invalid mobile number")
)

// AdminCredentials is the placeholder admin account. An empty hash disables
// the local admin login.
type AdminCredentials struct {
	Login        string
	PasswordHash string
}

type AuthProcessor struct {
	store    AuthStore
	platform PlatformAuth
	admin    AdminCredentials
	logger   *observability.Logger
}

func New(store AuthStore, platform PlatformAuth, admin AdminCredentials, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:    store,
		platform: platform,
		admin:    admin,
		logger:   logger,
	}
}

type RegisterRequest struct {
	Mobile       string
	Username     string
	Password     string
	Email        string
	ReferralCode string
}

// Register creates the remote account and marks the session as a signed in
// user. ref, the code from the signup link, wins over the typed one.
func (p *AuthProcessor) Register(ctx context.Context, sessionID string, req RegisterRequest, ref string) (store.Profile, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	typed := strings.ToUpper(strings.TrimSpace(req.ReferralCode))

	user, err := p.platform.Register(ctx, platform.RegisterRequest{
		MobileNo:         strings.TrimSpace(req.Mobile),
		Username:         strings.TrimSpace(req.Username),
		Password:         req.Password,
		Email:            strings.TrimSpace(req.Email),
		ReferralCodeUsed: typed,
	}, ref)
	if err != nil {
		p.logger.Error(ctx, "failed to register on platform", err)
		return store.Profile{}, err
	}

	used := ref
	if used == "" {
		used = typed
	}

	profile, err := p.store.UpdateProfile(ctx, sessionID, func(pr *store.Profile) error {
		pr.Name = user.Username
		pr.Mobile = user.MobileNo
		pr.Email = user.Email
		pr.Role = store.RoleUser
		pr.ReferralCode = used
		pr.Authenticated = true
		return nil
	})
	if err != nil {
		p.logger.Error(ctx, "failed to save profile after register", err)
		return store.Profile{}, err
	}

	p.logger.Info(ctx, "user registered")
	return profile, nil
}

// Login checks the configured admin account first. Anything else is a
// normal user login against the platform.
func (p *AuthProcessor) Login(ctx context.Context, sessionID, login, password string) (store.Profile, error) {
	login = strings.TrimSpace(login)

	if p.isAdminLogin(login) {
		if err := bcrypt.CompareHashAndPassword([]byte(p.admin.PasswordHash), []byte(password)); err != nil {
			p.logger.Warn(ctx, "admin login rejected")
			return store.Profile{}, ErrInvalidCredentials
		}
		return p.saveLogin(ctx, sessionID, func(pr *store.Profile) {
			pr.Email = p.admin.Login
			pr.Role = store.RoleAdmin
		})
	}

	resp, err := p.platform.Login(ctx, platform.LoginRequest{MobileNo: login, Password: password})
	if err != nil {
		var perr *platform.Error
		if errors.As(err, &perr) && isCredentialRejection(perr.StatusCode) {
			return store.Profile{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, perr.Message)
		}
		p.logger.Error(ctx, "failed to login on platform", err)
		return store.Profile{}, err
	}

	return p.saveLogin(ctx, sessionID, func(pr *store.Profile) {
		pr.Name = resp.Username
		pr.Mobile = resp.MobileNo
		pr.Email = resp.Email
		pr.Role = store.RoleUser
		if resp.ReferralCode != "" {
			pr.ReferralCode = resp.ReferralCode
		}
	})
}

func (p *AuthProcessor) isAdminLogin(login string) bool {
	return p.admin.PasswordHash != "" && strings.EqualFold(login, p.admin.Login)
}

func isCredentialRejection(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden
}

func (p *AuthProcessor) saveLogin(ctx context.Context, sessionID string, fn func(pr *store.Profile)) (store.Profile, error) {
	profile, err := p.store.UpdateProfile(ctx, sessionID, func(pr *store.Profile) error {
		fn(pr)
		pr.Authenticated = true
		return nil
	})
	if err != nil {
		p.logger.Error(ctx, "failed to save profile after login", err)
		return store.Profile{}, err
	}

	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "role", Value: profile.Role}), "session logged in")
	return profile, nil
}

// Logout clears the role, email and auth flags. Name, mobile and language
// stay with the session.
func (p *AuthProcessor) Logout(ctx context.Context, sessionID string) error {
	_, err := p.store.UpdateProfile(ctx, sessionID, func(pr *store.Profile) error {
		pr.Role = ""
		pr.Email = ""
		pr.Authenticated = false
		return nil
	})
	if err != nil {
		p.logger.Error(ctx, "failed to clear profile on logout", err)
		return err
	}
	return nil
}

func (p *AuthProcessor) GetProfile(ctx context.Context, sessionID string) (store.Profile, error) {
	profile, err := p.store.GetProfile(ctx, sessionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get profile", err)
		return store.Profile{}, err
	}
	if profile.Language == "" {
		profile.Language = i18n.DefaultLanguage
	}
	return profile, nil
}

// IsAdmin reports whether the session is logged in with the admin role.
func (p *AuthProcessor) IsAdmin(ctx context.Context, sessionID string) (bool, error) {
	profile, err := p.store.GetProfile(ctx, sessionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get profile", err)
		return false, err
	}
	return profile.IsAdmin(), nil
}

// UpdateProfile saves the contact details the vouchers require.
func (p *AuthProcessor) UpdateProfile(ctx context.Context, sessionID, name, mobile string) (store.Profile, error) {
	name = strings.TrimSpace(name)
	mobile = strings.ReplaceAll(strings.TrimSpace(mobile), " ", "")

	switch {
	case name == "":
		return store.Profile{}, ErrNameRequired
	case len([]rune(name)) > maxNameLength:
		return store.Profile{}, ErrNameTooLong
	case mobile != "" && !mobilePattern.MatchString(mobile):
		return store.Profile{}, ErrInvalidMobile
	}

	profile, err := p.store.UpdateProfile(ctx, sessionID, func(pr *store.Profile) error {
		pr.Name = name
		pr.Mobile = mobile
		return nil
	})
	if err != nil {
		p.logger.Error(ctx, "failed to update profile", err)
		return store.Profile{}, err
	}
	return profile, nil
}

func (p *AuthProcessor) SetLanguage(ctx context.Context, sessionID, lang string) (store.Profile, error) {
	lang = i18n.Normalize(lang)
	if !i18n.Supported(lang) {
		return store.Profile{}, fmt.Errorf("%q: %w", lang, i18n.ErrUnsupportedLanguage)
	}

	profile, err := p.store.UpdateProfile(ctx, sessionID, func(pr *store.Profile) error {
		pr.Language = lang
		return nil
	})
	if err != nil {
		p.logger.Error(ctx, "failed to set language", err)
		return store.Profile{}, err
	}
	return profile, nil
}
