package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

const (
	otpTTL         = 5 * time.Minute
	maxOTPAttempts = 3
	tokenTTL       = 7 * 24 * time.Hour
)

var emailRx = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type OTPMailer interface {
	SendOTP(ctx context.Context, recipient, code string) error
}

// RateLimiter throttles OTP requests per key. A limiter error is treated as
// "allow" so an unavailable limiter never locks users out.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

type AuthClaims struct {
	UserID  string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

type AdminConfig struct {
	Email    string
	Name     string
	Password string
	Phone    string
}

type AuthUseCase struct {
	userRepo repositories.UserRepository
	mailer   OTPMailer
	limiter  RateLimiter
	google   GoogleVerifier
	secret   []byte
	admin    AdminConfig
	logger   *logger.Logger
}

func NewAuthUseCase(
	userRepo repositories.UserRepository,
	mailer OTPMailer,
	limiter RateLimiter,
	google GoogleVerifier,
	secret []byte,
	admin AdminConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		mailer:   mailer,
		limiter:  limiter,
		google:   google,
		secret:   secret,
		admin:    admin,
		logger:   log,
	}
}

// Register creates (or refreshes) an unverified account and mails a one-time
// code. Verified accounts must log in instead.
func (uc *AuthUseCase) Register(ctx context.Context, name, email, password, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" || password == "" || !emailRx.MatchString(email) {
		return fmt.Errorf("%w: name, valid email and password are required", ErrInvalidCredentials)
	}
	if err := uc.throttleOTP(ctx, email); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil && user.IsVerified {
		return repositories.ErrUserAlreadyExists
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	expires := time.Now().Add(otpTTL)

	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user = &entities.User{
			UserID:       uuid.New().String(),
			Name:         name,
			Email:        strings.ToLower(email),
			Phone:        sanitizePhone(phone),
			PasswordHash: string(hash),
			OTPHash:      hashOTP(code),
			OTPExpires:   &expires,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		user.OTPHash = hashOTP(code)
		user.OTPExpires = &expires
		user.OTPAttempts = 0
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	if err := uc.mailer.SendOTP(ctx, user.Email, code); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

// VerifyOTP checks the registration code and, on success, marks the account
// verified and issues a token.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, email, otp string) (string, *entities.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if err := uc.checkOTP(ctx, user, otp); err != nil {
		return "", nil, err
	}

	user.IsVerified = true
	user.ClearOTP()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to update user: %w", err)
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, *entities.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}
	if user.IsBlocked {
		return "", nil, ErrUserBlocked
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GoogleLogin validates a Google ID token and signs the user in, creating a
// verified account on first sight.
func (uc *AuthUseCase) GoogleLogin(ctx context.Context, idToken string) (string, *entities.User, error) {
	if idToken == "" {
		return "", nil, ErrInvalidCredentials
	}
	profile, err := uc.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: google token rejected", ErrInvalidCredentials)
	}

	user, err := uc.userRepo.GetByEmail(ctx, profile.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		user = &entities.User{
			UserID:     uuid.New().String(),
			Name:       profile.Name,
			Email:      strings.ToLower(profile.Email),
			Avatar:     profile.Picture,
			GoogleID:   profile.Subject,
			IsVerified: true,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return "", nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return "", nil, err
	}
	if user.IsBlocked {
		return "", nil, ErrUserBlocked
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	if !emailRx.MatchString(email) {
		return fmt.Errorf("%w: valid email required", ErrInvalidCredentials)
	}
	if err := uc.throttleOTP(ctx, email); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	expires := time.Now().Add(otpTTL)
	user.OTPHash = hashOTP(code)
	user.OTPExpires = &expires
	user.OTPAttempts = 0
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := uc.mailer.SendOTP(ctx, user.Email, code); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func (uc *AuthUseCase) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password required", ErrInvalidCredentials)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := uc.checkOTP(ctx, user, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.ClearOTP()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Authenticate resolves a token's subject to a live account, rejecting
// unverified and blocked users. The JWT itself is validated at the transport
// layer.
func (uc *AuthUseCase) Authenticate(ctx context.Context, userID string) (*entities.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}
	return user, nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*entities.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID, name, phone, avatar string) (*entities.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = sanitizePhone(phone)
	}
	if avatar = strings.TrimSpace(avatar); avatar != "" {
		user.Avatar = avatar
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// AdminSendOTP starts the admin OTP login. Only the configured admin address
// is eligible; the account is bootstrapped on demand.
func (uc *AuthUseCase) AdminSendOTP(ctx context.Context, email string) error {
	if !strings.EqualFold(email, uc.admin.Email) {
		return ErrForbidden
	}
	user, err := uc.EnsureAdmin(ctx)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	expires := time.Now().Add(otpTTL)
	user.OTPHash = hashOTP(code)
	user.OTPExpires = &expires
	user.OTPAttempts = 0
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update admin user: %w", err)
	}

	if err := uc.mailer.SendOTP(ctx, user.Email, code); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

// AdminVerifyOTP completes the admin OTP login, blocking the account after
// three consecutive failures.
func (uc *AuthUseCase) AdminVerifyOTP(ctx context.Context, email, otp string) (string, *entities.User, error) {
	if !strings.EqualFold(email, uc.admin.Email) {
		return "", nil, ErrForbidden
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user.OTPHash == "" {
		return "", nil, ErrInvalidOTP
	}
	if user.OTPExpired(time.Now()) {
		user.ClearOTP()
		_ = uc.userRepo.Update(ctx, user)
		return "", nil, ErrOTPExpired
	}
	if hashOTP(otp) != user.OTPHash {
		user.OTPAttempts++
		if user.OTPAttempts >= maxOTPAttempts {
			user.IsBlocked = true
			_ = uc.userRepo.Update(ctx, user)
			return "", nil, ErrUserBlocked
		}
		_ = uc.userRepo.Update(ctx, user)
		return "", nil, ErrInvalidOTP
	}

	user.ClearOTP()
	user.IsBlocked = false
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to update admin user: %w", err)
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// EnsureAdmin idempotently creates (or repairs) the configured admin account.
// Run at startup so no request path ever has to mint the admin identity.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context) (*entities.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, uc.admin.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		hash, herr := bcrypt.GenerateFromPassword([]byte(uc.admin.Password), bcrypt.DefaultCost)
		if herr != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", herr)
		}
		user = &entities.User{
			UserID:       uuid.New().String(),
			Name:         uc.admin.Name,
			Email:        strings.ToLower(uc.admin.Email),
			Phone:        uc.admin.Phone,
			PasswordHash: string(hash),
			IsVerified:   true,
			IsAdmin:      true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if cerr := uc.userRepo.Create(ctx, user); cerr != nil {
			return nil, fmt.Errorf("failed to create admin user: %w", cerr)
		}
		uc.logger.Info("admin account created", "email", user.Email)
		return user, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin || !user.IsVerified {
		user.IsAdmin = true
		user.IsVerified = true
		if uerr := uc.userRepo.Update(ctx, user); uerr != nil {
			return nil, fmt.Errorf("failed to promote admin user: %w", uerr)
		}
	}
	return user, nil
}

func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *AuthUseCase) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	return uc.userRepo.Delete(ctx, userID)
}

// ToggleBlock flips the blocked flag and returns the updated user.
func (uc *AuthUseCase) ToggleBlock(ctx context.Context, userID string) (*entities.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsBlocked = !user.IsBlocked
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (uc *AuthUseCase) ParseToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

func (uc *AuthUseCase) issueToken(user *entities.User) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:  user.UserID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (uc *AuthUseCase) throttleOTP(ctx context.Context, email string) error {
	if uc.limiter == nil {
		return nil
	}
	allowed, err := uc.limiter.Allow(ctx, "otp:"+strings.ToLower(email))
	if err != nil {
		uc.logger.Warn("OTP rate limiter unavailable", "error", err)
		return nil
	}
	if !allowed {
		return ErrOTPThrottled
	}
	return nil
}

func (uc *AuthUseCase) checkOTP(ctx context.Context, user *entities.User, otp string) error {
	if user.OTPHash == "" {
		return ErrInvalidOTP
	}
	if user.OTPExpired(time.Now()) {
		user.ClearOTP()
		_ = uc.userRepo.Update(ctx, user)
		return ErrOTPExpired
	}
	if hashOTP(strings.TrimSpace(otp)) != user.OTPHash {
		return ErrInvalidOTP
	}
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func sanitizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}
