package application

import (
	"context"
	"errors"
	"expvar"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalid2FA    = errors.New("invalid 2fa credentials")
	ErrMissingToken  = errors.New("missing token")
	registeredUsers  = expvar.NewInt("users_registered")
	issued2FACodes   = expvar.NewInt("two_fa_codes_issued")
	defaultTwoFACode = 10 * time.Minute
)

// TwoFANotifier hands a freshly issued code to whatever delivers it.
type TwoFANotifier interface {
	SendCode(ctx context.Context, email entity.Email, code entity.TwoFACode) error
}

// LogNotifier only records that a code was issued. Real delivery lives
// outside this service.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) SendCode(_ context.Context, email entity.Email, _ entity.TwoFACode) error {
	helpers.LogInfo(n.Logger, "2fa code issued", logrus.Fields{"email": email.String()})
	return nil
}

type Service struct {
	Users        repo.UserStore
	BannedTokens repo.BannedTokenStore
	TwoFACodes   repo.TwoFACodeStore
	Notifier     TwoFANotifier
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	TwoFACodeTTL time.Duration
}

func NewService(users repo.UserStore, banned repo.BannedTokenStore, codes repo.TwoFACodeStore, notifier TwoFANotifier, jwt *helpers.JWTManager, logger *logrus.Logger, codeTTL time.Duration) *Service {
	if codeTTL <= 0 {
		codeTTL = defaultTwoFACode
	}
	return &Service{
		Users:        users,
		BannedTokens: banned,
		TwoFACodes:   codes,
		Notifier:     notifier,
		JWT:          jwt,
		Logger:       logger,
		TwoFACodeTTL: codeTTL,
	}
}

// Token is an issued auth token and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// LoginResult carries either a token or, for 2FA users, the pending attempt.
type LoginResult struct {
	Requires2FA    bool
	LoginAttemptID entity.LoginAttemptID
	Token          Token
}

// Signup validates the raw tuple and registers the user.
func (s *Service) Signup(ctx context.Context, rawEmail, rawPassword string, requires2FA bool) error {
	email, err := entity.ParseEmail(rawEmail)
	if err != nil {
		return err
	}
	password, err := entity.ParsePassword(rawPassword)
	if err != nil {
		return err
	}
	if err := s.Users.AddUser(ctx, entity.NewUser(email, password, requires2FA)); err != nil {
		s.logUnexpected(err, "add user failed", email)
		return err
	}
	registeredUsers.Add(1)
	return nil
}

// Login checks credentials and either issues a token or starts a 2FA attempt.
func (s *Service) Login(ctx context.Context, rawEmail, rawPassword string) (LoginResult, error) {
	email, err := entity.ParseEmail(rawEmail)
	if err != nil {
		return LoginResult{}, err
	}
	password, err := entity.ParsePassword(rawPassword)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.Users.ValidateUser(ctx, email, password); err != nil {
		s.logUnexpected(err, "validate user failed", email)
		return LoginResult{}, err
	}
	u, err := s.Users.GetUser(ctx, email)
	if err != nil {
		s.logUnexpected(err, "get user failed", email)
		return LoginResult{}, err
	}

	if u.Requires2FA {
		attempt, err := s.start2FA(ctx, email)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Requires2FA: true, LoginAttemptID: attempt}, nil
	}

	tok, err := s.issueToken(email)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: tok}, nil
}

func (s *Service) start2FA(ctx context.Context, email entity.Email) (entity.LoginAttemptID, error) {
	attempt := entity.NewLoginAttemptID()
	code, err := entity.NewTwoFACode()
	if err != nil {
		return entity.LoginAttemptID{}, repo.Unexpected("generate 2fa code", err)
	}
	if err := s.TwoFACodes.AddCode(ctx, email, attempt, code, s.TwoFACodeTTL); err != nil {
		s.logUnexpected(err, "store 2fa code failed", email)
		return entity.LoginAttemptID{}, err
	}
	if err := s.Notifier.SendCode(ctx, email, code); err != nil {
		err = repo.Unexpected("send 2fa code", err)
		s.logUnexpected(err, "send 2fa code failed", email)
		// drop the undelivered code
		if rmErr := s.TwoFACodes.RemoveCode(ctx, email); rmErr != nil {
			s.logUnexpected(rmErr, "remove undelivered 2fa code failed", email)
		}
		return entity.LoginAttemptID{}, err
	}
	issued2FACodes.Add(1)
	return attempt, nil
}

// Verify2FA redeems a pending code and issues a token. A code can be
// redeemed once.
func (s *Service) Verify2FA(ctx context.Context, rawEmail, rawAttemptID, rawCode string) (Token, error) {
	email, err := entity.ParseEmail(rawEmail)
	if err != nil {
		return Token{}, err
	}
	attempt, err := entity.ParseLoginAttemptID(rawAttemptID)
	if err != nil {
		return Token{}, err
	}
	code, err := entity.ParseTwoFACode(rawCode)
	if err != nil {
		return Token{}, err
	}
	if err := s.TwoFACodes.ConsumeCode(ctx, email, attempt, code); err != nil {
		if errors.Is(err, repo.ErrLoginAttemptNotFound) || errors.Is(err, entity.ErrInvalidTwoFACode) {
			return Token{}, ErrInvalid2FA
		}
		s.logUnexpected(err, "consume 2fa code failed", email)
		return Token{}, err
	}
	return s.issueToken(email)
}

// VerifyToken accepts a well-signed, unexpired token that was not logged out.
func (s *Service) VerifyToken(ctx context.Context, token string) error {
	_, err := s.checkToken(ctx, token)
	return err
}

// Logout bans the token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.checkToken(ctx, token)
	if err != nil {
		return err
	}
	if err := s.BannedTokens.BanToken(ctx, token, s.JWT.Remaining(claims)); err != nil {
		helpers.LogError(s.Logger, "ban token failed", err, logrus.Fields{"email": claims.Email})
		return err
	}
	return nil
}

func (s *Service) checkToken(ctx context.Context, token string) (*helpers.Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	banned, err := s.BannedTokens.IsBanned(ctx, token)
	if err != nil {
		helpers.LogError(s.Logger, "banned token lookup failed", err, nil)
		return nil, err
	}
	if banned {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issueToken(email entity.Email) (Token, error) {
	value, exp, err := s.JWT.GenerateToken(email.String())
	if err != nil {
		err = repo.Unexpected("generate token", err)
		helpers.LogError(s.Logger, "generate token failed", err, logrus.Fields{"email": email.String()})
		return Token{}, err
	}
	return Token{Value: value, ExpiresAt: exp}, nil
}

func (s *Service) logUnexpected(err error, msg string, email entity.Email) {
	if errors.Is(err, repo.ErrUnexpected) {
		helpers.LogError(s.Logger, msg, err, logrus.Fields{"email": email.String()})
	}
}
