package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "caller"

var signingMethod = jwt.SigningMethodHS256

// AccountReader loads the account a token refers to.
type AccountReader interface {
	Get(ctx context.Context, id kernel.ID) (*account.Account, error)
}

// Authenticator resolves the caller of a request from its bearer token.
//
// Tokens are HS256 JWTs whose subject is the account id. Role and status are never
// taken from the token: the account is loaded on every request so a blocked account
// loses access immediately.
type Authenticator struct {
	secret   []byte
	accounts AccountReader
}

// NewAuthenticator creates an authenticator.
func NewAuthenticator(secret string, accounts AccountReader) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if accounts == nil {
		return nil, errors.New("account reader is required")
	}
	return &Authenticator{secret: []byte(secret), accounts: accounts}, nil
}

// Middleware rejects requests without a valid token with 401 and stores the
// access.Caller in the echo context otherwise.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := a.subject(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			acc, err := a.accounts.Get(c.Request().Context(), id)
			if errors.Is(err, errs.ErrObjectNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
			}
			if err != nil {
				return err
			}

			c.Set(callerKey, access.NewCaller(acc))
			return next(c)
		}
	}
}

func (a *Authenticator) subject(header string) (kernel.ID, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, errors.New("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		strings.TrimSpace(raw),
		claims,
		func(*jwt.Token) (interface{}, error) {
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
	)
	if err != nil {
		return 0, errors.New("invalid token")
	}

	id, err := kernel.ParseID(claims.Subject)
	if err != nil {
		return 0, errors.New("invalid token subject")
	}
	return id, nil
}

// SignToken issues a token for an account; the subject of claims is overwritten.
func SignToken(secret string, accountID kernel.ID, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = accountID.String()
	return jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secret))
}

func callerFrom(c echo.Context) (access.Caller, error) {
	caller, ok := c.Get(callerKey).(access.Caller)
	if !ok {
		return access.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "caller is not authenticated")
	}
	return caller, nil
}
