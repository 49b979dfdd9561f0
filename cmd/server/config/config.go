package config

import (
	"fmt"
	"time"
)

// BaseConfig is the root configuration document loaded by go-config. Values
// come from config files and environment overrides.
type BaseConfig struct {
	App         App         `json:"app"`
	Server      Server      `json:"server"`
	Auth        Auth        `json:"auth"`
	Persistence Persistence `json:"persistence"`
}

func (c *BaseConfig) Validate() error {
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("auth.signing_key is required, refusing to start without a secret")
	}
	return nil
}

func (c *BaseConfig) GetApp() App                 { return c.App }
func (c *BaseConfig) GetServer() Server           { return c.Server }
func (c *BaseConfig) GetAuth() Auth               { return c.Auth }
func (c *BaseConfig) GetPersistence() Persistence { return c.Persistence }

type App struct {
	Name  string `json:"name"`
	Debug bool   `json:"debug"`
}

func (a App) GetName() string {
	if a.Name == "" {
		return "titanic-api"
	}
	return a.Name
}

func (a App) GetDebug() bool { return a.Debug }

type Server struct {
	Address string `json:"address"`
}

func (s Server) GetAddress() string {
	if s.Address == "" {
		return ":8000"
	}
	return s.Address
}

// Auth satisfies the auth package Config interface.
type Auth struct {
	SigningKey string `json:"signing_key"`
	// SigningMethod defaults to HS256, the only method tokens are ever
	// verified against
	SigningMethod string `json:"signing_method"`
	ContextKey    string `json:"context_key"`
	// TokenExpirationMinutes is the access token lifetime
	TokenExpirationMinutes int      `json:"token_expiration_minutes"`
	TokenLookup            string   `json:"token_lookup"`
	AuthScheme             string   `json:"auth_scheme"`
	Issuer                 string   `json:"issuer"`
	Audience               []string `json:"audience"`
}

func (a Auth) GetSigningKey() string { return a.SigningKey }

func (a Auth) GetSigningMethod() string {
	if a.SigningMethod == "" {
		return "HS256"
	}
	return a.SigningMethod
}

func (a Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "user"
	}
	return a.ContextKey
}

func (a Auth) GetTokenTTL() time.Duration {
	if a.TokenExpirationMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.TokenExpirationMinutes) * time.Minute
}

func (a Auth) GetTokenLookup() string {
	if a.TokenLookup == "" {
		return "header:Authorization"
	}
	return a.TokenLookup
}

func (a Auth) GetAuthScheme() string {
	if a.AuthScheme == "" {
		return "Bearer"
	}
	return a.AuthScheme
}

func (a Auth) GetIssuer() string {
	if a.Issuer == "" {
		return "titanic-api"
	}
	return a.Issuer
}

func (a Auth) GetAudience() []string {
	if len(a.Audience) == 0 {
		return []string{"titanic-api"}
	}
	return a.Audience
}

type Persistence struct {
	DSN                   string `json:"dsn"`
	Debug                 bool   `json:"debug"`
	PingTimeoutExpression string `json:"ping_timeout"`
}

func (p Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file:titanic.db?cache=shared&mode=rwc"
	}
	return p.DSN
}

func (p Persistence) GetDebug() bool { return p.Debug }

func (p Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}
