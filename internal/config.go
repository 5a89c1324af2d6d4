package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/query"
	"github.com/starford/raido/internal/sorting"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Date filter defaults.
const (
	DateFieldModified = "modified"
	DateFieldCreated  = "created"

	DateOrderDMY = "dmy"
	DateOrderMDY = "mdy"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
	Search SearchConfig      `yaml:"search"`
	Sort   sorting.Spec      `yaml:"sort"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Sort.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// SearchConfig tunes the filter query language.
type SearchConfig struct {
	// DefaultDateField selects which timestamp an unprefixed @date
	// clause targets: "modified" or "created".
	DefaultDateField string `yaml:"default_date_field"`
	// DateOrder disambiguates numeric dates like 7/2/2026: "dmy" or "mdy".
	DateOrder string `yaml:"date_order"`
	// Locale is a BCP-47 tag for natural sort collation ("" = neutral).
	Locale string `yaml:"locale"`
	// MatchAliases extends name matching to frontmatter aliases.
	MatchAliases bool `yaml:"match_aliases"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	if c.DefaultDateField == "" {
		c.DefaultDateField = DateFieldModified
	}
	if c.DateOrder == "" {
		c.DateOrder = DateOrderDMY
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultDateField, validation.In(DateFieldModified, DateFieldCreated)),
		validation.Field(&c.DateOrder, validation.In(DateOrderDMY, DateOrderMDY)),
	)
}

// Parser builds the query parser configured by this section.
func (c *SearchConfig) Parser() *query.Parser {
	p := query.NewParser()
	if c.DefaultDateField == DateFieldCreated {
		p.DefaultDateField = query.FieldCreated
	}
	if c.DateOrder == DateOrderMDY {
		p.DateOrder = query.OrderMDY
	}
	return p
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		SQLite: SQLiteConfig{
			Path: "./raido.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Search: SearchConfig{
			DefaultDateField: DateFieldModified,
			DateOrder:        DateOrderDMY,
			MatchAliases:     true,
		},
		Sort: sorting.DefaultSpec(),
	}
}
