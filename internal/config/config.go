package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variables override file values, e.g. RELAY_ADMIN_PHONE for admin.phone.
const envPrefix = "RELAY"

// Config keys. The env name of each key is RELAY_ + upper(key) with dots as underscores.
const (
	KeyPort          = "port"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyDBPath        = "db.path"
	KeySigningKey    = "auth.signing_key"
	KeyTokenTTL      = "auth.token_ttl"
	KeyAllowSignUp   = "auth.allow_sign_up"
	KeyAdminPhone    = "admin.phone"
	KeySecretCommand = "admin.secret_command"
	KeyStationSSID   = "wifi.station.ssid"
	KeyStationPass   = "wifi.station.pass"
	KeyAPSSID        = "wifi.access_point.ssid"
	KeyAPPass        = "wifi.access_point.pass"
	KeyAPChannel     = "wifi.access_point.channel"
	KeyAPHidden      = "wifi.access_point.hidden"
	KeyRelayPulse    = "relay.pulse"
	KeyRelayTick     = "relay.tick"
)

const (
	defaultConfigDir  = "configs"
	defaultConfigName = "config"
	defaultPort       = "8080"
	defaultLogLevel   = "info"
	defaultDBPath     = "app.db"
	defaultTokenTTL   = time.Hour
	defaultAPChannel  = 1
	defaultRelayPulse = 5 * time.Second
	defaultRelayTick  = time.Second

	redactedPlaceholder = "********"
)

// ErrInvalidSettings is wrapped by every validation failure returned from Load.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the configuration bundle built once at start-up.
// It is passed by value; no component keeps a pointer to a shared copy.
// It marshals to YAML in the config file layout (see fileLayout).
type Settings struct {
	Port string `key:"port" validate:"required"`
	Log  LogSettings
	DB   DBSettings
	Auth AuthSettings

	// AdminPhone is the only sender allowed to issue relay commands.
	AdminPhone string `key:"admin.phone" validate:"required,phone"`
	// SecretCommand is the single-token keyword that triggers the relay.
	SecretCommand string `key:"admin.secret_command" validate:"required,token"`

	Station     StationSettings
	AccessPoint AccessPointSettings

	Relay RelaySettings
}

type LogSettings struct {
	Level string `yaml:"level" key:"log.level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file,omitempty" key:"log.file"`
}

type DBSettings struct {
	Path string `yaml:"path" key:"db.path" validate:"required"`
}

type AuthSettings struct {
	SigningKey string        `yaml:"signing_key" key:"auth.signing_key" validate:"required"`
	TokenTTL   time.Duration `yaml:"token_ttl" key:"auth.token_ttl" validate:"gt=0"`

	// AllowSignUp opens anonymous registration. When false only the first
	// operator registers anonymously; later ones need an operator's token.
	AllowSignUp bool `yaml:"allow_sign_up" key:"auth.allow_sign_up"`
}

// StationSettings holds the credentials used to join an existing Wi-Fi network.
type StationSettings struct {
	SSID string `yaml:"ssid" key:"wifi.station.ssid" validate:"required,max=32"`
	Pass string `yaml:"pass" key:"wifi.station.pass" validate:"required,min=8,max=63"`
}

// AccessPointSettings describes the network the device hosts itself.
type AccessPointSettings struct {
	SSID    string `yaml:"ssid" key:"wifi.access_point.ssid" validate:"required,max=32"`
	Pass    string `yaml:"pass" key:"wifi.access_point.pass" validate:"required,min=8,max=63"`
	Channel int    `yaml:"channel" key:"wifi.access_point.channel" validate:"min=1,max=13"`
	Hidden  bool   `yaml:"hidden" key:"wifi.access_point.hidden"`
}

type RelaySettings struct {
	// Pulse is how long an SMS-triggered activation keeps the relay energized.
	Pulse time.Duration `yaml:"pulse" key:"relay.pulse" validate:"min=1s,max=1h"`
	Tick  time.Duration `yaml:"tick" key:"relay.tick" validate:"min=100ms,max=1m"`
}

// Load reads the settings from path (or configs/config.yml when path is empty),
// applies RELAY_* environment overrides and validates the result.
// A missing default file is tolerated so that a deployment can be configured
// from the environment alone; a missing explicit path is an error.
func Load(path string) (Settings, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
			return Settings{}, fmt.Errorf("read config: %w", err)
		default:
			// the file exists but does not parse
			return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, v.ConfigFileUsed(), err)
		}
	}
	return FromViper(v)
}

// FromViper builds and validates Settings from an already populated viper instance.
func FromViper(v *viper.Viper) (Settings, error) {
	s := Settings{
		Port: strings.TrimPrefix(v.GetString(KeyPort), ":"),
		Log: LogSettings{
			Level: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			File:  v.GetString(KeyLogFile),
		},
		DB: DBSettings{Path: v.GetString(KeyDBPath)},
		Auth: AuthSettings{
			SigningKey:  v.GetString(KeySigningKey),
			TokenTTL:    v.GetDuration(KeyTokenTTL),
			AllowSignUp: v.GetBool(KeyAllowSignUp),
		},
		AdminPhone:    v.GetString(KeyAdminPhone),
		SecretCommand: v.GetString(KeySecretCommand),
		Station: StationSettings{
			SSID: v.GetString(KeyStationSSID),
			Pass: v.GetString(KeyStationPass),
		},
		AccessPoint: AccessPointSettings{
			SSID:    v.GetString(KeyAPSSID),
			Pass:    v.GetString(KeyAPPass),
			Channel: v.GetInt(KeyAPChannel),
			Hidden:  v.GetBool(KeyAPHidden),
		},
		Relay: RelaySettings{
			Pulse: v.GetDuration(KeyRelayPulse),
			Tick:  v.GetDuration(KeyRelayTick),
		},
	}
	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultConfigDir) // configs/config.yml
		v.SetConfigName(defaultConfigName)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyPort, defaultPort)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyDBPath, defaultDBPath)
	v.SetDefault(KeyTokenTTL, defaultTokenTTL)
	v.SetDefault(KeyAllowSignUp, false)
	v.SetDefault(KeyAPChannel, defaultAPChannel)
	v.SetDefault(KeyAPHidden, false)
	v.SetDefault(KeyRelayPulse, defaultRelayPulse)
	v.SetDefault(KeyRelayTick, defaultRelayTick)
	return v
}

// Redacted returns a copy safe to print: passwords and the signing key are
// replaced and the admin phone is masked.
func (s Settings) Redacted() Settings {
	out := s
	out.Auth.SigningKey = redact(s.Auth.SigningKey)
	out.AdminPhone = MaskPhone(s.AdminPhone)
	out.SecretCommand = redact(s.SecretCommand)
	out.Station.Pass = redact(s.Station.Pass)
	out.AccessPoint.Pass = redact(s.AccessPoint.Pass)
	return out
}

// MaskPhone keeps the country prefix and the last three characters of a number.
// It works on runes so arbitrary sender strings stay valid UTF-8.
func MaskPhone(phone string) string {
	const keepHead, keepTail = 5, 3
	r := []rune(phone)
	if len(r) <= keepHead+keepTail {
		return strings.Repeat("*", len(r))
	}
	return string(r[:keepHead]) + strings.Repeat("*", len(r)-keepHead-keepTail) + string(r[len(r)-keepTail:])
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return redactedPlaceholder
}
