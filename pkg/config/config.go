// Package config는 애플리케이션 설정을 관리하는 패키지입니다.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 인터페이스는 설정 값에 액세스하기 위한 메서드를 정의합니다.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetFloat64(key string) float64
	GetDuration(key string) time.Duration
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	IsSet(key string) bool
	GetAll() map[string]interface{}
}

// viperConfig는 viper를 사용하여 Config 인터페이스를 구현합니다.
type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string                    { return c.v.GetString(key) }
func (c *viperConfig) GetInt(key string) int                          { return c.v.GetInt(key) }
func (c *viperConfig) GetBool(key string) bool                        { return c.v.GetBool(key) }
func (c *viperConfig) GetFloat64(key string) float64                  { return c.v.GetFloat64(key) }
func (c *viperConfig) GetDuration(key string) time.Duration           { return c.v.GetDuration(key) }
func (c *viperConfig) GetStringSlice(key string) []string             { return c.v.GetStringSlice(key) }
func (c *viperConfig) GetStringMap(key string) map[string]interface{} { return c.v.GetStringMap(key) }
func (c *viperConfig) IsSet(key string) bool                          { return c.v.IsSet(key) }
func (c *viperConfig) GetAll() map[string]interface{}                 { return c.v.AllSettings() }

// 설정 디렉토리 경로
const configDir = "configs"

type options struct {
	defaults   map[string]interface{}
	dotenvPath string
	optional   bool
}

// Option은 Load 동작을 변경합니다.
type Option func(*options)

// WithDefaults는 설정 파일과 환경 변수에 값이 없을 때 사용할 기본값을 지정합니다.
func WithDefaults(defaults map[string]interface{}) Option {
	return func(o *options) { o.defaults = defaults }
}

// WithDotenv는 .env 파일을 읽어 아직 설정되지 않은 환경 변수로 등록합니다.
// 파일이 없으면 무시합니다.
func WithDotenv(path string) Option {
	return func(o *options) { o.dotenvPath = path }
}

// WithOptionalFile은 설정 파일이 없어도 기본값과 환경 변수만으로 로드를 허용합니다.
func WithOptionalFile() Option {
	return func(o *options) { o.optional = true }
}

// Load는 지정된 서비스 이름에 해당하는 설정 파일을 로드합니다.
// 우선순위: 환경 변수 > 설정 파일 > 기본값
func Load(serviceName string, opts ...Option) (Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.dotenvPath != "" {
		if err := loadDotenv(o.dotenvPath); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	for key, value := range o.defaults {
		v.SetDefault(key, value)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	v.SetConfigType("yaml")

	// PAYMENT_DATABASE_HOST -> database.host
	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}

	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		// configs/example 디렉토리에서 예제 설정 파일 시도
		v.AddConfigPath(filepath.Join(configDir, "example"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !o.optional || !errors.As(err, &notFound) {
				return nil, fmt.Errorf("설정 파일 로드 실패: %w", err)
			}
		}
	}

	return &viperConfig{v: v}, nil
}

// loadDotenv는 dotenv 형식 파일을 viper로 파싱하여 환경 변수에 반영합니다.
// 이미 설정된 환경 변수는 덮어쓰지 않습니다.
func loadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return fmt.Errorf(".env 파일 로드 실패: %w", err)
	}

	for _, key := range dv.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, dv.GetString(key)); err != nil {
			return fmt.Errorf("환경 변수 설정 실패 %s: %w", name, err)
		}
	}
	return nil
}
