// Package config는 viper 기반 서비스 설정 로더입니다.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config는 서비스가 설정 값을 읽을 때 사용하는 인터페이스입니다.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	GetStringSlice(key string) []string
	IsSet(key string) bool
}

// 설정 디렉토리 경로
const configDir = "configs"

// Load는 configs/{APP_ENV}/{serviceName}.yaml을 읽고, 없으면 configs/example을 시도합니다.
// {SERVICENAME}_SECTION_KEY 형태의 환경 변수가 파일 값을 덮어씁니다.
// defaults는 파일과 환경 변수 모두에 값이 없을 때 사용됩니다.
func Load(serviceName string, defaults map[string]interface{}) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(serviceName)

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}
	v.AddConfigPath(configPath)
	v.AddConfigPath(filepath.Join(configDir, "example"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("설정 파일 로드 실패 (%s): %w", serviceName, err)
	}

	return v, nil
}

// FromMap은 파일 없이 맵에서 설정을 만듭니다. 테스트용입니다.
func FromMap(values map[string]interface{}) Config {
	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}
