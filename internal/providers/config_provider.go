package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"lpec/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("collector.checkpointEvery", 1000)
	viper.SetDefault("collector.httpTimeout", 60*time.Second)
	viper.SetDefault("collector.source", "lastpass_event_reporting")
	viper.SetDefault("collector.sourcetype", "lastpass:activity")
	viper.SetDefault("checkpoint.backend", "file")
	viper.SetDefault("checkpoint.key", "LastPass_reporting")
	viper.SetDefault("sink.type", "stdout")
	viper.SetDefault("cache.ttl", 24*time.Hour)

	viper.BindEnv("lastpass.cid", "LPEC_CID")
	viper.BindEnv("lastpass.provhash", "LPEC_PROVHASH")
	viper.BindEnv("lastpass.apiUrl", "LPEC_API_URL")
	viper.BindEnv("logger.level", "LPEC_LOG_LEVEL")
	viper.BindEnv("collector.interval", "LPEC_COLLECT_INTERVAL")
	viper.BindEnv("checkpoint.backend", "LPEC_CHECKPOINT_BACKEND")
	viper.BindEnv("checkpoint.redis.addr", "LPEC_REDIS_ADDR")
	viper.BindEnv("sink.hec.token", "LPEC_HEC_TOKEN")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "LastPassEventCollector"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	conf.Collector.RunOnce = flags.RunOnce

	return &conf, nil
}
