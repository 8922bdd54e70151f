package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LastPassConfig struct {
	APIURL    string `yaml:"apiUrl"`
	CID       string `yaml:"cid" validate:"required"`
	ProvHash  string `yaml:"provhash" validate:"required"`
	TimeStart string `yaml:"timeStart"`
}

type CollectorConfig struct {
	Interval        time.Duration `yaml:"interval" validate:"required|min:1"`
	CheckpointEvery int           `yaml:"checkpointEvery"`
	HTTPTimeout     time.Duration `yaml:"httpTimeout"`
	Source          string        `yaml:"source"`
	Sourcetype      string        `yaml:"sourcetype"`
	RunOnce         bool
}

type CheckpointConfig struct {
	Backend  string      `yaml:"backend" validate:"required|in:file,redis"`
	Key      string      `yaml:"key"`
	FilePath string      `yaml:"filePath"`
	Redis    RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SinkConfig struct {
	Type string    `yaml:"type" validate:"required|in:stdout,hec"`
	HEC  HECConfig `yaml:"hec"`
}

type HECConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Index   string        `yaml:"index"`
	Timeout time.Duration `yaml:"timeout"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type ArchiveConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	LastPass   LastPassConfig   `yaml:"lastpass"`
	Collector  CollectorConfig  `yaml:"collector"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Sink       SinkConfig       `yaml:"sink"`
	WebServer  Server           `yaml:"webServer"`
	Logger     LoggerConfig     `yaml:"logger"`
	Cache      CacheConfig      `yaml:"cache"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	RunOnce    bool
}
