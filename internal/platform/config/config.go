package config

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	LLM      LLMConfig      `yaml:"llm"`
	Web      WebConfig      `yaml:"web"`
}

type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// AuthConfig drives session token issuance and verification.
// Secret is only accepted from the environment, never from the yaml file.
type AuthConfig struct {
	Secret       string   `yaml:"-"`
	SessionTTL   Duration `yaml:"session_ttl"`
	CookieName   string   `yaml:"cookie_name"`
	SecureCookie bool     `yaml:"secure_cookie"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addr     string   `yaml:"addr"`
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	DB       int      `yaml:"db,omitempty"`
	Prefix   string   `yaml:"prefix,omitempty"`
	PlanTTL  Duration `yaml:"plan_ttl"`
}

type LLMConfig struct {
	APIKey      string   `yaml:"-"`
	BaseURL     string   `yaml:"url"`
	Model       string   `yaml:"model_name"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature float32  `yaml:"temperature"`
	Timeout     Duration `yaml:"timeout"`
}

type WebConfig struct {
	StaticDir    string   `yaml:"static_dir"`
	AllowOrigins []string `yaml:"allow_origins"`
}
