package config

var ExtConfig Extend

// Extend mirrors the `extend:` block of settings.yml. Anything the core
// application config does not know about lives here.
type Extend struct {
	LocalRedis RedisConfig   `yaml:"localredis"`
	UptraceDSN string        `yaml:"uptracedsn"`
	Modules    Modules       `yaml:"modules"`
	MinIO      MinIOConfig   `yaml:"minio"`
	Mongodb    MongodbConfig `yaml:"mongodb"`
	Mailer     MailerConfig  `yaml:"mailer"`
	LLM        LLMConfig     `yaml:"llm"`
	Civic      CivicConfig   `yaml:"civic"`
	Exports    ExportsConfig `yaml:"exports"`
}

type RedisConfig struct {
	Dsn      string `yaml:"dsn"`
	DB       int    `yaml:"db"`
	Password string `yaml:"password"`
}

type Modules struct {
	ExportWorker bool `yaml:"exportworker"`
	Scheduler    bool `yaml:"scheduler"`
}

type MinIOConfig struct {
	Endpoint         string `yaml:"endpoint"`
	Key              string `yaml:"key"`
	Secret           string `yaml:"secret"`
	ExportFileBucket string `yaml:"exportfilebucket"`
	UploadBucket     string `yaml:"uploadbucket"`
}

type MongodbConfig struct {
	DSN     string `yaml:"dsn"`
	ToursDB string `yaml:"toursdb"`
}

// MailerConfig points at the transactional email provider's HTTP API.
type MailerConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apikey"`
	From     string `yaml:"from"`
	FromName string `yaml:"fromname"`
}

// LLMConfig points at an OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apikey"`
	Model    string `yaml:"model"`
}

// CivicConfig holds the base URLs of the UK civic data APIs, overridable
// for tests and self-hosted MapIt instances.
type CivicConfig struct {
	PostcodesBaseURL  string `yaml:"postcodesbaseurl"`
	ParliamentBaseURL string `yaml:"parliamentbaseurl"`
	MapItBaseURL      string `yaml:"mapitbaseurl"`
	MapItKey          string `yaml:"mapitkey"`
}

type ExportsConfig struct {
	BatchSize int `yaml:"batchsize"`
}
