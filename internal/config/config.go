package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env-default:"9090"`
	PlayerName string  `yaml:"player-name" env-default:"Player"`
	Redis      Redis   `yaml:"redis"`
	WordAPI    WordAPI `yaml:"word-api"`
	Board      Board   `yaml:"leaderboard-api"`
	Rules      Rules   `yaml:"game-rules"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// WordAPI points at the Datamuse-compatible word association service.
type WordAPI struct {
	BaseURL          string        `yaml:"base-url" env-default:"https://api.datamuse.com"`
	Timeout          time.Duration `yaml:"timeout" env-default:"30s"`
	CandidateCount   int           `yaml:"candidate-count" env-default:"50"`
	SimilarWordCount int           `yaml:"similar-word-count" env-default:"20"`
}

// Board points at the shared leaderboard backend.
type Board struct {
	BaseURL string        `yaml:"base-url" env-default:"http://localhost:9090"`
	Timeout time.Duration `yaml:"timeout" env-default:"30s"`
}

// Rules holds the per-round scoring and hint configuration.
type Rules struct {
	InitialScore         int `yaml:"initial-score" env-default:"100"`
	MaxAttempts          int `yaml:"max-attempts" env-default:"10"`
	GuessPenalty         int `yaml:"guess-penalty" env-default:"10"`
	HintCost             int `yaml:"hint-cost" env-default:"5"`
	ThesaurusHintCost    int `yaml:"thesaurus-hint-cost" env-default:"10"`
	ThesaurusMinAttempts int `yaml:"thesaurus-min-attempts" env-default:"5"`
	SelectionRetries     int `yaml:"selection-retries" env-default:"5"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
