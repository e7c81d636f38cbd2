package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// talkLockMargin covers the database writes around the agent call.
const talkLockMargin = 5 * time.Second

type Config struct {
	HTTPAddr string
	LogLevel string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TalkLockTTL   time.Duration

	// Agent (egg reply generation)
	AgentProvider string
	AgentBaseURL  string
	AgentTimeout  time.Duration

	OllamaBaseURL     string
	OllamaModel       string
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterSiteURL string
	OpenRouterAppName string

	// rabbitMQ (hatch events); empty URL disables publishing
	RabbitURL   string
	RabbitQueue string

	CORSOrigins  []string
	SeedTestUser bool
}

func Load() Config {
	// DSN demo：
	// app:apppass@tcp(127.0.0.1:3306)/animai?charset=utf8mb4&parseTime=true&loc=Local
	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if driver == "" {
		driver = "mysql"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		switch driver {
		case "sqlite":
			dsn = "animai.db"
		case "postgres":
			dsn = "host=127.0.0.1 user=app password=apppass dbname=animai port=5432 sslmode=disable"
		default:
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				"app", "apppass", "127.0.0.1", "3306", "animai",
			)
		}
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	agentProvider := os.Getenv("AGENT_PROVIDER")
	if agentProvider == "" {
		agentProvider = "agent"
	}
	agentBaseURL := os.Getenv("AGENT_BASE_URL")
	if agentBaseURL == "" {
		agentBaseURL = "http://localhost:4000"
	}

	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "llama3:latest"
	}

	openRouterBaseURL := os.Getenv("OPENROUTER_BASE_URL")
	if openRouterBaseURL == "" {
		openRouterBaseURL = "https://openrouter.ai/api/v1"
	}
	openRouterModel := os.Getenv("OPENROUTER_MODEL")
	if openRouterModel == "" {
		openRouterModel = "openrouter/auto"
	}

	rabbitQueue := os.Getenv("RABBIT_QUEUE")
	if rabbitQueue == "" {
		rabbitQueue = "pet_events"
	}

	origins := splitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	seed, _ := strconv.ParseBool(os.Getenv("SEED_TEST_USER"))

	// the talk lock must outlive the agent call it guards
	agentTimeout := durationEnv("AGENT_TIMEOUT", 10*time.Second)
	talkLockTTL := durationEnv("TALK_LOCK_TTL", 30*time.Second)
	if floor := agentTimeout + talkLockMargin; talkLockTTL < floor {
		talkLockTTL = floor
	}

	return Config{
		HTTPAddr: httpAddr,
		LogLevel: logLevel,

		DBDriver: driver,
		DBDSN:    dsn,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		TalkLockTTL:   talkLockTTL,

		AgentProvider: agentProvider,
		AgentBaseURL:  agentBaseURL,
		AgentTimeout:  agentTimeout,

		OllamaBaseURL:     ollamaBaseURL,
		OllamaModel:       ollamaModel,
		OpenRouterBaseURL: openRouterBaseURL,
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   openRouterModel,
		OpenRouterSiteURL: os.Getenv("OPENROUTER_SITE_URL"),
		OpenRouterAppName: os.Getenv("OPENROUTER_APP_NAME"),

		RabbitURL:   os.Getenv("RABBIT_URL"),
		RabbitQueue: rabbitQueue,

		CORSOrigins:  origins,
		SeedTestUser: seed,
	}
}

// durationEnv accepts Go durations ("15s") or a bare number of seconds.
func durationEnv(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
