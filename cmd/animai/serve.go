package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/suPer8Hu/animai/internal/ai"
	"github.com/suPer8Hu/animai/internal/config"
	"github.com/suPer8Hu/animai/internal/db"
	"github.com/suPer8Hu/animai/internal/egg"
	"github.com/suPer8Hu/animai/internal/httpapi"
	"github.com/suPer8Hu/animai/internal/httpapi/handlers"
	"github.com/suPer8Hu/animai/internal/store/rabbitmq"
	"github.com/suPer8Hu/animai/internal/store/redisstore"
	"github.com/suPer8Hu/animai/internal/users"
)

type ServeFlags struct {
	Addr          string
	AgentProvider string
	Migrate       bool

	// Providers is the set of names accepted by --agent-provider.
	Providers []string
}

func NewServeFlags(cfg config.Config, providers []string) *ServeFlags {
	return &ServeFlags{
		Addr:          cfg.HTTPAddr,
		AgentProvider: cfg.AgentProvider,
		Migrate:       true,
		Providers:     providers,
	}
}

func (f *ServeFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Addr, "listen", f.Addr, "Address to listen on")
	fs.StringVar(&f.AgentProvider, "agent-provider", f.AgentProvider,
		fmt.Sprintf("Egg reply provider (%s)", strings.Join(f.Providers, ", ")))
	fs.BoolVar(&f.Migrate, "migrate", f.Migrate, "Migrate the schema before serving")
}

func NewServeCommand(cfg config.Config) *cobra.Command {
	reg := newProviderRegistry(cfg)
	f := NewServeFlags(cfg, reg.Names())

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the AnimAI HTTP API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("could not connect to db: %w", err)
			}
			if f.Migrate {
				if err := db.Migrate(gdb); err != nil {
					return fmt.Errorf("could not migrate db: %w", err)
				}
			}

			usersSvc := users.NewService(users.NewRepo(gdb))
			if cfg.SeedTestUser {
				if u, created, err := usersSvc.SeedTestUser(ctx); err != nil {
					log.WithError(err).Warn("seeding test user failed")
				} else if created {
					log.WithField("email", u.Email).Info("seeded test user")
				}
			}

			provider, err := reg.Get(ctx, f.AgentProvider)
			if err != nil {
				return err
			}

			opts := []egg.Option{egg.WithProviderName(f.AgentProvider)}

			if cfg.RedisAddr != "" {
				rds, err := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TalkLockTTL)
				if err != nil {
					log.WithError(err).Warn("redis unavailable, talk lock disabled")
				} else {
					defer rds.Close()
					opts = append(opts, egg.WithLocker(rds))
				}
			}

			if cfg.RabbitURL != "" {
				pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
				if err != nil {
					log.WithError(err).Warn("rabbitmq unavailable, hatch events disabled")
				} else {
					defer pub.Close()
					opts = append(opts, egg.WithPublisher(pub))
				}
			}

			eggSvc := egg.NewService(usersSvc, egg.NewRepo(gdb), provider, opts...)
			r := httpapi.NewRouter(cfg, handlers.NewHandler(usersSvc, eggSvc))

			srv := &http.Server{Addr: f.Addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
			log.WithFields(log.Fields{
				"db":       cfg.DBDriver,
				"provider": f.AgentProvider,
			}).Info("starting animai")
			return runServer(srv, "animai api")
		},
	}

	f.BindFlags(cmd.Flags())
	return cmd
}

func newProviderRegistry(cfg config.Config) *ai.Registry {
	reg := ai.NewRegistry()
	reg.Register("agent", func(ctx context.Context) (ai.Provider, error) {
		return ai.NewAgentProvider(cfg.AgentBaseURL, cfg.AgentTimeout), nil
	})
	reg.Register("ollama", func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.AgentTimeout), nil
	})
	reg.Register("openrouter", func(ctx context.Context) (ai.Provider, error) {
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter provider")
		}
		return ai.NewOpenRouterProvider(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel,
			cfg.OpenRouterSiteURL, cfg.OpenRouterAppName, cfg.AgentTimeout), nil
	})
	return reg
}
