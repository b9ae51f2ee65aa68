package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/config"
	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/infra/memory"
	pginfra "globetrotter-service/internal/infra/postgres"
	rediscache "globetrotter-service/internal/infra/redis"
	transport "globetrotter-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var (
		destinations app.DestinationRepository
		users        app.UserRepository
		challenges   app.ChallengeRepository
		loader       memory.CatalogLoader
		memoryMode   bool
	)
	if cfg.Postgres.URL != "" {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		defer db.Close()

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		destinations = pginfra.NewDestinationRepo(db)
		users = pginfra.NewUserRepo(db)
		challenges = pginfra.NewChallengeRepo(db)
		loader = pginfra.NewCatalogLoader(pool)
	} else {
		store := memory.NewDestinationStore()
		destinations = store
		users = memory.NewUserStore()
		challenges = memory.NewChallengeStore()
		loader = store
		memoryMode = true
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalog app.CatalogRepository
	if redisClient != nil {
		catalog = rediscache.NewCatalogCache(redisClient, loader, catalogTTL)
	} else {
		catalog = memory.NewCatalogCache(loader, catalogTTL)
	}

	rnd := app.NewSeededRand(time.Now().UnixNano())
	scores := app.NewScoreService(users)
	quiz := app.NewQuizService(catalog, destinations, scores, rnd)
	userService := app.NewUserService(users)
	challengeService := app.NewChallengeService(challenges, users, rnd)
	leaderboard := app.NewLeaderboardService(users)
	destinationService := app.NewDestinationService(destinations)

	if memoryMode {
		if _, err := destinationService.ImportMany(ctx, sampleDestinations()); err != nil {
			return err
		}
	}

	api := transport.NewAPI(quiz, userService, challengeService, leaderboard, destinationService)
	play := transport.NewPlayHandler(quiz)

	mux := http.NewServeMux()
	api.Register(mux)
	mux.HandleFunc("GET /ws", play.ServePlay)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting globetrotter service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleDestinations provides a minimal dataset so the service can run
// without Postgres; use the seed command for real datasets.
func sampleDestinations() []domain.Destination {
	return []domain.Destination{
		{
			Alias: "par01",
			Name:  "Paris",
			Clues: []string{
				"Home to a famous ironwork tower",
				"Known as the City of Light",
			},
			FunFacts: []string{"The Louvre is the world's most visited museum."},
		},
		{
			Alias: "tok01",
			Name:  "Tokyo",
			Clues: []string{
				"The world's most populous metropolitan area",
				"Hosts a famous scramble crossing",
			},
			FunFacts: []string{"It was known as Edo until 1868."},
		},
		{
			Alias: "rio01",
			Name:  "Rio de Janeiro",
			Clues: []string{
				"A giant statue watches over this city from a mountain",
				"Famous for an annual carnival",
			},
			FunFacts: []string{"Its harbor is one of the seven natural wonders of the world."},
		},
		{
			Alias: "cai01",
			Name:  "Cairo",
			Clues: []string{
				"The only surviving ancient wonder stands nearby",
				"A river runs through it on its way to the Mediterranean",
			},
			FunFacts: []string{"It is the largest city in the Arab world."},
		},
		{
			Alias: "syd01",
			Name:  "Sydney",
			Clues: []string{
				"Its opera house has a sail-shaped roof",
				"Built around one of the world's largest natural harbors",
			},
			FunFacts: []string{"Its harbor bridge is nicknamed the Coathanger."},
		},
	}
}
