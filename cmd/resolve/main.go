package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/damage-resolver/internal/config"
	"github.com/KirkDiggler/damage-resolver/internal/domain/damage"
	"github.com/KirkDiggler/damage-resolver/internal/repositories/profiles"
	"github.com/KirkDiggler/damage-resolver/internal/services"
	"github.com/KirkDiggler/damage-resolver/internal/services/resolver"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	useRedis := flag.Bool("redis", false, "store profiles in Redis even when REDIS_URL is unset")
	verbose := flag.Bool("v", false, "print every applied modifier")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: resolve [-redis] [-v] <scenario.yaml>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	scenario, err := LoadScenario(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providerConfig := &services.ProviderConfig{
		BatchLimit: cfg.Resolver.BatchLimit,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	if cfg.Redis.URL != "" || *useRedis {
		opts, optsErr := cfg.Redis.Options()
		if optsErr != nil {
			log.Printf("Failed to build Redis options: %v", optsErr)
			log.Println("Falling back to in-memory profiles")
		} else {
			log.Printf("Connecting to Redis at: %s", opts.Addr)
			redisClient = redis.NewClient(opts)

			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			pingErr := redisClient.Ping(pingCtx).Err()
			cancel()

			if pingErr != nil {
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory profiles")
				_ = redisClient.Close()
				redisClient = nil
			} else {
				log.Println("Successfully connected to Redis")
				providerConfig.ProfileRepository = profiles.NewRedis(redisClient, cfg.Resolver.ProfilePrefix)
			}
		}
	}

	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()

	if err := run(ctx, services.NewProvider(providerConfig), scenario, *verbose); err != nil {
		log.Printf("Failed to run scenario: %v", err)
		exitCode = 1
	}
}

func run(ctx context.Context, provider *services.Provider, scenario *Scenario, verbose bool) error {
	if err := scenario.Seed(ctx, provider.ProfileRepository); err != nil {
		return err
	}

	outputs, err := provider.ResolverService.ResolveBatch(ctx, scenario.Inputs())
	if err != nil {
		return err
	}

	for _, out := range outputs {
		printOutput(out, verbose)
	}
	return nil
}

func printOutput(out *resolver.ResolveOutput, verbose bool) {
	fmt.Printf("%s -> %s: %d damage\n", out.AttackID, out.ProfileID, out.Total)

	types := make([]damage.DamageType, 0, len(out.PerType))
	for dt := range out.PerType {
		types = append(types, dt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, dt := range types {
		fmt.Printf("  %-12s %d\n", dt, out.PerType[dt])
	}

	if !verbose {
		return
	}
	for _, app := range out.Applied {
		key := string(app.Key)
		if key == "" {
			key = "-"
		}
		fmt.Printf("  [%s] %s via %s: %+d\n", app.Stage, app.Type, key, app.Amount)
	}
}
