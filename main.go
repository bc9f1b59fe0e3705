package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"catalog-app/config"
	"catalog-app/database"
	adminapi "catalog-app/internal/api/admin"
	catalogapi "catalog-app/internal/api/catalog"
	usersapi "catalog-app/internal/api/users"
	routes "catalog-app/internal/app/http"
	"catalog-app/internal/app/http/middleware"
	"catalog-app/internal/cache"
	"catalog-app/internal/domain/access"
	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/revision"
	"catalog-app/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "catalog-app",
		Short:        "Revisioned book catalog",
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newHistoryCommand())
	return cmd
}

func openDB(cfg config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == database.DriverSQLite {
		// sqlite is the dev/test setup; keep its schema current automatically
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// policyFrom builds the permission policy. An unknown or guest lock override
// would let anyone edit locked entries, so it is rejected.
func policyFrom(cfg config.Config) (access.Policy, error) {
	p := access.DefaultPolicy()
	p.EditorsEditOthers = cfg.EditorsEditOthers
	role, ok := access.LookupRole(cfg.LockOverrideRole)
	if !ok || role == access.RoleGuest {
		return p, fmt.Errorf("invalid LOCK_OVERRIDE_ROLE %q: want user, editor or admin", cfg.LockOverrideRole)
	}
	p.LockOverride = role
	return p, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadEnv()
			log := logger.Init(cfg.AppEnv)
			policy, err := policyFrom(cfg)
			if err != nil {
				return err
			}
			if cfg.AppEnv == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}

			var rdb *redis.Client
			if cfg.RedisAddr != "" {
				ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
				rdb, err = cache.NewClient(ctx, cfg.RedisAddr)
				cancel()
				if err != nil {
					log.Warn().Err(err).Msg("redis unavailable, snapshot cache disabled")
					rdb = nil
				}
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			coord := revision.New(
				revision.WithLogger(log.With().Str("component", "revision").Logger()),
				revision.WithMetrics(revision.NewMetrics(reg)),
				revision.WithPolicy(policy),
				revision.WithCanonicalLang(catalog.Language(cfg.CanonicalLang)),
			)
			snapshots := cache.NewService(rdb)
			handler := catalogapi.NewHandler(catalogapi.Deps{
				DB:            db,
				Coordinator:   coord,
				Cache:         snapshots,
				Policy:        policy,
				CanonicalLang: catalog.Language(cfg.CanonicalLang),
				Log:           log,
			})

			r := gin.New()
			r.Use(gin.Recovery(), middleware.RequestLogger(log))
			r.Use(cors.New(cors.Config{
				AllowOrigins:     []string{cfg.CORSOrigin},
				AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
				ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
				AllowCredentials: cfg.CORSOrigin != "*",
				MaxAge:           12 * time.Hour,
			}))
			routes.RegisterRoutes(r, routes.Deps{
				Catalog:   handler,
				Admin:     adminapi.NewHandler(db),
				Users:     usersapi.NewHandler(db, policy),
				Cache:     snapshots,
				JWTSecret: cfg.JWTSecret,
				Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			})

			log.Info().Str("port", cfg.Port).Msg("listening")
			return r.Run(":" + cfg.Port)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadEnv()
			db, err := database.Open(cfg.DBDriver, cfg.DBURL)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newHistoryCommand() *cobra.Command {
	var rev int
	cmd := &cobra.Command{
		Use:   "history <kind> <id>",
		Short: "Print the revisions of an entry, or one revision with --revision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := catalog.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			cfg := config.LoadEnv()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			return printHistory(cmd, db, kind, id, rev)
		},
	}
	cmd.Flags().IntVar(&rev, "revision", 0, "show the snapshot at this revision")
	return cmd
}
