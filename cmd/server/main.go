package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/s9096309/movie-shelf/internal/config"
	"github.com/s9096309/movie-shelf/internal/database"
	"github.com/s9096309/movie-shelf/internal/handler"
	"github.com/s9096309/movie-shelf/internal/middleware"
	"github.com/s9096309/movie-shelf/internal/omdb"
	"github.com/s9096309/movie-shelf/internal/queue"
	"github.com/s9096309/movie-shelf/internal/repository"
	"github.com/s9096309/movie-shelf/internal/router"
	"github.com/s9096309/movie-shelf/internal/service"
	"github.com/s9096309/movie-shelf/internal/site"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	store := repository.NewStore(db)

	// Redis is optional; nil disables the lookup cache and the rate limiter
	rdb := config.NewRedisClient()
	fetcher := newFetcher(cfg.OMDB, rdb)
	if !fetcher.HasAPIKey() {
		log.Printf("OMDB_API_KEY is not set; adding movies will fail")
	}

	if cfg.Events.Enabled {
		go queue.StartActivityConsumer(cfg.Events.URL, cfg.Events.ActivityDir)
	}
	events := service.NewEventPublisher(cfg.Events)

	renderer, err := handler.NewRenderer(cfg.Web.TemplatesDir)
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterMovies(e, &handler.MovieHandler{
		Store:   store,
		Library: service.NewLibrary(store, fetcher, events, "web"),
		Site:    site.NewGenerator(store, cfg.Web.TemplatesDir, cfg.Web.SiteDir),
		SiteDir: cfg.Web.SiteDir,
	}, cfg.Web.SiteDir)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func newFetcher(cfg config.OMDBConfig, rdb *redis.Client) *omdb.Client {
	var opts []omdb.Option
	if cache := omdb.NewRedisCache(config.LoadLookupCacheConfig(), rdb); cache != nil {
		opts = append(opts, omdb.WithCache(cache))
	}
	return omdb.NewClient(cfg, opts...)
}
