package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/s9096309/movie-shelf/internal/cli"
	"github.com/s9096309/movie-shelf/internal/config"
	"github.com/s9096309/movie-shelf/internal/database"
	"github.com/s9096309/movie-shelf/internal/omdb"
	"github.com/s9096309/movie-shelf/internal/repository"
	"github.com/s9096309/movie-shelf/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	store := repository.NewStore(db)

	var opts []omdb.Option
	if cache := omdb.NewRedisCache(config.LoadLookupCacheConfig(), config.NewRedisClient()); cache != nil {
		opts = append(opts, omdb.WithCache(cache))
	}
	lib := service.NewLibrary(store, omdb.NewClient(cfg.OMDB, opts...), service.NewEventPublisher(cfg.Events), "cli")

	ctx := context.Background()
	con := cli.NewConsole(os.Stdin, os.Stdout)

	userID, err := cli.SelectUser(ctx, con, store, lib)
	if errors.Is(err, io.EOF) {
		return
	}
	if err != nil {
		log.Fatalf("select user: %v", err)
	}

	pages := cli.NewHTTPPageTrigger(cfg.Web.BaseURL, 30*time.Second)
	cli.NewApp(con, store, lib, pages, nil, userID).Run(ctx)
}
