package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/s9096309/movie-shelf/internal/collection"
	"github.com/s9096309/movie-shelf/internal/model"
	"github.com/s9096309/movie-shelf/internal/omdb"
	"github.com/s9096309/movie-shelf/internal/repository"
	"github.com/s9096309/movie-shelf/internal/service"
	"github.com/s9096309/movie-shelf/internal/site"
)

const menu = `
*** Movie App Menu ***
1. List movies
2. Add movie
3. Delete movie
4. Movie stats
5. Generate website
6. Random movie
7. Search movie
8. Movies sorted by rating
9. Add user
0. Exit`

// App is the menu loop bound to one user.
type App struct {
	con    *Console
	store  repository.DataStore
	lib    *service.Library
	pages  PageTrigger
	pick   collection.Picker
	userID int64
}

// NewApp builds the menu for userID. A nil pick uses a uniform random pick.
func NewApp(con *Console, store repository.DataStore, lib *service.Library, pages PageTrigger, pick collection.Picker, userID int64) *App {
	return &App{con: con, store: store, lib: lib, pages: pages, pick: pick, userID: userID}
}

// Run shows the menu until "0" or end of input.
func (a *App) Run(ctx context.Context) {
	for {
		a.con.Println(menu)
		choice, ok := a.con.Prompt("Enter your choice (0-9): ")
		if !ok {
			return
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = a.listMovies(ctx)
		case "2":
			err = a.addMovie(ctx)
		case "3":
			err = a.deleteMovie(ctx)
		case "4":
			err = a.movieStats(ctx)
		case "5":
			a.generateWebsite(ctx)
		case "6":
			err = a.randomMovie(ctx)
		case "7":
			err = a.searchMovie(ctx)
		case "8":
			err = a.sortMovies(ctx)
		case "9":
			createUser(ctx, a.con, a.lib)
		case "0":
			a.con.Println("Exiting the movie app.")
			return
		default:
			a.con.Println("Invalid choice, please try again.")
		}
		if err != nil {
			a.con.Printf("An error occurred: %v\n", err)
		}
	}
}

func (a *App) printMovies(movies []model.Movie) {
	for _, m := range movies {
		year := "n/a"
		if m.Year != 0 {
			year = strconv.Itoa(m.Year)
		}
		a.con.Printf("%s: %s (%s)\n", m.Title, site.FormatRating(m.Rating), year)
	}
}

func (a *App) listMovies(ctx context.Context) error {
	movies, err := a.store.ListMoviesForUser(ctx, a.userID)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		a.con.Println("No movies found.")
		return nil
	}
	a.printMovies(movies)
	return nil
}

func (a *App) addMovie(ctx context.Context) error {
	title, ok := a.con.Prompt("Enter the movie title: ")
	if !ok {
		return nil
	}
	if strings.TrimSpace(title) == "" {
		a.con.Println("Error: Movie title cannot be empty.")
		return nil
	}

	m, err := a.lib.AddMovieByTitle(ctx, a.userID, title)
	if err != nil {
		a.con.Println(describeAddError(err))
		return nil
	}
	a.con.Printf("Movie '%s' added successfully!\n", m.Title)
	return nil
}

// describeAddError turns a lookup or store failure into one console line.
func describeAddError(err error) string {
	var (
		notFound *omdb.NotFoundError
		badYear  *omdb.BadYearError
	)
	switch {
	case errors.Is(err, omdb.ErrMissingAPIKey):
		return "Error: OMDB API key is missing!"
	case errors.As(err, &notFound):
		return "Error: " + notFound.Error()
	case errors.As(err, &badYear):
		return "Invalid year format: " + badYear.Token
	case errors.Is(err, omdb.ErrNetwork):
		return fmt.Sprintf("Error: Could not connect to OMDb API: %v", err)
	case errors.Is(err, omdb.ErrMalformedResponse):
		return fmt.Sprintf("Error: Could not read OMDb API response: %v", err)
	default:
		return fmt.Sprintf("Error: Could not save movie: %v", err)
	}
}

func (a *App) deleteMovie(ctx context.Context) error {
	line, ok := a.con.Prompt("Enter movie ID to delete: ")
	if !ok {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		a.con.Println("Invalid input. Please enter a valid movie ID (integer).")
		return nil
	}
	if err := a.lib.DeleteMovie(ctx, id); err != nil {
		return err
	}
	a.con.Println("Movie deleted successfully.")
	return nil
}

func (a *App) movieStats(ctx context.Context) error {
	movies, err := a.store.ListMoviesForUser(ctx, a.userID)
	if err != nil {
		return err
	}
	stats, err := collection.ComputeStats(movies)
	if errors.Is(err, collection.ErrEmpty) {
		a.con.Println("No movies to calculate stats.")
		return nil
	}
	if err != nil {
		return err
	}
	a.con.Println("\nMovie Stats:")
	a.con.Printf("  Average rating: %.2f\n", stats.Mean)
	a.con.Printf("  Median rating: %s\n", site.FormatRating(stats.Median))
	a.con.Printf("  Best movie: %s, %s\n", stats.Best.Title, site.FormatRating(stats.Best.Rating))
	a.con.Printf("  Worst movie: %s, %s\n", stats.Worst.Title, site.FormatRating(stats.Worst.Rating))
	return nil
}

func (a *App) generateWebsite(ctx context.Context) {
	url, err := a.pages.Trigger(ctx, a.userID)
	var rejected *PageRejectedError
	switch {
	case err == nil:
		a.con.Println("Website generated successfully!")
		a.con.Printf("View it at %s\n", url)
	case errors.As(err, &rejected):
		a.con.Println(rejected.Message)
	default:
		a.con.Printf("An error occurred: %v\n", err)
	}
}

func (a *App) randomMovie(ctx context.Context) error {
	movies, err := a.store.ListMoviesForUser(ctx, a.userID)
	if err != nil {
		return err
	}
	m, err := collection.Random(movies, a.pick)
	if errors.Is(err, collection.ErrEmpty) {
		a.con.Println("No movies in the database.")
		return nil
	}
	if err != nil {
		return err
	}
	a.con.Printf("Your movie for tonight: %s, it's rated %s\n", m.Title, site.FormatRating(m.Rating))
	return nil
}

func (a *App) searchMovie(ctx context.Context) error {
	term, ok := a.con.Prompt("Enter search term: ")
	if !ok {
		return nil
	}
	movies, err := a.store.ListMoviesForUser(ctx, a.userID)
	if err != nil {
		return err
	}
	found := collection.Search(movies, term)
	if len(found) == 0 {
		a.con.Println("No movies found.")
		return nil
	}
	a.con.Println("Found movies:")
	a.printMovies(found)
	return nil
}

func (a *App) sortMovies(ctx context.Context) error {
	movies, err := a.store.ListMoviesForUser(ctx, a.userID)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		a.con.Println("No movies to sort.")
		return nil
	}
	token, ok := a.con.Prompt("Sort order (A/D): ")
	if !ok {
		return nil
	}
	order, valid := collection.ParseOrder(token)
	if !valid {
		a.con.Println("Invalid order. Using ascending order.")
	}
	a.con.Println("Sorted movies:")
	a.printMovies(collection.SortByRating(movies, order))
	return nil
}
