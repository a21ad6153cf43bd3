package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/s9096309/movie-shelf/internal/repository"
	"github.com/s9096309/movie-shelf/internal/service"
)

// SelectUser runs the startup loop until an existing user is chosen and
// returns its id. io.EOF means the input ended first.
func SelectUser(ctx context.Context, con *Console, store repository.DataStore, lib *service.Library) (int64, error) {
	for {
		choice, ok := con.Prompt("1. Select existing user\n2. Create new user\nEnter your choice: ")
		if !ok {
			return 0, io.EOF
		}
		switch strings.TrimSpace(choice) {
		case "1":
			users, err := store.ListUsers(ctx)
			if err != nil {
				return 0, fmt.Errorf("list users: %w", err)
			}
			if len(users) == 0 {
				con.Println("No users found. Please create a user first.")
				continue
			}
			con.Println("Available users:")
			for _, u := range users {
				con.Printf("%d. %s\n", u.ID, u.Name)
			}
			return pickUser(ctx, con, store)
		case "2":
			createUser(ctx, con, lib)
		default:
			con.Println("Invalid choice. Please enter 1 or 2.")
		}
	}
}

func pickUser(ctx context.Context, con *Console, store repository.DataStore) (int64, error) {
	for {
		line, ok := con.Prompt("Select user ID: ")
		if !ok {
			return 0, io.EOF
		}
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			con.Println("Invalid input. Please enter a number.")
			continue
		}
		if _, err := store.GetUser(ctx, id); err != nil {
			if !errors.Is(err, repository.ErrUserNotFound) {
				return 0, fmt.Errorf("get user: %w", err)
			}
			con.Println("Invalid user ID. Please try again.")
			continue
		}
		return id, nil
	}
}

// createUser prompts for a name and reports the outcome. It is shared by
// the startup loop and menu option 9.
func createUser(ctx context.Context, con *Console, lib *service.Library) {
	name, ok := con.Prompt("Enter new username: ")
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		con.Println("Error: Username cannot be empty.")
		return
	}
	_, err := lib.CreateUser(ctx, name)
	switch {
	case err == nil:
		con.Printf("User '%s' created successfully.\n", name)
	case errors.Is(err, repository.ErrDuplicateName):
		con.Printf("Error: User '%s' already exists.\n", name)
	default:
		con.Printf("An error occurred: %v\n", err)
	}
}
