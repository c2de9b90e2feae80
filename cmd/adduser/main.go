// Command adduser provisions a principal in the users table. Accounts
// are managed by operators, not by the web surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	"github.com/noah-isme/campus-complaint-portal/internal/repository"
	"github.com/noah-isme/campus-complaint-portal/pkg/config"
	"github.com/noah-isme/campus-complaint-portal/pkg/database"
)

func main() {
	username := flag.String("username", "", "login name (required)")
	password := flag.String("password", "", "initial password (required)")
	fullName := flag.String("full-name", "", "display name")
	superuser := flag.Bool("superuser", false, "grant the admin role")
	staff := flag.Bool("staff", false, "add to the Staff group")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewUserRepository(db)

	user := &models.User{
		Username:     *username,
		PasswordHash: string(hash),
		FullName:     *fullName,
		IsSuperuser:  *superuser,
		Active:       true,
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	if *staff {
		groupID, err := repo.EnsureGroup(ctx, models.StaffGroupName)
		if err != nil {
			log.Fatalf("failed to ensure staff group: %v", err)
		}
		if err := repo.AddToGroup(ctx, user.ID, groupID); err != nil {
			log.Fatalf("failed to add user to staff group: %v", err)
		}
	}

	fmt.Printf("created user %s (%s)\n", user.Username, user.ID)
}
