// Command main runs the demo data seeder for Banterhall.
package main

import (
	"context"
	"flag"
	"log"

	"banterhall/internal/bootstrap"
	"banterhall/internal/config"
	"banterhall/internal/repository"
	"banterhall/internal/seed"
	"banterhall/internal/store"
)

func main() {
	numUsers := flag.Int("users", 8, "Number of users to create")
	numGames := flag.Int("games", 4, "Number of open lobbies to create")
	numPosts := flag.Int("posts", 6, "Number of board posts to create")
	password := flag.String("password", "demopass", "Password for all seeded users")
	flag.Parse()

	log.Println("Demo Data Seeder")
	log.Printf("Target: %d users, %d games, %d posts\n", *numUsers, *numGames, *numPosts)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := bootstrap.EnsureAdmin(ctx, repository.NewUserRepository(st), cfg); err != nil {
		log.Fatalf("Admin bootstrap failed: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.NumUsers = *numUsers
	opts.NumGames = *numGames
	opts.NumPosts = *numPosts
	opts.Password = *password

	if err := seed.Demo(ctx, st, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The store is populated with demo data.")
	log.Printf("All seeded users have the password: %s\n", *password)
}
