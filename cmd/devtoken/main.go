// Command devtoken prints a bearer token for local testing against a server
// sharing the same APP_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"motoboy-backend/internal/middleware"
)

func main() {
	userID := flag.String("user", "", "user id (random when empty)")
	email := flag.String("email", "motoboy@example.com", "email claim")
	name := flag.String("name", "", "name claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	secret := os.Getenv("APP_JWT_SECRET")
	if secret == "" {
		log.Fatal("APP_JWT_SECRET environment variable not set")
	}

	if *userID == "" {
		*userID = uuid.New().String()
	}

	token, err := middleware.SignToken(secret, middleware.UserClaims{
		UserID: *userID,
		Email:  *email,
		Name:   *name,
	}, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	log.Printf("🔑 Token for %s (%s), valid %s", *email, *userID, *ttl)
	fmt.Println(token)
}
