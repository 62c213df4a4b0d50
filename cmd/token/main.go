// Command token mints an HS256 bearer token for local testing against a
// deployment with JWT_SECRET configured.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

func main() {
	uid := flag.String("uid", "dev-user", "user id claim")
	email := flag.String("email", "dev@local.dev", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("Error: JWT_SECRET is not set; the server is in anonymous mode and needs no token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": *uid,
		"email":   *email,
		"iat":     now.Unix(),
		"exp":     now.Add(*ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Error: Failed to sign token: %v", err)
	}

	fmt.Println(signed)
}
