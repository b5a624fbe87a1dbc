package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"clinic-portal/internal/model"
	"clinic-portal/pkg/config"
	"clinic-portal/pkg/jwt"
)

func main() {
	role := flag.String("role", "clinic", "account role: clinic, doctor, hospital, admin, agent, doctorStaff")
	subject := flag.String("sub", "dev-user", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	envPath := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. Check role
	r := model.ParseRole(*role)
	if r == model.RoleUnknown {
		log.Fatalf("unknown role %q", *role)
	}

	// 3. Sign
	token, err := jwt.GenerateToken([]byte(cfg.JWTSecret), *subject, r, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
}
