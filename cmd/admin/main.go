// Command admin runs maintenance tasks against the database.
package main

import (
	"log"
	"os"

	"microcourses/config"
	"microcourses/repositories"

	"github.com/joho/godotenv"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	if err := godotenv.Load(); err != nil {
		logger.Println("No .env file found")
	}
	cfg, err := config.Load()
	errAndDie(err)

	db, err := config.InitDB(cfg.Database)
	errAndDie(err)
	defer func() { _ = config.CloseDB(db) }()

	cli := commandLine{
		db:         db,
		userRepo:   repositories.NewUserRepository(db),
		bcryptCost: cfg.BcryptCost,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("error: %s", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
