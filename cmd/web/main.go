package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mzaleski/padel-mixer/internal/db"
	"github.com/mzaleski/padel-mixer/internal/service"
	"github.com/mzaleski/padel-mixer/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbPath := os.Getenv("PADEL_DB")
	if dbPath == "" {
		dbPath = "padel_mixer.db"
	}

	database := db.InitDB(dbPath)
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	tournamentStore := store.NewTournamentStore(database)
	tournaments := service.NewTournamentService(tournamentStore)
	matches := service.NewMatchService(tournamentStore)

	router := newRouter(tournaments, matches)

	addr := os.Getenv("PADEL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}
