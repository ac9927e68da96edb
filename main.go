package main

import (
	"log"
	"net/http"
	"os"

	"github.com/ozodbek-dev/go-storefront/app/cmd"
	"github.com/ozodbek-dev/go-storefront/app/configs"
	"github.com/ozodbek-dev/go-storefront/app/routes"
)

func main() {
	env := configs.LoadEnv()

	if len(os.Args) > 1 {
		cmd.RunCli(env)
		return
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("Database connected.")

	router := routes.NewRouter(db)

	addr := env.Port
	if addr == "" {
		addr = ":8080"
	}

	server := http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped:", err)
	}
}
