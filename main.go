package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"github.com/vidhanio/scheduletf/controller"
	"github.com/vidhanio/scheduletf/db"
	"github.com/vidhanio/scheduletf/publish"
	"github.com/vidhanio/scheduletf/rgl"
	"github.com/vidhanio/scheduletf/serveme"
	"github.com/vidhanio/scheduletf/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	discordToken := os.Getenv("DISCORD_TOKEN")
	if discordToken == "" {
		log.Fatalf("DISCORD_TOKEN must be set")
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	servemeClient, err := serveme.New()
	if err != nil {
		log.Fatalf("error creating serveme client: %v", err)
	}

	rglClient, err := rgl.New()
	if err != nil {
		log.Fatalf("error creating rgl client: %v", err)
	}

	session, err := discordgo.New("Bot " + discordToken)
	if err != nil {
		log.Fatalf("error creating discord session: %v", err)
	}
	if err := session.Open(); err != nil {
		log.Fatalf("error opening discord session: %v", err)
	}
	defer session.Close()

	ctrl, err := controller.New(clock, db, servemeClient, rglClient, publish.New(session))
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
