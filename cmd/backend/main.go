package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rfid-access/backend/internal/config"
	"rfid-access/backend/internal/database"
	"rfid-access/backend/internal/httpapi"
	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store"
	"rfid-access/backend/internal/store/memory"
	"rfid-access/backend/internal/store/postgres"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	var st store.Store
	var closer func()

	if cfg.DatabaseURL != "" {
		if cfg.Migrate {
			if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("failed to run migrations: %v", err)
			}
		}

		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
		st = pg
		closer = pg.Close
		log.Printf("using postgres store (history supported: %v)", pg.SupportsHistory())
	} else {
		st = memory.NewStore()
		log.Printf("using memory store")
	}

	if closer != nil {
		defer closer()
	}

	if err := seedAdmin(cfg, st); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	srv := httpapi.NewServer(cfg, st)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("backend listening on %s", cfg.ListenAddr())
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Printf("shutdown requested")
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
}

// seedAdmin bootstraps one admin account when configured. Signup only
// ever creates user-role accounts, so without this a fresh deployment has
// no way to reach the admin routes.
func seedAdmin(cfg config.Config, st store.Store) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := st.GetAccountByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := st.CreateAccount(ctx, model.Account{
		Name:         "Administrator",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
	})
	if err != nil {
		return err
	}

	log.Printf("seeded admin account %s", admin.ID)
	return nil
}
