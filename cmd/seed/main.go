// seed crea los datos mínimos para arrancar: la bodega central, una tienda
// de ejemplo y el usuario administrador inicial.
//
// Uso: go run ./cmd/seed
// Credenciales del admin vía SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD
// (default admin@local / cambiar-ya!).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/infrastructure/postgres"
	"github.com/jortega/stock-management-api/pkg/config"
	"github.com/jortega/stock-management-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	now := time.Now().UTC()
	locations := []*entity.Location{
		{
			ID:        uuid.NewString(),
			Name:      "Bodega Central",
			Type:      entity.LocationTypeWarehouse,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			Name:      "Tienda Principal",
			Type:      entity.LocationTypeStore,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	existing, err := locationRepo.ListActive()
	if err != nil {
		log.Fatal().Err(err).Msg("consultar sedes")
	}
	if len(existing) > 0 {
		log.Info().Int("sedes", len(existing)).Msg("ya hay sedes, se omite la creación")
	} else {
		for _, loc := range locations {
			if err := locationRepo.Create(loc); err != nil {
				log.Fatal().Err(err).Str("sede", loc.Name).Msg("crear sede")
			}
			log.Info().Str("sede", loc.Name).Str("tipo", loc.Type).Msg("sede creada")
		}
	}

	email := envOr("SEED_ADMIN_EMAIL", "admin@local")
	password := envOr("SEED_ADMIN_PASSWORD", "cambiar-ya!")

	if user, err := userRepo.GetByEmail(email); err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	} else if user != nil {
		log.Info().Str("email", email).Msg("el admin ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contraseña")
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("email", email).Msg("usuario admin creado")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
