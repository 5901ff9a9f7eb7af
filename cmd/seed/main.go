// seed crea el usuario admin inicial y carga un catálogo de productos desde CSV.
//
// Uso: go run ./cmd/seed --admin-email admin@empresa.com --catalog productos.csv
// La contraseña del admin se toma de SEED_ADMIN_PASSWORD o de --admin-password.
// Aplica las migraciones antes de escribir; si el admin ya existe lo deja como está.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-portal/internal/application/auth"
	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/application/usecase"
	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-portal/pkg/config"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		adminName     string
		adminEmail    string
		adminPassword string
		catalogPath   string
		utf8Input     bool
	)
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVar(&adminName, "admin-name", "Administrador", "nombre del usuario admin")
	flagSet.StringVar(&adminEmail, "admin-email", "", "email del usuario admin (vacío = no crear)")
	flagSet.StringVar(&adminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "contraseña del admin")
	flagSet.StringVar(&catalogPath, "catalog", "", "CSV de productos: nombre;descripcion;stock[;imagen]")
	flagSet.BoolVar(&utf8Input, "utf8", false, "el CSV ya está en UTF-8 (por defecto ISO-8859-1)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	if err := postgres.Migrate(pool); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}

	if adminEmail != "" {
		// Register firma un token que aquí se descarta.
		secret := cfg.JWT.Secret
		if secret == "" {
			secret = "seed"
		}
		authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret: secret, ExpMinutes: 1, Issuer: cfg.JWT.Issuer,
		})
		out, err := authUC.Register(ctx, dto.RegisterRequest{
			Name:     adminName,
			Email:    adminEmail,
			Role:     string(entity.RoleAdmin),
			Password: adminPassword,
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Info().Str("email", adminEmail).Msg("admin ya existe")
		case errors.Is(err, domain.ErrInvalidInput):
			return fmt.Errorf("datos del admin inválidos (contraseña de al menos %d caracteres)", auth.MinPasswordLength)
		case err != nil:
			return fmt.Errorf("crear admin: %w", err)
		default:
			log.Info().Str("user_id", out.User.ID).Str("email", out.User.Email).Msg("admin creado")
		}
	}

	if catalogPath == "" {
		return nil
	}
	f, err := os.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	items, err := readCatalog(f, !utf8Input)
	if err != nil {
		return fmt.Errorf("leer catálogo: %w", err)
	}
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	for _, in := range items {
		if _, err := productUC.Create(ctx, in); err != nil {
			return fmt.Errorf("crear producto %q: %w", in.Name, err)
		}
	}
	log.Info().Int("productos", len(items)).Str("archivo", catalogPath).Msg("catálogo cargado")
	return nil
}
