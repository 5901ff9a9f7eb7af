package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/inventario-portal/internal/application/session"
	"github.com/jhoicas/inventario-portal/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-portal/internal/infrastructure/sessionstore"
	"github.com/jhoicas/inventario-portal/internal/interfaces/nav"
	"github.com/jhoicas/inventario-portal/pkg/config"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

// environment entradas y salidas del proceso; los tests las sustituyen.
type environment struct {
	cfg    config.ClientConfig
	log    *logger.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	width  func() int
}

// app une sesión, clientes de la API y presentador de navegación para un comando.
type app struct {
	env      environment
	store    sessionstore.Store
	session  *session.Manager
	products *apiclient.ProductClient
	requests *apiclient.RequestClient
}

// newApp abre el almacén de sesión, arma los clientes y restaura la sesión persistida.
// El token de cada petición sale del Manager.
func newApp(ctx context.Context, env environment) (*app, error) {
	store, err := sessionstore.Open(ctx, env.cfg)
	if err != nil {
		return nil, fmt.Errorf("abrir sesión: %w", err)
	}
	client := apiclient.New(env.cfg.APIBaseURL, env.cfg.Timeout, env.log.Named("apiclient"))
	mgr := session.NewManager(apiclient.NewAuthClient(client), store, notifier{w: env.stderr}, env.log.Named("session"))
	client.SetTokenSource(mgr)
	mgr.Init(ctx)

	return &app{
		env:      env,
		store:    store,
		session:  mgr,
		products: apiclient.NewProductClient(client),
		requests: apiclient.NewRequestClient(client),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func (a *app) presenter() *nav.Presenter {
	return nav.NewPresenter(a.session, a.env.width())
}

func (a *app) out() io.Writer { return a.env.stdout }
