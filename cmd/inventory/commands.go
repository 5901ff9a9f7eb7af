package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// errReported el fallo ya se mostró al usuario; main solo sale con código 1.
var errReported = errors.New("reported")

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

func commandTable() map[string]command {
	return map[string]command{
		"login":    {"log in with email and password", runLogin},
		"register": {"create an account (role staff or admin)", runRegister},
		"logout":   {"forget the stored session", runLogout},
		"whoami":   {"show the current user", runWhoami},
		"nav":      {"show the navigation links for the current role", runNav},
		"products": {"list|get|create|update|delete products", runProducts},
		"requests": {"mine|all|stockin|stockout|update|approve|reject|delete stock requests", runRequests},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commandTable()))
	for name := range commandTable() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fail muestra el mensaje del servidor o uno por tipo de error.
func (a *app) fail(err error) error {
	fallback := "Something went wrong"
	switch domain.KindOf(err) {
	case domain.KindAuth:
		fallback = "Your session is not valid, log in again"
	case domain.KindAuthorization:
		fallback = "You do not have permission for this action"
	case domain.KindTransport:
		fallback = "Cannot reach the server"
	case domain.KindNotFound:
		fallback = "Not found"
	case domain.KindRateLimited:
		fallback = "Too many attempts, try again later"
	}
	a.env.log.Debug().Err(err).Msg("cli: comando fallido")
	notifier{w: a.env.stderr}.Error(domain.UserMessage(err, fallback))
	return errReported
}

func (a *app) requireSession() error {
	if a.session.Role() == entity.RoleGuest {
		notifier{w: a.env.stderr}.Error("Please log in first")
		return errReported
	}
	return nil
}

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func runLogin(ctx context.Context, a *app, args []string) error {
	var email, passwordFile string
	fs := newFlagSet("login")
	fs.StringVar(&email, "email", "", "account email")
	fs.StringVar(&passwordFile, "password-file", "", `read the password from a file ("-" or empty: prompt)`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("--email es obligatorio")
	}
	password, err := a.readPassword(passwordFile)
	if err != nil {
		return err
	}
	if !a.session.Login(ctx, email, password) {
		return errReported
	}
	u := a.session.User()
	printOK(a.out(), fmt.Sprintf("Logged in as %s (%s)", u.Name, u.Role))
	fmt.Fprintln(a.out(), renderNav(a.presenter().View()))
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	var reg entity.Registration
	var role, passwordFile string
	fs := newFlagSet("register")
	fs.StringVar(&reg.Name, "name", "", "full name")
	fs.StringVar(&reg.Email, "email", "", "account email")
	fs.StringVar(&reg.Phone, "tel", "", "phone number")
	fs.StringVar(&role, "role", string(entity.RoleStaff), "staff or admin")
	fs.StringVar(&passwordFile, "password-file", "", `read the password from a file ("-" or empty: prompt)`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	reg.Role = entity.Role(role)
	password, err := a.readPassword(passwordFile)
	if err != nil {
		return err
	}
	reg.Password = password
	if !a.session.Register(ctx, reg) {
		return errReported
	}
	u := a.session.User()
	printOK(a.out(), fmt.Sprintf("Account created, logged in as %s (%s)", u.Name, u.Role))
	fmt.Fprintln(a.out(), renderNav(a.presenter().View()))
	return nil
}

func runLogout(_ context.Context, a *app, _ []string) error {
	path := a.presenter().Logout()
	printOK(a.out(), "Logged out")
	fmt.Fprintln(a.out(), "→ "+path)
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out(), "guest (not logged in)")
		return nil
	}
	fmt.Fprintf(a.out(), "%s <%s> %s\n", u.Name, u.Email, entity.RoleOf(u))
	return nil
}

func runNav(_ context.Context, a *app, args []string) error {
	var width int
	var menu bool
	fs := newFlagSet("nav")
	fs.IntVar(&width, "width", 0, "viewport width in columns (0: terminal width)")
	fs.BoolVar(&menu, "menu", false, "show the compact menu opened")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p := a.presenter()
	if width > 0 {
		p.Resize(width)
	}
	if menu {
		p.ToggleMenu()
	}
	fmt.Fprintln(a.out(), renderNav(p.View()))
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func runProducts(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("uso: products list|get|create|update|delete")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		list, err := a.products.List(ctx)
		if err != nil {
			return a.fail(err)
		}
		renderProducts(a.out(), list)
	case "get":
		id, err := oneID(sub, rest)
		if err != nil {
			return err
		}
		p, err := a.products.Get(ctx, id)
		if err != nil {
			return a.fail(err)
		}
		renderProduct(a.out(), p)
	case "create":
		var in entity.ProductInput
		fs := newFlagSet("products create")
		fs.StringVar(&in.Name, "name", "", "product name")
		fs.StringVar(&in.Description, "description", "", "description")
		fs.IntVar(&in.StockQuantity, "stock", 0, "initial stock")
		fs.StringVar(&in.ImageURL, "image", "", "image URL")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		p, err := a.products.Create(ctx, in)
		if err != nil {
			return a.fail(err)
		}
		printOK(a.out(), "Product created: "+p.ID)
	case "update":
		fs := newFlagSet("products update")
		name := fs.String("name", "", "product name")
		description := fs.String("description", "", "description")
		stock := fs.Int("stock", 0, "stock quantity")
		image := fs.String("image", "", "image URL")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		id, err := oneID(sub, fs.Args())
		if err != nil {
			return err
		}
		var patch entity.ProductPatch
		if fs.Changed("name") {
			patch.Name = name
		}
		if fs.Changed("description") {
			patch.Description = description
		}
		if fs.Changed("stock") {
			patch.StockQuantity = stock
		}
		if fs.Changed("image") {
			patch.ImageURL = image
		}
		p, err := a.products.Update(ctx, id, patch)
		if err != nil {
			return a.fail(err)
		}
		renderProduct(a.out(), p)
	case "delete":
		id, err := oneID(sub, rest)
		if err != nil {
			return err
		}
		if err := a.products.Delete(ctx, id); err != nil {
			return a.fail(err)
		}
		printOK(a.out(), "Product deleted")
	default:
		return fmt.Errorf("subcomando desconocido: products %s", sub)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func runRequests(ctx context.Context, a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("uso: requests mine|all|stockin|stockout|update|approve|reject|delete")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "mine", "all":
		list := a.requests.ListMine
		if sub == "all" {
			list = a.requests.ListAll
		}
		out, err := list(ctx)
		if err != nil {
			return a.fail(err)
		}
		renderRequests(a.out(), out)
	case "stockin", "stockout":
		t := entity.RequestTypeStockIn
		if sub == "stockout" {
			t = entity.RequestTypeStockOut
		}
		var productID string
		var qty int
		fs := newFlagSet("requests " + sub)
		fs.StringVar(&productID, "product", "", "product id")
		fs.IntVar(&qty, "qty", 0, "quantity (> 0)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		r, err := a.requests.Create(ctx, productID, t, qty)
		if err != nil {
			return a.fail(err)
		}
		printOK(a.out(), fmt.Sprintf("%s request %s is %s", r.Type, r.ID, r.Status))
	case "update":
		fs := newFlagSet("requests update")
		productID := fs.String("product", "", "product id")
		qty := fs.Int("qty", 0, "quantity (> 0)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		id, err := oneID(sub, fs.Args())
		if err != nil {
			return err
		}
		var patch entity.StockRequestPatch
		if fs.Changed("product") {
			patch.ProductID = productID
		}
		if fs.Changed("qty") {
			patch.Quantity = qty
		}
		r, err := a.requests.Update(ctx, id, patch)
		if err != nil {
			return a.fail(err)
		}
		renderRequests(a.out(), []*entity.StockRequest{r})
	case "approve", "reject":
		id, err := oneID(sub, rest)
		if err != nil {
			return err
		}
		status := entity.RequestStatusApproved
		if sub == "reject" {
			status = entity.RequestStatusRejected
		}
		r, err := a.requests.UpdateStatus(ctx, id, status)
		if err != nil {
			return a.fail(err)
		}
		printOK(a.out(), fmt.Sprintf("Request %s %s", r.ID, r.Status))
	case "delete":
		id, err := oneID(sub, rest)
		if err != nil {
			return err
		}
		if err := a.requests.Delete(ctx, id); err != nil {
			return a.fail(err)
		}
		printOK(a.out(), "Request deleted")
	default:
		return fmt.Errorf("subcomando desconocido: requests %s", sub)
	}
	return nil
}

func oneID(sub string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%s: se espera exactamente un id", sub)
	}
	return args[0], nil
}
