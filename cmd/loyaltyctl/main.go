package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/ashidadhich33-source/MY-erp-sub000/api"
	"github.com/ashidadhich33-source/MY-erp-sub000/internal/config"
	"github.com/ashidadhich33-source/MY-erp-sub000/session"
	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore"
	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logger := newLogger(c.GetLogLevel())

	store := tokenstore.NewFileStore(c.GetCredentialsFile())
	events := session.NewEvents()
	reqMW, respMW := session.Middleware(store, events)

	t, err := transport.New(transport.Settings{
		BaseURL: c.GetBaseURL(),
		Timeout: c.GetRequestTimeout(),
		Logger:  logger,
	},
		transport.WithRequestMiddleware(transport.RequestID(), reqMW),
		transport.WithResponseMiddleware(respMW),
	)
	if err != nil {
		return fmt.Errorf("transport.New %w", err)
	}

	client := api.New(t)
	controller := session.NewController(client.Auth(), store, events, logger)

	ctx := context.Background()
	if err := controller.Bootstrap(ctx); err != nil {
		logger.Warn().Err(err).Msg("session bootstrap")
	}

	if len(os.Args) < 2 {
		displayAppname(c.GetAppName())
		usage()
		return nil
	}

	return dispatch(ctx, os.Args[1], os.Args[2:], client, controller)
}

func dispatch(ctx context.Context, command string, args []string, client *api.Client, controller *session.Controller) error {
	switch command {
	case "login":
		return cmdLogin(ctx, args, controller)
	case "logout":
		return controller.Logout(ctx)
	case "me":
		return cmdMe(controller)
	case "customers":
		return cmdCustomers(ctx, args, client)
	case "health":
		return cmdHealth(ctx, client)
	case "endpoints":
		return cmdEndpoints()
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdLogin(ctx context.Context, args []string, controller *session.Controller) error {
	if len(args) < 1 {
		return errors.New("usage: loyaltyctl login <email>")
	}
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password %w", err)
	}
	user, err := controller.Login(ctx, args[0], string(password))
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func cmdMe(controller *session.Controller) error {
	if controller.State() != session.StateAuthenticated {
		return errors.New("not signed in")
	}
	user := controller.Profile()
	fmt.Printf("%d\t%s\t%s\t%s\n", user.ID, user.Name, user.Email, user.Role)
	return nil
}

func cmdCustomers(ctx context.Context, args []string, client *api.Client) error {
	params := api.CustomerListParams{Limit: 20}
	if len(args) > 0 {
		params.Search = args[0]
	}
	page, err := client.Customers().List(ctx, params)
	if err != nil {
		return err
	}
	for _, customer := range page.Data {
		fmt.Printf("%d\t%s\t%s\n", customer.ID, customer.Name, customer.Phone)
	}
	fmt.Printf("%d of %d customers\n", len(page.Data), page.Total)
	return nil
}

func cmdHealth(ctx context.Context, client *api.Client) error {
	health, err := client.Health().Check(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status=%s database=%s version=%s\n", health.Status, health.Database, health.Version)
	return nil
}

func cmdEndpoints() error {
	for _, b := range api.Bindings() {
		fmt.Printf("%-28s %-6s %s\n", b.Name, b.Method, b.Path)
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func usage() {
	fmt.Println("usage: loyaltyctl <login|logout|me|customers|health|endpoints> [args]")
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
