package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/polkiloo/reelorders/internal/client"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/logger"
	"github.com/polkiloo/reelorders/internal/poller"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130

	defaultAPIURL = "http://localhost:8080"
	usage         = `usage: ordertrack [flags] <command> [args]

commands:
  status              print whether the shop accepts orders
  submit [flags]      place an order and remember its id
  get <id>            print one order
  history             print remembered orders, newest first
  watch <id>          poll until the order is approved
`
)

type cli struct {
	api     *client.HTTPClient
	ids     *client.IDStore
	stdout  io.Writer
	stderr  io.Writer
	printer *message.Printer
	poller  *poller.Poller
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("ordertrack", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	apiURL := flags.String("api", envOr("REELORDERS_API", defaultAPIURL), "API base URL")
	idsPath := flags.String("ids", envOr("REELORDERS_IDS", defaultIDsPath()), "file remembering placed order ids")
	interval := flags.Duration("interval", poller.DefaultInterval, "status poll interval")
	logLevel := flags.String("log-level", "warn", "log level")

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitUsage
	}

	log := logger.NewCLI(stderr, *logLevel)
	api, err := client.NewHTTPClient(*apiURL, log)
	if err != nil {
		fmt.Fprintf(stderr, "ordertrack: %v\n", err)
		return exitUsage
	}

	c := &cli{
		api:     api,
		ids:     client.NewIDStore(*idsPath),
		stdout:  stdout,
		stderr:  stderr,
		printer: message.NewPrinter(language.English),
		poller:  poller.New(api, *interval, log),
	}

	cmd, rest := flags.Arg(0), flags.Args()[1:]
	switch cmd {
	case "status":
		err = c.status(ctx)
	case "submit":
		err = c.submit(ctx, rest)
	case "get":
		err = c.get(ctx, rest)
	case "history":
		err = c.history(ctx)
	case "watch":
		err = c.watch(ctx, rest)
	default:
		fmt.Fprintf(stderr, "ordertrack: unknown command %q\n", cmd)
		flags.Usage()
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		fmt.Fprintf(stderr, "ordertrack: %v\n", err)
		return exitFailure
	}
}

var errUsage = errors.New("usage")

func (c *cli) status(ctx context.Context) error {
	status, err := c.api.ServerStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, status)
	return nil
}

func (c *cli) submit(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("submit", flag.ContinueOnError)
	flags.SetOutput(c.stderr)

	var in model.OrderInput
	flags.StringVar(&in.ID, "id", "", "order id, generated by the server when empty")
	flags.StringVar(&in.ServiceType, "service", "", "service type, e.g. views or story_views")
	flags.StringVar(&in.PackageID, "package", "", "catalog package id")
	flags.IntVar(&in.Quantity, "quantity", 0, "package quantity")
	flags.IntVar(&in.Price, "price", 0, "price in rupees")
	flags.StringVar(&in.TargetURL, "url", "", "Instagram reel, post or story URL")
	flags.StringVar(&in.PaymentReference, "ref", "", "UPI transaction reference (UTR)")
	watch := flags.Bool("watch", false, "poll until the order is approved")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}

	if status, err := c.api.ServerStatus(ctx); err == nil && status == model.ServerStatusClosed {
		fmt.Fprintln(c.stderr, "warning: the shop is currently closed, approval may be delayed")
	}

	id, err := c.api.SubmitOrder(ctx, in)
	if err != nil {
		return err
	}
	if err := c.ids.Add(id); err != nil {
		fmt.Fprintf(c.stderr, "warning: order %s placed but not remembered: %v\n", id, err)
	}
	fmt.Fprintln(c.stdout, id)

	if !*watch {
		return nil
	}
	return c.waitApproved(ctx, id)
}

func (c *cli) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "usage: ordertrack get <id>")
		return errUsage
	}
	order, err := c.api.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}
	c.printOrders([]model.Order{*order})
	return nil
}

func (c *cli) history(ctx context.Context) error {
	ids, err := c.ids.Load()
	if err != nil {
		return err
	}
	orders, err := c.api.History(ctx, ids)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(c.stdout, "no orders yet")
		return nil
	}
	c.printOrders(orders)
	return nil
}

func (c *cli) watch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "usage: ordertrack watch <id>")
		return errUsage
	}
	order, err := c.api.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		fmt.Fprintf(c.stdout, "%s %s\n", order.ID, order.Status)
		return nil
	}
	return c.waitApproved(ctx, order.ID)
}

func (c *cli) waitApproved(ctx context.Context, id string) error {
	fmt.Fprintf(c.stdout, "waiting for approval of %s\n", id)
	session := c.poller.Watch(ctx, id, nil)
	<-session.Done()

	order, ok := session.Approved()
	if !ok {
		return context.Canceled
	}
	fmt.Fprintf(c.stdout, "%s %s\n", order.ID, order.Status)
	return nil
}

func (c *cli) printOrders(orders []model.Order) {
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tSERVICE\tQUANTITY\tPRICE\tCREATED")
	for _, o := range orders {
		c.printer.Fprintf(w, "%s\t%s\t%s\t%d\t₹%d\t%s\n",
			o.ID, o.Status, o.ServiceType, o.Quantity, o.Price, o.CreatedAt.Local().Format(time.DateTime))
	}
	_ = w.Flush()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultIDsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "reelorders_order_ids.json"
	}
	return filepath.Join(dir, "reelorders", "order_ids.json")
}
