// Package main is the entry point for the pawsome-admin CLI, the
// terminal admin console for the services catalog.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/adminclient"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const defaultAPIURL = "http://localhost:4000"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(errOut io.Writer) {
	fmt.Fprintln(errOut, `Usage: pawsome-admin <command> [flags]

Commands:
  login    -u <username> [-p <password>]   Authenticate and store the session
  logout                                   Clear the stored session
  whoami                                   Show the logged-in admin
  list                                     List services in catalog order
  add      -name -price -desc [-category]  Add a service to the end
  edit     <id|position> [-name] [-price] [-desc] [-category]
  rm       <id|position> [-y]              Delete a service (asks first)
  up       <id|position>                   Move a service up one position
  down     <id|position>                   Move a service down one position

The API base URL is taken from PAWSOME_API_URL (default `+defaultAPIURL+`).`)
}

func run(ctx context.Context, args []string, stdin io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		usage(errOut)
		return exitUsage
	}

	baseURL := os.Getenv("PAWSOME_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	client := adminclient.NewClient(baseURL)
	session := adminclient.NewSessionStore(client, "")
	if err := session.Initialize(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitError
	}
	catalog := adminclient.NewCatalog(client, session)

	app := &cli{
		client:  client,
		session: session,
		catalog: catalog,
		stdin:   bufio.NewReader(stdin),
		out:     out,
		errOut:  errOut,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return app.login(ctx, rest)
	case "logout":
		return app.logout()
	case "whoami":
		return app.whoami()
	case "list":
		return app.list(ctx)
	case "add":
		return app.add(ctx, rest)
	case "edit":
		return app.edit(ctx, rest)
	case "rm":
		return app.remove(ctx, rest)
	case "up":
		return app.move(ctx, rest, adminclient.Up)
	case "down":
		return app.move(ctx, rest, adminclient.Down)
	case "help", "-h", "--help":
		usage(out)
		return exitOK
	default:
		fmt.Fprintf(errOut, "error: unknown command %q\n", cmd)
		usage(errOut)
		return exitUsage
	}
}

type cli struct {
	client  *adminclient.Client
	session *adminclient.SessionStore
	catalog *adminclient.Catalog
	stdin   *bufio.Reader
	out     io.Writer
	errOut  io.Writer
}

func (a *cli) fail(err error) int {
	fmt.Fprintf(a.errOut, "error: %v\n", err)
	return exitError
}

func (a *cli) login(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	username := fs.String("u", "", "admin username")
	password := fs.String("p", "", "admin password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *username == "" {
		fmt.Fprintln(a.errOut, "error: -u <username> is required")
		return exitUsage
	}
	if *password == "" {
		fmt.Fprint(a.out, "Password: ")
		line, err := a.stdin.ReadString('\n')
		if err != nil && line == "" {
			return a.fail(fmt.Errorf("failed to read password: %w", err))
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	if err := a.session.Login(ctx, *username, *password); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", a.session.Username())
	return exitOK
}

func (a *cli) logout() int {
	if err := a.session.Logout(); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return exitOK
}

func (a *cli) whoami() int {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return exitOK
	}
	fmt.Fprintln(a.out, a.session.Username())
	return exitOK
}

func (a *cli) list(ctx context.Context) int {
	if err := a.catalog.Refresh(ctx); err != nil {
		return a.fail(err)
	}

	services := a.catalog.Services()
	if len(services) == 0 {
		fmt.Fprintln(a.out, "No services")
		return exitOK
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tNAME\tPRICE\tCATEGORY")
	for i, s := range services {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, s.ID, s.Name, s.PriceString, s.Category)
	}
	_ = w.Flush()
	return exitOK
}

func serviceFlags(fs *flag.FlagSet) (name, price, desc, category *string) {
	name = fs.String("name", "", "service name")
	price = fs.String("price", "", "price string, e.g. \"$30/hour\"")
	desc = fs.String("desc", "", "description")
	category = fs.String("category", "", "category (default Regular)")
	return
}

func (a *cli) add(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	name, price, desc, category := serviceFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	err := a.catalog.Add(ctx, adminclient.ServiceFields{
		Name:        *name,
		PriceString: *price,
		Description: *desc,
		Category:    *category,
	})
	if err != nil {
		if adminclient.KindOf(err) == adminclient.KindValidation {
			fmt.Fprintf(a.errOut, "error: %v\n", err)
			return exitUsage
		}
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Added %q\n", *name)
	return exitOK
}

func (a *cli) edit(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.errOut, "error: service id or position required")
		return exitUsage
	}
	ref, rest := args[0], args[1:]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	name, price, desc, category := serviceFlags(fs)
	if err := fs.Parse(rest); err != nil {
		return exitUsage
	}

	svc, code := a.resolve(ctx, ref)
	if code != exitOK {
		return code
	}

	// Unset flags keep the current value, like the edit form
	// pre-populating its fields.
	fields := adminclient.ServiceFields{
		Name:        svc.Name,
		PriceString: svc.PriceString,
		Description: svc.Description,
		Category:    svc.Category,
	}
	if *name != "" {
		fields.Name = *name
	}
	if *price != "" {
		fields.PriceString = *price
	}
	if *desc != "" {
		fields.Description = *desc
	}
	if *category != "" {
		fields.Category = *category
	}

	if err := a.catalog.Edit(ctx, svc.ID, fields); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Updated %q\n", fields.Name)
	return exitOK
}

func (a *cli) remove(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	yes := fs.Bool("y", false, "skip the confirmation prompt")

	var ref string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		ref, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if ref == "" {
		fmt.Fprintln(a.errOut, "error: service id or position required")
		return exitUsage
	}

	svc, code := a.resolve(ctx, ref)
	if code != exitOK {
		return code
	}

	confirm := func(s adminclient.Service) bool {
		if *yes {
			return true
		}
		fmt.Fprintf(a.out, "Delete %q? [y/N]: ", s.Name)
		line, _ := a.stdin.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}

	err := a.catalog.Remove(ctx, svc.ID, confirm)
	if errors.Is(err, adminclient.ErrConfirmationDeclined) {
		fmt.Fprintln(a.out, "Aborted")
		return exitOK
	}
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Deleted %q\n", svc.Name)
	return exitOK
}

func (a *cli) move(ctx context.Context, args []string, dir adminclient.Direction) int {
	if len(args) != 1 {
		fmt.Fprintln(a.errOut, "error: service id or position required")
		return exitUsage
	}

	svc, code := a.resolve(ctx, args[0])
	if code != exitOK {
		return code
	}

	if err := a.catalog.Move(ctx, svc.ID, dir); err != nil {
		return a.fail(err)
	}
	return a.list(ctx)
}

// resolve refreshes the catalog and finds a service by exact id or by
// 1-based position in the listing.
func (a *cli) resolve(ctx context.Context, ref string) (adminclient.Service, int) {
	if err := a.catalog.Refresh(ctx); err != nil {
		return adminclient.Service{}, a.fail(err)
	}
	services := a.catalog.Services()

	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 1 || pos > len(services) {
			fmt.Fprintf(a.errOut, "error: position %d out of range (1-%d)\n", pos, len(services))
			return adminclient.Service{}, exitUsage
		}
		return services[pos-1], exitOK
	}

	for _, s := range services {
		if s.ID == ref {
			return s, exitOK
		}
	}
	fmt.Fprintf(a.errOut, "error: no service with id %q\n", ref)
	return adminclient.Service{}, exitError
}
