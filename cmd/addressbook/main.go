package main

import (
	"address-book/internal/addressbook"
	"address-book/internal/config"
	"address-book/internal/logging"
	"address-book/internal/model"
	"address-book/internal/prompt"
	"address-book/internal/templating"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	book   *addressbook.Book
	views  *templating.Engine
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// commonFlags registers the flags shared by every command.
func commonFlags(fs *flag.FlagSet) (configFile, dataFile *string) {
	configFile = fs.String("config", "", "Path to config file (optional)")
	dataFile = fs.String("data", "", "Path to the contacts data file (overrides config)")
	return configFile, dataFile
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := "interactive"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile, dataFile := commonFlags(fs)

	var handler func(*app) int
	switch cmd {
	case "interactive":
		handler = handleInteractive
	case "add":
		handler = addCommand(fs)
	case "count":
		handler = countCommand(fs)
	case "summary":
		handler = summaryCommand(fs)
	case "list":
		handler = handleList
	case "init-config":
		path := fs.String("path", "", "Where to write the starter config (default $XDG_CONFIG_HOME/addressbook/addressbook.yaml)")
		if err := fs.Parse(args); err != nil {
			return exitUsage
		}
		return handleInitConfig(*path, stdout, stderr)
	case "help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return exitUsage
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	a, err := setup(*configFile, *dataFile, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer func() { _ = a.logger.Sync() }()

	return handler(a)
}

func setup(configFile, dataFile string, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	logOpts := cfg.LoggingOptions()
	logOpts.Output = stderr
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	views, err := templating.NewEngine()
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		book:   addressbook.Load(cfg.DataFile, logger),
		views:  views,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "\nUsage: addressbook <command> [options]")
	fmt.Fprintln(w, "Available commands:")
	fmt.Fprintln(w, "  interactive   Menu driven session (default)")
	fmt.Fprintln(w, "  add -fname <v> -lname <v> -street <v> -city <v> -state <v> -country <v> -mobile <digits> -email <v>")
	fmt.Fprintln(w, "                Add a contact")
	fmt.Fprintln(w, "  count -field <fname|lname|street> -value <v>")
	fmt.Fprintln(w, "                Count contacts whose field equals value")
	fmt.Fprintln(w, "  summary [-fname <v>] [-lname <v>] [-street <v>]")
	fmt.Fprintln(w, "                Show occurrence counts for several fields")
	fmt.Fprintln(w, "  list          List all contacts")
	fmt.Fprintln(w, "  init-config [-path <file>]")
	fmt.Fprintln(w, "                Write a starter config file")
	fmt.Fprintln(w, "Common options: -config <file> -data <file>")
}

func handleInteractive(a *app) int {
	p := prompt.NewPrompter(a.stdin, a.stdout, a.logger, a.cfg.MaxRetries)
	session := prompt.NewSession(a.book, p, a.views, a.stdout, a.logger)
	if err := session.Run(); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

type contactFlag struct {
	name  string
	usage string
	rule  prompt.Rule
	set   func(*model.Contact, string)
}

var contactFlags = []contactFlag{
	{"fname", "First name", prompt.NonBlank("Invalid first name."), func(c *model.Contact, v string) { c.FirstName = v }},
	{"lname", "Last name", prompt.NonBlank("Invalid last name."), func(c *model.Contact, v string) { c.LastName = v }},
	{"street", "Street address", prompt.NonBlank("Invalid street address."), func(c *model.Contact, v string) { c.Street = v }},
	{"city", "City", prompt.NonBlank("Invalid city."), func(c *model.Contact, v string) { c.City = v }},
	{"state", "State", prompt.NonBlank("Invalid state."), func(c *model.Contact, v string) { c.State = v }},
	{"country", "Country", prompt.NonBlank("Invalid country."), func(c *model.Contact, v string) { c.Country = v }},
	{"mobile", "Mobile number (digits only)", prompt.Digits("Invalid mobile number."), func(c *model.Contact, v string) { c.Mobile = v }},
	{"email", "Email address", prompt.EmailLike("Invalid email."), func(c *model.Contact, v string) { c.Email = v }},
}

func addCommand(fs *flag.FlagSet) func(*app) int {
	values := make([]*string, len(contactFlags))
	for i, f := range contactFlags {
		values[i] = fs.String(f.name, "", f.usage+" (required)")
	}
	return func(a *app) int {
		var c model.Contact
		for i, f := range contactFlags {
			if !f.rule.Valid(*values[i]) {
				fmt.Fprintf(a.stderr, "Error: -%s: %s\n", f.name, f.rule.Message)
				return exitUsage
			}
			f.set(&c, *values[i])
		}

		status, err := a.book.AddContact(c)
		result := templating.Result{Added: status == addressbook.Added}
		code := exitOK
		switch {
		case errors.Is(err, addressbook.ErrDuplicateContact):
			result.Duplicate = true
			code = exitFailure
		case errors.Is(err, addressbook.ErrPersistence):
			result.SaveError = err
			code = exitFailure
		case err != nil:
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitFailure
		}
		if err := a.views.Render(a.stdout, templating.ViewResult, result); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitFailure
		}
		return code
	}
}

func countCommand(fs *flag.FlagSet) func(*app) int {
	field := fs.String("field", "", "Field to match: fname, lname or street (required)")
	value := fs.String("value", "", "Exact value to count")
	return func(a *app) int {
		if *field == "" {
			fmt.Fprintln(a.stderr, "Error: -field flag is required for count command")
			return exitUsage
		}
		fmt.Fprintln(a.stdout, a.book.CountOccurrences(model.Field(*field), *value))
		return exitOK
	}
}

func summaryCommand(fs *flag.FlagSet) func(*app) int {
	for _, f := range model.SummaryFields {
		fs.String(string(f), "", "Value to search in "+f.Label())
	}
	return func(a *app) int {
		values := make(map[model.Field]string)
		fs.Visit(func(fl *flag.Flag) {
			for _, f := range model.SummaryFields {
				if fl.Name == string(f) {
					values[f] = fl.Value.String()
				}
			}
		})
		if len(values) == 0 {
			fmt.Fprintln(a.stderr, "Error: at least one of -fname, -lname or -street is required for summary command")
			return exitUsage
		}
		if err := prompt.RenderSummary(a.views, a.stdout, a.book, values); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitFailure
		}
		return exitOK
	}
}

func handleList(a *app) int {
	if err := a.views.Render(a.stdout, templating.ViewList, a.book.Contacts()); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func handleInitConfig(path string, stdout, stderr io.Writer) int {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
	}
	if err := config.WriteDefault(path); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	fmt.Fprintf(stdout, "Wrote default config to %s\n", path)
	return exitOK
}
