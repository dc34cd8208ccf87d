// radioctl - утилита обслуживания снапшота радиорубки без запуска сервера:
// резервные копии, сброс, повтор outbox и выдача токенов squadre.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/shenikar/radio_room_system/internal/config"
	"github.com/shenikar/radio_room_system/internal/repository"
	"github.com/shenikar/radio_room_system/internal/service"
	"github.com/shenikar/radio_room_system/pkg/logger"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var snapshotPath, outboxPath, logLevel string
	flagSet := pflag.NewFlagSet("radioctl", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&snapshotPath, "snapshot", cfg.SnapshotPath, "path to the snapshot document")
	flagSet.StringVar(&outboxPath, "outbox", cfg.OutboxPath, "path to the outbox file")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level (logs go to stderr)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(flagSet)
		if help {
			return nil
		}
		return errUsage
	}

	cfg.SnapshotPath = snapshotPath
	cfg.OutboxPath = outboxPath
	log := logger.NewWithOutput(logLevel, os.Stderr)

	ctx := context.Background()
	session := service.NewSession(
		repository.NewFileStore(cfg.SnapshotPath),
		repository.NewFileOutbox(cfg.OutboxPath),
		log, cfg,
	)
	if err := session.Open(ctx); err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	for _, w := range session.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	command, rest := flagSet.Arg(0), flagSet.Args()[1:]
	switch command {
	case "export":
		return cmdExport(ctx, session, rest, stdout)
	case "restore":
		return cmdRestore(ctx, session, rest, stdin, stdout)
	case "reset":
		return cmdReset(ctx, session, rest, stdout)
	case "retry-outbox":
		n, err := session.RetryOutbox(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "flushed %d outbox records\n", n)
		return nil
	case "token":
		return cmdToken(ctx, session, rest, stdout)
	case "status":
		return cmdStatus(session, stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		printHelp(flagSet)
		return errUsage
	}
}

func cmdExport(ctx context.Context, session *service.Session, args []string, stdout io.Writer) error {
	var out string
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	fs.StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := session.Export(ctx)
	if err != nil {
		return err
	}
	if out == "" {
		_, err = stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	fmt.Fprintf(stdout, "exported %d bytes to %s\n", len(data), out)
	return nil
}

func cmdRestore(ctx context.Context, session *service.Session, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("restore expects one file argument (use - for stdin): %w", errUsage)
	}

	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if err := session.Restore(ctx, data); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "snapshot restored")
	return nil
}

func cmdReset(ctx context.Context, session *service.Session, args []string, stdout io.Writer) error {
	var yes bool
	fs := pflag.NewFlagSet("reset", pflag.ContinueOnError)
	fs.BoolVar(&yes, "yes", false, "confirm deleting the whole log")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !yes {
		return fmt.Errorf("reset deletes every log entry, pass --yes to confirm: %w", errUsage)
	}
	if err := session.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "state reset to defaults")
	return nil
}

func cmdToken(ctx context.Context, session *service.Session, args []string, stdout io.Writer) error {
	var regenerate bool
	fs := pflag.NewFlagSet("token", pflag.ContinueOnError)
	fs.BoolVar(&regenerate, "regenerate", false, "issue a new token, invalidating the old one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("token expects a team name: %w", errUsage)
	}
	name := fs.Arg(0)

	team, err := session.Team(name)
	if err != nil {
		return err
	}
	if regenerate || team.Token == "" {
		if team, err = session.RegenerateToken(ctx, name); err != nil {
			return err
		}
	}
	url, err := session.FieldURL(team.Name)
	if err != nil {
		return err
	}
	expires := "-"
	if team.TokenExpiresAt != nil {
		expires = team.TokenExpiresAt.Format("2006-01-02 15:04:05")
	}
	fmt.Fprintf(stdout, "team:    %s\ntoken:   %s\nexpires: %s\nurl:     %s\n", team.Name, team.Token, expires, url)
	return nil
}

func cmdStatus(session *service.Session, stdout io.Writer) error {
	snap := session.Snapshot()
	fmt.Fprintf(stdout, "operator: %s\nevent:    %s\nlog: %d  inbox: %d  holds: %d  pending writes: %d\n\n",
		snap.Operator, snap.Event.Name, len(snap.Log), len(snap.Inbox), len(snap.Replies), session.PendingWrites())

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tSTATUS\tLEADER\tPHONE\tTOKEN EXPIRES")
	for _, t := range session.Teams() {
		expires := "-"
		if t.TokenExpiresAt != nil {
			expires = t.TokenExpiresAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Name, t.Status, t.Leader, t.Phone, expires)
	}
	return tw.Flush()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `radioctl - maintenance for the radio room snapshot.

Usage:
  radioctl [flags] <command> [args]

Commands:
  export [-o file]         write a backup of the full state
  restore <file|->         replace the state with a backup
  reset --yes              restore the default state (deletes the log)
  retry-outbox             save changes left in the outbox
  token [--regenerate] <team>
                           print (or reissue) the field link of a team
  status                   summary of teams and queues

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
