// Command console is the operator CLI: it drives the same HTTP API the
// web dashboard uses, exporting results to CSV files, bulk-toggling
// tests, and offering a line-mode test-taking session for smoke checks.
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mind-engage/quizhub/internal/admin"
	"github.com/mind-engage/quizhub/internal/alert"
	"github.com/mind-engage/quizhub/internal/client"
	"github.com/mind-engage/quizhub/internal/config"
	"github.com/mind-engage/quizhub/internal/quiz"
	"github.com/mind-engage/quizhub/internal/session"
	"github.com/mind-engage/quizhub/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	base := flag.String("base", envOr("PUBLIC_URL", "http://localhost:8080"), "server base URL")
	user := flag.String("admin-user", cfg.AdminUser, "admin username")
	pass := flag.String("admin-pass", os.Getenv("ADMIN_PASS"), "admin password")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	c := client.New(*base)

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "export":
		err = runExport(ctx, c, cfg, *user, *pass, flag.Args()[1:])
	case "toggle":
		err = runToggle(ctx, c, *user, *pass, flag.Args()[1:])
	case "dashboard":
		err = runDashboard(ctx, c, *user, *pass)
	case "take":
		err = runTake(ctx, c, flag.Args()[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: console [flags] <command>

commands:
  export <test-code>       write a test's results to a CSV file
  toggle <code> [code...]  flip active status for each test, in order
  dashboard                print the summary counters
  take <user-id> <name>    take a test interactively`)
	flag.PrintDefaults()
}

func login(ctx context.Context, c *client.Client, user, pass string) error {
	if pass == "" {
		return fmt.Errorf("admin password required (flag -admin-pass or env ADMIN_PASS)")
	}
	return c.Login(ctx, user, pass)
}

func runExport(ctx context.Context, c *client.Client, cfg config.Config, user, pass string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("export: exactly one test code expected")
	}
	if err := login(ctx, c, user, pass); err != nil {
		return err
	}

	exp, err := admin.NewExport(ctx, c, args[0])
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := exp.WriteCSV(&buf); err != nil {
		return err
	}

	fs, err := storage.NewFSStore(cfg.ExportBasePath)
	if err != nil {
		return err
	}
	path, err := fs.Put(exp.Filename(), &buf)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d result(s) to %s\n", len(exp.Results), path)
	return nil
}

func runToggle(ctx context.Context, c *client.Client, user, pass string, codes []string) error {
	if len(codes) == 0 {
		return fmt.Errorf("toggle: at least one test code expected")
	}
	if err := login(ctx, c, user, pass); err != nil {
		return err
	}
	res := admin.BulkToggle(ctx, c, codes, alert.Log())
	if len(res.Failed) > 0 {
		return fmt.Errorf("toggle: %d of %d failed: %s",
			len(res.Failed), len(codes), strings.Join(res.Failed, ", "))
	}
	return nil
}

func runDashboard(ctx context.Context, c *client.Client, user, pass string) error {
	if err := login(ctx, c, user, pass); err != nil {
		return err
	}
	d := admin.NewDashboard(c, alert.Log())
	if err := d.Refresh(ctx); err != nil {
		return err
	}
	fmt.Printf("tests: %d (%d active)\nstudents: %d\nsubmissions: %d\naverage score: %.1f\n",
		d.Stats.TotalTests, d.Stats.ActiveTests,
		d.Stats.TotalUsers, d.Stats.TotalSubmissions, d.Stats.AverageScore)
	for _, p := range d.Distribution {
		fmt.Printf("  %7s: %d\n", p.Label, p.Value)
	}
	return nil
}

func runTake(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("take: expected <user-id> <name>")
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("take: bad user id %q", args[0])
	}

	in := bufio.NewScanner(os.Stdin)
	notify := alert.Func(func(level alert.Level, msg string) {
		fmt.Printf("[%s] %s\n", level, msg)
	})
	s := session.New(c, quiz.User{ID: userID, Name: args[1]}, session.WithNotifier(notify))

	fmt.Print("test code: ")
	if !in.Scan() {
		return in.Err()
	}
	if err := s.EnterCode(ctx, strings.TrimSpace(in.Text())); err != nil {
		return err
	}

	t := s.Test()
	fmt.Printf("\n%s\n%s\n", t.Title, t.Description)
	if t.TimeLimitMin > 0 {
		fmt.Printf("time limit: %d minutes\n", t.TimeLimitMin)
	}
	fmt.Print("press enter to begin")
	in.Scan()
	if err := s.Begin(); err != nil {
		return err
	}

	for {
		num := s.CurrentQuestion()
		fmt.Printf("\nquestion %d/%d (answered %d, %.0f%%)",
			num, quiz.TotalQuestions, s.AnsweredCount(), s.Progress())
		if rem := s.Remaining(); rem >= 0 {
			fmt.Printf(" [%s left]", session.FormatRemaining(rem))
		}
		fmt.Println()

		if opts := quiz.OptionsFor(num); opts != nil {
			fmt.Printf("choice %s, or: n)ext p)rev g)oto s)ubmit q)uit\n> ", strings.Join(opts, "/"))
		} else {
			fmt.Print("a <text> / b <text> to answer, or: n)ext p)rev g)oto s)ubmit q)uit\n> ")
		}
		if !in.Scan() {
			s.Abandon()
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		switch {
		case line == "n":
			if !s.Next() {
				fmt.Println("last question; submit with s")
			}
		case line == "p":
			s.Prev()
		case strings.HasPrefix(line, "g "):
			q, err := strconv.Atoi(strings.TrimSpace(line[2:]))
			if err == nil {
				err = s.Jump(q - 1)
			}
			if err != nil {
				fmt.Println(err)
			}
		case line == "s":
			fmt.Printf("submit %d answered question(s)? (y/n) ", s.AnsweredCount())
			if in.Scan() && strings.TrimSpace(in.Text()) == "y" {
				if err := s.Submit(ctx); err != nil {
					continue
				}
				grade := s.Grade()
				notify(alert.Level(quiz.GradeColor(grade)),
					fmt.Sprintf("score: %.1f%% (grade %s)", s.Score(), grade))
				return nil
			}
		case line == "q":
			s.Abandon()
			return nil
		case strings.HasPrefix(line, "a ") || strings.HasPrefix(line, "b "):
			part := strings.ToUpper(line[:1])
			if err := s.SetTextPart(num, part, line[2:]); err != nil {
				fmt.Println(err)
			}
		default:
			if err := s.SelectChoice(num, strings.ToUpper(line)); err != nil {
				fmt.Println(err)
			}
		}
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
