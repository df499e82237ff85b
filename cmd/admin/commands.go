package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"yatube/internal/app"
	"yatube/internal/config"
	"yatube/internal/handler/http/identity"
	"yatube/internal/infra/db"
	"yatube/internal/pagecache"
	groupUC "yatube/internal/usecase/group"
	postUC "yatube/internal/usecase/post"
)

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) migrate(args []string) error {
	fs := c.flagSet("migrate")
	down := fs.Bool("down", false, "roll back every migration (destroys all data)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := c.cfg.ValidateDatabase(); err != nil {
		return err
	}
	driver, _ := c.cfg.Driver()
	if *down {
		c.logger.Warn("rolling back all migrations", slog.String("driver", string(driver)))
		return db.MigrateDown(driver, c.cfg.DatabaseURL)
	}
	return db.MigrateUp(driver, c.cfg.DatabaseURL)
}

// services migrates the database and builds the use case services on it.
func (c *cli) services(ctx context.Context) (app.Services, func(), error) {
	if err := c.cfg.ValidateDatabase(); err != nil {
		return app.Services{}, nil, err
	}
	driver, _ := c.cfg.Driver()
	if err := db.MigrateUp(driver, c.cfg.DatabaseURL); err != nil {
		return app.Services{}, nil, err
	}
	conn, err := db.Open(ctx, driver, c.cfg.DatabaseURL, c.cfg.ConnectionConfig())
	if err != nil {
		return app.Services{}, nil, err
	}
	repos, err := app.NewRepositories(driver, conn)
	if err != nil {
		_ = conn.Close()
		return app.Services{}, nil, err
	}
	closeFn := func() {
		if err := conn.Close(); err != nil {
			c.logger.Error("failed to close database", slog.Any("error", err))
		}
	}
	return app.NewServices(repos), closeFn, nil
}

func (c *cli) group(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: group needs create, delete or list", errUsage)
	}
	sub, rest := args[0], args[1:]

	fs := c.flagSet("group " + sub)
	var title, slug, description string
	switch sub {
	case "create":
		fs.StringVar(&title, "title", "", "group title (required)")
		fs.StringVar(&slug, "slug", "", "URL slug; derived from the title when empty")
		fs.StringVar(&description, "description", "", "group description")
	case "delete":
		fs.StringVar(&slug, "slug", "", "slug of the group to delete (required)")
	case "list":
	default:
		return fmt.Errorf("%w: unknown group command %q", errUsage, sub)
	}
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if sub == "delete" && slug == "" {
		return fmt.Errorf("%w: -slug is required", errUsage)
	}

	svc, closeFn, err := c.services(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	switch sub {
	case "create":
		g, err := svc.Groups.Create(ctx, groupUC.CreateInput{Title: title, Slug: slug, Description: description})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "created group %d %s\n", g.ID, g.Slug)
	case "delete":
		if err := svc.Groups.Delete(ctx, slug); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "deleted group %s\n", slug)
	case "list":
		groups, err := svc.Groups.List(ctx)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Fprintf(c.stdout, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
		}
	}
	return nil
}

// seedFile is the YAML layout read by the seed command.
type seedFile struct {
	Groups []struct {
		Title       string `yaml:"title"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
	} `yaml:"groups"`
	Posts []struct {
		Author string `yaml:"author"`
		Text   string `yaml:"text"`
		Group  string `yaml:"group"`
	} `yaml:"posts"`
}

func (c *cli) seed(ctx context.Context, args []string) error {
	fs := c.flagSet("seed")
	file := fs.String("file", "", "YAML file with groups and posts (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *file == "" {
		return fmt.Errorf("%w: -file is required", errUsage)
	}

	// #nosec G304 -- path is an operator-supplied CLI argument
	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var in seedFile
	if err := yaml.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	svc, closeFn, err := c.services(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	created, skipped := 0, 0
	for _, g := range in.Groups {
		_, err := svc.Groups.Create(ctx, groupUC.CreateInput{Title: g.Title, Slug: g.Slug, Description: g.Description})
		switch {
		case errors.Is(err, groupUC.ErrSlugTaken):
			skipped++
			c.logger.Info("group exists, skipped", slog.String("title", g.Title))
		case err != nil:
			return fmt.Errorf("seed group %q: %w", g.Title, err)
		default:
			created++
		}
	}

	posts := 0
	for i, p := range in.Posts {
		var input postUC.CreateInput
		input.Text = p.Text
		if p.Group != "" {
			g, err := svc.Groups.Get(ctx, p.Group)
			if err != nil {
				return fmt.Errorf("seed post %d: %w", i+1, err)
			}
			input.GroupID = &g.ID
		}
		if _, err := svc.Posts.Create(ctx, p.Author, input); err != nil {
			return fmt.Errorf("seed post %d: %w", i+1, err)
		}
		posts++
	}

	fmt.Fprintf(c.stdout, "groups created=%d skipped=%d, posts created=%d\n", created, skipped, posts)
	return nil
}

func (c *cli) cache(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "clear" {
		return fmt.Errorf("%w: cache needs clear", errUsage)
	}
	if c.cfg.CacheBackend != config.CacheRedis {
		fmt.Fprintln(c.stdout, "memory cache lives in the server process; restart the server to clear it")
		return nil
	}
	if err := c.cfg.ValidateCache(); err != nil {
		return err
	}
	client, err := pagecache.NewRedisClient(c.cfg.RedisURL)
	if err != nil {
		return err
	}
	store, err := pagecache.NewRedisStore(client, pagecache.WithKeyPrefix(c.cfg.CachePrefix))
	if err != nil {
		_ = client.Close()
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "cleared %s:*\n", c.cfg.CachePrefix)
	return nil
}

func (c *cli) token(args []string) error {
	fs := c.flagSet("token")
	user := fs.String("user", "", "username to sign in as (required)")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *user == "" {
		return fmt.Errorf("%w: -user is required", errUsage)
	}
	if *ttl <= 0 {
		return fmt.Errorf("%w: -ttl must be positive", errUsage)
	}
	if err := c.cfg.ValidateSecret(); err != nil {
		return err
	}
	tok, err := identity.Issue([]byte(c.cfg.JWTSecret), *user, *ttl, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, tok)
	return nil
}
