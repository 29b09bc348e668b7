package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"football_bot/internal/cache"
	"football_bot/internal/catalog"
	"football_bot/internal/config"
	"football_bot/internal/logger"
	"football_bot/internal/repository"
	"football_bot/internal/service"
	"football_bot/internal/storage"
)

// app holds the state shared by every subcommand.
type app struct {
	dbPath     string
	catalogURL string
	timeout    time.Duration
	jsonOut    bool
	verbose    bool

	httpClient catalog.HTTPClient

	store   *storage.SQLite
	users   *service.UserService
	catalog *service.CatalogService
}

// newRootCmd builds the command tree; defaults seeds the --db and --catalog-url flags.
func newRootCmd(httpClient catalog.HTTPClient, defaults config.StoreConfig) *cobra.Command {
	a := &app{httpClient: httpClient}

	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Maintenance tasks for the football follow bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&a.dbPath, "db", defaults.DatabasePath, "path to sqlite database")
	cmd.PersistentFlags().StringVar(&a.catalogURL, "catalog-url", defaults.CatalogBaseURL, "catalog provider base URL")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "catalog request timeout")
	cmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of tables")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log progress to stderr")

	cmd.AddCommand(
		a.syncCmd(),
		a.statsCmd(),
		a.usersCmd(),
		a.deleteUserCmd(),
		a.teamsCmd(),
	)
	return cmd
}

func (a *app) open(cmd *cobra.Command) error {
	level := "error"
	if a.verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), level)
	cmd.SetContext(logger.WithLogger(cmd.Context(), log))

	store, err := storage.NewSQLite(a.dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.store = store

	userRepo := repository.NewUserRepository(store)
	followRepo := repository.NewFollowRepository(store)
	catalogRepo := repository.NewCatalogRepository(store)

	a.users = service.NewUserService(userRepo, followRepo)
	a.catalog = service.NewCatalogService(
		catalogRepo,
		catalog.New(a.httpClient, a.catalogURL, a.timeout),
		cache.New(catalogRepo, cache.DefaultTTL, cache.WithLogger(log)),
	)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *app) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [league...]",
		Short: "Mirror provider leagues into the team catalog",
		Long: `Fetches every named league (the popular leagues when none is given) and
appends teams whose id is not stored yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			leagues := args
			if len(leagues) == 0 {
				leagues = catalog.PopularLeagues
			}
			report, serr := a.catalog.Sync(cmd.Context(), leagues)
			if serr != nil {
				return serr
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "leagues: %d, fetched: %d, added: %d\n", report.Leagues, report.Fetched, report.Added)
			if len(report.FailedLeague) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "failed: %s\n", strings.Join(report.FailedLeague, ", "))
			}
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show user and follow totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, serr := a.users.Stats(cmd.Context())
			if serr != nil {
				return serr
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users: %d (active %d), follows: %d\n", stats.TotalUsers, stats.ActiveUsers, stats.TotalFollows)
			return nil
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users with their follow counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, serr := a.users.List(cmd.Context())
			if serr != nil {
				return serr
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), users)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tFOLLOWS\tLAST ACTIVE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", u.ID, u.Username, u.DisplayName, u.FollowCount, formatTime(u.LastActiveAt))
			}
			return w.Flush()
		},
	}
}

func (a *app) deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <user-id>",
		Short: "Delete a user and every team they follow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if serr := a.users.Delete(cmd.Context(), id); serr != nil {
				return serr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d deleted\n", id)
			return nil
		},
	}
}

func (a *app) teamsCmd() *cobra.Command {
	var league string

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List the stored team catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			teams, serr := a.catalog.ListTeams(cmd.Context())
			if serr != nil {
				return serr
			}
			if league != "" {
				filtered := teams[:0]
				for _, t := range teams {
					if strings.EqualFold(t.League, league) {
						filtered = append(filtered, t)
					}
				}
				teams = filtered
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), teams)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLEAGUE\tCOUNTRY")
			for _, t := range teams {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.League, t.Country)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&league, "league", "", "only show teams of this league")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}
