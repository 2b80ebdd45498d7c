package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/elonfeng/ardalis/pkg/render"
)

var (
	cfgFile string
	debug   bool

	// apiKey is the video statistics API key baked in at build time with
	// -ldflags "-X main.apiKey=...". Config and ARDALIS_API_KEY override it.
	apiKey string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if errors.Is(err, render.ErrInterrupted) || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ardalis",
		Short:         "Browse Ardalis's books, courses, packages, repositories and talks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.init(cmd.Context())
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log diagnostics to stderr")

	root.AddCommand(booksCmd(a))
	root.AddCommand(coursesCmd(a))
	root.AddCommand(packagesCmd(a))
	root.AddCommand(reposCmd(a))
	root.AddCommand(dotnetConfCmd(a))
	root.AddCommand(recentCmd(a))

	return root
}

// listFlags are the display flags shared by every listing command.
type listFlags struct {
	all  bool
	size int
}

func addListFlags(cmd *cobra.Command, f *listFlags) {
	cmd.Flags().BoolVar(&f.all, "all", false, "show everything without paging")
	cmd.Flags().IntVar(&f.size, "size", 0, "items per page (default: page_size from config)")
}

func booksCmd(a *app) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List published books, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBooks(cmd.Context(), f)
		},
	}

	addListFlags(cmd, &f)
	return cmd
}

func coursesCmd(a *app) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List available courses grouped by platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCourses(cmd.Context(), f)
		},
	}

	addListFlags(cmd, &f)
	return cmd
}

func packagesCmd(a *app) *cobra.Command {
	var (
		f           listFlags
		subpackages bool
	)

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List popular NuGet packages by downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPackages(cmd.Context(), f, subpackages)
		},
	}

	addListFlags(cmd, &f)
	cmd.Flags().BoolVar(&subpackages, "subpackages", false, "include sub-packages such as Ardalis.Result.AspNetCore")
	return cmd
}

func reposCmd(a *app) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List popular GitHub repositories by stars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRepos(cmd.Context(), f)
		},
	}

	addListFlags(cmd, &f)
	return cmd
}

func dotnetConfCmd(a *app) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "dotnetconf-score [year]",
		Short: "Rank .NET Conf videos of a year by views",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil || y < 1 {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}
			return a.runVideos(cmd.Context(), f, year)
		},
	}

	addListFlags(cmd, &f)
	return cmd
}

func recentCmd(a *app) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recent blog posts and GitHub activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRecent(cmd.Context(), f)
		},
	}

	addListFlags(cmd, &f)
	return cmd
}
