package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/events"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/logger"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/text"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

// NewRootCmd builds the armory command tree
func NewRootCmd() *cobra.Command {
	var a *app

	rootCmd := &cobra.Command{
		Use:           "armory",
		Short:         "Inspect, hand out and simulate Quakecraft weapons",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(cmd.Context())
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				a.close()
			}
		},
	}

	current := func() *app { return a }
	rootCmd.AddCommand(
		newListCmd(current),
		newGiveCmd(current),
		newSimulateCmd(current),
		newSaveCmd(current),
		newLoadCmd(current),
	)
	return rootCmd
}

func newListCmd(current func() *app) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered weapons and their settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			if locale == "" {
				locale = a.cfg.Armory.Locale
			}
			printWeapons(cmd, a, locale)
			return nil
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "locale for display names (defaults to ARMORY_LOCALE)")
	return cmd
}

func newGiveCmd(current func() *app) *cobra.Command {
	var playerName, locale string

	cmd := &cobra.Command{
		Use:     "give [weapon]",
		Short:   "Build a weapon stack for a player and show it",
		Example: "armory give quakecraft:rocket_launcher --player Steve --locale fr_fr",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			id, err := identifier.Parse(args[0])
			if err != nil {
				return err
			}
			if locale == "" {
				locale = a.cfg.Armory.Locale
			}

			player := entities.NewPlayer(strings.ToLower(playerName), playerName, locale)
			ctx := logger.WithPlayerID(cmd.Context(), player.ID)
			stack, err := a.service.Give(ctx, player, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			name, _ := stack.Name()
			fmt.Fprintf(out, "item:          %s x%d\n", stack.Item(), stack.Count())
			fmt.Fprintf(out, "name:          %s (%s)\n", a.catalog.Resolve(locale, name), name.Key)
			fmt.Fprintf(out, "unbreakable:   %t\n", stack.Unbreakable())
			fmt.Fprintf(out, "glint:         %t\n", stack.Glint())
			fmt.Fprintf(out, "model data:    %d\n", stack.CustomModelData())
			fmt.Fprintf(out, "hud:           %s\n", a.service.Status(player, entities.HandMain))
			return nil
		},
	}
	cmd.Flags().StringVar(&playerName, "player", "Steve", "player name")
	cmd.Flags().StringVar(&locale, "locale", "", "player locale (defaults to ARMORY_LOCALE)")
	return cmd
}

func newSimulateCmd(current func() *app) *cobra.Command {
	var (
		weaponArg string
		ticks     int
		fireEvery int
		secondary bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the tick loop with a player holding down the trigger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			id, err := identifier.Parse(weaponArg)
			if err != nil {
				return err
			}
			if fireEvery <= 0 {
				fireEvery = 1
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			world := entities.NewWorld("arena")
			player := entities.NewPlayer("steve", "Steve", a.cfg.Armory.Locale)
			ctx = logger.WithPlayerID(ctx, player.ID)
			if _, err := a.service.Give(ctx, player, id); err != nil {
				return err
			}

			hud := make(chan string, 16)
			listener := &hudListener{id: "cli_hud", lines: hud}
			for _, eventType := range []events.EventType{
				events.EventTypeReloadStarted,
				events.EventTypeReloadFinished,
				events.EventTypeOutOfAmmo,
			} {
				a.bus.Subscribe(eventType, listener)
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				defer close(hud)

				ticker := time.NewTicker(a.cfg.Armory.TickInterval())
				defer ticker.Stop()

				for i := 0; i < ticks; i++ {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
					}

					if err := a.service.Tick(ctx, world); err != nil {
						return err
					}
					if i%fireEvery != 0 {
						continue
					}

					result, err := a.service.Primary(ctx, world, player, entities.HandMain)
					if err != nil {
						return err
					}
					if secondary {
						if _, err := a.service.Secondary(ctx, world, player, entities.HandMain); err != nil {
							return err
						}
					}
					hud <- fmt.Sprintf("[%4d] %-7s %s", world.Tick, result, a.service.Status(player, entities.HandMain))
				}
				return nil
			})
			g.Go(func() error {
				out := cmd.OutOrStdout()
				for line := range hud {
					fmt.Fprintln(out, line)
				}
				return nil
			})

			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&weaponArg, "weapon", weapon.AssaultRifleID.String(), "weapon to simulate")
	cmd.Flags().IntVar(&ticks, "ticks", 200, "number of ticks to run")
	cmd.Flags().IntVar(&fireEvery, "fire-every", 1, "pull the trigger every N ticks")
	cmd.Flags().BoolVar(&secondary, "secondary", false, "also use the secondary action")
	return cmd
}

func newSaveCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Store the tuning of every registered weapon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			if err := a.service.SaveDefinitions(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d weapon definitions\n", len(a.weapons.All()))
			return nil
		},
	}
}

func newLoadCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Apply stored tuning to the registered weapons and list them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			n, err := a.service.LoadDefinitions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d weapon definitions\n", n)
			printWeapons(cmd, a, a.cfg.Armory.Locale)
			return nil
		},
	}
}

func printWeapons(cmd *cobra.Command, a *app, locale string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tITEM\tPRIMARY\tSECONDARY\tRELOAD\tCLIP\tAMMO")

	for _, wp := range a.weapons.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			wp.ID(),
			a.catalog.Resolve(locale, text.Translatable(wp.NameKey())),
			wp.Item(),
			wp.PrimaryCooldown(),
			disabledOr(wp.SecondaryCooldown()),
			disabledOr(wp.ReloadCooldown()),
			disabledOr(wp.ClipSize()),
			disabledOr(wp.AmmoSize()),
		)
	}
	_ = w.Flush()
}

func disabledOr(v int) string {
	if v == weapon.Disabled {
		return "-"
	}
	return fmt.Sprint(v)
}

// hudListener forwards reload and ammo events to the simulation output
type hudListener struct {
	id    string
	lines chan<- string
}

func (l *hudListener) ID() string    { return l.id }
func (l *hudListener) Priority() int { return 1000 }

func (l *hudListener) HandleEvent(e events.Event) error {
	if re, ok := e.(*events.ReloadEvent); ok {
		l.lines <- fmt.Sprintf("       %s clip=%d reserve=%d", re.GetType(), re.Clip, re.Reserve)
	}
	return nil
}
