package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nstehr/ogbot/action"
	"github.com/nstehr/ogbot/agent"
	"github.com/nstehr/ogbot/config"
	"github.com/nstehr/ogbot/markup"
	"github.com/nstehr/ogbot/model"
	"github.com/nstehr/ogbot/page"
	"github.com/nstehr/ogbot/rules"
	"github.com/nstehr/ogbot/scrape"
	"github.com/nstehr/ogbot/session"
	"github.com/nstehr/ogbot/targeting"
)

const banner = `
 ██████╗  ██████╗ ██████╗  ██████╗ ████████╗
██╔═══██╗██╔════╝ ██╔══██╗██╔═══██╗╚══██╔══╝
██║   ██║██║  ███╗██████╔╝██║   ██║   ██║
██║   ██║██║   ██║██╔══██╗██║   ██║   ██║
╚██████╔╝╚██████╔╝██████╔╝╚██████╔╝   ██║
 ╚═════╝  ╚═════╝ ╚═════╝  ╚═════╝    ╚═╝

Empire Automation for OGame Universes`

var (
	configPath string
	universe   int
	target     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "ogbot [mode]",
	Short:        "Run one bot operation against an OGame universe",
	Long:         "Logs in, loads the planet list and runs one mode: " + fmt.Sprint(agent.ModeNames()),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configPath)
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ogbot.yaml", "configuration file")
	rootCmd.Flags().IntVarP(&universe, "universe", "u", 0, "universe number (overrides config)")
	rootCmd.Flags().StringVarP(&target, "target", "t", "", "target planet name (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("universe") {
		cfg.Account.Universe = universe
	}
	if cmd.Flags().Changed("target") {
		cfg.Agent.TargetPlanet = target
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if len(args) == 1 {
		cfg.Agent.Mode = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	mode, err := agent.ParseMode(cfg.Agent.Mode)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging).With("run", uuid.NewString())
	slog.SetDefault(logger)

	fmt.Println(banner)
	logger.Info("starting ogbot", "universe", cfg.Account.Universe, "mode", mode.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := session.NewHTTPSession(session.Options{
		CookieFile: cfg.Session.CookieFile,
		UserAgent:  cfg.Session.UserAgent,
		Timeout:    cfg.GetTimeout(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	resolver := page.NewResolver(cfg.Game.BaseURL, cfg.Account.Universe)
	index, err := resolver.Resolve(page.Main, "")
	if err != nil {
		return err
	}
	indexDoc, err := session.Login(ctx, sess,
		session.Endpoints{Login: cfg.Game.LoginURL, Index: index},
		session.Credentials{Username: cfg.Account.Username, Password: cfg.Account.Password, Server: cfg.ServerHost()},
		logger,
	)
	if err != nil {
		logger.Error("login failed", "error", err)
		return err
	}

	scraper := scrape.NewClient(sess, resolver, markup.HTMLParser{}, cfg.GetLocation(), logger)
	if acct, err := scraper.Account(indexDoc); err != nil {
		logger.Warn("could not read account details", "error", err)
	} else {
		logger.Info("logged in", "player", acct.PlayerName, "language", acct.Language, "version", acct.Version)
	}

	actions := action.NewClient(sess, session.NewSubmitter(sess, cfg.Session.Attempts, logger), resolver, action.Options{
		Probes:      cfg.Targeting.Probes,
		AttackFleet: cfg.Targeting.AttackFleet,
	}, logger)

	policy, err := rules.NewPolicy(logger, cfg.Targeting.Rules...)
	if err != nil {
		return err
	}
	engine, err := targeting.New(targeting.Deps{
		Galaxy: scraper,
		Intel:  scraper,
		Fleet:  actions,
		Policy: policy,
		Logger: logger,
	}, targeting.Options{
		Radius:    cfg.Targeting.Radius,
		Freshness: cfg.GetFreshness(),
		ProbeWait: cfg.GetProbeWait(),
	})
	if err != nil {
		return err
	}

	orders := make([]action.DefenseOrder, 0, len(cfg.Defense.Orders))
	for _, o := range cfg.Defense.Orders {
		orders = append(orders, action.DefenseOrder{Code: o.Code, Count: o.Count})
	}
	bot, err := agent.New(ctx, agent.Deps{
		Scraper:   scraper,
		Actions:   actions,
		Targeting: engine,
		Logger:    logger,
	}, agent.Options{
		TargetPlanet:  cfg.Agent.TargetPlanet,
		DefenseOrders: orders,
		Cargo: model.ResourceBundle{
			Metal:     cfg.Transport.Metal,
			Crystal:   cfg.Transport.Crystal,
			Deuterium: cfg.Transport.Deuterium,
		},
	})
	if err != nil {
		return err
	}

	if err := bot.Run(ctx, mode); err != nil {
		logger.Error("operation failed", "mode", mode.String(), "error", err)
		return err
	}
	logger.Info("quitting bot")
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func newLogger(c config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[c.Level]}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
