package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/santarita/portal/core"
	"github.com/santarita/portal/core/nav"
	"github.com/santarita/portal/core/resource"
	"github.com/santarita/portal/core/session"
	"github.com/santarita/portal/services/api"
	logsvc "github.com/santarita/portal/services/logger"
	"github.com/santarita/portal/services/notify"
	"github.com/santarita/portal/services/prompt"
	"github.com/santarita/portal/storage/state"
)

// app wires the client together: one controller instance owns the
// session and content state, everything else is passed in explicitly.
type app struct {
	conf   *core.Config
	log    core.Logger
	store  *session.Store
	client *api.Client
	ctrl   *session.Controller
	res    *resource.Manager
	notif  core.Notifier
	nav    *nav.Navigator
}

func newApp() (*app, error) {
	conf, err := core.LoadConfig()
	if err != nil {
		return nil, err
	}

	std := log.New(os.Stderr, "", log.LstdFlags)
	var logger core.Logger
	if conf.RollbarToken != "" && !conf.Debug {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std, conf)
	}

	persistent := state.NewFileScope(filepath.Join(conf.Session.StateDir, "state.json"))
	sessionScope := state.NewFileScope(filepath.Join(os.TempDir(), "portal-session.json"))
	store := session.NewStore(persistent, sessionScope, conf.Session.TTL)

	client := api.NewClient(conf, store, logger)
	notifier := notify.NewConsole()
	confirmer := prompt.NewTerminal()
	navigator := nav.New(nil)

	return &app{
		conf:   conf,
		log:    logger,
		store:  store,
		client: client,
		ctrl:   session.NewController(client, store, navigator, notifier, confirmer, logger),
		res:    resource.NewManager(client.Resources(), notifier, confirmer, &resource.Flag{}),
		notif:  notifier,
		nav:    navigator,
	}, nil
}

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "portal",
		Short:        "Escola Santa Rita portal client",
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
	}

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(LoginCmd())
	cmd.AddCommand(LogoutCmd())
	cmd.AddCommand(WhoamiCmd())
	cmd.AddCommand(FetchCmd())
	cmd.AddCommand(NewsCmd())
	cmd.AddCommand(MenuCmd())
	cmd.AddCommand(UsersCmd())
	cmd.AddCommand(PrefsCmd())

	viper.BindPFlags(cmd.Flags())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return cmd
}

func InitAndExecute() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PORTAL")
	viper.AutomaticEnv()
}

// startApp builds the app and resolves any stored session before the
// command runs.
func startApp() (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := a.ctrl.Start(); err != nil {
		return nil, err
	}
	return a, nil
}
