package topics

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// command annotations
const (
	// the command needs a valid session (checked with /users/me)
	annotationProtected = "protected"
	// the command needs an Admin session
	annotationAdmin = "admin"
	// the command works without any configuration
	annotationNoConfig = "noconfig"
)

var globalHome string
var globalCfgFile string

var globalAPI *client.API
var globalConfig *client.RootConfig
var globalLog *client.Log
var globalPrefs *client.Prefs

// set by the session gate, for protected commands
var globalIdentity common.Identity

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "valet",
	Short: "Cloud Valet CLI client",
	Long: `Cloud Valet is a dashboard for a fleet of Azure virtual machines:
list, search, start, stop and restart them, one by one or in bulk.
This is the client.`,
	SilenceUsage:      true,
	Annotations:       noConfig(),
	PersistentPreRunE: prepareCommand,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s\n\n", cmd.Short)
		fmt.Printf("%s\n\n", cmd.Long)
		fmt.Printf("Use --help to list commands and options.\n\n")
		err := initConfig(cmd)
		if err == nil && globalConfig.ConfigFile != "" {
			fmt.Printf("configuration file '%s', server '%s' (%s)\n",
				globalConfig.ConfigFile,
				globalConfig.Server.Name,
				globalConfig.Server.URL,
			)
		} else {
			if err != nil {
				fmt.Printf("Error: %s\n\n", err)
			}
			fmt.Printf(`No configuration file found (%s).

Example:
[[server]]
name = "prod"
url = "https://valet.example.com/api"

You can define multiple servers and use -s option to select one, or use
default = "prod" as a global setting (i.e. before [[server]]).
First server is the default.

Global settings: trace, time
Note: you can also use environment variables (TRACE, TIME, SERVER, VALET_URL),
or a .env file in the current directory.
------
`, path.Clean(globalHome+"/.valet.toml"))
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	var err error
	globalHome, err = homedir.Dir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalCfgFile, "config", "c", "", "config file (default is $HOME/.valet.toml)")

	rootCmd.PersistentFlags().BoolP("trace", "t", false, "show API calls (debug)")
	rootCmd.PersistentFlags().BoolP("time", "d", false, "show timestamps on messages")
	rootCmd.PersistentFlags().StringP("server", "s", "", "selected server in the config file")
}

// prepareCommand loads the configuration, then checks the session
// when the command is protected
func prepareCommand(cmd *cobra.Command, args []string) error {
	var err error
	globalPrefs, err = client.LoadPrefs(path.Clean(globalHome + "/.valet-prefs.toml"))
	if err != nil {
		return fmt.Errorf("reading preferences: %w", err)
	}

	if cmd.Annotations[annotationNoConfig] != "" {
		globalLog = client.NewLog(false, false)
		return nil
	}

	if err := initConfig(cmd); err != nil {
		return err
	}

	if cmd.Annotations[annotationProtected] == "" && cmd.Annotations[annotationAdmin] == "" {
		return nil
	}

	identity, err := dashboard.NewGate(globalAPI).Check(cmd.Context())
	if err != nil {
		return err
	}
	globalIdentity = identity
	globalLog.Tracef("session: %s (%s)", identity.Username, identity.Permission)

	if cmd.Annotations[annotationAdmin] != "" {
		return dashboard.RequireAdmin(identity)
	}
	return nil
}

// initConfig reads in config file, .env file and ENV variables if set.
func initConfig(cmd *cobra.Command) error {
	if err := client.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("reading .env: %w", err)
	}

	cfgFile := globalCfgFile
	if cfgFile == "" {
		cfgFile = path.Clean(globalHome + "/.valet.toml")
	}

	var overrides client.ConfigOverrides
	flags := cmd.Flags()
	if flags.Changed("trace") {
		trace, _ := flags.GetBool("trace")
		overrides.Trace = &trace
	}
	if flags.Changed("time") {
		time, _ := flags.GetBool("time")
		overrides.Time = &time
	}
	overrides.Server, _ = flags.GetString("server")

	var err error
	globalConfig, err = client.NewRootConfig(cfgFile, overrides)
	if err != nil {
		return err
	}

	globalLog = client.NewLog(globalConfig.Trace, globalConfig.Time)

	jar, err := client.NewSessionJar(path.Clean(globalHome+"/.valet-session"), globalConfig.Server.URL)
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}

	globalAPI = client.NewAPI(
		globalConfig.Server.URL,
		jar,
		globalConfig.Trace,
		globalLog,
	)
	return nil
}

func protected() map[string]string {
	return map[string]string{annotationProtected: "true"}
}

func adminOnly() map[string]string {
	return map[string]string{annotationAdmin: "true"}
}

func noConfig() map[string]string {
	return map[string]string{annotationNoConfig: "true"}
}
