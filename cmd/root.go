package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/Jeffail/gabs/v2"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sundew-project/sundew/core"
	"github.com/sundew-project/sundew/libs"
	"github.com/sundew-project/sundew/utils"
)

var options = libs.Options{}
var scopeRules = core.ScopeRules{}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sundew",
	Short: "Sundew Interception SDK",
	Long:  fmt.Sprintf(`Sundew - Scripting SDK harness for intercepted HTTP traffic - %v by %v`, libs.VERSION, libs.AUTHOR),
}

// Execute main function
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&options.ConfigFile, "config", "", "config file (default is $HOME/.sundew/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&options.RootFolder, "rootDir", "~/.sundew/", "root Project")
	RootCmd.PersistentFlags().StringVar(&options.ScopeFile, "scope", "", "scope rule file")
	RootCmd.PersistentFlags().StringVar(&options.Proxy, "proxy", "", "upstream proxy")
	RootCmd.PersistentFlags().StringVar(&options.Reporter, "reporter", "sundew", "reporter name attached to findings")

	RootCmd.PersistentFlags().IntVar(&options.Timeout, "timeout", 20, "HTTP timeout")
	RootCmd.PersistentFlags().IntVarP(&options.Concurrency, "concurrency", "c", 20, "concurrency")

	RootCmd.PersistentFlags().BoolVar(&options.NoDB, "no-db", false, "Do not store exchanges and findings on disk")
	RootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "Verbose")
	RootCmd.PersistentFlags().BoolVar(&options.Debug, "debug", false, "Debug")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if options.Debug {
		options.Verbose = true
	}
	options.RootFolder = utils.NormalizePath(options.RootFolder)
	utils.InitLog(&options)
	if !utils.FolderExists(options.RootFolder) {
		utils.InforF("Init new config at %v", options.RootFolder)
		utils.MakeDir(options.RootFolder)
	}

	configPath := path.Join(options.RootFolder, "config.yaml")
	v := viper.New()
	v.AddConfigPath(options.RootFolder)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if !utils.FileExists(configPath) {
		utils.InforF("Write new config to: %v", configPath)
		v.SetDefault("proxy", "")
		v.SetDefault("reporter", options.Reporter)
		v.SetDefault("scope.allow", []string{})
		v.SetDefault("scope.deny", []string{})
		v.WriteConfigAs(configPath)
	} else {
		if options.Debug {
			utils.InforF("Load config from: %v", configPath)
		}
		v.ReadInConfig()
	}

	if options.Proxy == "" {
		options.Proxy = cast.ToString(v.Get("proxy"))
	}
	scopeRules.Allow = cast.ToStringSlice(v.Get("scope.allow"))
	scopeRules.Deny = cast.ToStringSlice(v.Get("scope.deny"))

	// a dedicated rule file beats whatever the config carries
	scopePath := path.Join(options.RootFolder, libs.SCOPEFILE)
	if options.ScopeFile != "" {
		scopePath = utils.NormalizePath(options.ScopeFile)
	}
	if utils.FileExists(scopePath) {
		rules, err := core.LoadScopeRules(scopePath)
		if err != nil {
			utils.ErrorF("%v", err)
		} else {
			scopeRules = rules
		}
	}

	// store default connection info for editor clients
	clientConfigPath := path.Join(options.RootFolder, "client.json")
	if !utils.FileExists(clientConfigPath) {
		jsonObj := gabs.New()
		jsonObj.Set(options.Proxy, "proxy")
		jsonObj.Set(options.Reporter, "reporter")
		jsonObj.Set(path.Join(options.RootFolder, "sundew.db"), "database")
		utils.WriteToFile(clientConfigPath, jsonObj.String())
		if options.Verbose {
			utils.InforF("Store default client config at: %v", clientConfigPath)
		}
	}
}
