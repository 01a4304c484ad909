package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "apicall",
	Short: "Execute declaratively-described remote operations",
}

func init() {
	// Defaults
	v := viper.GetViper()
	v.SetDefault("config", "./config.yaml")
	v.SetDefault("wait", false)

	// Environment variables support: APICALL_CONFIG, ...
	v.SetEnvPrefix("APICALL")
	v.AutomaticEnv()

	// Bind flags via Cobra and then bind to Viper
	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a client config yaml")
	callCmd.Flags().StringArray("arg", nil, "invocation argument key=value (repeatable)")
	callCmd.Flags().Bool("wait", v.GetBool("wait"), "drive a long-running operation to its terminal state")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("arg", callCmd.Flags().Lookup("arg"))
	_ = v.BindPFlag("wait", callCmd.Flags().Lookup("wait"))

	rootCmd.AddCommand(callCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
