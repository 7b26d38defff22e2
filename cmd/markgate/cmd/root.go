// Package cmd provides the CLI commands for markgate.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markgate/markgate/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "markgate",
	Short: "markgate - marked-goods registry submission client",
	Long: `markgate submits introduce-goods documents to the national marked-goods
registry over the create-document endpoint, respecting a configured call
quota per fixed time window.

Workflow:
  1. markgate encode doc.json        # print the Base64 text to sign
  2. sign that text externally (detached CAdES signature, Base64)
  3. markgate submit doc.json --signature-file doc.sig

Configuration:
  Config is loaded from markgate.yaml in the current directory,
  $HOME/.markgate/, or /etc/markgate/.

  Environment variables can override config values with the MARKGATE_ prefix.
  Example: MARKGATE_REGISTRY_TOKEN=eyJhbGci...

Commands:
  submit      Submit one or more signed documents
  encode      Print the Base64 document text used for signing
  init        Write a default markgate.yaml
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./markgate.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
