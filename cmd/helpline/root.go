package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "helpline",
	Short: "Helpline is a WhatsApp bot for cyber crime complaint registration",
	Long: `Helpline runs a turn-based conversation over WhatsApp that collects
cyber crime complaint details, generates the complaint form as a PDF and
delivers it back to the complainant.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.yaml", "Path to the configuration file")
}
