// Package cmd provides command-line interface functionality for QuetzalTools.
// QuetzalTools is a collection of utilities for reading and decoding flash
// save images from the Pokémon Quetzal ROM hack for Game Boy Advance.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the QuetzalTools application.
var rootCmd = &cobra.Command{
	Use:   "quetzaltools",
	Short: "Tools for reading Pokémon Quetzal GBA save files",
	Long: `QuetzalTools - Utilities for reading and decoding flash save images
from the Pokémon Quetzal ROM hack (pokeemerald-expansion based) for GBA.

Currently supports:
  - Save slot reconstruction (sector validation, slot rotation)
  - Party creature record decoding (Quetzal and vanilla Emerald layouts)
  - Trainer info (player name, play time)
  - JSON and YAML export of decoded save data

Examples:
  quetzaltools save info player1.sav
  quetzaltools save info --json player1.sav
  quetzaltools save slots player1.sav
  quetzaltools party dump player1.sav
  quetzaltools party dump --raw --slot2 player1.sav
  quetzaltools party export player1.sav party.yaml

Use 'quetzaltools [command] --help' for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
