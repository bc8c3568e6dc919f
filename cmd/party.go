// Package cmd provides command-line interface for party record handling.
// This file contains commands for dumping and exporting the decoded
// party creature records.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/quetzaltools/pkg"
	"github.com/spf13/cobra"
)

// partyCmd represents the parent command for party record operations
var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Decode party creature records from a save image",
	Long: `Decode party creature records from a Pokémon Quetzal save image.

Commands:
  dump      Print the decoded party to the terminal
  export    Write the decoded party to a YAML file

Examples:
  quetzaltools party dump player1.sav
  quetzaltools party dump --raw player1.sav
  quetzaltools party export player1.sav party.yaml`,
}

// partyDumpCmd prints the decoded party records
var partyDumpCmd = &cobra.Command{
	Use:   "dump [save.sav]",
	Short: "Print the decoded party records",
	Long: `Print the decoded party records.

Flags:
  -v, --verbose   Enable verbose output (show debug messages)
  -j, --json      Output machine-readable JSON instead of tables
  -r, --raw       Print each record's raw bytes instead of fields
  -f, --format    Save layout variant: quetzal (default) or emerald
  -s, --species   Species metadata YAML for derived gender/ability
      --slot1     Force load from save slot 1 (sectors 0-17)
      --slot2     Force load from save slot 2 (sectors 14-31)

Examples:
  quetzaltools party dump player1.sav
  quetzaltools party dump --raw --slot2 player1.sav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, exporter, err := parseSaveFromFlags(cmd, args[0])
		if err != nil {
			return err
		}

		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return fmt.Errorf("error getting json flag: %w", err)
		}
		raw, err := cmd.Flags().GetBool("raw")
		if err != nil {
			return fmt.Errorf("error getting raw flag: %w", err)
		}

		switch {
		case asJSON:
			return exporter.ExportJSON(summary, os.Stdout)
		case raw:
			formatName, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("error getting format flag: %w", err)
			}
			format, err := pkg.FormatByName(formatName)
			if err != nil {
				return err
			}
			return exporter.DisplayRawParty(summary, pkg.NewRecordEncoder(format), os.Stdout)
		default:
			exporter.DisplayParty(summary, os.Stdout)
			return nil
		}
	},
}

// partyExportCmd writes the decoded party to a YAML file
var partyExportCmd = &cobra.Command{
	Use:   "export [save.sav] [output.yaml]",
	Short: "Write the decoded party records to a YAML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, exporter, err := parseSaveFromFlags(cmd, args[0])
		if err != nil {
			return err
		}
		return exporter.ExportPartyYAML(summary, args[1])
	},
}

// init initializes the party command and its subcommands
func init() {
	rootCmd.AddCommand(partyCmd)
	partyCmd.AddCommand(partyDumpCmd)
	partyCmd.AddCommand(partyExportCmd)

	addDecodeFlags(partyDumpCmd)
	partyDumpCmd.Flags().BoolP("json", "j", false, "Output machine-readable JSON")
	partyDumpCmd.Flags().BoolP("raw", "r", false, "Print each record's raw bytes")

	addDecodeFlags(partyExportCmd)
}
