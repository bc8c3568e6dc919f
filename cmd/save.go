// Package cmd provides command-line interface for save image processing.
// This file contains commands for inspecting reconstructed save slots
// from Pokémon Quetzal flash images.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/quetzaltools/pkg"
	"github.com/hansbonini/quetzaltools/pkg/common"
	"github.com/hansbonini/quetzaltools/pkg/gba"
	"github.com/spf13/cobra"
)

// saveCmd represents the parent command for all save image operations
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Inspect Pokémon Quetzal save images",
	Long: `Inspect reconstructed save slots from Pokémon Quetzal flash images.

Commands:
  info      Show the decoded save summary (trainer, party)
  slots     Show per-sector validity and the slot decision

Examples:
  quetzaltools save info player1.sav
  quetzaltools save slots player1.sav`,
}

// saveInfoCmd decodes a save image and prints its summary
var saveInfoCmd = &cobra.Command{
	Use:   "info [save.sav]",
	Short: "Decode a save image and show trainer and party data",
	Long: `Decode a save image and show trainer and party data.

The active save slot is selected automatically by generation counter;
use --slot1 or --slot2 to force a specific slot range.

Flags:
  -v, --verbose   Enable verbose output (show debug messages)
  -j, --json      Output machine-readable JSON instead of tables
  -f, --format    Save layout variant: quetzal (default) or emerald
  -s, --species   Species metadata YAML for derived gender/ability
      --slot1     Force load from save slot 1 (sectors 0-17)
      --slot2     Force load from save slot 2 (sectors 14-31)

Examples:
  quetzaltools save info player1.sav
  quetzaltools save info --json --slot2 player1.sav`,
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
		if asJSON {
			return exporter.ExportJSON(summary, os.Stdout)
		}

		exporter.DisplaySaveInfo(summary, os.Stdout)
		return nil
	},
}

// saveSlotsCmd prints sector-level debug information for both slots
var saveSlotsCmd = &cobra.Command{
	Use:   "slots [save.sav]",
	Short: "Show per-sector validity and the active slot decision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read save file: %w", err)
		}

		fmt.Printf("\n--- Save Slot Debug Information ---\n")
		sectors := gba.ScanSectors(image)
		for _, info := range sectors {
			fmt.Printf("Sector %2d: ID=%-5d Counter=%08X Checksum=%04X Valid=%t\n",
				info.Index, info.ID, info.Counter, info.Checksum, info.Valid)
		}

		active, err := gba.Reconstruct(image, gba.SlotAuto)
		if err != nil {
			return err
		}
		start, end := 0, gba.SectorsPerSlot
		if active.Slot() == gba.Slot2 {
			start, end = gba.Slot2Start, gba.TotalSectors
		}
		fmt.Printf("\nActive slot: %d (sectors %d-%d), counter %08X\n",
			active.Slot(), start, end-1, active.Counter())
		return nil
	},
}

// parseSaveFromFlags runs the shared decode pipeline for the save and
// party command families: flag handling, format selection, optional
// species table, reconstruction and decoding.
func parseSaveFromFlags(cmd *cobra.Command, path string) (*pkg.SaveSummary, *pkg.SaveExporter, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, nil, fmt.Errorf("error getting verbose flag: %w", err)
	}
	common.SetVerboseMode(verbose)

	slot, err := slotFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, nil, fmt.Errorf("error getting format flag: %w", err)
	}
	format, err := pkg.FormatByName(formatName)
	if err != nil {
		return nil, nil, err
	}

	var species pkg.SpeciesTable
	speciesPath, err := cmd.Flags().GetString("species")
	if err != nil {
		return nil, nil, fmt.Errorf("error getting species flag: %w", err)
	}
	if speciesPath != "" {
		table, err := pkg.LoadSpeciesTable(speciesPath)
		if err != nil {
			return nil, nil, err
		}
		species = table
	}

	processor := pkg.NewSaveProcessor(format)
	summary, err := processor.ParseFile(path, slot)
	if err != nil {
		return nil, nil, err
	}

	return summary, pkg.NewSaveExporter(species), nil
}

// slotFromFlags resolves the mutually exclusive --slot1/--slot2 pair
func slotFromFlags(cmd *cobra.Command) (int, error) {
	slot1, err := cmd.Flags().GetBool("slot1")
	if err != nil {
		return 0, fmt.Errorf("error getting slot1 flag: %w", err)
	}
	slot2, err := cmd.Flags().GetBool("slot2")
	if err != nil {
		return 0, fmt.Errorf("error getting slot2 flag: %w", err)
	}
	switch {
	case slot1 && slot2:
		return 0, fmt.Errorf("--slot1 and --slot2 are mutually exclusive")
	case slot1:
		return gba.Slot1, nil
	case slot2:
		return gba.Slot2, nil
	}
	return gba.SlotAuto, nil
}

// addDecodeFlags registers the flags shared by decode-style commands
func addDecodeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output (show debug messages)")
	cmd.Flags().StringP("format", "f", "quetzal", "Save layout variant: quetzal or emerald")
	cmd.Flags().StringP("species", "s", "", "Species metadata YAML for derived gender/ability")
	cmd.Flags().Bool("slot1", false, "Force load from save slot 1 (sectors 0-17)")
	cmd.Flags().Bool("slot2", false, "Force load from save slot 2 (sectors 14-31)")
}

// init initializes the save command and its subcommands
func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.AddCommand(saveInfoCmd)
	saveCmd.AddCommand(saveSlotsCmd)

	addDecodeFlags(saveInfoCmd)
	saveInfoCmd.Flags().BoolP("json", "j", false, "Output machine-readable JSON")
}
