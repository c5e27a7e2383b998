package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"lacpctl/internal/config"
	"lacpctl/internal/devices"
)

func newDevicesCmd() *cobra.Command {
	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "Inspect captured device snapshots",
	}

	devicesCmd.AddCommand(newDevicesListCmd())
	devicesCmd.AddCommand(newDevicesShowCmd())
	devicesCmd.AddCommand(newDevicesLoadCmd())
	return devicesCmd
}

// resolveRepository builds a repository over the configured devices
// directory, letting the flag override the config file.
func resolveRepository(flagDir string) (*devices.Repository, error) {
	dir := flagDir
	if dir == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		dir = cfg.Suite.DevicesDir
	}
	return devices.NewRepository(dir), nil
}

func newDevicesListCmd() *cobra.Command {
	var devicesDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all devices with their available data categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := resolveRepository(devicesDir)
			if err != nil {
				return err
			}

			names := repo.ListDevices()
			if len(names) == 0 {
				fmt.Printf("No devices found in %s\n", repo.RootDir())
				return nil
			}

			// Column width follows the longest name so the category
			// column lines up even with wide runes in device names.
			nameWidth := runewidth.StringWidth("DEVICE")
			for _, name := range names {
				if w := runewidth.StringWidth(name); w > nameWidth {
					nameWidth = w
				}
			}

			fmt.Printf("%s  %s\n", runewidth.FillRight("DEVICE", nameWidth), "CATEGORIES")
			for _, name := range names {
				categories := repo.AvailableCategories(name)
				fmt.Printf("%s  %s\n", runewidth.FillRight(name, nameWidth), strings.Join(categories, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&devicesDir, "devices-dir", "", "devices snapshot directory (overrides config)")
	return cmd
}

func newDevicesShowCmd() *cobra.Command {
	var devicesDir string

	cmd := &cobra.Command{
		Use:   "show <device>",
		Short: "Show a summary of one device's captured state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := resolveRepository(devicesDir)
			if err != nil {
				return err
			}

			name := args[0]
			if !repo.HasDevice(name) {
				return fmt.Errorf("device %q not found in %s", name, repo.RootDir())
			}

			overview := repo.Overview(name)
			fmt.Printf("Device: %s\n", overview.Name)
			if sys := overview.System; sys != nil {
				fmt.Printf("  Type:    %s\n", sys.Type)
				fmt.Printf("  Family:  %s\n", sys.Family)
				fmt.Printf("  Version: %s\n", sys.Version)
				fmt.Printf("  Status:  %s\n", sys.Status)
				fmt.Printf("  Uptime:  %s\n", sys.Uptime)
			}
			fmt.Printf("  Credentials:     %v\n", overview.HasCredentials)
			fmt.Printf("  Interfaces:      %d\n", overview.InterfaceCount)
			fmt.Printf("  LLDP neighbors:  %d\n", overview.LldpNeighborCount)
			fmt.Printf("  LACP interfaces: %d\n", overview.LacpInterfaceCount)
			fmt.Printf("  Categories:      %s\n", strings.Join(overview.Categories, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&devicesDir, "devices-dir", "", "devices snapshot directory (overrides config)")
	return cmd
}

func newDevicesLoadCmd() *cobra.Command {
	var devicesDir string

	validCategories := []string{
		devices.CategoryInterfaces,
		devices.CategoryLldp,
		devices.CategorySystem,
		devices.CategoryAll,
	}

	cmd := &cobra.Command{
		Use:   "load <device> <category>",
		Short: "Print one parsed data category (or all) for a device",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := resolveRepository(devicesDir)
			if err != nil {
				return err
			}

			name, category := args[0], strings.ToLower(args[1])
			if !repo.HasDevice(name) {
				return fmt.Errorf("device %q not found in %s", name, repo.RootDir())
			}

			valid := false
			for _, c := range validCategories {
				if category == c {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("invalid category %q, must be one of: %s",
					args[1], strings.Join(validCategories, ", "))
			}

			data := repo.LoadDeviceData(name, category)
			if len(data) == 0 {
				fmt.Printf("No %s data for device %s; available categories: %s\n",
					category, name, strings.Join(repo.AvailableCategories(name), ", "))
				return nil
			}

			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format device data: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}

	cmd.Flags().StringVar(&devicesDir, "devices-dir", "", "devices snapshot directory (overrides config)")
	return cmd
}
