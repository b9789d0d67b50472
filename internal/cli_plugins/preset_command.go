package cliplugins

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mcast/internal/presets"
)

// PresetCommand manages saved group configurations.
type PresetCommand struct {
	cmd   *cobra.Command
	store *presets.Store
}

func NewPresetCommand(store *presets.Store) *PresetCommand {
	return &PresetCommand{
		store: store,
	}
}

func (p *PresetCommand) Meta() *cobra.Command {
	if p.cmd != nil {
		return p.cmd
	}
	p.cmd = &cobra.Command{
		Use:   "preset",
		Short: "Manage saved group presets",
		Long:  "Saves, lists and deletes named multicast group configurations.",
	}
	p.cmd.Flags().Bool("list", false, "list saved presets")
	p.cmd.Flags().String("save", "", "save a preset under this name")
	p.cmd.Flags().String("delete", "", "delete the preset with this name")
	p.cmd.Flags().StringP("address", "a", "239.255.255.250", "multicast group address")
	p.cmd.Flags().IntP("port", "p", 8888, "multicast port")
	p.cmd.Flags().StringP("message", "m", "Hello from client", "text to broadcast")
	p.cmd.Flags().StringP("interface", "i", "", "outbound interface name")
	p.cmd.RegisterFlagCompletionFunc("delete", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		saved, err := p.store.List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names := make([]string, 0, len(saved))
		for _, preset := range saved {
			names = append(names, preset.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return p.cmd
}

func (p *PresetCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	if name, _ := cmd.Flags().GetString("save"); name != "" {
		return p.save(cmd, name)
	}
	if name, _ := cmd.Flags().GetString("delete"); name != "" {
		if err := p.store.Delete(name); err != nil {
			return fmt.Errorf("failed to delete preset: %w", err)
		}
		fmt.Printf("deleted preset %q\n", name)
		return nil
	}
	if list, _ := cmd.Flags().GetBool("list"); list {
		return p.list()
	}
	return fmt.Errorf("one of --list, --save or --delete is required")
}

func (p *PresetCommand) save(cmd *cobra.Command, name string) error {
	address, _ := cmd.Flags().GetString("address")
	port, _ := cmd.Flags().GetInt("port")
	message, _ := cmd.Flags().GetString("message")
	ifaceName, _ := cmd.Flags().GetString("interface")

	preset := presets.Preset{
		Name:      name,
		Address:   address,
		Port:      port,
		Message:   message,
		Interface: ifaceName,
	}
	if err := p.store.Save(preset); err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}

	fmt.Printf("saved preset %q (%s:%d)\n", name, address, port)
	return nil
}

func (p *PresetCommand) list() error {
	saved, err := p.store.List()
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}
	if len(saved) == 0 {
		fmt.Println("no presets saved")
		return nil
	}
	for _, preset := range saved {
		iface := preset.Interface
		if iface == "" {
			iface = "auto"
		}
		fmt.Printf("%-16s %s:%d iface=%s message=%q\n", preset.Name, preset.Address, preset.Port, iface, preset.Message)
	}
	return nil
}
