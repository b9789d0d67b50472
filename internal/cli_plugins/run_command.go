package cliplugins

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mcast/internal/devices"
	"mcast/internal/presets"
	"mcast/internal/session"
)

const devicePollInterval = 2 * time.Second

// RunCommand joins a multicast group and streams engine events and the
// device table to stdout until the context is cancelled.
type RunCommand struct {
	cmd   *cobra.Command
	sess  *session.Session
	store *presets.Store
}

func NewRunCommand(sess *session.Session, store *presets.Store) *RunCommand {
	return &RunCommand{
		sess:  sess,
		store: store,
	}
}

func (r *RunCommand) Meta() *cobra.Command {
	if r.cmd != nil {
		return r.cmd
	}
	r.cmd = &cobra.Command{
		Use:   "run",
		Short: "Join a multicast group and announce presence",
		Long:  "Joins the given multicast group, periodically broadcasts the message and prints peers seen on the group.",
	}
	r.cmd.Flags().StringP("address", "a", "239.255.255.250", "multicast group address (v4 or v6)")
	r.cmd.Flags().IntP("port", "p", 8888, "multicast port")
	r.cmd.Flags().StringP("message", "m", "Hello from client", "text to broadcast")
	r.cmd.Flags().StringP("interface", "i", "", "outbound interface name (default: auto)")
	r.cmd.Flags().String("preset", "", "load a saved preset by name")
	return r.cmd
}

func (r *RunCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg, err := r.buildConfig(cmd)
	if err != nil {
		return err
	}

	instanceID, err := r.sess.Start(cfg)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	fmt.Printf("instance %s on %s:%d\n", instanceID, cfg.Address, cfg.Port)

	ticker := time.NewTicker(devicePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.sess.Stop()
		case ev := <-r.sess.Events():
			printEvent(ev)
		case <-ticker.C:
			printDevices(r.sess.ActiveDevices())
		}
	}
}

// buildConfig merges a named preset (when given) with explicit flags;
// a flag set on the command line wins over the preset value.
func (r *RunCommand) buildConfig(cmd *cobra.Command) (session.Config, error) {
	address, _ := cmd.Flags().GetString("address")
	port, _ := cmd.Flags().GetInt("port")
	message, _ := cmd.Flags().GetString("message")
	ifaceName, _ := cmd.Flags().GetString("interface")

	presetName, _ := cmd.Flags().GetString("preset")
	if presetName != "" {
		preset, err := r.store.Get(presetName)
		if err != nil {
			return session.Config{}, fmt.Errorf("failed to load preset: %w", err)
		}
		if !cmd.Flags().Changed("address") {
			address = preset.Address
		}
		if !cmd.Flags().Changed("port") {
			port = preset.Port
		}
		if !cmd.Flags().Changed("message") {
			message = preset.Message
		}
		if !cmd.Flags().Changed("interface") {
			ifaceName = preset.Interface
		}
	}

	return session.Config{
		Address:   address,
		Port:      port,
		Message:   message,
		Interface: ifaceName,
	}, nil
}

func printEvent(ev session.Event) {
	switch e := ev.(type) {
	case session.MessageEvent:
		fmt.Printf("[%s] %s %s: %s\n", e.Timestamp, e.MsgType, e.SenderID, e.Text)
	case session.StatusEvent:
		fmt.Printf("status: %s\n", e.Text)
	case session.ErrorEvent:
		fmt.Printf("error: %s\n", e.Text)
	case session.SentEvent:
		fmt.Printf("sent: %d\n", e.Count)
	}
}

func printDevices(devs []devices.Device) {
	if len(devs) == 0 {
		return
	}
	fmt.Printf("--- %d active device(s) ---\n", len(devs))
	for _, dev := range devs {
		fmt.Printf("%s  %-8s  %3d msg  %5.1fs ago  %s\n",
			dev.ID,
			devices.Classify(dev.SecondsSinceSeen),
			dev.MessageCount,
			dev.SecondsSinceSeen,
			dev.LastMessage,
		)
	}
}
