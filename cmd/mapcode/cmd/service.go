/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/config"
)

const (
	serviceName = "mapcode.service"
	unitPath    = "/etc/systemd/system/mapcode.service"
)

// runCommand runs a system command attached to the terminal. Tests replace
// it.
var runCommand = func(command string, args ...string) error {
	c := exec.Command(command, args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func runSystemctlCommand(args ...string) error {
	return runCommand("systemctl", args...)
}

func requireRoot(action string) error {
	if os.Geteuid() != 0 {
		return errors.Errorf("service %s requires root privileges (run with: sudo mapcode service %s)", action, action)
	}
	return nil
}

func newServiceCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "service",
		Short: "Manage mapcode as a systemd service",
		Long: `Manage the mapcode server as a systemd service. The unit runs
"mapcode up" with the configuration file, restarts on failure and may only
write to the data and config directories.`,
		Annotations: map[string]string{noEngine: "true"},
	}

	install := &cobra.Command{
		Use:   "install",
		Short: "Install mapcode as a systemd service",
		Long: `Install mapcode as a systemd service.

This will:
- Create or use existing configuration
- Generate systemd unit file
- Enable and optionally start the service

Examples:
  sudo mapcode service install
  sudo mapcode service install --data-dir /var/lib/mapcode --user mapcode`,
		Args: cobra.NoArgs,
		RunE: runServiceInstall,
	}
	install.Flags().String("data-dir", "/var/lib/mapcode", "Data directory for the service")
	install.Flags().String("user", "mapcode", "User to run the service as")
	install.Flags().Int("port", 8080, "Port for the service")
	install.Flags().Bool("start", true, "Start the service after installation")

	logs := &cobra.Command{
		Use:   "logs",
		Short: "Show mapcode service logs",
		Long: `Show mapcode service logs using journalctl.

Examples:
  mapcode service logs
  mapcode service logs -f  # Follow logs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand("journalctl", journalArgs(cmd)...)
		},
	}
	logs.Flags().BoolP("follow", "f", false, "Follow log output")
	logs.Flags().IntP("lines", "n", 0, "Number of lines to show")

	uninstall := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall the mapcode service",
		Args:  cobra.NoArgs,
		RunE:  runServiceUninstall,
	}

	c.AddCommand(install, logs, uninstall)
	for _, action := range []string{"start", "stop", "restart", "status"} {
		c.AddCommand(systemctlCmd(action))
	}
	return c
}

// systemctlCmd passes action on to systemctl for the mapcode unit.
func systemctlCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: fmt.Sprintf("Run systemctl %s for the mapcode service", action),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runSystemctlCommand(action, serviceName); err != nil {
				return errors.Wrapf(err, "systemctl %s", action)
			}
			if action != "status" {
				cmd.Printf("mapcode service: %s done\n", action)
			}
			return nil
		},
	}
}

func journalArgs(cmd *cobra.Command) []string {
	follow, _ := cmd.Flags().GetBool("follow")
	lines, _ := cmd.Flags().GetInt("lines")

	args := []string{"-u", serviceName}
	if follow {
		args = append(args, "-f")
	}
	if lines > 0 {
		args = append(args, fmt.Sprintf("-n%d", lines))
	}
	return args
}

func runServiceInstall(cmd *cobra.Command, args []string) error {
	if err := requireRoot("install"); err != nil {
		return err
	}
	rt, err := runtimeOf(cmd)
	if err != nil {
		return err
	}
	dataDir, _ := cmd.Flags().GetString("data-dir")
	user, _ := cmd.Flags().GetString("user")
	startNow, _ := cmd.Flags().GetBool("start")

	cmd.Printf("Installing mapcode systemd service...\n")
	cfg := rt.cfg
	if !rt.loaded {
		if cfg, err = config.BootstrapConfig(rt.configPath, dataDir); err != nil {
			return err
		}
		cmd.Printf("Created new configuration at %s\n", rt.configPath)
	}
	if cmd.Flags().Changed("data-dir") || !rt.loaded {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if err := config.SaveConfig(cfg, rt.configPath); err != nil {
		return err
	}

	if err := createSystemdUnit(cfg, rt.configPath, user); err != nil {
		return errors.Wrap(err, "create systemd unit")
	}
	if err := runSystemctlCommand("daemon-reload"); err != nil {
		return errors.Wrap(err, "reload systemd")
	}
	if err := runSystemctlCommand("enable", serviceName); err != nil {
		return errors.Wrap(err, "enable service")
	}
	if startNow {
		if err := runSystemctlCommand("start", serviceName); err != nil {
			return errors.Wrap(err, "start service")
		}
	}

	cmd.Printf("\nmapcode service installed\n")
	cmd.Printf("Service: %s\n", serviceName)
	cmd.Printf("Config: %s\n", rt.configPath)
	cmd.Printf("Data: %s\n", cfg.DataDir)
	cmd.Printf("Port: %d\n", cfg.Port)
	if !startNow {
		cmd.Printf("\nTo start the service: sudo systemctl start %s\n", serviceName)
	}
	cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
	return nil
}

func runServiceUninstall(cmd *cobra.Command, args []string) error {
	if err := requireRoot("uninstall"); err != nil {
		return err
	}
	cmd.Printf("Uninstalling mapcode service...\n")

	_ = runSystemctlCommand("stop", serviceName) // may already be stopped
	if err := runSystemctlCommand("disable", serviceName); err != nil {
		cmd.Printf("Warning: could not disable service: %v\n", err)
	}
	if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove unit file")
	}
	if err := runSystemctlCommand("daemon-reload"); err != nil {
		return errors.Wrap(err, "reload systemd")
	}

	cmd.Printf("mapcode service uninstalled\n")
	cmd.Printf("Note: Configuration and data files were not removed\n")
	return nil
}

// systemdUnit renders the unit file for cfg.
func systemdUnit(cfg *config.Config, configPath, user string) string {
	return fmt.Sprintf(`[Unit]
Description=Mapcode Server
After=network-online.target
Wants=network-online.target

[Service]
User=%s
Group=%s
ExecStart=/usr/local/bin/mapcode up --config %s
Restart=on-failure
NoNewPrivileges=true
UMask=0077
ReadWritePaths=%s
ReadWritePaths=%s

[Install]
WantedBy=multi-user.target
`, user, user, configPath, cfg.DataDir, filepath.Dir(configPath))
}

func createSystemdUnit(cfg *config.Config, configPath, user string) error {
	return os.WriteFile(unitPath, []byte(systemdUnit(cfg, configPath, user)), 0600)
}
