package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/chris/jot/config"
	"github.com/joho/godotenv"
)

const (
	Label          = "com.jot.journal"
	DefaultBinPath = "/usr/local/bin/jot"
)

// Runner executes an external command, returning its combined stderr on failure.
type Runner func(stdout io.Writer, name string, args ...string) error

func execRunner(stdout io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Manager installs and controls the launchd agent that runs `jot serve`.
type Manager struct {
	Home      string
	BinPath   string
	ConfigDir string
	Out       io.Writer
	Run       Runner
}

func NewManager() *Manager {
	home, _ := os.UserHomeDir()
	return &Manager{
		Home:      home,
		BinPath:   DefaultBinPath,
		ConfigDir: config.ConfigDir(),
		Out:       os.Stdout,
		Run:       execRunner,
	}
}

func (m *Manager) plistPath() string {
	return filepath.Join(m.Home, "Library", "LaunchAgents", Label+".plist")
}

func (m *Manager) stdoutLog() string { return filepath.Join(m.Home, "Library", "Logs", "jot-stdout.log") }
func (m *Manager) stderrLog() string { return filepath.Join(m.Home, "Library", "Logs", "jot-stderr.log") }
func (m *Manager) configFile() string { return filepath.Join(m.ConfigDir, "config") }

func (m *Manager) launchctl(args ...string) error {
	return m.Run(io.Discard, "launchctl", args...)
}

// Install copies exe to BinPath, seeds the config file from ./.env when none
// exists, writes the plist and loads it.
func (m *Manager) Install(exe string) error {
	exe, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("resolving symlinks: %w", err)
	}
	bin, err := os.ReadFile(exe)
	if err != nil {
		return fmt.Errorf("reading binary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.BinPath), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(m.BinPath), err)
	}
	if err := os.WriteFile(m.BinPath, bin, 0755); err != nil {
		return fmt.Errorf("copying binary to %s: %w", m.BinPath, err)
	}
	fmt.Fprintf(m.Out, "installed binary to %s\n", m.BinPath)

	if err := m.seedConfig(".env"); err != nil {
		return err
	}

	plist, err := m.renderPlist(m.workDir())
	if err != nil {
		return fmt.Errorf("generating plist: %w", err)
	}

	path := m.plistPath()
	if _, err := os.Stat(path); err == nil {
		_ = m.launchctl("unload", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(plist), 0644); err != nil {
		return fmt.Errorf("writing plist: %w", err)
	}
	fmt.Fprintf(m.Out, "wrote plist to %s\n", path)

	if err := m.launchctl("load", path); err != nil {
		return fmt.Errorf("loading plist: %w", err)
	}
	fmt.Fprintln(m.Out, "service loaded and will start on login")
	return nil
}

// seedConfig copies envFile to the config file unless one already exists.
func (m *Manager) seedConfig(envFile string) error {
	if _, err := os.Stat(m.configFile()); err == nil {
		fmt.Fprintf(m.Out, "config already exists at %s\n", m.configFile())
		return nil
	}
	data, err := os.ReadFile(envFile)
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(m.ConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(m.configFile(), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(m.Out, "seeded config from %s -> %s\n", envFile, m.configFile())
	return nil
}

// workDir is the current directory when the configured DATABASE_PATH is
// relative, so the service opens the same database; otherwise ConfigDir.
func (m *Manager) workDir() string {
	vars, _ := godotenv.Read(m.configFile())
	if p, ok := vars["DATABASE_PATH"]; ok && !filepath.IsAbs(p) {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return m.ConfigDir
}

func (m *Manager) Uninstall() error {
	path := m.plistPath()
	if _, err := os.Stat(path); err == nil {
		if err := m.launchctl("unload", path); err != nil {
			fmt.Fprintf(m.Out, "warning: unload failed: %v\n", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing plist: %w", err)
		}
		fmt.Fprintf(m.Out, "removed %s\n", path)
	} else {
		fmt.Fprintln(m.Out, "plist not found, skipping")
	}

	if _, err := os.Stat(m.BinPath); err == nil {
		if err := os.Remove(m.BinPath); err != nil {
			return fmt.Errorf("removing binary: %w", err)
		}
		fmt.Fprintf(m.Out, "removed %s\n", m.BinPath)
	}
	fmt.Fprintln(m.Out, "uninstalled")
	return nil
}

func (m *Manager) Start() error { return m.launchctl("start", Label) }
func (m *Manager) Stop() error  { return m.launchctl("stop", Label) }

func (m *Manager) Status() error {
	if err := m.Run(m.Out, "launchctl", "list", Label); err != nil {
		fmt.Fprintln(m.Out, "service is not loaded")
	}
	return nil
}

// Logs follows both log files until interrupted.
func (m *Manager) Logs() error {
	return m.Run(m.Out, "tail", "-f", m.stdoutLog(), m.stderrLog())
}

var plistTemplate = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{.BinPath}}</string>
		<string>serve</string>
	</array>
	<key>WorkingDirectory</key>
	<string>{{.WorkDir}}</string>
	<key>EnvironmentVariables</key>
	<dict>
		<key>LOG_MODE</key>
		<string>production</string>
	</dict>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>{{.StdoutLog}}</string>
	<key>StandardErrorPath</key>
	<string>{{.StderrLog}}</string>
</dict>
</plist>
`))

type plistData struct {
	Label     string
	BinPath   string
	WorkDir   string
	StdoutLog string
	StderrLog string
}

func (m *Manager) renderPlist(workDir string) (string, error) {
	var buf bytes.Buffer
	err := plistTemplate.Execute(&buf, plistData{
		Label:     Label,
		BinPath:   m.BinPath,
		WorkDir:   workDir,
		StdoutLog: m.stdoutLog(),
		StderrLog: m.stderrLog(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
