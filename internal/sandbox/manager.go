// Package sandbox runs a disposable Docker container with tmux inside,
// where users can practice keybindings without touching their real session.
package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	errs "tmuxtutor/internal/errors"
	"tmuxtutor/internal/log"
)

// Runner executes docker commands. Tests swap in a fake.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// execRunner shells out to the docker CLI.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return out.String(), errs.NewSandboxError(msg, errs.SandboxCommandFailed, err).
			WithCommand("docker " + strings.Join(args, " "))
	}
	return out.String(), nil
}

// Status describes the sandbox container.
type Status struct {
	Running bool
	ID      string
	State   string
	Image   string
}

// Manager controls the lifecycle of the sandbox container. One container
// per user; starting again replaces any existing sandbox.
type Manager struct {
	runner        Runner
	image         string
	containerName string
	session       string
}

// NewManager creates a manager using the docker CLI.
func NewManager(image, containerName, session string) *Manager {
	if image == "" {
		image = "tmuxtutor-sandbox"
	}
	if containerName == "" {
		containerName = "tmuxtutor-sandbox"
	}
	if session == "" {
		session = "practice"
	}
	return &Manager{
		runner:        execRunner{},
		image:         image,
		containerName: containerName,
		session:       session,
	}
}

// NewManagerWithRunner creates a manager over a custom runner, for tests.
func NewManagerWithRunner(runner Runner, image, containerName, session string) *Manager {
	m := NewManager(image, containerName, session)
	m.runner = runner
	return m
}

// Session returns the tmux session name inside the container.
func (m *Manager) Session() string {
	return m.session
}

// Available reports whether the docker daemon is reachable.
func (m *Manager) Available(ctx context.Context) bool {
	_, err := m.runner.Run(ctx, "info", "--format", "{{.ServerVersion}}")
	return err == nil
}

// ImageBuilt reports whether the sandbox image exists locally.
func (m *Manager) ImageBuilt(ctx context.Context) (bool, error) {
	out, err := m.runner.Run(ctx, "images", "-q", m.image)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// BuildImage builds the sandbox image from the given Dockerfile directory.
func (m *Manager) BuildImage(ctx context.Context, dockerfileDir string) error {
	if _, err := os.Stat(dockerfileDir); err != nil {
		return errs.NewFileError("dockerfile directory not found", dockerfileDir, errs.FileNotFound, err)
	}
	_, err := m.runner.Run(ctx, "build", "--rm", "-t", m.image, dockerfileDir)
	return err
}

// Running reports whether the sandbox container is running.
func (m *Manager) Running(ctx context.Context) bool {
	out, err := m.runner.Run(ctx, "inspect", "--format", "{{.State.Running}}", m.containerName)
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "true"
}

// Start starts a fresh sandbox container, replacing any existing one.
// Optional user config and test bindings are mounted read-only for the
// container's tmux to source. Returns the container ID.
func (m *Manager) Start(ctx context.Context, userConfig, testBindings string) (string, error) {
	if !m.Available(ctx) {
		return "", errs.NewSandboxError("docker daemon not available", errs.SandboxUnavailable, nil)
	}

	built, err := m.ImageBuilt(ctx)
	if err != nil {
		return "", err
	}
	if !built {
		return "", errs.NewSandboxError(
			fmt.Sprintf("sandbox image %q not built, run setup first", m.image),
			errs.SandboxUnavailable, nil)
	}

	// Replace any previous sandbox
	if err := m.Stop(ctx); err != nil {
		log.Debugf("stopping previous sandbox: %v", err)
	}

	tmpdir := filepath.Join(os.TempDir(), "tmuxtutor")
	if err := os.MkdirAll(tmpdir, 0755); err != nil {
		return "", errs.Wrap(err, "could not create sandbox temp directory")
	}

	args := []string{"run", "-d", "-t", "-i", "--rm", "--name", m.containerName}

	if userConfig != "" {
		path := filepath.Join(tmpdir, "user-tmux.conf")
		if err := os.WriteFile(path, []byte(userConfig), 0644); err != nil {
			return "", errs.Wrap(err, "could not write user config")
		}
		args = append(args, "-v", path+":/tmp/user-tmux.conf:ro")
	}
	if testBindings != "" {
		path := filepath.Join(tmpdir, "test-bindings.conf")
		if err := os.WriteFile(path, []byte(testBindings), 0644); err != nil {
			return "", errs.Wrap(err, "could not write test bindings")
		}
		args = append(args, "-v", path+":/tmp/test-bindings.conf:ro")
	}

	args = append(args, m.image)

	out, err := m.runner.Run(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Stop stops the sandbox container. A missing container is not an error.
func (m *Manager) Stop(ctx context.Context) error {
	if !m.Running(ctx) {
		return nil
	}
	if _, err := m.runner.Run(ctx, "stop", "-t", "5", m.containerName); err != nil {
		// Force removal when a graceful stop fails
		_, rmErr := m.runner.Run(ctx, "rm", "-f", m.containerName)
		if rmErr != nil {
			return err
		}
	}
	return nil
}

// AttachCommand returns the shell command users run to enter the sandbox.
func (m *Manager) AttachCommand() string {
	return fmt.Sprintf("docker exec -it %s tmux attach-session -t %s", m.containerName, m.session)
}

// Exec runs a command inside the sandbox container.
func (m *Manager) Exec(ctx context.Context, command ...string) (string, error) {
	if !m.Running(ctx) {
		return "", errs.NewSandboxError("container is not running", errs.SandboxUnavailable, nil)
	}
	args := append([]string{"exec", m.containerName}, command...)
	return m.runner.Run(ctx, args...)
}

// SendKeys sends keys to a tmux pane inside the sandbox.
func (m *Manager) SendKeys(ctx context.Context, pane int, keys ...string) error {
	args := append([]string{"tmux", "send-keys", "-t", fmt.Sprintf("%s:%d", m.session, pane)}, keys...)
	_, err := m.Exec(ctx, args...)
	return err
}

// PaneContents captures the text contents of a tmux pane.
func (m *Manager) PaneContents(ctx context.Context, pane int) (string, error) {
	return m.Exec(ctx, "tmux", "capture-pane", "-t", fmt.Sprintf("%s:%d", m.session, pane), "-p")
}

// GetStatus returns the sandbox container status.
func (m *Manager) GetStatus(ctx context.Context) Status {
	status := Status{Image: m.image, State: "not created"}

	out, err := m.runner.Run(ctx, "inspect", "--format", "{{.Id}} {{.State.Status}}", m.containerName)
	if err != nil {
		return status
	}

	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) >= 2 {
		id := fields[0]
		if len(id) > 12 {
			id = id[:12]
		}
		status.ID = id
		status.State = fields[1]
		status.Running = fields[1] == "running"
	}
	return status
}
