package sandbox

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "tmuxtutor/internal/errors"
	"tmuxtutor/pkg/types"
)

// fakeRunner answers docker commands from a canned response table keyed by
// a substring of the argument list.
type fakeRunner struct {
	responses map[string]string
	calls     []string
}

func (f *fakeRunner) Run(ctx context.Context, args ...string) (string, error) {
	call := strings.Join(args, " ")
	f.calls = append(f.calls, call)
	for key, response := range f.responses {
		if strings.Contains(call, key) {
			return response, nil
		}
	}
	return "", nil
}

func newFakeManager(responses map[string]string) (*Manager, *fakeRunner) {
	runner := &fakeRunner{responses: responses}
	return NewManagerWithRunner(runner, "test-image", "test-sandbox", "practice"), runner
}

func intPtr(n int) *int { return &n }

func TestManagerStatus(t *testing.T) {
	t.Run("running container", func(t *testing.T) {
		m, _ := newFakeManager(map[string]string{
			"inspect --format {{.Id}}":            "abcdef0123456789 running\n",
			"inspect --format {{.State.Running}}": "true\n",
		})

		status := m.GetStatus(context.Background())
		assert.True(t, status.Running)
		assert.Equal(t, "abcdef012345", status.ID)
		assert.Equal(t, "running", status.State)
		assert.True(t, m.Running(context.Background()))
	})

	t.Run("image built check", func(t *testing.T) {
		m, _ := newFakeManager(map[string]string{"images -q": "sha256:abc\n"})
		built, err := m.ImageBuilt(context.Background())
		require.NoError(t, err)
		assert.True(t, built)

		m, _ = newFakeManager(map[string]string{"images -q": "\n"})
		built, err = m.ImageBuilt(context.Background())
		require.NoError(t, err)
		assert.False(t, built)
	})
}

func TestManagerExecRequiresRunning(t *testing.T) {
	m, _ := newFakeManager(map[string]string{
		"inspect --format {{.State.Running}}": "false\n",
	})

	_, err := m.Exec(context.Background(), "tmux", "list-panes")
	require.Error(t, err)
	assert.True(t, errs.IsSandboxUnavailable(err))
}

func TestAttachCommand(t *testing.T) {
	m, _ := newFakeManager(nil)
	assert.Equal(t, "docker exec -it test-sandbox tmux attach-session -t practice", m.AttachCommand())
}

func TestBridgeSetupChallenge(t *testing.T) {
	m, runner := newFakeManager(map[string]string{
		"inspect --format {{.State.Running}}": "true\n",
	})
	bridge := NewBridge(m)

	setup := types.ChallengeSetup{
		Panes:   4,
		Layout:  "tiled",
		Windows: 2,
	}
	require.NoError(t, bridge.SetupChallenge(context.Background(), setup))

	joined := strings.Join(runner.calls, "\n")
	assert.Contains(t, joined, "kill-pane -a -t practice:0")
	assert.Equal(t, 3, strings.Count(joined, "split-window"))
	assert.Contains(t, joined, "select-layout -t practice tiled")
	assert.Equal(t, 1, strings.Count(joined, "new-window"))
	assert.Contains(t, joined, "select-window -t practice:0")
	assert.Contains(t, joined, "select-pane -t practice:0")
}

func TestBridgeCurrentState(t *testing.T) {
	m, _ := newFakeManager(map[string]string{
		"inspect --format {{.State.Running}}": "true\n",
		"#{pane_index}":                       "2\n",
		"#{window_index}":                     "1\n",
		"list-panes":                          "0: [80x24]\n1: [80x24]\n2: [80x24]\n",
		"list-windows":                        "0: zsh\n1: vim\n",
		"#{window_layout}":                    "tiled,238x54\n",
	})
	bridge := NewBridge(m)

	state, err := bridge.CurrentState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, state.ActivePane)
	assert.Equal(t, 1, state.ActiveWindow)
	assert.Equal(t, 3, state.PaneCount)
	assert.Equal(t, 2, state.WindowCount)
	assert.Equal(t, "tiled,238x54", state.Layout)
}

func TestBridgeVerifyChallenge(t *testing.T) {
	newBridge := func(pane, paneCount string, layout string) *Bridge {
		m, _ := newFakeManager(map[string]string{
			"inspect --format {{.State.Running}}": "true\n",
			"#{pane_index}":                       pane + "\n",
			"#{window_index}":                     "0\n",
			"list-panes":                          paneCount,
			"list-windows":                        "0: zsh\n",
			"#{window_layout}":                    layout + "\n",
		})
		return NewBridge(m)
	}

	ctx := context.Background()

	t.Run("target pane reached", func(t *testing.T) {
		bridge := newBridge("2", "0:\n1:\n2:\n", "tiled")
		ok, msg, err := bridge.VerifyChallenge(ctx, types.ChallengeExpectation{TargetPane: intPtr(2)}, State{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, msg, "Correct")
	})

	t.Run("wrong pane reports where you are", func(t *testing.T) {
		bridge := newBridge("1", "0:\n1:\n2:\n", "tiled")
		ok, msg, err := bridge.VerifyChallenge(ctx, types.ChallengeExpectation{TargetPane: intPtr(2)}, State{})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, msg, "pane 1")
	})

	t.Run("min panes satisfied by split", func(t *testing.T) {
		bridge := newBridge("0", "0:\n1:\n", "tiled")
		ok, _, err := bridge.VerifyChallenge(ctx, types.ChallengeExpectation{MinPanes: intPtr(2)}, State{})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("resize detected via layout change", func(t *testing.T) {
		bridge := newBridge("0", "0:\n1:\n", "main-vertical,100x50")
		initial := State{Layout: "even-horizontal,100x50"}
		ok, _, err := bridge.VerifyChallenge(ctx, types.ChallengeExpectation{CheckResize: true}, initial)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unchanged layout fails resize check", func(t *testing.T) {
		bridge := newBridge("0", "0:\n1:\n", "even-horizontal,100x50")
		initial := State{Layout: "even-horizontal,100x50"}
		ok, msg, err := bridge.VerifyChallenge(ctx, types.ChallengeExpectation{CheckResize: true}, initial)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, msg, "hasn't changed")
	})

	t.Run("no criteria means success", func(t *testing.T) {
		bridge := newBridge("0", "0:\n", "tiled")
		ok, msg, err := bridge.VerifyChallenge(ctx, types.ChallengeExpectation{}, State{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Challenge completed!", msg)
	})
}
