package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmuxtutor/internal/keys"
)

type recorder struct {
	shown   []string
	correct int
	wrong   int
	escaped bool
	done    bool
}

func (r *recorder) events() Events {
	return Events{
		Show: func(display, description string, current, total int) {
			r.shown = append(r.shown, display)
		},
		Correct: func() { r.correct++ },
		Wrong:   func() { r.wrong++ },
		Escaped: func() { r.escaped = true },
		Done:    func() { r.done = true },
	}
}

func TestSequenceHappyPath(t *testing.T) {
	rec := &recorder{}
	seq := NewSequence([]Step{
		{Keybind: "M-h", Description: "Move left"},
		{Keybind: "M-H", Description: "Resize left"},
	}, rec.events())

	seq.Start()
	require.Equal(t, []string{"Alt + h"}, rec.shown)
	assert.Equal(t, "M-h", seq.Current().Keybind)

	seq.HandleKey(keys.NewModSet("alt"), "h")
	assert.Equal(t, 1, rec.correct)
	assert.Equal(t, []string{"Alt + h", "Alt + H"}, rec.shown)

	seq.HandleKey(keys.NewModSet("alt", "shift"), "h")
	assert.Equal(t, 2, rec.correct)
	assert.True(t, seq.Completed())
	assert.True(t, rec.done)
	assert.False(t, seq.Escaped())
}

func TestSequenceWrongKey(t *testing.T) {
	rec := &recorder{}
	seq := NewSequence([]Step{{Keybind: "M-h"}}, rec.events())
	seq.Start()

	// missing modifier
	seq.HandleKey(keys.NewModSet(), "h")
	// extra modifier
	seq.HandleKey(keys.NewModSet("alt", "ctrl"), "h")
	// wrong key
	seq.HandleKey(keys.NewModSet("alt"), "l")

	assert.Equal(t, 3, rec.wrong)
	assert.Equal(t, 0, rec.correct)
	assert.False(t, seq.Completed())

	seq.HandleKey(keys.NewModSet("alt"), "h")
	assert.True(t, seq.Completed())
}

func TestSequenceEscape(t *testing.T) {
	rec := &recorder{}
	seq := NewSequence([]Step{{Keybind: "C-a"}}, rec.events())
	seq.Start()

	seq.HandleKey(keys.NewModSet(), "escape")
	assert.True(t, seq.Escaped())
	assert.True(t, rec.escaped)
	assert.False(t, seq.Completed())

	// events after escape are ignored
	seq.HandleKey(keys.NewModSet("ctrl"), "a")
	assert.Equal(t, 0, rec.correct)
}

func TestSequenceEmpty(t *testing.T) {
	rec := &recorder{}
	seq := NewSequence(nil, rec.events())
	seq.Start()

	assert.True(t, seq.Completed())
	assert.True(t, rec.done)
	assert.Empty(t, rec.shown)
}

func TestSequenceShiftedSymbol(t *testing.T) {
	rec := &recorder{}
	seq := NewSequence([]Step{{Keybind: "M-{", Description: "Swap pane up"}}, rec.events())
	seq.Start()

	seq.HandleKey(keys.NewModSet("alt", "shift"), "[")
	assert.True(t, seq.Completed())
}
