package host

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/felixtrz/immersive-web-sdk/transport"
)

// Monitor is a tiny terminal dashboard over a Worker's Stats, refreshed by
// the caller on every tick or at a fixed cadence.
type Monitor struct {
	screen tcell.Screen
}

// NewMonitor initializes a tcell screen for the monitor. Callers must call
// Close when done.
func NewMonitor() (*Monitor, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack))
	return &Monitor{screen: screen}, nil
}

// Close tears down the terminal screen.
func (m *Monitor) Close() { m.screen.Fini() }

// Render draws a snapshot of the worker's stats and the player's live
// position.
func (m *Monitor) Render(snap transport.Snapshot, pos [3]float32, grounded bool) {
	m.screen.Clear()

	lines := []string{
		"locomotion engine — live monitor (ctrl-c to quit)",
		"",
		fmt.Sprintf("ticks:          %d", snap.Ticks),
		fmt.Sprintf("overruns:       %d", snap.Overruns),
		fmt.Sprintf("avg tick time:  %s", snap.AverageTickTime),
		fmt.Sprintf("max tick time:  %s", snap.MaxTickTime),
		fmt.Sprintf("avg msgs/tick:  %.2f", snap.AverageMessages),
		"",
		fmt.Sprintf("position:       (%.3f, %.3f, %.3f)", pos[0], pos[1], pos[2]),
		fmt.Sprintf("grounded:       %v", grounded),
	}

	for row, line := range lines {
		m.drawText(0, row, line)
	}
	m.screen.Show()
}

func (m *Monitor) drawText(x, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range text {
		m.screen.SetContent(x+i, y, r, nil, style)
	}
}

// PollQuit reports whether the user pressed a key that should end the demo.
func (m *Monitor) PollQuit() bool {
	switch ev := m.screen.PollEvent().(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return true
		}
	}
	return false
}
