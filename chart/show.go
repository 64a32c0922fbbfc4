package chart

import (
	"github.com/gdamore/tcell/v2"
)

// Show displays the chart until q, Esc or Ctrl-C
// l toggles the value scale; the screen is redrawn on resize
// The caller owns screen initialization and finalization
func Show(screen tcell.Screen, c *Chart) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	c.Draw(screen)
	screen.Show()

	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
				return
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				return
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'l' || ev.Rune() == 'L'):
				c.ToggleLog()
			}
		case *tcell.EventResize:
			screen.Sync()
		}
		c.Draw(screen)
		screen.Show()
	}
}

// Run opens the terminal, shows the chart and restores the terminal on return
func Run(c *Chart) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	Show(screen, c)
	return nil
}
