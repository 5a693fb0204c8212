package main

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/rovers/board"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/driver"
	"github.com/pthm-cable/rovers/palette"
	"github.com/pthm-cable/rovers/renderer"
)

// A character cell stands for cellWidth×cellHeight arena pixels, roughly the
// aspect of a terminal glyph.
const (
	cellWidth  = 8
	cellHeight = 16
)

func terminalArena(cols, rows int) driver.Size {
	return driver.Size{Width: float64(cols * cellWidth), Height: float64(rows * cellHeight)}
}

// runTerminal draws the board into the terminal with tcell. The arena follows
// the terminal size. Space pauses, Esc, q or Ctrl-C quit.
func runTerminal(ctx context.Context, cfg *config.Config, opts board.Options, maxTicks int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	size := terminalArena(screen.Size())
	cfg.Screen.Width, cfg.Screen.Height = int(size.Width), int(size.Height)

	sink := renderer.NewTerminalSink(screen, size.Width, size.Height, palette.Color{})
	opts.Sink = sink
	b, err := board.New(cfg, opts)
	if err != nil {
		return err
	}
	sink.SetBackground(b.Background())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pause := make(chan struct{})
	resize := make(chan driver.Size)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
					ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					cancel()
					return
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					select {
					case pause <- struct{}{}:
					case <-ctx.Done():
						return
					}
				}
			case *tcell.EventResize:
				screen.Sync()
				select {
				case resize <- terminalArena(ev.Size()):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	reason, err := driver.Run(ctx, b, driver.Options{
		Interval: driver.Interval(cfg.Screen.TargetFPS),
		MaxTicks: maxTicks,
		Pause:    pause,
		Resize:   resize,
		Logger:   opts.Logger,
	})
	opts.Logger.Info("simulation ended", "reason", reason.String(), "tick", b.Ticks())
	if reason == driver.Canceled {
		return nil
	}
	return err
}
