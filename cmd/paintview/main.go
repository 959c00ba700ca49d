// Command paintview is an interactive terminal painter.
//
// Each terminal cell shows two vertically stacked pixels using a half
// block. Drag with the left mouse button to paint.
//
//	1-9    select swatch (black ... eraser)
//	+ -    grow / shrink the brush
//	f      fire a paintball at the last mouse position
//	m      dip the brush color into the cup
//	u      use the cup color
//	t      tip the cup over
//	c      clear
//	s      save paintview.png
//	q Esc  quit
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
)

// pixelsPerUnit maps buffer pixels to world units.
const pixelsPerUnit = 100.0

type viewer struct {
	screen  tcell.Screen
	surface *paint.Surface
	changes *paint.Changes
	brush   *brush.Brush
	gun     *brush.Gun
	cup     *brush.Cup

	output  string
	status  string
	mouse   paint.Vec3
	pressed bool
}

func newViewer(screen tcell.Screen, output string) (*viewer, error) {
	v := &viewer{
		screen: screen,
		brush:  brush.New(brush.WithRadius(2)),
		gun:    brush.NewGun(),
		cup:    brush.NewCup(),
		output: output,
	}
	if err := v.resize(); err != nil {
		return nil, err
	}
	if err := v.brush.Handle(brush.Grab{}); err != nil {
		return nil, err
	}
	v.status = "drag to paint, 1-9 swatch, +/- size, q quit"
	return v, nil
}

// resize allocates a fresh surface matching the terminal, keeping one
// row for the status line.
func (v *viewer) resize() error {
	w, h := v.screen.Size()
	pw, ph := max(1, w), max(1, 2*(h-1))
	s, err := paint.New(pw, ph, paint.White,
		paint.Corners(paint.V3(0, 0, 0), paint.V3(float64(pw)/pixelsPerUnit, float64(ph)/pixelsPerUnit, 0)))
	if err != nil {
		return err
	}
	if v.changes != nil {
		v.changes.Close()
	}
	v.surface = s
	v.changes = s.TrackChanges()
	_ = v.brush.Handle(brush.ContactLost{})
	return nil
}

// world converts a terminal cell to the world point of its upper pixel.
func (v *viewer) world(cx, cy int) paint.Vec3 {
	return paint.V3(float64(cx)/pixelsPerUnit, float64(2*cy)/pixelsPerUnit, 0)
}

func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			v.key(ev.Rune())
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		v.mouse = v.world(x, y)
		if ev.Buttons()&tcell.Button1 != 0 {
			v.pressed = true
			_ = v.brush.Handle(brush.Contact{Target: v.surface, Point: v.mouse})
		} else if v.pressed {
			v.pressed = false
			_ = v.brush.Handle(brush.ContactLost{})
		}

	case *tcell.EventResize:
		v.screen.Sync()
		if err := v.resize(); err != nil {
			v.status = err.Error()
		} else {
			v.status = "resized, canvas cleared"
		}
	}
	return true
}

func (v *viewer) key(r rune) {
	switch {
	case r >= '1' && r <= '9':
		all := paint.Swatches()
		i := int(r - '1')
		if i >= len(all) {
			return
		}
		sw := all[i]
		if err := v.brush.Handle(brush.SetSwatch{Swatch: sw}); err != nil {
			v.status = err.Error()
			return
		}
		v.status = "swatch " + sw.String()
	case r == '+' || r == '=':
		_ = v.brush.Handle(brush.SetRadius{Radius: v.brush.Radius() + 1})
		v.status = fmt.Sprintf("radius %d", v.brush.Radius())
	case r == '-':
		_ = v.brush.Handle(brush.SetRadius{Radius: v.brush.Radius() - 1})
		v.status = fmt.Sprintf("radius %d", v.brush.Radius())
	case r == 'f':
		v.gun.Load(v.brush.Color())
		v.gun.Fire().Hit(v.surface, v.mouse)
		v.status = "splat"
	case r == 'm':
		mix := v.cup.Dip(v.brush.Color())
		v.status = fmt.Sprintf("cup %s (%d colors)", mix.HexString(), v.cup.Count())
	case r == 'u':
		_ = v.brush.Handle(brush.SetColor{Color: v.cup.Color()})
		v.status = "brush " + v.cup.Color().HexString()
	case r == 't':
		v.cup.Tilt(-1)
		v.status = "cup emptied"
	case r == 'c':
		v.surface.Clear()
		v.status = "cleared"
	case r == 's':
		if err := v.surface.Export().SaveFile(v.output); err != nil {
			v.status = err.Error()
			return
		}
		v.status = "saved " + v.output
	}
}

// draw repaints only the cells covering tiles changed since the last frame.
func (v *viewer) draw() {
	if v.changes.Pending() {
		snap, rects := v.changes.Export()
		for _, r := range rects {
			for y := r.Min.Y &^ 1; y < r.Max.Y; y += 2 {
				for x := r.Min.X; x < r.Max.X; x++ {
					top := cellColor(snap.Color(x, y))
					bottom := cellColor(snap.Color(x, y+1))
					v.screen.SetContent(x, y/2, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
				}
			}
		}
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *viewer) drawStatus() {
	w, h := v.screen.Size()
	line := fmt.Sprintf(" %-8s r=%-3d %s", v.brush.Swatch(), v.brush.Radius(), v.status)
	style := tcell.StyleDefault.Foreground(cellColor(v.brush.Color())).Background(tcell.ColorBlack)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		v.screen.SetContent(x, h-1, r, nil, style)
	}
}

func cellColor(c paint.RGBA) tcell.Color {
	n := c.Color().(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func (v *viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handle(ev) {
				return
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

func main() {
	var (
		output  = flag.String("output", "paintview.png", "file written by the s key")
		logFile = flag.String("log", "", "write paint diagnostics to this file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		paint.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	v, err := newViewer(screen, *output)
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to create surface: %v", err)
	}
	v.run()
}
