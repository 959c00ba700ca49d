// Command paintdemo paints a scripted scene onto the surfaces of a studio
// layout and saves the result.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
	"github.com/gogpu/paint/config"
	"github.com/gogpu/paint/studio"
)

func main() {
	var (
		layout  = flag.String("config", "", "studio layout (.yaml, .yml or .toml); default is a single easel")
		output  = flag.String("output", "demo.png", "output file for the first surface (.png, .bmp, .tif)")
		dir     = flag.String("dir", "", "if set, save every surface into this directory")
		verbose = flag.Bool("v", false, "log paint diagnostics to stderr")
	)
	flag.Parse()

	if *verbose {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	c := config.Default()
	if *layout != "" {
		var err error
		if c, err = config.Load(*layout); err != nil {
			log.Fatalf("Failed to load layout: %v", err)
		}
	}

	st, err := studio.FromConfig(c)
	if err != nil {
		log.Fatalf("Failed to build studio: %v", err)
	}
	if st.Len() == 0 {
		log.Fatal("Layout has no surfaces")
	}

	for _, name := range st.Names() {
		s, _ := st.Lookup(name)
		if err := paintScene(st.Brush(), s); err != nil {
			log.Fatalf("Failed to paint %s: %v", name, err)
		}
	}

	first, _ := st.Lookup(st.Names()[0])
	if err := first.Export().SaveFile(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, first.Width(), first.Height())

	if *dir != "" {
		format, err := paint.FormatFromPath(*output)
		if err != nil {
			format = paint.FormatPNG
		}
		if err := st.SaveAll(context.Background(), *dir, format); err != nil {
			log.Fatalf("Failed to save surfaces: %v", err)
		}
		log.Printf("%d surfaces saved to %s\n", st.Len(), *dir)
	}
}

// paintScene draws a spiral stroke per swatch, a few paintball splats and
// a mixed-color underline.
func paintScene(b *brush.Brush, s *paint.Surface) error {
	pl := s.Placement()

	if err := b.Handle(brush.Grab{}); err != nil {
		return err
	}
	defer func() { _ = b.Handle(brush.Release{}) }()

	swatches := []paint.Swatch{paint.SwatchRed, paint.SwatchGreen, paint.SwatchBlue, paint.SwatchPurple}
	for i, sw := range swatches {
		if err := b.Handle(brush.SetSwatch{Swatch: sw}); err != nil {
			return err
		}
		phase := float64(i) * math.Pi / 2
		for k := 0; k <= 120; k++ {
			t := float64(k) / 120
			r := 0.05 + 0.35*t
			u := 0.5 + r*math.Cos(phase+t*3*math.Pi)
			v := 0.5 + r*math.Sin(phase+t*3*math.Pi)
			if err := b.Handle(brush.Contact{Target: s, Point: worldAt(pl, u, v)}); err != nil {
				return err
			}
		}
		if err := b.Handle(brush.ContactLost{}); err != nil {
			return err
		}
	}

	gun := brush.NewGun()
	for i, c := range []paint.RGBA{paint.Yellow, paint.Blue, paint.Grey} {
		gun.Load(c)
		gun.Fire().Hit(s, worldAt(pl, 0.2+0.3*float64(i), 0.12))
	}

	cup := brush.NewCup()
	cup.Dip(paint.Red)
	cup.Dip(paint.Yellow)
	if err := b.Handle(brush.SetColor{Color: cup.Color()}); err != nil {
		return err
	}
	if err := b.Handle(brush.Contact{Target: s, Point: worldAt(pl, 0.1, 0.92)}); err != nil {
		return err
	}
	if err := b.Handle(brush.Contact{Target: s, Point: worldAt(pl, 0.9, 0.92)}); err != nil {
		return err
	}
	return b.Handle(brush.ContactLost{})
}

// worldAt returns the world point at normalized surface coordinates (u, v).
func worldAt(pl paint.Placement, u, v float64) paint.Vec3 {
	switch pl.Mode {
	case paint.ProjectScale:
		// Pixel coordinates are mirrored relative to right/up.
		return pl.Center.
			Add(pl.Right.Mul((0.5 - u) * pl.Width)).
			Add(pl.Up.Mul((0.5 - v) * pl.Height))
	default:
		// The flattest axis is the normal; u and v run along the other two
		// in X, Y, Z order.
		a, b := pl.CornerA, pl.CornerB
		d := b.Sub(a).Abs()
		normal := 0
		for i := 1; i < 3; i++ {
			if d.Axis(i) < d.Axis(normal) {
				normal = i
			}
		}
		var p [3]float64
		ts := []float64{u, v}
		for i := 0; i < 3; i++ {
			t := 0.0
			if i != normal {
				t, ts = ts[0], ts[1:]
			}
			p[i] = a.Axis(i) + (b.Axis(i)-a.Axis(i))*t
		}
		return paint.V3(p[0], p[1], p[2])
	}
}
