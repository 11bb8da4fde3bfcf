// Field preview tool - interactive view of one item type's energy fields.
//
// Usage: go run ./cmd/fieldpreview -config world.yaml
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/itemfield/config"
	"github.com/pthm-cable/itemfield/energy"
	"github.com/pthm-cable/itemfield/items"
	"github.com/pthm-cable/itemfield/probe"
	"github.com/pthm-cable/itemfield/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	maxRadius    = 128
)

// mode selects which field is drawn.
type mode int

const (
	modeIntensity mode = iota
	modePair
	modeRegeneration
	modeCount
)

func (m mode) String() string {
	switch m {
	case modeIntensity:
		return "intensity"
	case modePair:
		return "pair energy"
	case modeRegeneration:
		return "regeneration"
	}
	return "unknown"
}

// previewState holds the tool's adjustable view.
type previewState struct {
	Seed      uint32
	Item      int
	Neighbour int
	Mode      mode
	Radius    int64
	Tick      uint64
}

// preview owns the registry being shown and the last rendered field.
type preview struct {
	cfg   *config.Config
	reg   *items.Registry
	pool  *probe.Pool
	state previewState
	grid  []float64
	side  int
	stats telemetry.FieldStats
}

func (p *preview) rebuild() error {
	p.cfg.World.Seed = p.state.Seed
	reg, err := p.cfg.BuildRegistry()
	if err != nil {
		return err
	}
	p.reg = reg
	return nil
}

// generate fills the grid for the current state.
func (p *preview) generate() error {
	opts := probe.Options{Radius: p.state.Radius, Step: 1}
	side := int(2*p.state.Radius + 1)
	names := p.reg.Names()
	grid := make([]float64, 0, side*side)

	switch p.state.Mode {
	case modeIntensity:
		samples, err := probe.New(p.reg, nil, p.pool).Grid(opts)
		if err != nil {
			return err
		}
		for _, s := range samples {
			if s.Type == names[p.state.Item] {
				grid = append(grid, s.Intensity)
			}
		}
	case modePair:
		samples, err := probe.New(p.reg, nil, p.pool).Pairs(opts)
		if err != nil {
			return err
		}
		for _, s := range samples {
			if s.A == names[p.state.Item] && s.B == names[p.state.Neighbour] {
				grid = append(grid, s.Energy)
			}
		}
	case modeRegeneration:
		grid = grid[:side*side]
		p.pool.Run(side, func(start, end int) {
			for yi := start; yi < end; yi++ {
				y := int64(yi) - p.state.Radius
				for xi := 0; xi < side; xi++ {
					x := int64(xi) - p.state.Radius
					grid[yi*side+xi] = p.reg.Regeneration(p.state.Item, energy.Pos(x, y), p.state.Tick)
				}
			}
		})
	}

	p.grid = grid
	p.side = side
	p.stats = telemetry.ComputeFieldStats(p.state.Mode.String(), names[p.state.Item], grid)
	return nil
}

func main() {
	configPath := flag.String("config", "", "World config YAML (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	p := &preview{
		cfg:  cfg,
		pool: probe.NewPool(cfg.Derived.ProbeWorkers),
		state: previewState{
			Seed:   cfg.World.Seed,
			Radius: min(max(cfg.Probe.Radius, 8), maxRadius),
		},
	}
	defer p.pool.Close()
	if err := p.rebuild(); err != nil {
		log.Fatalf("invalid world: %v", err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Item Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var texture rl.Texture2D
	textureSide := 0
	defer func() {
		if textureSide > 0 {
			rl.UnloadTexture(texture)
		}
	}()

	needsRegen := true
	status := ""

	for !rl.WindowShouldClose() {
		if needsRegen {
			if err := p.generate(); err != nil {
				status = err.Error()
			} else {
				if p.side != textureSide {
					if textureSide > 0 {
						rl.UnloadTexture(texture)
					}
					img := rl.GenImageColor(p.side, p.side, rl.Black)
					texture = rl.LoadTextureFromImage(img)
					rl.UnloadImage(img)
					textureSide = p.side
				}
				updateTexture(texture, p.grid)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		if textureSide > 0 {
			rl.DrawTexturePro(
				texture,
				rl.Rectangle{X: 0, Y: 0, Width: float32(textureSide), Height: float32(textureSide)},
				rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
				rl.Vector2{X: 0, Y: 0},
				0,
				rl.White,
			)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Mean: %.3f  Std: %.3f",
			p.stats.Min, p.stats.Max, p.stats.Mean, p.stats.Std), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Regeneration stationary: %v  time-independent: %v  Intensity stationary: %v",
			p.reg.IsStationary(p.state.Item), p.reg.IsTimeIndependent(p.state.Item),
			p.reg.IsIntensityStationary(p.state.Item)), 15, statsY+20, 16, rl.DarkGray)
		if status != "" {
			rl.DrawText(status, 15, statsY+40, 14, rl.Maroon)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		names := p.reg.Names()

		rl.DrawText("Item Field", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Item slider
		rl.DrawText("Item type", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newItem := int(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(p.state.Item), 0, float32(len(names)-1),
		))
		rl.DrawText(names[p.state.Item], int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newItem != p.state.Item {
			p.state.Item = newItem
			needsRegen = true
		}
		panelY += 35

		// Neighbour slider
		rl.DrawText("Neighbour (pair energy)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newNeighbour := int(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(p.state.Neighbour), 0, float32(len(names)-1),
		))
		rl.DrawText(names[p.state.Neighbour], int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newNeighbour != p.state.Neighbour {
			p.state.Neighbour = newNeighbour
			needsRegen = p.state.Mode == modePair
		}
		panelY += 35

		// Radius slider
		rl.DrawText("Radius (cells)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRadius := int64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"8", "128",
			float32(p.state.Radius), 8, maxRadius,
		))
		rl.DrawText(fmt.Sprintf("%d", p.state.Radius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newRadius != p.state.Radius {
			p.state.Radius = newRadius
			needsRegen = true
		}
		panelY += 35

		// Tick slider
		rl.DrawText("Tick (regeneration)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTick := uint64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1000",
			float32(p.state.Tick), 0, 1000,
		))
		rl.DrawText(fmt.Sprintf("%d", p.state.Tick), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newTick != p.state.Tick {
			p.state.Tick = newTick
			needsRegen = p.state.Mode == modeRegeneration
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := uint32(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(p.state.Seed), 0, 99999,
		))
		rl.DrawText(fmt.Sprintf("%d", p.state.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSeed != p.state.Seed {
			p.state.Seed = newSeed
			if err := p.rebuild(); err != nil {
				status = err.Error()
			}
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Mode: "+p.state.Mode.String()) {
			p.state.Mode = (p.state.Mode + 1) % modeCount
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			p.state.Seed = uint32(rl.GetRandomValue(0, 99999))
			if err := p.rebuild(); err != nil {
				status = err.Error()
			}
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save Config") {
			path := "fieldpreview_config.yaml"
			if err := p.cfg.WriteYAML(path); err != nil {
				status = err.Error()
			} else {
				status = "saved " + path
			}
		}
		panelY += 55

		// Function summary
		item := p.reg.Type(p.state.Item)
		rl.DrawText("Functions:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		lines := []string{
			fmt.Sprintf("intensity: %v", item.Intensity()),
			fmt.Sprintf("interaction[%s]: %v", names[p.state.Neighbour], item.Interaction(p.state.Neighbour)),
			fmt.Sprintf("regeneration: %v", item.Regeneration()),
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Blue = attractive, red = repulsive", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		rl.EndDrawing()
	}
}

// updateTexture colours the field symmetrically around zero: negative values
// blue, positive values red.
func updateTexture(texture rl.Texture2D, grid []float64) {
	scale := 0.0
	for _, v := range grid {
		scale = max(scale, math.Abs(v))
	}
	if scale == 0 {
		scale = 1
	}

	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		t := v / scale
		var r, g, b uint8
		if t < 0 {
			// White to blue
			r = uint8(255 * (1 + t))
			g = uint8(255 * (1 + 0.6*t))
			b = 255
		} else {
			// White to red
			r = 255
			g = uint8(255 * (1 - 0.8*t))
			b = uint8(255 * (1 - t))
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
