// Command flightview animates a scenario: every vehicle is drawn at its
// sampled position as the playback clock advances, and the first detected
// conflict freezes the two involved vehicles at the conflict point.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"

	"flightpath-sim/internal/sim/conflict"
	"flightpath-sim/internal/sim/scenario"
	"flightpath-sim/internal/sim/trajectory"
	"flightpath-sim/internal/ui"
	"flightpath-sim/pkg/types"
)

type Camera struct {
	X, Y                 float64
	PanStartX, PanStartY int
	Scale                float64
}

type vehicle struct {
	traj  *trajectory.Trajectory
	color color.RGBA
}

type Game struct {
	width, height int
	camera        *Camera

	vehicles []*vehicle // index 0 is the primary
	record   conflict.Record
	found    bool

	windowStart, windowEnd float64
	clock                  float64
	speed                  float64
	paused                 bool

	selectedVehicleID types.VehicleID
	commandInput      *ui.TextInput
}

var trafficColors = []color.RGBA{
	{100, 200, 255, 255},
	{255, 200, 100, 255},
	{150, 255, 150, 255},
	{255, 150, 255, 255},
	{200, 200, 120, 255},
}

func NewGame(screenWidth, screenHeight int, cfg *scenario.Config) (*Game, error) {
	primary, err := cfg.Primary.Build()
	if err != nil {
		return nil, err
	}
	gen := scenario.NewGenerator(cfg.Traffic.Seed)
	others, err := gen.Spread(primary, cfg.Traffic.Count, cfg.Traffic.TimeJitter)
	if err != nil {
		return nil, err
	}

	game := &Game{
		width:  screenWidth,
		height: screenHeight,
		camera: &Camera{0, 0, 0, 0, 1.0},
		speed:  1.0,
	}

	game.vehicles = append(game.vehicles, &vehicle{traj: primary, color: color.RGBA{255, 255, 255, 255}})
	for i, other := range others {
		game.vehicles = append(game.vehicles, &vehicle{
			traj:  other,
			color: trafficColors[i%len(trafficColors)],
		})
	}

	game.windowStart, game.windowEnd = primary.StartTime, primary.EndTime
	for _, other := range others {
		game.windowStart = math.Min(game.windowStart, other.StartTime)
		game.windowEnd = math.Max(game.windowEnd, other.EndTime)
	}
	game.clock = game.windowStart

	game.record, game.found = conflict.Detect(primary, others, cfg.Detection.BufferRadius, cfg.Detection.TimeStep)
	if game.found {
		log.Printf("CONFLICT: %s and %s at t=%.2f, separation %.2f",
			primary.ID, others[game.record.OtherIndex].ID, game.record.Time, game.record.Distance)
	} else {
		log.Printf("No conflict within radius %.1f", cfg.Detection.BufferRadius)
	}

	game.commandInput = ui.NewTextInput(10, screenHeight-48, screenWidth/2, 30, func(cmd string) {
		game.parseAndExecuteCommand(cmd)
	})

	return game, nil
}

func (g *Game) Update() error {
	if !g.paused {
		g.clock += g.speed / 60.0
		if g.clock > g.windowEnd {
			g.clock = g.windowEnd
		}
	}

	g.handleInput()
	g.commandInput.Update()

	return nil
}

// frozen reports whether the vehicle at index i stays pinned at the conflict
// time. Only the primary and the conflicting traffic freeze; the rest of the
// traffic keeps flying.
func (g *Game) frozen(i int) bool {
	if !g.found || g.clock < g.record.Time {
		return false
	}
	return i == 0 || i == g.record.OtherIndex+1
}

func (g *Game) displayTime(i int) float64 {
	if g.frozen(i) {
		return g.record.Time
	}
	return g.clock
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	for _, v := range g.vehicles {
		g.drawPath(screen, v)
	}
	for i, v := range g.vehicles {
		g.drawVehicle(screen, i, v)
	}

	g.drawUI(screen)
	ebitenutil.DebugPrint(screen, "FPS: "+strconv.FormatFloat(ebiten.ActualFPS(), 'f', 2, 64))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

func (g *Game) handleInput() {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()

		if g.commandInput.IsClicked(x, y) {
			g.commandInput.IsActive = true
			return
		} else {
			g.commandInput.IsActive = false
		}

		g.selectedVehicleID = "" // Clear current selection
		for i, v := range g.vehicles {
			pos := v.traj.PositionAt(g.displayTime(i))
			screenX, screenY := g.worldToScreen(pos.X, pos.Y)
			dx, dy := float64(x)-screenX, float64(y)-screenY
			if dx*dx+dy*dy < 144 {
				g.selectedVehicleID = v.traj.ID
				log.Printf("Selected vehicle: %s", g.selectedVehicleID)
				break
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && !g.commandInput.IsActive {
		g.paused = !g.paused
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		cursorX, cursorY := ebiten.CursorPosition()
		worldX, worldY := g.screenToWorld(float64(cursorX), float64(cursorY))

		oldScale := g.camera.Scale
		if wy > 0 {
			oldScale *= 1.1
		} else {
			oldScale /= 1.1
		}
		g.camera.Scale = math.Max(0.5, math.Min(3.0, oldScale))

		newWorldX, newWorldY := g.screenToWorld(float64(cursorX), float64(cursorY))
		g.camera.X -= (newWorldX - worldX)
		g.camera.Y -= (newWorldY - worldY)
	}

	// Right mouse button for pan
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		dx, dy := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.camera.PanStartX, g.camera.PanStartY = dx, dy
		} else {
			g.camera.X -= float64(dx-g.camera.PanStartX) / g.camera.Scale
			g.camera.Y -= float64(dy-g.camera.PanStartY) / g.camera.Scale
			g.camera.PanStartX, g.camera.PanStartY = dx, dy // Update for next frame
		}
	}
}

// Helper: Convert screen coordinates to world coordinates
func (g *Game) screenToWorld(sx, sy float64) (wx, wy float64) {
	wx = sx/g.camera.Scale + g.camera.X
	wy = sy/g.camera.Scale + g.camera.Y
	return
}

// Helper: Convert world coordinates to screen coordinates
func (g *Game) worldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx - g.camera.X) * g.camera.Scale
	sy = (wy - g.camera.Y) * g.camera.Scale
	return
}

func (g *Game) drawPath(screen *ebiten.Image, v *vehicle) {
	waypoints := v.traj.Waypoints()
	dim := color.RGBA{v.color.R / 3, v.color.G / 3, v.color.B / 3, 255}
	for i := 0; i+1 < len(waypoints); i++ {
		x1, y1 := g.worldToScreen(waypoints[i].X, waypoints[i].Y)
		x2, y2 := g.worldToScreen(waypoints[i+1].X, waypoints[i+1].Y)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, dim, false)
	}
	for _, wp := range waypoints {
		screenX, screenY := g.worldToScreen(wp.X, wp.Y)
		vector.DrawFilledCircle(screen, float32(screenX), float32(screenY), float32(2*g.camera.Scale), dim, false)
	}
}

func (g *Game) drawVehicle(screen *ebiten.Image, i int, v *vehicle) {
	pos := v.traj.PositionAt(g.displayTime(i))
	screenX, screenY := g.worldToScreen(pos.X, pos.Y)

	vector.DrawFilledCircle(screen, float32(screenX), float32(screenY), float32(5*g.camera.Scale), v.color, false)

	if g.selectedVehicleID == v.traj.ID {
		vector.StrokeRect(screen, float32(screenX-10), float32(screenY-10), 20, 20, 1, color.RGBA{255, 255, 255, 255}, false)
	}

	tagText := fmt.Sprintf("%s\nALT:%.0f", v.traj.ID, pos.Z)
	if g.frozen(i) {
		tagText += "\nFROZEN"
	}
	ebitenutil.DebugPrintAt(screen, tagText, int(screenX)+10, int(screenY)-20)

	// Conflict highlight (also relative to screenX, screenY)
	if g.frozen(i) {
		vector.DrawFilledCircle(screen, float32(screenX), float32(screenY), float32(10*g.camera.Scale), color.RGBA{255, 0, 0, 100}, false)
	}
}

func (g *Game) drawUI(screen *ebiten.Image) {
	g.commandInput.Draw(screen)

	status := fmt.Sprintf("t=%.2f / %.2f  speed x%.1f", g.clock, g.windowEnd, g.speed)
	if g.paused {
		status += "  PAUSED"
	}
	if g.found {
		other := g.vehicles[g.record.OtherIndex+1]
		status += fmt.Sprintf("  CONFLICT %s t=%.2f d=%.2f", other.traj.ID, g.record.Time, g.record.Distance)
	}
	ebitenutil.DebugPrintAt(screen, status, 10, g.height-68)

	selectedText := "Selected: None"
	if g.selectedVehicleID != "" {
		selectedText = "Selected: " + string(g.selectedVehicleID)
	}
	ebitenutil.DebugPrintAt(screen, selectedText, 10, g.height-84)
}

func (g *Game) parseAndExecuteCommand(cmd string) {
	parts := strings.Fields(cmd) // Split by whitespace
	if len(parts) == 0 {
		return
	}

	commandType := strings.ToUpper(parts[0])
	switch commandType {
	case "P", "PAUSE":
		g.paused = true
	case "R", "RESUME":
		g.paused = false
	case "S", "SPEED":
		if len(parts) < 2 {
			log.Printf("SPEED needs a multiplier, e.g. SPEED 2")
			return
		}
		speed, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || speed <= 0 {
			log.Printf("Invalid speed value: %s. Must be positive.", parts[1])
			return
		}
		g.speed = speed
	case "T", "SEEK":
		if len(parts) < 2 {
			log.Printf("SEEK needs a time, e.g. SEEK 10")
			return
		}
		t, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			log.Printf("Invalid time value: %s", parts[1])
			return
		}
		g.clock = math.Max(g.windowStart, math.Min(g.windowEnd, t))
	case "RESET":
		g.clock = g.windowStart
		g.paused = false
		g.speed = 1.0
	default:
		log.Printf("Unknown command type: %s", commandType)
	}
}

func main() {
	configPath := flag.String("config", "scenario.yaml", "path to the scenario file")
	flag.Parse()

	cfg, err := scenario.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("Flight Path Conflict Viewer")
	ebiten.SetVsyncEnabled(true)

	game, err := NewGame(1024, 768, cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
