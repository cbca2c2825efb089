package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boxfall/game"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Title        string
	Engine       string
	Tick         int32
	SimTime      float64
	Entities     int
	Dynamic      int
	Awake        int
	Settled      int
	FPS          float64
	ScreenWidth  int32
	ScreenHeight int32
}

// NewHUDData builds HUD data from a game status snapshot.
func NewHUDData(title string, st game.Status, screenW, screenH int32) HUDData {
	return HUDData{
		Title:        title,
		Engine:       st.Engine,
		Tick:         st.Tick,
		SimTime:      st.SimTime,
		Entities:     st.Entities,
		Dynamic:      st.Dynamic,
		Awake:        st.Awake,
		Settled:      st.Settled,
		FPS:          st.FPS,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	}
}

// Rows returns the label/value pairs shown in the panel.
func (d HUDData) Rows() [][2]string {
	return [][2]string{
		{"Engine", d.Engine},
		{"Bodies", fmt.Sprintf("%d", d.Entities)},
		{"Awake", fmt.Sprintf("%d", d.Awake)},
		{"Time", fmt.Sprintf("%.2fs", d.SimTime)},
		{"FPS", fmt.Sprintf("%.0f", d.FPS)},
	}
}

// StatusLine returns the text for the bottom status bar.
func (d HUDData) StatusLine() string {
	return fmt.Sprintf("tick %d | %d bodies | %d/%d settled | ESC to quit",
		d.Tick, d.Entities, d.Settled, d.Dynamic)
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    220,
	}
}

// Draw renders the panel and the status bar.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme
	rows := data.Rows()
	height := th.Padding*2 + th.LineHeight + 2 + int32(len(rows))*th.LineHeight + th.LineHeight + 2

	h.renderer.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + th.Padding
	y := h.renderer.DrawSectionHeader(x, h.y+th.Padding, data.Title)
	for _, row := range rows {
		y = h.renderer.DrawLabelValue(x, y, row[0], row[1])
	}
	h.renderer.DrawRatioBar(x, y, "Settled", data.Settled, data.Dynamic, h.width-th.Padding*2)

	const barHeight = 24
	gui.StatusBar(rl.Rectangle{
		X:      0,
		Y:      float32(data.ScreenHeight - barHeight),
		Width:  float32(data.ScreenWidth),
		Height: barHeight,
	}, data.StatusLine())
}
