package editor

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/tilegrid/internal/telemetry"
	"github.com/samdwyer/tilegrid/internal/tileset"
	"github.com/samdwyer/tilegrid/internal/ui"
)

// Editor runs a Session in the terminal.
type Editor struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	running  bool
}

// New creates the editor, generating the initial map from cfg.
func New(ctx context.Context, cfg Config, tracer trace.Tracer) (*Editor, error) {
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}

	ts, err := loadTileset(cfg)
	if err != nil {
		return nil, err
	}

	session, err := NewSession(ctx, cfg, ts, tracer)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Editor{
		screen:   screen,
		renderer: ui.NewRenderer(screen, ts),
		session:  session,
		running:  true,
	}, nil
}

func loadTileset(cfg Config) (*tileset.Tileset, error) {
	if cfg.Tileset != "" {
		return tileset.LoadPath(cfg.Tileset)
	}
	return tileset.LoadDefault()
}

// Run executes the main editor loop until the user quits.
func (e *Editor) Run(ctx context.Context) error {
	w, h := e.screen.Size()
	e.session.Resize(w, h-1)

	for e.running {
		e.render()
		e.handleInput(ctx)
	}

	e.screen.Close()
	return nil
}

func (e *Editor) render() {
	_, h := e.screen.Size()
	e.renderer.Render(e.session.Stack(), e.session.Cursor())
	e.renderer.RenderMessage(e.session.Status(), h-1)
	e.renderer.Show()
}

// handleInput processes a single input event.
func (e *Editor) handleInput(ctx context.Context) {
	ev := e.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if e.session.Typing() {
			e.handleTextKey(ev)
			return
		}
		e.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		e.session.Resize(w, h-1)
		e.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input outside text entry.
func (e *Editor) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	s := e.session

	switch ev.Key() {
	case tcell.KeyCtrlC:
		e.running = false
	case tcell.KeyEscape:
		s.Cancel()

	case tcell.KeyUp:
		s.Move(0, -1)
	case tcell.KeyDown:
		s.Move(0, 1)
	case tcell.KeyLeft:
		s.Move(-1, 0)
	case tcell.KeyRight:
		s.Move(1, 0)

	case tcell.KeyTab:
		s.NextTool()
	case tcell.KeyEnter:
		_ = s.Apply(ctx)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			e.running = false
		case ' ':
			_ = s.Apply(ctx)
		case 'b':
			s.NextBrush()
		case 'f':
			s.ToggleFilled()
		case 'x':
			s.ToggleExact()
		case 'a':
			s.AutoTile(ctx)
		case 'u':
			s.Undo()
		case 'g':
			_ = s.Regenerate(ctx, 0)
			w, h := e.screen.Size()
			s.Resize(w, h-1)
		}
	}
}

// handleTextKey processes keyboard input while a label is being typed.
func (e *Editor) handleTextKey(ev *tcell.EventKey) {
	s := e.session

	switch ev.Key() {
	case tcell.KeyEscape:
		s.Cancel()
	case tcell.KeyEnter:
		s.CommitText()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.Backspace()
	case tcell.KeyRune:
		s.TypeRune(ev.Rune())
	}
}

// Close cleans up editor resources.
func (e *Editor) Close() {
	if e.screen != nil {
		e.screen.Close()
	}
}
