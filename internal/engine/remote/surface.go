package remote

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bambooui/bamboo/internal/platform"
	"github.com/bambooui/bamboo/internal/window"
)

// remoteSurface forwards surface operations to a connected renderer
// process over one websocket. Writes are serialized; gorilla conns do
// not allow concurrent writers.
type remoteSurface struct {
	connID  string
	win     *window.Window
	conn    *websocket.Conn
	writeMu sync.Mutex
	onDead  func(*remoteSurface)
	closed  sync.Once
}

func (s *remoteSurface) send(f Frame) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(f); err != nil {
		s.closed.Do(func() {
			s.conn.Close()
			if s.onDead != nil {
				s.onDead(s)
			}
		})
	}
}

func (s *remoteSurface) ExecuteScript(src string) {
	s.send(Frame{Kind: KindExecute, Script: src})
}

func (s *remoteSurface) LoadURL(url string) {
	s.send(Frame{Kind: KindLoadURL, URL: url})
}

func (s *remoteSurface) Reload()    { s.windowOp("reload") }
func (s *remoteSurface) GoBack()    { s.windowOp("back") }
func (s *remoteSurface) GoForward() { s.windowOp("forward") }
func (s *remoteSurface) StopLoad()  { s.windowOp("stopLoad") }

func (s *remoteSurface) SetTitle(title string) {
	s.send(Frame{Kind: KindSetTitle, Title: title})
}

func (s *remoteSurface) SetZoomLevel(level float64) {
	s.send(Frame{Kind: KindZoom, Level: level})
}

func (s *remoteSurface) SetFullscreen(on bool) {
	s.send(Frame{Kind: KindFullscreen, On: on})
}

func (s *remoteSurface) Minimize() { s.windowOp("minimize") }
func (s *remoteSurface) Maximize() { s.windowOp("maximize") }
func (s *remoteSurface) Restore()  { s.windowOp("restore") }
func (s *remoteSurface) Show()     { s.windowOp("show") }
func (s *remoteSurface) Hide()     { s.windowOp("hide") }
func (s *remoteSurface) Focus()    { s.windowOp("focus") }
func (s *remoteSurface) Center()   { s.windowOp("center") }
func (s *remoteSurface) Print()    { s.windowOp("print") }

func (s *remoteSurface) Resize(width, height int) {
	s.send(Frame{Kind: KindResize, Width: width, Height: height})
}

func (s *remoteSurface) Move(x, y int) {
	s.send(Frame{Kind: KindMove, X: x, Y: y})
}

func (s *remoteSurface) Find(text string, forward, matchCase bool) {
	s.send(Frame{Kind: KindFind, Query: text, Forward: forward, MatchCase: matchCase})
}

func (s *remoteSurface) StopFind(clear bool) {
	s.send(Frame{Kind: KindStopFind, Clear: clear})
}

func (s *remoteSurface) PrintToPDF(path string) {
	s.send(Frame{Kind: KindPrintPDF, Path: path})
}

func (s *remoteSurface) OpenDevTools()  { s.windowOp("devTools") }
func (s *remoteSurface) CloseDevTools() { s.windowOp("closeDevTools") }

func (s *remoteSurface) windowOp(op string) {
	s.send(Frame{Kind: KindWindowOp, Op: op})
}

func (s *remoteSurface) CloseSurface() {
	s.windowOp("close")
	// Closed state is confirmed by the client's closed event, or by the
	// read loop ending.
}

// Handle is zero: the native window lives in the remote process, so
// local platform styling cannot reach it. Style still travels as CSS
// through ExecuteScript.
func (s *remoteSurface) Handle() platform.Handle { return platform.None }

var _ window.Surface = (*remoteSurface)(nil)
