package remote

// Frames exchanged with a connected surface process. One JSON object
// per websocket text message, discriminated by Kind.
const (
	// surface to native
	KindHello  = "hello"  // first frame after connect
	KindBridge = "bridge" // carries one serialized bridge envelope
	KindEvent  = "event"  // lifecycle notification

	// native to surface
	KindExecute    = "execute"
	KindLoadURL    = "loadURL"
	KindSetTitle   = "setTitle"
	KindZoom       = "zoom"
	KindFullscreen = "fullscreen"
	KindWindowOp   = "windowOp"
	KindResize     = "resize"
	KindMove       = "move"
	KindFind       = "find"
	KindStopFind   = "stopFind"
	KindPrintPDF   = "printPDF"
	KindError      = "error"
)

// Lifecycle event names carried by KindEvent frames.
const (
	EventLoadStart   = "loadStart"
	EventLoadEnd     = "loadEnd"
	EventTitle       = "titleChange"
	EventConsole     = "console"
	EventFocus       = "focus"
	EventFind        = "find"
	EventFullscreen  = "fullscreen"
	EventCloseReq    = "closeRequested"
	EventClosed      = "closed"
	EventContextMenu = "contextMenu"
)

// Frame is the wire shape in both directions. Unused fields stay zero.
type Frame struct {
	Kind string `json:"kind"`

	Script  string  `json:"script,omitempty"`
	URL     string  `json:"url,omitempty"`
	Title   string  `json:"title,omitempty"`
	Level   float64 `json:"level,omitempty"`
	On      bool    `json:"on,omitempty"`
	Op      string  `json:"op,omitempty"`
	Text    string  `json:"text,omitempty"`
	Event   string  `json:"event,omitempty"`
	Message string  `json:"message,omitempty"`

	// console events
	LogLevel string `json:"logLevel,omitempty"`
	Source   string `json:"source,omitempty"`

	// find events
	Matches int  `json:"matches,omitempty"`
	Ordinal int  `json:"ordinal,omitempty"`
	Final   bool `json:"final,omitempty"`

	// context menu events, move and resize
	X      int `json:"x,omitempty"`
	Y      int `json:"y,omitempty"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// find requests
	Query     string `json:"query,omitempty"`
	Forward   bool   `json:"forward,omitempty"`
	MatchCase bool   `json:"matchCase,omitempty"`
	Clear     bool   `json:"clear,omitempty"`

	// pdf requests
	Path string `json:"path,omitempty"`
}
