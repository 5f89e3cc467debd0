package surface

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
)

// putImageHeader is the size of a PutImage request without its data.
const putImageHeader = 24

var ErrUnsupportedDepth = errors.New("unsupported root window depth")

// X11 presents frames as the background pixmap of a fullscreen window.
type X11 struct {
	conn     *xgb.Conn
	screen   *xproto.ScreenInfo
	gc       xproto.Gcontext
	win      xproto.Window
	pixmaps  map[Handle]xproto.Pixmap
	xinerama bool
}

// DialX11 connects to display ("" uses $DISPLAY).
func DialX11(display string) (*X11, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	if screen.RootDepth != 24 && screen.RootDepth != 32 {
		conn.Close()
		return nil, fmt.Errorf("depth %d: %w", screen.RootDepth, ErrUnsupportedDepth)
	}

	x := &X11{conn: conn, screen: screen, pixmaps: make(map[Handle]xproto.Pixmap)}
	x.gc, err = xproto.NewGcontextId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, x.gc, xproto.Drawable(screen.Root), 0, nil).Check(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create gc: %w", err)
	}

	if err := xinerama.Init(conn); err != nil {
		log.Printf("xinerama unavailable, centering on the root window: %v", err)
	} else {
		x.xinerama = true
	}
	return x, nil
}

// Size reports the root window in pixels and its physical height.
func (x *X11) Size() (width, height, heightMM int) {
	return int(x.screen.WidthInPixels), int(x.screen.HeightInPixels), int(x.screen.HeightInMillimeters)
}

// CreateWindow maps an override-redirect window covering the root window
// and gives it the input focus.
func (x *X11) CreateWindow() error {
	wid, err := xproto.NewWindowId(x.conn)
	if err != nil {
		return err
	}
	s := x.screen
	mask := uint32(xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwEventMask)
	values := []uint32{
		s.BlackPixel,
		1,
		xproto.EventMaskExposure | xproto.EventMaskKeyPress | xproto.EventMaskVisibilityChange | xproto.EventMaskStructureNotify,
	}
	err = xproto.CreateWindowChecked(x.conn, s.RootDepth, wid, s.Root,
		0, 0, s.WidthInPixels, s.HeightInPixels, 0,
		xproto.WindowClassInputOutput, s.RootVisual, mask, values).Check()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	x.win = wid
	xproto.MapWindow(x.conn, wid)
	xproto.SetInputFocus(x.conn, xproto.InputFocusPointerRoot, wid, xproto.TimeCurrentTime)
	return x.Flush()
}

func (x *X11) Upload(img *image.RGBA) (Handle, error) {
	b := img.Bounds()
	pid, err := xproto.NewPixmapId(x.conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreatePixmapChecked(x.conn, x.screen.RootDepth, pid,
		xproto.Drawable(x.screen.Root), uint16(b.Dx()), uint16(b.Dy())).Check()
	if err != nil {
		return 0, fmt.Errorf("create pixmap %dx%d: %w", b.Dx(), b.Dy(), err)
	}
	if err := x.putImage(pid, img); err != nil {
		xproto.FreePixmap(x.conn, pid)
		return 0, err
	}
	h := Handle(pid)
	x.pixmaps[h] = pid
	return h, nil
}

// putImage sends img in as many PutImage requests as the server's request
// size limit needs.
func (x *X11) putImage(pid xproto.Pixmap, img *image.RGBA) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rows := rowsPerRequest(int(xproto.Setup(x.conn).MaximumRequestLength)*4, w)
	if rows < 1 {
		return fmt.Errorf("a %d pixel row does not fit in one X request", w)
	}
	rowBytes := 4 * w
	buf := make([]byte, rows*rowBytes)
	for y := 0; y < h; y += rows {
		n := min(rows, h-y)
		chunk := buf[:n*rowBytes]
		for r := 0; r < n; r++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y+r)
			toBGRX(chunk[r*rowBytes:(r+1)*rowBytes], img.Pix[off:off+rowBytes])
		}
		xproto.PutImage(x.conn, xproto.ImageFormatZPixmap, xproto.Drawable(pid), x.gc,
			uint16(w), uint16(n), 0, int16(y), 0, x.screen.RootDepth, chunk)
	}
	return nil
}

func rowsPerRequest(maxRequestBytes, width int) int {
	if width <= 0 {
		return 0
	}
	return (maxRequestBytes - putImageHeader) / (4 * width)
}

// toBGRX converts RGBA pixels to the little-endian 32bpp ZPixmap layout.
func toBGRX(dst, src []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
}

func (x *X11) SetBackground(h Handle) error {
	pid, ok := x.pixmaps[h]
	if !ok {
		return fmt.Errorf("set background %d: %w", h, ErrUnknownResource)
	}
	err := xproto.ChangeWindowAttributesChecked(x.conn, x.win, xproto.CwBackPixmap, []uint32{uint32(pid)}).Check()
	if err != nil {
		return fmt.Errorf("set background pixmap: %w", err)
	}
	return nil
}

func (x *X11) ClearArea(r image.Rectangle) error {
	xproto.ClearArea(x.conn, false, x.win, int16(r.Min.X), int16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()))
	return nil
}

func (x *X11) Release(h Handle) error {
	pid, ok := x.pixmaps[h]
	if !ok {
		return fmt.Errorf("release %d: %w", h, ErrUnknownResource)
	}
	xproto.FreePixmap(x.conn, pid)
	delete(x.pixmaps, h)
	return nil
}

// Flush waits until the server has processed every request sent so far.
func (x *X11) Flush() error {
	_, err := xproto.GetInputFocus(x.conn).Reply()
	return err
}

// Displays returns the Xinerama screens, or nothing when the extension is
// missing.
func (x *X11) Displays() ([]image.Rectangle, error) {
	if !x.xinerama {
		return nil, nil
	}
	reply, err := xinerama.QueryScreens(x.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("query xinerama screens: %w", err)
	}
	out := make([]image.Rectangle, 0, len(reply.ScreenInfo))
	for _, s := range reply.ScreenInfo {
		out = append(out, image.Rect(int(s.XOrg), int(s.YOrg), int(s.XOrg)+int(s.Width), int(s.YOrg)+int(s.Height)))
	}
	return out, nil
}

// Keycodes maps the keycodes producing any of syms back to their keysym.
func (x *X11) Keycodes(syms ...xproto.Keysym) (map[xproto.Keycode]xproto.Keysym, error) {
	setup := xproto.Setup(x.conn)
	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	reply, err := xproto.GetKeyboardMapping(x.conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}
	want := make(map[xproto.Keysym]bool, len(syms))
	for _, s := range syms {
		want[s] = true
	}
	per := int(reply.KeysymsPerKeycode)
	out := make(map[xproto.Keycode]xproto.Keysym)
	for i := 0; i < count; i++ {
		for j := 0; j < per && i*per+j < len(reply.Keysyms); j++ {
			if sym := reply.Keysyms[i*per+j]; want[sym] {
				out[xproto.Keycode(int(setup.MinKeycode)+i)] = sym
			}
		}
	}
	return out, nil
}

// NextEvent blocks for the next X event. io.EOF means the connection closed.
func (x *X11) NextEvent() (xgb.Event, error) {
	ev, xerr := x.conn.WaitForEvent()
	if xerr != nil {
		return nil, xerr
	}
	if ev == nil {
		return nil, io.EOF
	}
	return ev, nil
}

func (x *X11) Close() {
	for h, pid := range x.pixmaps {
		xproto.FreePixmap(x.conn, pid)
		delete(x.pixmaps, h)
	}
	if x.win != 0 {
		xproto.DestroyWindow(x.conn, x.win)
	}
	x.conn.Close()
}
