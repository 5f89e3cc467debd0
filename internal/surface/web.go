package surface

import (
	"bytes"
	"image/png"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>svglock preview</title></head>
<body style="background:#222;color:#eee;font-family:sans-serif">
<img id="frame" src="/frame" style="max-width:100%">
<p>
<button onclick="send('key')">key</button>
<button onclick="send('backspace')">backspace</button>
<button onclick="send('escape')">escape</button>
<button onclick="send('verify')">verify</button>
<button onclick="send('wrong')">wrong</button>
<button onclick="send('reset')">reset</button>
</p>
<script>
function send(ev) {
  fetch('/event', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify({event: ev})})
    .then(() => { document.getElementById('frame').src = '/frame?' + Date.now(); });
}
setInterval(() => { document.getElementById('frame').src = '/frame?' + Date.now(); }, 500);
</script>
</body>
</html>`

// Web keeps frames in memory and serves the last flushed one over HTTP.
type Web struct {
	*Memory
	app  *fiber.App
	addr string
	// OnEvent handles POST /event; the name is one of the preview buttons.
	OnEvent func(name string) error
	// State returns what GET /state and POST /event answer with.
	State func() any
}

type eventRequest struct {
	Event string `json:"event"`
}

func NewWeb(addr string) *Web {
	w := &Web{Memory: NewMemory(), addr: addr}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/", w.indexHandler)
	app.Get("/frame", w.serveFrame)
	app.Get("/state", w.serveState)
	app.Post("/event", w.postEvent)
	w.app = app
	return w
}

// App exposes the fiber app, mostly for app.Test.
func (w *Web) App() *fiber.App { return w.app }

func (w *Web) Listen() error {
	log.Println("Starting Fiber server on", w.addr)
	return w.app.Listen(w.addr)
}

func (w *Web) Shutdown() error { return w.app.Shutdown() }

func (w *Web) indexHandler(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(indexPage)
}

func (w *Web) serveFrame(c *fiber.Ctx) error {
	frame := w.Frame()
	if frame == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("No frame available")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to encode image")
	}
	c.Set("Content-Type", "image/png")
	c.Set("Content-Length", strconv.Itoa(buf.Len()))
	return c.Send(buf.Bytes())
}

func (w *Web) serveState(c *fiber.Ctx) error {
	if w.State == nil {
		return c.Status(fiber.StatusNotFound).SendString("No state available")
	}
	return c.JSON(w.State())
}

func (w *Web) postEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid JSON")
	}
	if w.OnEvent == nil {
		return c.Status(fiber.StatusNotImplemented).SendString("Events not accepted")
	}
	if err := w.OnEvent(req.Event); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	return w.serveState(c)
}
