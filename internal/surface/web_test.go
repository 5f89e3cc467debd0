package surface

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestServeFrame(t *testing.T) {
	w := NewWeb(":0")

	resp, err := w.App().Test(httptest.NewRequest("GET", "/frame", nil))
	if err != nil {
		t.Fatalf("GET /frame: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status before first frame = %d; want 503", resp.StatusCode)
	}

	red := color.RGBA{255, 0, 0, 255}
	h, _ := w.Upload(solid(8, 6, red))
	w.SetBackground(h)
	w.ClearArea(image.Rect(0, 0, 8, 6))
	w.Flush()

	resp, err = w.App().Test(httptest.NewRequest("GET", "/frame", nil))
	if err != nil {
		t.Fatalf("GET /frame: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d; want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("frame bounds = %v", img.Bounds())
	}
	if r, g, b, _ := img.At(4, 3).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("frame pixel = %v", img.At(4, 3))
	}
}

func TestIndexPage(t *testing.T) {
	w := NewWeb(":0")
	resp, err := w.App().Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `src="/frame"`) {
		t.Error("index page does not show the frame")
	}
}

func TestPostEvent(t *testing.T) {
	w := NewWeb(":0")
	var got []string
	w.OnEvent = func(name string) error {
		if name == "bogus" {
			return errors.New("unknown event")
		}
		got = append(got, name)
		return nil
	}
	w.State = func() any { return map[string]int{"events": len(got)} }

	post := func(body string) int {
		req := httptest.NewRequest("POST", "/event", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := w.App().Test(req)
		if err != nil {
			t.Fatalf("POST /event: %v", err)
		}
		return resp.StatusCode
	}

	if code := post(`{"event":"key"}`); code != fiber.StatusOK {
		t.Errorf("key event status = %d", code)
	}
	if code := post(`{"event":"bogus"}`); code != fiber.StatusBadRequest {
		t.Errorf("bogus event status = %d; want 400", code)
	}
	if code := post(`{"event":`); code != fiber.StatusBadRequest {
		t.Errorf("broken json status = %d; want 400", code)
	}
	if len(got) != 1 || got[0] != "key" {
		t.Errorf("events = %v; want [key]", got)
	}

	resp, err := w.App().Test(httptest.NewRequest("GET", "/state", nil))
	if err != nil {
		t.Fatalf("GET /state: %v", err)
	}
	var state map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state["events"] != 1 {
		t.Errorf("state = %v", state)
	}
}

func TestPostEventWithoutHandler(t *testing.T) {
	w := NewWeb(":0")
	req := httptest.NewRequest("POST", "/event", strings.NewReader(`{"event":"key"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.App().Test(req)
	if err != nil {
		t.Fatalf("POST /event: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotImplemented {
		t.Errorf("status = %d; want 501", resp.StatusCode)
	}
}
