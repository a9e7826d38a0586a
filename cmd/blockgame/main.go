package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/akmonengine/blockgame"
	"github.com/akmonengine/blockgame/actor"
	"github.com/akmonengine/blockgame/trail"
	"github.com/akmonengine/blockgame/transport/ws"
	"github.com/akmonengine/blockgame/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var (
		scenePath = flag.String("scene", "scenes/level1.lua", "Lua scene description")
		records   = flag.String("records", "records", "directory of the saved trails")
		listen    = flag.String("listen", "", "websocket address, e.g. :8080 (disabled when empty)")
		terminal  = flag.Bool("tui", true, "draw the world in the terminal")
		capacity  = flag.Int("history", 1024, "rewindable moves, zero or less keeps all of them")
		frame     = flag.Duration("frame", 33*time.Millisecond, "duration of one tick")
		logPath   = flag.String("log", "blockgame.log", "log file used while the terminal view is on")
	)
	flag.Parse()

	var out io.Writer = os.Stderr
	if *terminal {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "", log.LstdFlags)

	config := blockgame.DefaultConfig()
	config.HistoryCapacity = *capacity
	config.RecordsDir = *records

	world := blockgame.NewWorld(config, trail.NewFileStore(config.RecordsDir), logger)
	if err := world.Load(*scenePath); err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	var hub *ws.Hub
	if *listen != "" {
		hub = ws.NewHub(logger)
		defer hub.Close()

		http.HandleFunc("/ws", hub.HandleWS)
		go func() {
			logger.Printf("Server starting on %s", *listen)
			if err := http.ListenAndServe(*listen, nil); err != nil {
				logger.Printf("Server stopped: %v", err)
			}
		}()
	}

	var viewer *tui.Viewer
	events := make(chan tcell.Event, 64)
	if *terminal {
		v, err := tui.NewTerminalViewer()
		if err != nil {
			log.Fatalf("Failed to open terminal: %v", err)
		}
		viewer = v
		defer viewer.Close()
		go viewer.Events(events)
	}

	run(world, hub, viewer, events, *frame, logger)
}

// run steps the world once per frame until it asks to quit. Late frames are
// not skipped: the simulation slows down instead.
func run(world *blockgame.World, hub *ws.Hub, viewer *tui.Viewer, events <-chan tcell.Event, frame time.Duration, logger *log.Logger) {
	for !world.Quit() {
		start := time.Now()

	drain:
		for {
			select {
			case ev := <-events:
				if !viewer.HandleEvent(ev) {
					world.RequestQuit()
				}
			default:
				break drain
			}
		}

		var input actor.Input
		switch {
		case viewer != nil:
			input = viewer.Keys.Input()
		case hub != nil:
			input = hub.Input()
		}

		world.Step(input)

		snapshot := world.Snapshot()
		if hub != nil {
			if err := hub.Broadcast(snapshot); err != nil {
				logger.Printf("[WS] Broadcast failed: %v", err)
			}
		}
		if viewer != nil {
			viewer.Draw(snapshot)
		}

		if elapsed := time.Since(start); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
}
