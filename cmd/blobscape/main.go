package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blobscape/audio"
	"github.com/lixenwraith/blobscape/engine"
	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/state"
	"github.com/lixenwraith/blobscape/terminal"
)

var (
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/blobscape.log")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	stateFlag     = flag.String("state", "", "Share token to restore (overrides BLOBSCAPE_STATE)")
	stateFileFlag = flag.String("state-file", "", "Restore from and persist to this file")
	sourceFlag    = flag.String("source", "", "Audio source: sine:<hz>, noise[:seed], or a .wav path")
	muteFlag      = flag.Bool("mute", false, "Analyse audio without playing it")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	token, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	// Printed after the screen is released so the token survives the alternate screen
	if token != "" {
		fmt.Println(token)
	}
}

// run owns the screen for the session and returns the share token to print on exit
func run() (string, error) {
	st, sink := loadState()

	audioCfg := audio.LoadConfig()
	if *muteFlag {
		audioCfg.Output = false
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return "", fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return "", fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	defer terminal.Recover(screen, "BLOBSCAPE")

	viewer := terminal.NewViewer(screen, terminal.ParseColorMode(*colorModeFlag))
	w, h := viewer.PixelSize()

	eng := engine.New(st, engine.Options{Audio: audioCfg, Sink: sink, Width: w, Height: h})
	defer eng.Close()
	// A panic in the event poller exits without running the defers above
	terminal.OnCrash(eng.Close)

	if audioCfg.Output {
		if err := eng.StartAudio(); err != nil {
			log.Printf("Audio output failed: %v (continuing headless)", err)
		}
	}

	events := make(chan tcell.Event, parameter.CommandQueueSize)
	terminal.Go(screen, "EVENT POLLER", func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	spectrum := make([]float64, 0, parameter.AnalyserBinCount)
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				w, h := viewer.PixelSize()
				eng.Submit(engine.Resize{W: w, H: h})

			case *tcell.EventKey:
				// Key edits are relative to the state of the last frame
				cmd, action := terminal.MapKey(ev, eng.State(), eng.PlayState())
				switch action {
				case terminal.ActionQuit:
					if *stateFileFlag != "" {
						return "", nil
					}
					return eng.Token(), nil
				case terminal.ActionToggleStatus:
					w, h := viewer.ToggleStatus()
					eng.Submit(engine.Resize{W: w, H: h})
				case terminal.ActionShowToken:
					viewer.ShowToken(eng.Token())
				}
				if cmd != nil {
					viewer.ShowToken("")
					eng.Submit(cmd)
				}
			}

		case now := <-frameTicker.C:
			eng.Frame(now)
			spectrum = eng.Spectrum(spectrum)
			viewer.Present(eng.Image(), eng.Registry().Snapshot(), spectrum)
		}
	}
}

// loadState layers defaults, environment, a restored token and the source flag
// A file sink is returned when -state-file is set
func loadState() (*state.State, state.Sink) {
	st := state.LoadEnv()

	token := *stateFlag
	if token == "" {
		token = os.Getenv("BLOBSCAPE_STATE")
	}

	var sink state.Sink
	if path := *stateFileFlag; path != "" {
		sink = state.FileSink(path)
		if token == "" {
			saved, err := state.ReadFile(path)
			if err != nil {
				log.Printf("WARNING: %v", err)
			}
			token = saved
		}
	}

	st = state.Restore(st, token)

	if *sourceFlag != "" {
		if err := st.Set("audioSource", *sourceFlag); err != nil {
			log.Printf("Ignoring -source: %v", err)
		}
	}
	return st, sink
}
