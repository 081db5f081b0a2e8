// This file is part of Beamrace.
//
// Beamrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Beamrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Beamrace.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/digest"
	"github.com/beamrace/beamrace/environment"
	"github.com/beamrace/beamrace/govern"
	"github.com/beamrace/beamrace/gui"
	"github.com/beamrace/beamrace/gui/fbmonitor"
	"github.com/beamrace/beamrace/gui/sdlmonitor"
	"github.com/beamrace/beamrace/gui/termmonitor"
	"github.com/beamrace/beamrace/hardware"
	"github.com/beamrace/beamrace/hardware/clocks"
	"github.com/beamrace/beamrace/hardware/scheduler"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/logger"
	"github.com/beamrace/beamrace/modalflag"
	"github.com/beamrace/beamrace/monitor"
	"github.com/beamrace/beamrace/prefs"
	"github.com/beamrace/beamrace/sources"
	"github.com/beamrace/beamrace/sources/convert"
	"github.com/beamrace/beamrace/sources/picture"
	"github.com/beamrace/beamrace/sources/raw"
	"github.com/beamrace/beamrace/statsview"
	"github.com/beamrace/beamrace/version"
	"github.com/beamrace/beamrace/wavwriter"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode handles the
	// interrupt signal itself, so that it can end the run gracefully.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all). It
	// MUST ONLY by called as part of a larger loop from the main thread.
	Service()
}

// communication between the main() function and the launch() function. this is
// required because many gui solutions (notably SDL) require window event
// handling (including creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error

	// functions to be run on the main thread. used for requests to the gui
	service chan func()
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
		service:       make(chan func(), 1),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. functions to run on the main thread
	//  5. anything in the Service() function of the most recently created GUI
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// the creator returns a typed nil on error. an interface
				// holding a typed nil is not equal to nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		case f := <-sync.service:
			f()

		default:
			if gui != nil {
				gui.Service()
			} else {
				time.Sleep(time.Millisecond)
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubMode("RUN", "run the board for a number of frames and report on the signal")
	md.AddSubMode("VIEW", "run the board and show the signal")
	md.AddSubMode("CONVERT", "convert an image to a raw frame file")
	md.AddSubMode("PROFILES", "list the timing profiles")
	md.AddSubMode("SOURCES", "list the frame sources")
	md.AddSubMode("VERSION", "print the version of the program")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "VIEW":
		err = view(md, sync)

	case "CONVERT":
		err = convertImage(md)

	case "PROFILES":
		err = listProfiles(md)

	case "SOURCES":
		err = listSources(md)

	case "VERSION":
		fmt.Fprintln(md.Output, version.Get())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags shared by the modes that run a board
type boardFlags struct {
	profile *string
	source  *string
	prefs   *string
	log     *bool
}

func addBoardFlags(md *modalflag.Modes) boardFlags {
	return boardFlags{
		profile: md.AddString("profile", timing.Default.ID, "timing profile (see PROFILES mode)"),
		source:  md.AddString("source", "bars", "frame source (see SOURCES mode)"),
		prefs:   md.AddString("prefs", "", "hardware preferences, eg. \"hardware.interruptlatency::40; hardware.startskew::2\""),
		log:     md.AddBool("log", false, "echo log to stdout"),
	}
}

// create and boot a board
func newBoard(md *modalflag.Modes, fl boardFlags, opts sources.Options) (*hardware.Board, *environment.Environment, scheduler.FrameSource, error) {
	if *fl.log {
		logger.SetEcho(md.Output, false)
	} else {
		logger.SetEcho(nil, false)
	}

	p, err := timing.Lookup(*fl.profile)
	if err != nil {
		return nil, nil, nil, err
	}

	// preferences on the command line are applied when the preferences are
	// created by the environment
	if *fl.prefs != "" {
		prefs.PushCommandLineStack(*fl.prefs)
	}
	env, err := environment.NewEnvironment(environment.MainSimulation, nil)
	if *fl.prefs != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "beamrace", "unused preferences: %s", unused)
		}
	}
	if err != nil {
		return nil, nil, nil, err
	}

	src, err := sources.OpenWithOptions(*fl.source, p.Width, p.Height, opts)
	if err != nil {
		return nil, nil, nil, err
	}

	b, err := hardware.NewBoard(env, p, clocks.NewPLL(p.ClockHz), src)
	if err != nil {
		_ = sources.Close(src)
		return nil, nil, nil, err
	}

	if err := b.Boot(); err != nil {
		_ = sources.Close(src)
		return nil, nil, nil, err
	}

	return b, env, src, nil
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	fl := addBoardFlags(md)
	frames := md.AddInt("frames", 10, "number of frames to run")
	wav := md.AddString("wav", "", "record the signal to a wav file")
	viz := md.AddString("memviz", "", "write a graph of the board bindings in dot format")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server on %s", statsview.Address))
	cpuProfile := md.AddString("cpuprofile", "", "write a cpu profile")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		stop := statsview.Launch(md.Output)
		defer stop()
	}

	b, env, src, err := newBoard(md, fl, sources.DefaultOptions)
	if err != nil {
		return err
	}
	defer sources.Close(src)

	if *viz != "" {
		f, err := os.Create(*viz)
		if err != nil {
			return err
		}
		memviz.Map(f, b.Bindings)
		if err := f.Close(); err != nil {
			return err
		}
	}

	mon := monitor.NewMonitor(env, b.Profile, b.ClockHz())
	video := digest.NewVideo()
	mon.AddRenderer(video)
	b.AddSink(mon)

	sig := digest.NewSignal()
	b.AddSink(sig)

	if *wav != "" {
		ww, err := wavwriter.New(*wav, int(b.ClockHz()))
		if err != nil {
			return err
		}
		b.AddSink(ww)
		defer func() {
			if err := ww.EndCapture(); err != nil {
				fmt.Fprintf(md.Output, "* error ending wav capture: %v\n", err)
			}
		}()
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	// end the run at the end of the current frame on ctrl-c
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	err = b.RunForFrameCount(ctx, *frames, nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := mon.End(); err != nil {
		return err
	}
	sig.Flush()

	m := mon.Measurements()

	fmt.Fprintf(md.Output, "%s\n", b)
	fmt.Fprintf(md.Output, "%d frames in %.2fs (%.2f fps)\n", b.Frame(), elapsed.Seconds(), float64(b.Frame())/elapsed.Seconds())
	fmt.Fprintln(md.Output)
	fmt.Fprintln(md.Output, m)
	fmt.Fprintln(md.Output)
	fmt.Fprintln(md.Output, b.Scheduler.Report())
	fmt.Fprintf(md.Output, "dma violations: %d, streamer violations: %d\n", b.Violations(), b.Streamer.Violations)
	fmt.Fprintf(md.Output, "video digest: %s (%d frames)\n", video.Hash(), video.Frames())
	fmt.Fprintf(md.Output, "signal digest: %s\n", sig.Hash())

	diff := m.Compare(b.Profile)
	if len(diff) > 0 {
		fmt.Fprintln(md.Output)
		for _, d := range diff {
			fmt.Fprintf(md.Output, "* %s\n", d)
		}
		return curated.Errorf("signal does not match %s", b.Profile.ID)
	}

	fmt.Fprintf(md.Output, "signal matches %s\n", b.Profile.ID)

	return nil
}

func view(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	fl := addBoardFlags(md)
	display := md.AddString("display", "sdl", "display type: sdl, term, fb")
	scale := md.AddFloat64("scale", sdlmonitor.DefaultScale, "size of each frame buffer pixel (sdl only)")
	fpsCap := md.AddBool("fpscap", true, "limit frames to the rate of the timing profile")
	watch := md.AddBool("watch", false, "reload picture sources when the file changes")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	// log output would be drawn over by the terminal display
	if strings.EqualFold(*display, "term") && *fl.log {
		return fmt.Errorf("-log cannot be used with the term display")
	}

	opts := sources.DefaultOptions
	opts.Watch = *watch

	b, env, src, err := newBoard(md, fl, opts)
	if err != nil {
		return err
	}
	defer sources.Close(src)

	events := make(chan gui.Event, 16)

	// create gui
	sync.creator <- func() (GuiCreator, error) {
		title := fmt.Sprintf("%s %s", version.ApplicationName, b.Profile.ID)
		switch strings.ToLower(*display) {
		case "sdl":
			scr, err := sdlmonitor.NewSdlMonitor(title, b.Profile.Width, b.Profile.Height, events)
			if err != nil {
				return nil, err
			}
			if err := scr.SetFeature(gui.ReqSetScale, float32(*scale)); err != nil {
				return nil, err
			}
			return scr, nil
		case "term":
			scr, err := termmonitor.NewTermMonitor(os.Stdout, b.Profile.Width, b.Profile.Height, events)
			if err != nil {
				return nil, err
			}
			_ = scr.SetFeature(gui.ReqSetTitle, title)
			return scr, nil
		case "fb":
			return fbmonitor.NewFbMonitor(fbmonitor.DefaultDevice, b.Profile.Width, b.Profile.Height)
		}
		return nil, fmt.Errorf("unknown display (%s)", *display)
	}

	// wait for creator result
	var scr gui.Display
	select {
	case g := <-sync.creation:
		scr = g.(gui.Display)
	case err := <-sync.creationError:
		return err
	}

	mon := monitor.NewMonitor(env, b.Profile, b.ClockHz())
	mon.AddRenderer(scr)

	// the limiter is added after the display so that the frame is shown
	// before the simulation waits
	lmtr := monitor.NewLimiter(b.Profile.FrameRate())
	lmtr.SetLimit(*fpsCap)
	mon.AddRenderer(lmtr)

	b.AddSink(mon)

	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state := govern.Running
	lines := 0
	statusFrames := int(b.Profile.FrameRate())

	err = b.Run(ctx, func() (govern.State, error) {
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case gui.EventQuit:
					return govern.Ending, nil
				case gui.EventKeyboard:
					if !ev.Down {
						break // switch
					}
					switch strings.ToLower(ev.Key) {
					case "space", " ", "p":
						if state == govern.Running {
							state = govern.Paused
						} else {
							state = govern.Running
						}
					case "f":
						*fpsCap = !*fpsCap
						lmtr.SetLimit(*fpsCap)
					}
				}
				continue // for loop
			default:
			}
			break // for loop
		}

		if state == govern.Paused {
			time.Sleep(10 * time.Millisecond)
			return state, nil
		}

		// status once a second of signal time
		lines++
		if lines >= b.Profile.Vertical.Total*statusFrames {
			lines = 0
			status := fmt.Sprintf("%.1f fps", lmtr.Actual())
			if n := mon.Measurements().BlankingViolations; n > 0 {
				status = fmt.Sprintf("%s, %d blanking violations", status, n)
			}
			select {
			case sync.service <- func() { _ = scr.SetFeature(gui.ReqSetStatus, status) }:
			default:
			}
		}

		return state, nil
	})

	if endErr := mon.End(); err == nil {
		err = endErr
	}

	return err
}

func convertImage(md *modalflag.Modes) error {
	md.NewMode()

	profile := md.AddString("profile", timing.Default.ID, "timing profile giving the frame buffer size")
	preview := md.AddString("png", "", "also write the converted frame as a png")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("input image and output file required for %s mode", md)
	}

	prof, err := timing.Lookup(*profile)
	if err != nil {
		return err
	}

	levels, err := picture.Load(md.GetArg(0), prof.Width, prof.Height)
	if err != nil {
		return err
	}

	f, err := os.Create(md.GetArg(1))
	if err != nil {
		return err
	}
	if err := raw.Write(f, levels); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if *preview != "" {
		f, err := os.Create(*preview)
		if err != nil {
			return err
		}
		if err := png.Encode(f, convert.Image(levels, prof.Width, prof.Height)); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	fmt.Fprintf(md.Output, "%s: %d bytes (%dx%d)\n", md.GetArg(1), len(levels), prof.Width, prof.Height)

	return nil
}

func listProfiles(md *modalflag.Modes) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for _, id := range timing.List() {
		prof, err := timing.Lookup(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "%s\n", prof)
		fmt.Fprintf(md.Output, "  clock %.3fMHz, line %.3fkHz, %d ticks per pixel, %d lines per row\n",
			prof.ClockHz/1e6, prof.LineRate()/1000, prof.PixelClocks, prof.RowLines())
		fmt.Fprintf(md.Output, "  horizontal %s\n", prof.Horizontal)
		fmt.Fprintf(md.Output, "  vertical   %s\n", prof.Vertical)
	}

	return nil
}

func listSources(md *modalflag.Modes) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for _, k := range sources.List() {
		fmt.Fprintln(md.Output, sources.Help(k))
	}

	return nil
}
