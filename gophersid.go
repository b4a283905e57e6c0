// This file is part of Gophersid.
//
// Gophersid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophersid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophersid.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jetsetilly/gophersid/environment"
	"github.com/jetsetilly/gophersid/extin"
	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/snapshot"
	"github.com/jetsetilly/gophersid/logger"
	"github.com/jetsetilly/gophersid/modalflag"
	"github.com/jetsetilly/gophersid/otoaudio"
	"github.com/jetsetilly/gophersid/paths"
	"github.com/jetsetilly/gophersid/performance"
	"github.com/jetsetilly/gophersid/player"
	"github.com/jetsetilly/gophersid/prefs"
	"github.com/jetsetilly/gophersid/psid"
	"github.com/jetsetilly/gophersid/render"
	"github.com/jetsetilly/gophersid/sdlaudio"
	"github.com/jetsetilly/gophersid/statsview"
	"github.com/jetsetilly/gophersid/terminal"
	"github.com/jetsetilly/gophersid/tracker"
	"github.com/jetsetilly/gophersid/wavwriter"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative
	// handler is more appropriate. for example, the PLAY mode provides a
	// handler that stops the audio device cleanly.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// audio output used by the PLAY mode
type audioSink interface {
	render.Sink
	Pause(set bool)
	IsPaused() bool
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

// #mainthread
func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is  through
	// the mainSync instance
	go launch(sync)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
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
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RENDER", "PLAY", "DUMP", "INFO", "PERFORMANCE")

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
	case "RENDER":
		err = renderMode(md)

	case "PLAY":
		err = playMode(md, sync)

	case "DUMP":
		err = dumpMode(md)

	case "INFO":
		err = infoMode(md)

	case "PERFORMANCE":
		err = performanceMode(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags common to all modes that play a tune
type tuneFlags struct {
	song      *int
	model     *string
	clock     *string
	extIn     *string
	prefs     *string
	log       *bool
	statsview *bool
}

func addTuneFlags(md *modalflag.Modes) *tuneFlags {
	tf := &tuneFlags{
		song:  md.AddInt("song", 0, "song to play (default is the start song of the tune)"),
		model: md.AddString("model", "", "force chip model: 6581, 8580"),
		clock: md.AddString("clock", "", "force clock standard: PAL, NTSC"),
		extIn: md.AddString("extin", "", "WAV or MP3 file to play into the EXT IN pin"),
		prefs: md.AddString("prefs", "", "preferences for this run only (eg. \"sid.filter::false; sid.voicemask::3\")"),
		log:   md.AddBool("log", false, "echo debugging log to stdout"),
	}

	if statsview.Available() {
		tf.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	return tf
}

// prepare a player for the tune named on the command line and start the
// song. the Parse() function of the modalflag.Modes instance must have been
// called
func (tf *tuneFlags) start(md *modalflag.Modes) (*player.Player, error) {
	// set debugging log echo
	if *tf.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if tf.statsview != nil && *tf.statsview {
		statsview.Launch(os.Stdout)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("PSID file required for %s mode", md)
	case 1:
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	if *tf.prefs != "" {
		prefs.PushCommandLineStack(*tf.prefs)
		defer prefs.PopCommandLineStack()
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return nil, err
	}

	tune, err := psid.Load(md.GetArg(0))
	if err != nil {
		return nil, err
	}

	plr, err := player.NewPlayer(env, tune)
	if err != nil {
		return nil, err
	}

	if *tf.model != "" {
		m, err := chipmodel.FromString(*tf.model)
		if err != nil {
			return nil, err
		}
		err = plr.SID().SetChipModel(m)
		if err != nil {
			return nil, err
		}
	}

	if *tf.clock != "" {
		s, err := clocks.FromString(*tf.clock)
		if err != nil {
			return nil, err
		}
		plr.SetStandard(s)
	}

	if *tf.extIn != "" {
		src, err := extin.Load(env, *tf.extIn)
		if err != nil {
			return nil, err
		}
		src.SetSampleRate(plr.SampleRate())
		plr.SetExtIn(src)
	}

	song := *tf.song
	if song == 0 {
		song = tune.StartSong
	}

	err = plr.Start(song)
	if err != nil {
		return nil, err
	}

	return plr, nil
}

func renderMode(md *modalflag.Modes) error {
	md.NewMode()

	tf := addTuneFlags(md)
	wav := md.AddString("wav", "", "output WAV file (default is a unique name in the current directory)")
	duration := md.AddDuration("duration", time.Minute, "length of the rendered audio")
	track := md.AddBool("tracker", false, "print the register history of the voices")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	plr, err := tf.start(md)
	if err != nil {
		return err
	}

	var tr *tracker.Tracker
	if *track {
		frames := int(duration.Seconds()*plr.Standard().FrameRate()) + 1
		tr = tracker.NewTracker(plr.Standard(), frames*3)
		plr.SetTracker(tr)
	}

	fn := *wav
	if fn == "" {
		fn = fmt.Sprintf("%s.wav", paths.UniqueFilename("render", plr.Tune().Name))
	}

	aw, err := wavwriter.New(fn, plr.SampleRate())
	if err != nil {
		return err
	}

	err = render.Run(plr, *duration, nil, aw)
	if err != nil {
		return err
	}

	if tr != nil {
		err = tr.Write(md.Output)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(md.Output, "! rendered %s to %s\n", *duration, fn)

	return nil
}

func playMode(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	tf := addTuneFlags(md)
	duration := md.AddDuration("duration", 0, "stop playing after duration (zero plays until quit)")
	output := md.AddString("audio", "SDL", "audio output: SDL, OTO")
	md.AdditionalHelp("keys: q quit, space pause, n/p next/previous song, 1-3 toggle voice, 4 toggle EXT IN, f toggle filter")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	plr, err := tf.start(md)
	if err != nil {
		return err
	}

	var aud audioSink
	switch strings.ToUpper(*output) {
	case "SDL":
		aud, err = sdlaudio.NewAudio(plr.SampleRate())
	case "OTO":
		aud, err = otoaudio.NewAudio(plr.SampleRate())
	default:
		err = fmt.Errorf("unknown audio output (%s)", *output)
	}
	if err != nil {
		return err
	}
	defer aud.EndMixing()

	// playback works without keyboard control
	var keys <-chan rune
	kb, err := terminal.NewKeyboard(md.Output)
	if err != nil {
		logger.Log(logger.Allow, "gophersid", err)
	} else {
		defer kb.Close()
		keys = kb.Keys()
	}

	// turn off fallback ctrl-c handling so that the audio device and the
	// terminal are restored before the program ends
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	limit := 0
	if *duration > 0 {
		limit = render.NumSamples(plr, *duration)
	}

	mask := uint8(0x0f)
	filter := true

	buf := make([]int16, render.BlockSize)
	samples := 0

	for {
		select {
		case <-intChan:
			return nil

		case k := <-keys:
			switch k {
			case 'q', 'Q':
				return nil
			case ' ':
				aud.Pause(!aud.IsPaused())
			case 'n', 'p':
				song := plr.Song() + 1
				if k == 'p' {
					song = plr.Song() - 1
				}
				if song >= 1 && song <= plr.Tune().Songs {
					err = plr.Start(song)
					if err != nil {
						return err
					}
					samples = 0
				}
			case '1', '2', '3', '4':
				mask ^= 1 << uint(k-'1')
				plr.SID().SetVoiceMask(mask)
			case 'f', 'F':
				filter = !filter
				plr.SID().EnableFilter(filter)
			}

		default:
		}

		if aud.IsPaused() {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		n := len(buf)
		if limit > 0 {
			if samples >= limit {
				return nil
			}
			if n > limit-samples {
				n = limit - samples
			}
		}

		err = plr.Render(buf[:n])
		if err != nil {
			return err
		}
		err = aud.SetAudio(buf[:n])
		if err != nil {
			return err
		}
		samples += n

		if kb != nil {
			kb.Status("song %d/%d  frame %6d  voices %04b  filter %v", plr.Song(), plr.Tune().Songs, plr.Frame(), mask, filter)
		}
	}
}

func dumpMode(md *modalflag.Modes) error {
	md.NewMode()

	tf := addTuneFlags(md)
	frames := md.AddInt("frames", 50, "number of frames to run")
	track := md.AddBool("tracker", false, "print the register history rather than a dump of every frame")
	snap := md.AddString("snapshot", "", "write a snapshot of the SID state to file after the last frame")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	plr, err := tf.start(md)
	if err != nil {
		return err
	}

	var tr *tracker.Tracker
	if *track {
		tr = tracker.NewTracker(plr.Standard(), *frames*3)
		plr.SetTracker(tr)
	}

	for i := 0; i < *frames; i++ {
		plr.RunFrame()

		if tr == nil {
			fmt.Fprintf(md.Output, "FRAME: %d (%d cycles in play routine)\n", plr.Frame(), plr.RoutineCycles())
			err = plr.SID().Dump(md.Output)
			if err != nil {
				return err
			}
		}
	}

	if tr != nil {
		err = tr.Write(md.Output)
		if err != nil {
			return err
		}
	}

	if *snap != "" {
		err = os.WriteFile(*snap, snapshot.Encode(plr.SID().ReadState()), 0o644)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "! snapshot written to %s\n", *snap)
	}

	return nil
}

func infoMode(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("PSID file required for %s mode", md)
	}

	for _, fn := range md.RemainingArgs() {
		tune, err := psid.Load(fn)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "%s\n%s", fn, tune.String())
	}

	return nil
}

func performanceMode(md *modalflag.Modes) error {
	md.NewMode()

	tf := addTuneFlags(md)
	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "NONE", "run performance check with profiling: comma separated CPU, MEM, TRACE or ALL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	plr, err := tf.start(md)
	if err != nil {
		return err
	}

	_, err = performance.Check(md.Output, prf, plr, *duration)
	return err
}
