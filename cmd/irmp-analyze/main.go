// Command irmp-analyze is the offline waveform analyzer CLI spec.md
// §6 calls out as "an external tool, not part of the core contract":
// it reads a whitespace-encoded waveform text file (or stdin) and
// prints every frame the decoder core latches while replaying it.
// Flag handling follows the teacher's atest.go pattern:
// github.com/spf13/pflag with a custom Usage.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/wk2k/irmp-go/internal/irmp"
	"github.com/wk2k/irmp-go/internal/logging"
	"github.com/wk2k/irmp-go/internal/ticksource"
	"github.com/wk2k/irmp-go/internal/waveform"
)

func main() {
	sampleRate := pflag.IntP("sample-rate", "r", 10000, "Sample rate in Hz (F_INTERRUPTS).")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug-level logging.")
	help := pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "irmp-analyze: decode a waveform text capture offline.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: irmp-analyze [flags] [waveform-file ...]\n")
		fmt.Fprintf(os.Stderr, "       cat capture.txt | irmp-analyze [flags]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	level := logging.LevelInfo
	if *verbose {
		level = logging.LevelDebug
	}
	log := logging.New(os.Stderr, level)

	files := pflag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	exitCode := 0
	for _, name := range files {
		if err := analyzeFile(name, *sampleRate, log); err != nil {
			log.Error("analyze failed", "file", name, "err", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func analyzeFile(name string, sampleRate int, log *logging.Logger) error {
	var f *os.File
	if name == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(name)
		if err != nil {
			return fmt.Errorf("open %q: %w", name, err)
		}
		defer f.Close()
	}

	samples, err := waveform.Parse(f)
	if err != nil {
		return fmt.Errorf("parse waveform: %w", err)
	}

	cfg := irmp.DefaultConfig()
	cfg.FInterrupts = sampleRate
	decoder := irmp.NewDecoder(cfg)
	decoder.Init()

	frameCount := 0
	sink := func(level bool) bool {
		latched := decoder.Tick(level)
		if latched {
			var frame irmp.Frame
			if decoder.GetData(&frame) {
				frameCount++
				printFrame(name, frame)
			}
		}
		return latched
	}

	r := ticksource.NewReplay(samples, sink)
	r.Run()

	log.Info("analysis complete", "file", name, "ticks", len(samples), "frames", frameCount)
	return nil
}

func printFrame(source string, frame irmp.Frame) {
	rep := ""
	if frame.Flags&irmp.FlagRepetition != 0 {
		rep = " REPETITION"
	}
	crc := ""
	if frame.Flags&irmp.FlagCRCError != 0 {
		crc = " CRC_ERROR"
	}
	fmt.Printf("%s: %-10s addr=0x%04X cmd=0x%04X%s%s\n", source, frame.Protocol.Name(), frame.Address, frame.Command, rep, crc)
}
