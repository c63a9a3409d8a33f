// Command cardiomon runs the Pan-Tompkins QRS detector against a
// synthetic or live sample stream, logging confirmed beats and optionally
// broadcasting live results over the network.
//
// Flag wiring follows the teacher's cmd/direwolf/main.go (pflag long/short
// pairs, a usage banner), without the cgo baggage.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	core "github.com/cardiomon/cardiomon/core"
	"github.com/cardiomon/cardiomon/internal/acquire"
	"github.com/cardiomon/cardiomon/internal/console"
	"github.com/cardiomon/cardiomon/internal/eventlog"
	"github.com/cardiomon/cardiomon/internal/feed"
)

func main() {
	configFile := pflag.StringP("config-file", "c", "", "Tunables override file (YAML). Empty uses spec defaults.")
	scenarioFile := pflag.StringP("scenario", "s", "", "Scenario recipe file (YAML). Empty uses a built-in periodic-impulse scenario.")
	logDir := pflag.StringP("log-dir", "l", "", "Directory for daily-rotating QRS event CSV logs. Empty disables event logging.")
	feedPort := pflag.IntP("feed-port", "f", 0, "TCP port for the live JSON result feed. 0 disables the feed.")
	announce := pflag.BoolP("announce", "m", false, "Advertise the live feed via mDNS/DNS-SD.")
	debug := pflag.BoolP("debug", "d", false, "Enable debug-level logging.")
	pflag.Parse()

	console.SetLevel(*debug)

	cfg, err := core.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var sc acquire.Scenario
	if *scenarioFile != "" {
		sc, err = acquire.LoadScenario(*scenarioFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		sc = acquire.Scenario{
			Kind:    acquire.PeriodicImpulses,
			Samples: 3000,
			Start:   core.Warmup,
		}
	}

	samples := sc.Generate(cfg.SamplingFrequency)

	elog, err := eventlog.Open(*logDir, eventlog.DefaultPattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer elog.Close()

	var srv *feed.Server
	if *feedPort != 0 {
		srv, err = feed.Listen(*feedPort)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer srv.Close()
		go srv.Serve()
		if *announce {
			feed.Announce("cardiomon", srv.Port())
		}
	}

	console.Log(console.Info, "starting detector", "samples", len(samples), "sampling_hz", cfg.SamplingFrequency)

	detector := core.NewDetector(cfg)
	ring := &acquire.Ring{}
	done := make(chan struct{})

	go acquire.PlaySynthetic(ring, samples, cfg.SamplingFrequency, done)

	ring.Run(detector, done, func(r core.Result) {
		if srv != nil {
			srv.Publish(r)
		}
		if r.IsQRS {
			console.Log(console.Debug, "QRS detected", "sample", r.SampleIndex, "bpm", r.BPM())
			if err := elog.Write(eventlog.Event{
				SampleIndex: r.SampleIndex,
				Time:        time.Now(),
				BPM:         r.BPM(),
				RRAverage:   r.RRAverage,
				Evaluation:  r.Evaluation,
			}); err != nil {
				console.Log(console.Error, "event log write failed", "err", err)
			}
		}
	})

	console.Log(console.Info, "detector finished")
}
