package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/moffa90/go-bluest/config"
	"github.com/moffa90/go-bluest/feature"
	"github.com/moffa90/go-bluest/samplelog"
)

// eventPrinter prints the samples and the event changes of the feature.
type eventPrinter struct {
	changed chan bool
}

func (p *eventPrinter) OnUpdate(f feature.Feature, _ *feature.Sample) {
	fmt.Println(f)
}

func (p *eventPrinter) OnDetectableEventChange(_ *feature.AccelerationEventFeature, e feature.DetectableEvent, enabled bool) {
	fmt.Printf("%s enabled: %t\n", e, enabled)
	select {
	case p.changed <- enabled:
	default:
	}
}

func runEvents(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	eventName := fs.String("event", "orientation", "event to detect: orientation, pedometer, single tap, double tap, free fall, wake up, tilt, multiple")
	record := fs.String("record", "", "CBOR file receiving the samples (default from config)")
	duration := fs.Duration("duration", 0, "stop after this duration (default until interrupted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	event, ok := feature.ParseDetectableEvent(*eventName)
	if !ok {
		return fmt.Errorf("unknown event %q", *eventName)
	}

	a, err := common.load()
	if err != nil {
		return err
	}
	if *record != "" {
		a.cfg.Record.Path = *record
	}
	if a.cfg.Console.Transport != config.TransportBLE {
		return errors.New("events need the ble transport")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	dev, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer dev.Close()

	f, ok := dev.Node().Feature(feature.AccelerationEventMask)
	if !ok {
		return fmt.Errorf("%s does not export %s", dev.Node().Name(), feature.AccelerationEventName)
	}
	acc := f.(*feature.AccelerationEventFeature)

	printer := &eventPrinter{changed: make(chan bool, 1)}
	acc.AddListener(printer)

	if a.cfg.Record.Path != "" {
		w, err := samplelog.Create(a.cfg.Record.Path, dev.Node().Name())
		if err != nil {
			return err
		}
		defer w.Close()
		acc.AddListener(w.Listener())
		a.logger.Info("recording", "path", a.cfg.Record.Path, "session", w.Session())
		defer func() {
			a.logger.Info("recorded", "samples", w.Count(), "error", w.Err())
		}()
	}

	if !acc.DetectEvent(event, true) {
		return errors.New("cannot send the command to the node")
	}
	select {
	case enabled := <-printer.changed:
		if !enabled {
			return fmt.Errorf("the node refused to detect %s", event)
		}
	case <-time.After(5 * time.Second):
		return errors.New("no answer to the command")
	case <-ctx.Done():
		return nil
	}

	<-ctx.Done()
	acc.DetectEvent(event, false)
	return nil
}
