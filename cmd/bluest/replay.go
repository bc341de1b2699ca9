package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/moffa90/go-bluest/feature"
	"github.com/moffa90/go-bluest/samplelog"
)

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	var filter samplelog.Filter
	fs.StringVar(&filter.Feature, "feature", "", "only print this feature")
	fs.StringVar(&filter.Session, "session", "", "only print this recording session")
	fs.StringVar(&filter.Node, "node", "", "only print this node")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: bluest replay [flags] file.cbor")
	}

	r, err := samplelog.Open(fs.Arg(0), filter)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		rec, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(describe(rec))
	}
}

func describe(rec samplelog.Record) string {
	s := rec.Sample()
	out := fmt.Sprintf("%s %s %s t=%d", rec.Time.Format("15:04:05.000"), rec.Node, rec.Feature, rec.Timestamp)
	if rec.Feature == feature.AccelerationEventName {
		out += " " + feature.EventToString(feature.AccelerationEventOf(s))
		if steps := feature.PedometerSteps(s); steps >= 0 && feature.HasAccelerationEvent(s, feature.Pedometer) {
			out += fmt.Sprintf(" steps=%d", steps)
		}
		return out
	}
	for i, f := range s.Fields() {
		v, _ := s.Value(i)
		out += fmt.Sprintf(" %s=%g%s", f.Name, v, f.Unit)
	}
	return out
}
