package main

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/xerrors"
)

// writeStats registers the collectors in a fresh registry and writes their
// current values in the text exposition format.
func writeStats(out io.Writer, collectors []prometheus.Collector) error {
	registry := prometheus.NewRegistry()

	for _, c := range collectors {
		err := registry.Register(c)
		if err != nil {
			return xerrors.Errorf("couldn't register collector: %v", err)
		}
	}

	families, err := registry.Gather()
	if err != nil {
		return xerrors.Errorf("couldn't gather metrics: %v", err)
	}

	for _, family := range families {
		_, err = expfmt.MetricFamilyToText(out, family)
		if err != nil {
			return xerrors.Errorf("couldn't write metrics: %v", err)
		}
	}

	return nil
}
