package main

import (
	"github.com/prometheus/common/expfmt"
)

// dumpMetrics writes the collected metrics in the prometheus text format, if metrics are enabled.
func (a *app) dumpMetrics() error {
	if a.registry == nil {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return err
	}

	section(a.out, "Metrics")
	for _, family := range families {
		if _, err = expfmt.MetricFamilyToText(a.out, family); err != nil {
			return err
		}
	}

	return nil
}
