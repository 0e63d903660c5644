package service

import (
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.opentelemetry.io/otel/metric/instrument/syncint64"
)

var (
	consultMeter     = global.MeterProvider().Meter("consult_meter")
	pinsCreated      syncint64.Counter
	enquiriesCreated syncint64.Counter
	detectionsRun    syncint64.Counter
	analysisRuns     syncint64.Counter
)

func init() {
	pc, err := consultMeter.SyncInt64().Counter(
		"consult.pins.created",
		instrument.WithUnit("1"),
		instrument.WithDescription("public pins submitted"),
	)
	if err != nil {
		panic(err)
	}
	pinsCreated = pc

	ec, err := consultMeter.SyncInt64().Counter(
		"consult.enquiries.created",
		instrument.WithUnit("1"),
		instrument.WithDescription("enquiries received"),
	)
	if err != nil {
		panic(err)
	}
	enquiriesCreated = ec

	dc, err := consultMeter.SyncInt64().Counter(
		"consult.detections.run",
		instrument.WithUnit("1"),
		instrument.WithDescription("stakeholder detections run"),
	)
	if err != nil {
		panic(err)
	}
	detectionsRun = dc

	ac, err := consultMeter.SyncInt64().Counter(
		"consult.analysis.runs",
		instrument.WithUnit("1"),
		instrument.WithDescription("feedback analysis runs"),
	)
	if err != nil {
		panic(err)
	}
	analysisRuns = ac
}
