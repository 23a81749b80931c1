package main

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ChartConfig is the normalized configuration in the schema the remote
// renderer expects: type, data block, options block.
type ChartConfig struct {
	Type    ChartType      `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options"`
}

type ChartData struct {
	Labels   []string                              `json:"labels"`
	Datasets []*orderedmap.OrderedMap[string, any] `json:"datasets"`
}

// valueLabelFormatter is evaluated by the renderer's datalabels plugin; it
// displays the gauge value as-is.
const valueLabelFormatter = "(value) => value"

// BuildChartConfig validates a ChartInput and normalizes it into the
// renderer's configuration schema. Pure: the input is never mutated and no
// I/O happens here.
func BuildChartConfig(in ChartInput) (*ChartConfig, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	datasets := make([]*orderedmap.OrderedMap[string, any], 0, len(in.Datasets))
	for _, ds := range in.Datasets {
		datasets = append(datasets, ds.record())
	}

	labels := in.Labels
	if labels == nil {
		labels = []string{}
	}

	options := make(map[string]any, len(in.Options)+2)
	for k, v := range in.Options {
		options[k] = v
	}

	if in.Title != "" {
		if _, exists := options["title"]; !exists {
			options["title"] = map[string]any{"display": true, "text": in.Title}
		}
	}

	if in.Type.isGauge() {
		ensureValueLabels(options)
	}

	return &ChartConfig{
		Type:    in.Type,
		Data:    ChartData{Labels: labels, Datasets: datasets},
		Options: options,
	}, nil
}

// record flattens a dataset into the output shape: declared fields first,
// then caller-supplied extra keys in their original order, then
// additionalConfig entries. Later writes win on key collision.
func (d Dataset) record() *orderedmap.OrderedMap[string, any] {
	rec := orderedmap.New[string, any]()
	rec.Set("label", d.Label)
	rec.Set("data", d.Data)
	if d.BackgroundColor != nil {
		rec.Set("backgroundColor", d.BackgroundColor)
	}
	if d.BorderColor != nil {
		rec.Set("borderColor", d.BorderColor)
	}
	if d.Extra != nil {
		for pair := d.Extra.Oldest(); pair != nil; pair = pair.Next() {
			rec.Set(pair.Key, pair.Value)
		}
	}
	if d.AdditionalConfig != nil {
		for pair := d.AdditionalConfig.Oldest(); pair != nil; pair = pair.Next() {
			rec.Set(pair.Key, pair.Value)
		}
	}
	return rec
}

// ensureValueLabels injects the datalabels plugin config gauge charts need
// to show their value. A caller-supplied datalabels entry is left alone, and
// a plugins entry that is not an object is passed through untouched.
func ensureValueLabels(options map[string]any) {
	var plugins map[string]any
	switch existing := options["plugins"].(type) {
	case nil:
		plugins = map[string]any{}
	case map[string]any:
		plugins = make(map[string]any, len(existing)+1)
		for k, v := range existing {
			plugins[k] = v
		}
	default:
		return
	}

	if _, exists := plugins["datalabels"]; !exists {
		plugins["datalabels"] = map[string]any{
			"display":   true,
			"formatter": valueLabelFormatter,
		}
	}
	options["plugins"] = plugins
}
