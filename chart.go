package main

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type ChartType string

const (
	ChartTypeBar         ChartType = "bar"
	ChartTypeLine        ChartType = "line"
	ChartTypePie         ChartType = "pie"
	ChartTypeDoughnut    ChartType = "doughnut"
	ChartTypeRadar       ChartType = "radar"
	ChartTypePolarArea   ChartType = "polarArea"
	ChartTypeScatter     ChartType = "scatter"
	ChartTypeBubble      ChartType = "bubble"
	ChartTypeRadialGauge ChartType = "radialGauge"
	ChartTypeSpeedometer ChartType = "speedometer"
)

var chartTypes = []ChartType{
	ChartTypeBar, ChartTypeLine, ChartTypePie, ChartTypeDoughnut,
	ChartTypeRadar, ChartTypePolarArea, ChartTypeScatter, ChartTypeBubble,
	ChartTypeRadialGauge, ChartTypeSpeedometer,
}

func (t ChartType) valid() bool {
	for _, known := range chartTypes {
		if t == known {
			return true
		}
	}
	return false
}

// isGauge reports whether the chart plots a single value on a dial.
func (t ChartType) isGauge() bool {
	return t == ChartTypeRadialGauge || t == ChartTypeSpeedometer
}

func (t *ChartType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ct := ChartType(s)
	if !ct.valid() {
		names := make([]string, len(chartTypes))
		for i, known := range chartTypes {
			names[i] = string(known)
		}
		return fmt.Errorf("unknown chart type %q (must be one of: %s)", s, strings.Join(names, ", "))
	}
	*t = ct
	return nil
}

// Dataset is one named series of values. Beyond the declared fields, any
// extra JSON keys supplied by the caller are captured in order and merged
// verbatim into the output record, as is everything in additionalConfig.
type Dataset struct {
	Label            string                              `json:"label,omitempty" jsonschema:"description=Label for the data series (e.g. 'Revenue', 'Units Sold')"`
	Data             []any                               `json:"data" jsonschema:"description=Data points: plain numbers for most chart types, [x,y] pairs for scatter, [x,y,r] for bubble,minItems=1"`
	BackgroundColor  any                                 `json:"backgroundColor,omitempty" jsonschema:"description=Fill color: a single color string or a list of colors"`
	BorderColor      any                                 `json:"borderColor,omitempty" jsonschema:"description=Stroke color: a single color string or a list of colors"`
	AdditionalConfig *orderedmap.OrderedMap[string, any] `json:"additionalConfig,omitempty" jsonschema:"description=Extra renderer-specific dataset fields merged verbatim into the output"`
	Extra            *orderedmap.OrderedMap[string, any] `json:"-"`
}

func (d *Dataset) UnmarshalJSON(b []byte) error {
	fields := orderedmap.New[string, any]()
	if err := json.Unmarshal(b, fields); err != nil {
		return err
	}
	// Nested objects inside the ordered map come back as plain maps, which
	// would lose the caller's key order for additionalConfig. Keep the raw
	// bytes per key so it can be re-decoded order-preserving below.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case "label":
			s, ok := pair.Value.(string)
			if !ok {
				return fmt.Errorf("dataset label must be a string")
			}
			d.Label = s
		case "data":
			arr, ok := pair.Value.([]any)
			if !ok {
				return fmt.Errorf("dataset data must be an array")
			}
			d.Data = arr
		case "backgroundColor":
			d.BackgroundColor = pair.Value
		case "borderColor":
			d.BorderColor = pair.Value
		case "additionalConfig":
			if pair.Value == nil {
				continue
			}
			if _, ok := pair.Value.(map[string]any); !ok {
				return fmt.Errorf("dataset additionalConfig must be an object")
			}
			m := orderedmap.New[string, any]()
			if err := json.Unmarshal(raw["additionalConfig"], m); err != nil {
				return fmt.Errorf("dataset additionalConfig must be an object")
			}
			d.AdditionalConfig = m
		default:
			if d.Extra == nil {
				d.Extra = orderedmap.New[string, any]()
			}
			d.Extra.Set(pair.Key, pair.Value)
		}
	}
	return nil
}

// ChartInput is the simplified, agent-friendly chart description accepted
// by the strict tool before normalization into the renderer's schema.
type ChartInput struct {
	Type     ChartType      `json:"type" jsonschema:"description=Chart type: bar, line, pie, doughnut, radar, polarArea, scatter, bubble, radialGauge or speedometer"`
	Datasets []Dataset      `json:"datasets" jsonschema:"description=Datasets to plot,minItems=1"`
	Labels   []string       `json:"labels,omitempty" jsonschema:"description=Labels for the data points (e.g. x-axis categories)"`
	Title    string         `json:"title,omitempty" jsonschema:"description=Chart title (e.g. 'Q1 Sales Report')"`
	Options  map[string]any `json:"options,omitempty" jsonschema:"description=Extra Chart.js options merged into the configuration"`
}

func (in ChartInput) Validate() error {
	if !in.Type.valid() {
		return &ValidationError{Dataset: -1, Reason: "missing or unknown chart type"}
	}
	if len(in.Datasets) == 0 {
		return &ValidationError{Dataset: -1, Reason: "datasets cannot be empty"}
	}
	for i, ds := range in.Datasets {
		if err := ds.validateShape(i, in.Type); err != nil {
			return err
		}
	}
	if in.Type.isGauge() {
		first := in.Datasets[0]
		if len(first.Data) != 1 {
			return &ValidationError{
				Dataset: 0,
				Reason:  fmt.Sprintf("%s requires exactly one numeric value, got %d", in.Type, len(first.Data)),
			}
		}
		if _, ok := asNumber(first.Data[0]); !ok {
			return &ValidationError{
				Dataset: 0,
				Reason:  fmt.Sprintf("%s requires a single numeric value, not a coordinate point", in.Type),
			}
		}
	}
	return nil
}

func (d Dataset) validateShape(index int, ctype ChartType) error {
	if len(d.Data) == 0 {
		return &ValidationError{Dataset: index, Reason: "data cannot be empty"}
	}
	if !validColor(d.BackgroundColor) {
		return &ValidationError{Dataset: index, Reason: "backgroundColor must be a color string or an array of color strings"}
	}
	if !validColor(d.BorderColor) {
		return &ValidationError{Dataset: index, Reason: "borderColor must be a color string or an array of color strings"}
	}

	switch {
	case ctype == ChartTypeScatter:
		for j, p := range d.Data {
			if !isPointTuple(p, 2, 2) {
				return &ValidationError{
					Dataset: index,
					Reason:  fmt.Sprintf("point %d: scatter requires data points in [x, y] format", j),
				}
			}
		}
	case ctype == ChartTypeBubble:
		for j, p := range d.Data {
			if !isPointTuple(p, 2, 3) {
				return &ValidationError{
					Dataset: index,
					Reason:  fmt.Sprintf("point %d: bubble requires data points in [x, y] or [x, y, r] format", j),
				}
			}
		}
	case ctype.isGauge():
		for j, p := range d.Data {
			if _, ok := asNumber(p); !ok && !isPointTuple(p, 2, 3) {
				return &ValidationError{
					Dataset: index,
					Reason:  fmt.Sprintf("point %d: data must be numbers or [x, y]/[x, y, r] points", j),
				}
			}
		}
	default:
		for j, p := range d.Data {
			if _, isSeq := p.([]any); isSeq {
				return &ValidationError{
					Dataset: index,
					Reason:  fmt.Sprintf("point %d: %s requires plain numbers, not coordinate points", j, ctype),
				}
			}
			if _, ok := asNumber(p); !ok {
				return &ValidationError{
					Dataset: index,
					Reason:  fmt.Sprintf("point %d: data values must be numbers", j),
				}
			}
		}
	}
	return nil
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isPointTuple(v any, minLen, maxLen int) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	if len(arr) < minLen || len(arr) > maxLen {
		return false
	}
	for _, item := range arr {
		if _, ok := asNumber(item); !ok {
			return false
		}
	}
	return true
}

func validColor(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case string:
		return true
	case []string:
		return true
	case []any:
		for _, item := range c {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
