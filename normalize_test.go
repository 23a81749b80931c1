package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestBuildChartConfigEndToEnd(t *testing.T) {
	input := ChartInput{
		Type: ChartTypeBar,
		Datasets: []Dataset{
			{Label: "A", Data: []any{1.0, 2.0, 3.0}},
		},
		Labels: []string{"x", "y", "z"},
		Title:  "Sales",
	}

	config, err := BuildChartConfig(input)
	assert.NoError(t, err)

	assert.Equal(t, ChartTypeBar, config.Type)
	assert.Equal(t, []string{"x", "y", "z"}, config.Data.Labels)
	assert.Equal(t, map[string]any{"display": true, "text": "Sales"}, config.Options["title"])

	assert.Len(t, config.Data.Datasets, 1)
	label, _ := config.Data.Datasets[0].Get("label")
	assert.Equal(t, "A", label)
	data, _ := config.Data.Datasets[0].Get("data")
	assert.Equal(t, []any{1.0, 2.0, 3.0}, data)
}

func TestBuildChartConfigTitleNotOverwritten(t *testing.T) {
	callerTitle := map[string]any{"display": false, "text": "Keep me"}
	input := ChartInput{
		Type:     ChartTypeLine,
		Datasets: []Dataset{{Data: []any{1.0}}},
		Title:    "Ignored",
		Options:  map[string]any{"title": callerTitle},
	}

	config, err := BuildChartConfig(input)
	assert.NoError(t, err)
	assert.Equal(t, callerTitle, config.Options["title"])
}

func TestBuildChartConfigDefaults(t *testing.T) {
	config, err := BuildChartConfig(ChartInput{
		Type:     ChartTypePie,
		Datasets: []Dataset{{Data: []any{1.0, 2.0}}},
	})
	assert.NoError(t, err)

	assert.NotNil(t, config.Data.Labels)
	assert.Empty(t, config.Data.Labels)
	assert.NotNil(t, config.Options)
	assert.NotContains(t, config.Options, "title")

	// unset label still appears, as empty string
	label, present := config.Data.Datasets[0].Get("label")
	assert.True(t, present)
	assert.Equal(t, "", label)
}

func TestBuildChartConfigGaugePlugin(t *testing.T) {
	t.Run("injected when absent", func(t *testing.T) {
		config, err := BuildChartConfig(ChartInput{
			Type:     ChartTypeRadialGauge,
			Datasets: []Dataset{{Data: []any{72.0}}},
		})
		assert.NoError(t, err)

		plugins, ok := config.Options["plugins"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, map[string]any{"display": true, "formatter": "(value) => value"}, plugins["datalabels"])
	})

	t.Run("caller datalabels preserved", func(t *testing.T) {
		own := map[string]any{"display": false}
		config, err := BuildChartConfig(ChartInput{
			Type:     ChartTypeSpeedometer,
			Datasets: []Dataset{{Data: []any{120.0}}},
			Options:  map[string]any{"plugins": map[string]any{"datalabels": own}},
		})
		assert.NoError(t, err)

		plugins := config.Options["plugins"].(map[string]any)
		assert.Equal(t, own, plugins["datalabels"])
	})

	t.Run("sibling plugin entries kept", func(t *testing.T) {
		config, err := BuildChartConfig(ChartInput{
			Type:     ChartTypeRadialGauge,
			Datasets: []Dataset{{Data: []any{50.0}}},
			Options:  map[string]any{"plugins": map[string]any{"legend": false}},
		})
		assert.NoError(t, err)

		plugins := config.Options["plugins"].(map[string]any)
		assert.Equal(t, false, plugins["legend"])
		assert.Contains(t, plugins, "datalabels")
	})

	t.Run("not injected for non-gauge types", func(t *testing.T) {
		config, err := BuildChartConfig(ChartInput{
			Type:     ChartTypeBar,
			Datasets: []Dataset{{Data: []any{1.0}}},
		})
		assert.NoError(t, err)
		assert.NotContains(t, config.Options, "plugins")
	})
}

func TestBuildChartConfigDoesNotMutateInput(t *testing.T) {
	callerPlugins := map[string]any{"legend": true}
	options := map[string]any{"plugins": callerPlugins}
	input := ChartInput{
		Type:     ChartTypeRadialGauge,
		Datasets: []Dataset{{Data: []any{10.0}}},
		Options:  options,
	}

	_, err := BuildChartConfig(input)
	assert.NoError(t, err)

	assert.Equal(t, map[string]any{"legend": true}, callerPlugins)
	assert.Equal(t, map[string]any{"plugins": callerPlugins}, options)
}

func TestDatasetRecordMergePrecedence(t *testing.T) {
	extra := orderedmap.New[string, any]()
	extra.Set("borderWidth", 2.0)
	extra.Set("label", "from extras")

	additional := orderedmap.New[string, any]()
	additional.Set("borderWidth", 5.0)
	additional.Set("tension", 0.4)

	ds := Dataset{
		Label:            "declared",
		Data:             []any{1.0},
		BackgroundColor:  "red",
		Extra:            extra,
		AdditionalConfig: additional,
	}

	rec := ds.record()

	// extension-bag entries win over declared fields
	label, _ := rec.Get("label")
	assert.Equal(t, "from extras", label)

	// additionalConfig wins over plain extras
	width, _ := rec.Get("borderWidth")
	assert.Equal(t, 5.0, width)

	tension, _ := rec.Get("tension")
	assert.Equal(t, 0.4, tension)

	color, _ := rec.Get("backgroundColor")
	assert.Equal(t, "red", color)

	// declared fields come first in the marshaled record
	assert.Equal(t, "label", rec.Oldest().Key)
}

func TestBuildChartConfigDeterministic(t *testing.T) {
	input := ChartInput{
		Type: ChartTypeBubble,
		Datasets: []Dataset{
			{Label: "B", Data: []any{[]any{1.0, 2.0, 3.0}}, BorderColor: "blue"},
		},
		Labels:  []string{"a"},
		Title:   "Bubbles",
		Options: map[string]any{"responsive": true},
	}

	first, err := BuildChartConfig(input)
	assert.NoError(t, err)
	second, err := BuildChartConfig(input)
	assert.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	assert.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	assert.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}

func TestBuildChartConfigRejectsInvalid(t *testing.T) {
	_, err := BuildChartConfig(ChartInput{
		Type:     ChartTypeScatter,
		Datasets: []Dataset{{Data: []any{[]any{1.0, 2.0, 3.0}}}},
	})
	assert.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Dataset)
}
