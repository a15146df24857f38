package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/qualitydash/internal/quality"
)

func TestRenderMeasurement(t *testing.T) {
	sections := []*quality.Section{
		{ID: "PD", Title: "Product", Subtitle: "v1", Metrics: []*quality.Metric{
			{ID: "PD-1", Status: quality.StatusGreen, Value: 3, Text: "3 openstaande issues"},
			{ID: "PD-2", Status: quality.StatusMissing, Value: -1, Text: "De metriek kon niet gemeten worden."},
		}},
		{ID: "BS", Title: "Build"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderMeasurement(&buf, sections))

	assert.Equal(t, ""+
		"Product v1 (PD)\n"+
		"  Metriek  Status   Waarde  Meting\n"+
		"  -------  -------  ------  -----------------------------------\n"+
		"  PD-1     green         3  3 openstaande issues\n"+
		"  PD-2     missing       ?  De metriek kon niet gemeten worden.\n"+
		"\n"+
		"Build (BS)\n"+
		"  geen metrieken\n", buf.String())
}

func TestColorStatus_NoColor(t *testing.T) {
	for _, s := range []string{"red", "yellow", "green", "perfect", "grey", "missing", "missing_source", "other"} {
		assert.Equal(t, s, ColorStatus(s))
	}
}
