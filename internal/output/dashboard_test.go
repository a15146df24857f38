package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davetashner/qualitydash/internal/quality"
)

func TestDashboardFormatter_Render(t *testing.T) {
	out := NewDashboardFormatter().Render(sampleReport())

	assert.True(t, strings.HasPrefix(out, `<table class="table table-condensed table-bordered">`))
	assert.Contains(t, out, `<tr style="color: white; font-weight: bold; background-color: #2F95CF;">`)
	assert.Contains(t, out, `<th colspan="2" style="text-align: center;">Product</th>`)
	assert.Contains(t, out, `<td colspan="1" rowspan="1" align="center" bgcolor="lightsteelblue">`)
	assert.Contains(t, out, `<div class="link_section_PD" title="Tests"></div>`)
	assert.Contains(t, out, `<div id="section_summary_chart_PE"></div>`)
	assert.True(t, strings.HasSuffix(out, "</tbody>\n</table>"))
}

func TestDashboardFormatter_UnknownSection(t *testing.T) {
	report := &quality.Report{Dashboard: quality.Dashboard{
		Headers: []quality.DashboardHeader{{Label: "Omgeving"}},
		Rows: [][]quality.DashboardCell{{
			{Ref: quality.SectionID("zz"), Color: "white", ColSpan: 2, RowSpan: 3},
			{Color: "red"},
		}},
	}}
	out := NewDashboardFormatter().Render(report)

	assert.Contains(t, out, `<th colspan="1" style="text-align: center;">Omgeving</th>`)
	assert.Contains(t, out, `<td colspan="2" rowspan="3" align="center" bgcolor="white">`)
	assert.Contains(t, out, `<div class="link_section_ZZ" title="???"></div>`)
	assert.Contains(t, out, `<div class="link_section_" title="???"></div>`)
}

func TestDashboardFormatter_Empty(t *testing.T) {
	out := NewDashboardFormatter().Render(&quality.Report{})
	assert.Equal(t, "<table class=\"table table-condensed table-bordered\">\n"+
		"    <thead>\n"+
		"        <tr style=\"color: white; font-weight: bold; background-color: #2F95CF;\">\n"+
		"        </tr>\n"+
		"    </thead>\n"+
		"    <tbody>\n"+
		"    </tbody>\n"+
		"</table>", out)
}
