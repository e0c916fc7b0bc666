package jsont

import (
	"bytes"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/require"
)

const reportTemplate = `<h1><?= report.title ?></h1>
<? if report.rows ?>
<ul>
<? for row report.rows ?>
  <li><?= row.name ?>: <?= row.total ?></li>
<? endfor ?>
</ul>
<? else ?>
<p>No data.</p>
<? endif ?>
<? include "footer.tpl" ?>
`

const footerTemplate = `-- generated by <?= site.name ?> --
`

// featureTest renders the report page end to end through a Bundle: echo,
// conditional dispatch, loops, includes and global fallback data together.
type featureTest struct {
	name   string
	data   map[string]interface{}
	output string
}

var featureTests = []featureTest{
	{"report with rows",
		map[string]interface{}{
			"report": map[string]interface{}{
				"title": "Q3",
				"rows": []map[string]interface{}{
					{"name": "widgets", "total": 12},
					{"name": "gadgets", "total": 3},
				},
			},
		},
		`<h1>Q3</h1>
<ul>
  <li>widgets: 12</li>
  <li>gadgets: 3</li>
</ul>
-- generated by acme --
`},

	{"report with no rows",
		map[string]interface{}{
			"report": map[string]interface{}{
				"title": "Q4",
				"rows":  []map[string]interface{}{},
			},
		},
		`<h1>Q4</h1>
<p>No data.</p>
-- generated by acme --
`},

	// best-effort against partial data: absent paths render nothing
	{"empty data",
		nil,
		`<h1></h1>
<p>No data.</p>
-- generated by acme --
`},
}

func TestFeatures(t *testing.T) {
	var dir = t.TempDir()
	var globals = writeFile(t, dir, "globals.yaml", "site:\n  name: acme\n")
	var report = writeFile(t, dir, "report.tpl", reportTemplate)
	writeFile(t, dir, "footer.tpl", footerTemplate)

	registry, err := NewBundle().
		AddGlobalsFile(globals).
		AddTemplateDir(dir).
		Compile()
	require.NoError(t, err)

	for _, test := range featureTests {
		var buf bytes.Buffer
		if err := registry.Render(&buf, report, test.data); err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if buf.String() != test.output {
			t.Errorf("%s:\n%v", test.name, diff.LineDiff(test.output, buf.String()))
		}
	}
}
