package display_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fossas/sitecheck/cmd/sitecheck/display"
)

var table = display.Table{
	Headers: []string{"Package", "Site"},
	Rows: [][]string{
		{"numpy-1.19.1", "/usr/lib/site-packages"},
		{"requests-2.32.3", "/home/user/.local/site-packages"},
	},
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := display.WriteTable(&buf, table)
	assert.NoError(t, err)
	assert.Equal(t, ""+
		"Package          Site\n"+
		"numpy-1.19.1     /usr/lib/site-packages\n"+
		"requests-2.32.3  /home/user/.local/site-packages\n", buf.String())
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := display.WriteTable(&buf, display.Table{Headers: []string{"Package"}})
	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteDelimited(t *testing.T) {
	var buf bytes.Buffer
	err := display.WriteDelimited(&buf, display.Table{
		Headers: []string{"Package", "Sites"},
		Rows:    [][]string{{"numpy-1.19.1", "/a,/b"}},
	}, ',')
	assert.NoError(t, err)
	assert.Equal(t, "Package,Sites\nnumpy-1.19.1,\"/a,/b\"\n", buf.String())

	buf.Reset()
	err = display.WriteDelimited(&buf, table, '|')
	assert.NoError(t, err)
	assert.Equal(t, "Package|Site\nnumpy-1.19.1|/usr/lib/site-packages\nrequests-2.32.3|/home/user/.local/site-packages\n", buf.String())
}

func TestParseDelimiter(t *testing.T) {
	r, err := display.ParseDelimiter("|")
	assert.NoError(t, err)
	assert.Equal(t, '|', r)

	r, err = display.ParseDelimiter("\t")
	assert.NoError(t, err)
	assert.Equal(t, '\t', r)

	_, err = display.ParseDelimiter("||")
	assert.Error(t, err)
	_, err = display.ParseDelimiter("")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := display.JSON(&buf, map[string]int{"exes": 1})
	assert.NoError(t, err)
	assert.Equal(t, "{\"exes\":1}\n", buf.String())
}
