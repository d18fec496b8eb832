package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitledBoxEmbedsTitle(t *testing.T) {
	out := SanitizeText(TitledBox("Allowed Tags", "12345", 80))
	assert.Contains(t, out, "[ Allowed Tags ]")
	assert.Contains(t, out, "12345")
}

func TestErrorBoxContainsTitleAndBody(t *testing.T) {
	out := SanitizeText(ErrorBox("Connection Error", "open /dev/ttyUSB0: no such device", 80))
	assert.Contains(t, out, "Connection Error")
	assert.Contains(t, out, "no such device")
}

func TestTableAlignsRows(t *testing.T) {
	rows := []TableRow{
		{Label: "Port", Value: "/dev/ttyUSB0"},
		{Label: "Baud", Value: "115200"},
	}
	out := SanitizeText(Table("Connection", rows, 80))
	assert.Contains(t, out, "Port")
	assert.Contains(t, out, "/dev/ttyUSB0")
	assert.Contains(t, out, "Baud")
	assert.Contains(t, out, "115200")
}

func TestTableEmptyRowsRendersNothing(t *testing.T) {
	assert.Empty(t, Table("Connection", nil, 80))
}

func TestClampTextWidthTruncates(t *testing.T) {
	assert.Equal(t, "00012", ClampTextWidth("0001234567", 5))
	assert.Equal(t, "123", ClampTextWidth("123", 10))
}

func TestInfoRowSanitizesValue(t *testing.T) {
	out := SanitizeText(InfoRow("Tag", "123\x1b[31m45"))
	assert.Contains(t, out, "Tag: ")
	assert.Contains(t, out, "12345")
}

func TestIndentPrefixesEveryLine(t *testing.T) {
	out := Indent("a\nb", 2)
	for _, line := range strings.Split(out, "\n") {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}

func TestBoxWidthClampsToTerminal(t *testing.T) {
	// Narrow terminals must not produce boxes wider than the screen.
	out := Box("x", 30)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(SanitizeText(line))), 30)
	}
}
