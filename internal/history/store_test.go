package history

import (
	"strings"
	"testing"

	"celeste-saves/internal/save"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, doc string) *save.Summary {
	t.Helper()
	s, err := save.Extract(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

func TestSideRows(t *testing.T) {
	s := extract(t, `<SaveData><Areas><AreaStats SID="Celeste/1-ForsakenCity"><Modes>
	<AreaModeStats TotalStrawberries="5" Completed="true" Deaths="2" />
	<AreaModeStats TotalStrawberries="0" Completed="false" Deaths="10" />
	<AreaModeStats TotalStrawberries="1" Completed="true" Deaths="0" />
	</Modes></AreaStats></Areas></SaveData>`)

	rows := SideRows(s)
	require.Len(t, rows, save.AreaCount*save.SideCount)

	assert.Equal(t, SideRow{Area: "prologue", Side: "A"}, rows[0])
	assert.Equal(t, SideRow{Area: "city", Side: "A", Strawberries: 5, Deaths: 2, Completed: true}, rows[3])
	assert.Equal(t, SideRow{Area: "city", Side: "B", Deaths: 10}, rows[4])
	assert.Equal(t, SideRow{Area: "city", Side: "C", Strawberries: 1, Completed: true}, rows[5])
	assert.Equal(t, "farewell", rows[len(rows)-1].Area)
}

func TestFingerprint(t *testing.T) {
	a := extract(t, `<SaveData><Name>Madeline</Name><TotalDeaths>3</TotalDeaths></SaveData>`)
	b := extract(t, `<SaveData><Name>Madeline</Name><TotalDeaths>3</TotalDeaths></SaveData>`)
	c := extract(t, `<SaveData><Name>Madeline</Name><TotalDeaths>4</TotalDeaths></SaveData>`)

	assert.Equal(t, Fingerprint("0.celeste", a), Fingerprint("0.celeste", b))
	assert.NotEqual(t, Fingerprint("0.celeste", a), Fingerprint("1.celeste", a))
	assert.NotEqual(t, Fingerprint("0.celeste", a), Fingerprint("0.celeste", c))
}
