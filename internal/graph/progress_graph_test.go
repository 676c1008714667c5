package graph

import (
	"strings"
	"testing"

	"celeste-saves/internal/save"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideParams(t *testing.T) {
	s, err := save.Extract(strings.NewReader(`<SaveData><Areas><AreaStats SID="Celeste/LostLevels"><Modes>
	<AreaModeStats TotalStrawberries="0" Completed="true" Deaths="1234" HeartGem="false" />
	</Modes></AreaStats></Areas></SaveData>`))
	require.NoError(t, err)

	params := SideParams(s)
	require.Len(t, params, 30)

	farewellA := params[27]
	assert.Equal(t, "Celeste/LostLevels", farewellA["sid"])
	assert.Equal(t, "A", farewellA["side"])
	assert.Equal(t, 1234, farewellA["deaths"])
	assert.Equal(t, true, farewellA["completed"])
	assert.Equal(t, true, farewellA["heartGem"])

	assert.Equal(t, "Celeste/0-Intro", params[0]["sid"])
	assert.Equal(t, 0, params[0]["deaths"])
}

func TestSaveProperties(t *testing.T) {
	props := SaveProperties(&save.Summary{Version: "1.4.0.0", Strawberries: 202, GoldenStrawberries: 2, AssistMode: true})

	assert.Equal(t, "1.4.0.0", props["version"])
	assert.Equal(t, 202, props["strawberries"])
	assert.Equal(t, 2, props["goldenStrawberries"])
	assert.Equal(t, true, props["assistMode"])
	assert.Equal(t, false, props["cheatMode"])
}
