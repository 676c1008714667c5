package save

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaForSID(t *testing.T) {
	tests := []struct {
		sid  string
		want Area
		ok   bool
	}{
		{sid: "Celeste/0-Intro", want: Prologue, ok: true},
		{sid: "Celeste/1-ForsakenCity", want: City, ok: true},
		{sid: "Celeste/9-Core", want: Core, ok: true},
		{sid: "Celeste/LostLevels", want: Farewell, ok: true},
		{sid: "Celeste/8-Epilogue", ok: false},
		{sid: "celeste/1-forsakencity", ok: false},
		{sid: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.sid, func(t *testing.T) {
			got, ok := AreaForSID(tt.sid)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAreaRoundTripsThroughSID(t *testing.T) {
	for _, a := range AllAreas() {
		got, ok := AreaForSID(a.SID())
		assert.True(t, ok, a.String())
		assert.Equal(t, a, got)
	}
}

func TestAreaNames(t *testing.T) {
	assert.Equal(t, "city", City.String())
	assert.Equal(t, "Forsaken City", City.Title())
	assert.Equal(t, 9, Farewell.Chapter())
	assert.Equal(t, "unknown", Area(42).String())
	assert.Equal(t, "", Area(-1).SID())
	assert.Equal(t, "C", SideC.String())
}

func TestRegularStrawberriesNeverNegative(t *testing.T) {
	s := Summary{Strawberries: 2, GoldenStrawberries: 5}
	assert.Equal(t, 0, s.RegularStrawberries())

	s = Summary{Strawberries: 202, GoldenStrawberries: 2}
	assert.Equal(t, 200, s.RegularStrawberries())
}
