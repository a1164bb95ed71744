package layer

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleSlugRoundTrip(t *testing.T) {
	roles := []Role{
		TopCopper(),
		BottomCopper(),
		Copper(3),
		Silkscreen(SideTop),
		Silkscreen(SideBottom),
		Soldermask(SideTop),
		Paste(SideBottom),
		MechanicalOutline(),
	}

	for _, role := range roles {
		text, err := role.MarshalText()
		require.NoError(t, err)

		var back Role
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, role, back, string(text))
	}
}

func TestParseRoleRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "copper", "copper-x", "copper--1", "silkscreen-middle", "paste", "bogus-top"} {
		_, ok := ParseRole(s)
		assert.False(t, ok, s)
	}
}

func TestRoleAsJSONMapKey(t *testing.T) {
	m := map[Role]int{
		TopCopper():         1,
		Soldermask(SideTop): 2,
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var back map[Role]int
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}

func TestRoleOrdinalOrdering(t *testing.T) {
	roles := []Role{
		MechanicalOutline(),
		Paste(SideBottom),
		BottomCopper(),
		Silkscreen(SideTop),
		Copper(2),
		TopCopper(),
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Ordinal() < roles[j].Ordinal() })

	assert.Equal(t, TopCopper(), roles[0])
	assert.Equal(t, Copper(2), roles[1])
	assert.Equal(t, BottomCopper(), roles[2])
	assert.Equal(t, MechanicalOutline(), roles[len(roles)-1])
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Top Copper", TopCopper().String())
	assert.Equal(t, "Bottom Copper", BottomCopper().String())
	assert.Equal(t, "Inner Copper 2", Copper(2).String())
	assert.Equal(t, "Top Silkscreen", Silkscreen(SideTop).String())
	assert.Equal(t, "Bottom Soldermask", Soldermask(SideBottom).String())
	assert.Equal(t, "Mechanical Outline", MechanicalOutline().String())
}
