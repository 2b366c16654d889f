package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/protocol"
)

func TestEncodeActionAddsTag(t *testing.T) {
	raw, err := protocol.EncodeAction(engine.Assassinate{Role: engine.RoleKing})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"Assassinate","role":"King"}`, string(raw))

	raw, err = protocol.EncodeAction(engine.EndTurn{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"EndTurn"}`, string(raw))
}

func TestDecodeBuild(t *testing.T) {
	a, err := protocol.DecodeAction([]byte(`{
		"tag": "Build",
		"build": {"tag": "ThievesDen", "discard": ["Temple", "Tavern"]}
	}`))
	require.NoError(t, err)
	b, ok := a.(*engine.Build)
	require.True(t, ok)
	assert.Equal(t, engine.BuildThievesDen, b.Method.Kind)
	assert.Equal(t, []engine.DistrictName{engine.DistrictTemple, engine.DistrictTavern}, b.Method.Discard)
}

func TestActionsSurviveTheWire(t *testing.T) {
	actions := []engine.Action{
		engine.DraftPick{Role: engine.RoleWitch},
		engine.SendWarrants{Signed: engine.RoleKing, Unsigned: [2]engine.CharacterRole{engine.RoleBishop, engine.RoleWarlord}},
		engine.Magic{Target: engine.MagicTargetDeck, Districts: []engine.DistrictName{engine.DistrictManor}},
		engine.WizardPick{Method: engine.BuildMethod{Kind: engine.BuildTake, District: engine.DistrictKeep}},
		engine.SeerDistribute{Gifts: []engine.SeerGift{{Player: "Ann", District: engine.DistrictTemple}}},
		engine.EmperorGiveCrown{Player: "Bob", Resource: engine.ResourceCards},
		engine.Build{Method: engine.BuildMethod{
			Kind:      engine.BuildNecropolis,
			Sacrifice: engine.CityDistrictTarget{Player: "Ann", District: engine.DistrictChurch, Beautified: true},
		}},
		engine.DiplomatTrade{
			District: engine.CityDistrict{Name: engine.DistrictTemple},
			Theirs:   engine.CityDistrictTarget{Player: "Bob", District: engine.DistrictPalace},
		},
		engine.Spy{Player: "Bob", Suit: engine.ColorTrade},
	}
	for _, want := range actions {
		t.Run(want.Tag().String(), func(t *testing.T) {
			raw, err := protocol.EncodeAction(want)
			require.NoError(t, err)
			got, err := protocol.DecodeAction(raw)
			require.NoError(t, err)
			assert.Equal(t, want.Tag(), got.Tag())
			again, err := protocol.EncodeAction(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(raw), string(again))
		})
	}
}

func TestDecodeActionErrors(t *testing.T) {
	tests := map[string]string{
		"not json":    `{`,
		"no tag":      `{"role":"King"}`,
		"unknown tag": `{"tag":"Fly"}`,
		"bad field":   `{"tag":"Assassinate","role":"Jester"}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := protocol.DecodeAction([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestEnvelopeDecode(t *testing.T) {
	env := protocol.MustEnvelope(protocol.MsgJoin, protocol.JoinMsg{PlayerID: "p1", Name: "Ann"})
	data, err := json.Marshal(env)
	require.NoError(t, err)

	var back protocol.Envelope
	require.NoError(t, json.Unmarshal(data, &back))
	var join protocol.JoinMsg
	require.NoError(t, back.Decode(&join))
	assert.Equal(t, "Ann", join.Name)

	assert.Error(t, protocol.Envelope{Type: protocol.MsgReady}.Decode(&join))
}
