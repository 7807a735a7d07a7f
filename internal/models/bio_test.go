package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeString(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"Ana"`, "Ana"},
		{`30`, "30"},
		{`30.5`, "30.5"},
		{`30.50`, "30.5"},
		{`30.0`, "30.0"},
		{`1e3`, "1000.0"},
		{`1E3`, "1000.0"},
		{`-0`, "0"},
		{`-0.0`, "-0.0"},
		{`0.0001`, "0.0001"},
		{`1.5e-5`, "1.5e-05"},
		{`1e15`, "1000000000000000.0"},
		{`1e16`, "1e+16"},
		{`1e400`, "inf"},
		{`12345678901234567890`, "12345678901234567890"},
		{`[1, 2.50]`, "[1, 2.5]"},
		{`"thirty"`, "thirty"},
		{`true`, "True"},
		{`false`, "False"},
		{`null`, "None"},
		{`["hiking", "chess"]`, "['hiking', 'chess']"},
		{`{"a": 1, "b": [true]}`, "{'a': 1, 'b': [True]}"},
		{`["it's"]`, `["it's"]`},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, NewAttribute(json.RawMessage(tc.raw)).String())
		})
	}
}

func TestAttributePresence(t *testing.T) {
	var absent Attribute
	assert.False(t, absent.Present())
	assert.Equal(t, "", absent.String())

	assert.True(t, NewAttribute(json.RawMessage("null")).Present())
	assert.True(t, StringAttribute("x").Present())
}

func TestBioRequestFromFields(t *testing.T) {
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ana","age":30,"gender":"woman","interests":"hiking"}`), &fields))

	req := BioRequestFromFields(fields)
	assert.Equal(t, "Ana", req.Name.String())
	assert.Equal(t, "30", req.Age.String())
	assert.False(t, req.Profession.Present())
}

func TestBioRequestFromFields_KeysAreCaseSensitive(t *testing.T) {
	fields := map[string]json.RawMessage{
		"Name":       json.RawMessage(`"Ana"`),
		"age":        json.RawMessage(`30`),
		"gender":     json.RawMessage(`"woman"`),
		"interests":  json.RawMessage(`"hiking"`),
		"profession": json.RawMessage(`"engineer"`),
	}
	req := BioRequestFromFields(fields)
	assert.False(t, req.Name.Present())
	assert.Equal(t, "engineer", req.Profession.String())
}

func TestBioRequestJSONRoundTrip(t *testing.T) {
	var req BioRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ana","age":30}`), &req))
	assert.Equal(t, "Ana", req.Name.String())
	assert.True(t, req.Age.Present())
	assert.False(t, req.Gender.Present())

	out, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","age":30,"gender":null,"interests":null,"profession":null}`, string(out))
}
