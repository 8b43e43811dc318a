package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeServer(t *testing.T) {
	cases := []struct {
		name  string
		frame string
		check func(t *testing.T, msg ServerMessage)
	}{
		{
			name:  "uid",
			frame: `{"type":"uid","id":7}`,
			check: func(t *testing.T, msg ServerMessage) {
				assert.Equal(t, TypeUID, msg.Type)
				assert.Equal(t, 7, msg.ID)
			},
		},
		{
			name:  "userlist carries guesses",
			frame: `{"type":"userlist","list":[{"id":1,"name":"ana","score":2,"guessed":"abba"},{"id":2,"name":"bo","score":0,"guessed":null}]}`,
			check: func(t *testing.T, msg ServerMessage) {
				require.Len(t, msg.List, 2)
				require.NotNil(t, msg.List[0].Guess)
				assert.Equal(t, "abba", *msg.List[0].Guess)
				assert.Nil(t, msg.List[1].Guess)
			},
		},
		{
			name:  "qset",
			frame: `{"type":"qset","data":{"title":"80s hits","author":"dj","count":12,"img":"cover.png","candidates":["a","b"]},"count":12}`,
			check: func(t *testing.T, msg ServerMessage) {
				require.NotNil(t, msg.Data)
				assert.Equal(t, "80s hits", msg.Data.Title)
				assert.Equal(t, "cover.png", msg.Data.Image)
				assert.Equal(t, []string{"a", "b"}, msg.Data.Candidates)
			},
		},
		{
			name:  "gstate",
			frame: `{"type":"gstate","qnum":3,"part":1}`,
			check: func(t *testing.T, msg ServerMessage) {
				assert.Equal(t, 3, msg.QNum)
				assert.Equal(t, 1, msg.Part)
			},
		},
		{
			name:  "guess with empty answer is a skip",
			frame: `{"type":"guess","uid":4,"guess":""}`,
			check: func(t *testing.T, msg ServerMessage) {
				assert.Equal(t, 4, msg.UID)
				require.NotNil(t, msg.Guess)
				assert.Equal(t, "", *msg.Guess)
			},
		},
		{
			name:  "reveal",
			frame: `{"type":"reveal","answers":["Africa","Toto - Africa"]}`,
			check: func(t *testing.T, msg ServerMessage) {
				assert.Equal(t, []string{"Africa", "Toto - Africa"}, msg.Answers)
			},
		},
		{
			name:  "load",
			frame: `{"type":"load","vid":"dQw4w9WgXcQ"}`,
			check: func(t *testing.T, msg ServerMessage) {
				assert.Equal(t, "dQw4w9WgXcQ", msg.Vid)
			},
		},
		{
			name:  "play window in fractional seconds",
			frame: `{"type":"play","start":31.5,"end":51.5}`,
			check: func(t *testing.T, msg ServerMessage) {
				assert.Equal(t, 31.5, msg.Start)
				assert.Equal(t, 51.5, msg.End)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := DecodeServer([]byte(tc.frame))
			require.NoError(t, err)
			tc.check(t, msg)
		})
	}
}

func TestDecodeServer_Malformed(t *testing.T) {
	_, err := DecodeServer([]byte(`{"type":`))
	require.Error(t, err)
}

func TestDecodeServer_UnknownTypeIsNotAnError(t *testing.T) {
	msg, err := DecodeServer([]byte(`{"type":"chat","text":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, "chat", msg.Type)
}

func TestClientMessages_Wire(t *testing.T) {
	cases := []struct {
		name string
		msg  ClientMessage
		want string
	}{
		{"name", NameMessage("ana"), `{"type":"name","name":"ana"}`},
		{"guess", GuessMessage("africa"), `{"type":"guess","answer":"africa"}`},
		// a skip still carries the answer key, empty
		{"skip", GuessMessage(""), `{"type":"guess","answer":""}`},
		{"loaded", LoadedMessage("abc"), `{"type":"loaded","id":"abc"}`},
		{"loaded error", LoadedErrorMessage(), `{"type":"loaded","error":true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(data))
		})
	}
}
