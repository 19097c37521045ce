package ccash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSucceeded(t *testing.T) {
	assert.False(t, Response{Code: 199}.Succeeded())
	assert.True(t, Response{Code: 200}.Succeeded())
	assert.True(t, Response{Code: 204}.Succeeded())
	assert.True(t, Response{Code: 299}.Succeeded())
	assert.False(t, Response{Code: 300}.Succeeded())
	assert.False(t, Response{Code: 404}.Succeeded())
}

func TestConvertMessage(t *testing.T) {
	testCases := []struct {
		name    string
		message string
		want    uint32
	}{
		{name: "plain number", message: "42", want: 42},
		// the next three are indistinguishable from a genuine zero;
		// see the convertMessage doc comment
		{name: "empty body", message: "", want: 0},
		{name: "json null", message: "null", want: 0},
		{name: "malformed body", message: "<html>oops</html>", want: 0},
		{name: "wrong type", message: `"forty-two"`, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := convertMessage[uint32](Response{Code: 200, Message: tc.message})
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestConvertMessageRejectsErrors(t *testing.T) {
	_, err := convertMessage[uint32](Response{Code: 400, Message: "bad request"})
	require.Error(t, err)

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, 400, serverErr.StatusCode)
	assert.Equal(t, "bad request", serverErr.Body)
}

func TestConvertMessageStructured(t *testing.T) {
	body := `[{"counterparty":"bob","receiving":true,"amount":5,"time":1136239445}]`
	entries, err := convertMessage[[]TransactionLogV2](Response{Code: 200, Message: body})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].Counterparty)
	assert.True(t, entries[0].Receiving)
	assert.Equal(t, uint32(5), entries[0].Amount)
}

func TestServerErrorMessage(t *testing.T) {
	withBody := &ServerError{StatusCode: 404, Body: "no such user"}
	assert.Contains(t, withBody.Error(), "404")
	assert.Contains(t, withBody.Error(), "no such user")

	bare := &ServerError{StatusCode: 500}
	assert.Contains(t, bare.Error(), "500")
}
