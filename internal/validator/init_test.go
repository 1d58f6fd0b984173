package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type markHolder struct {
	Mark string `validate:"mark"`
}

func TestMarkValidation(t *testing.T) {
	for _, ok := range []string{"X", "O", "x", "o"} {
		assert.NoError(t, GetValidator().Struct(markHolder{Mark: ok}), ok)
	}
	for _, bad := range []string{"", "Z", "XO"} {
		assert.Error(t, GetValidator().Struct(markHolder{Mark: bad}), bad)
	}
}
