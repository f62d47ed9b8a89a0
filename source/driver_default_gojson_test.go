package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	wirecodec "github.com/reoring/wirecodec"
	_ "github.com/reoring/wirecodec/source"
)

func TestBlankImportInstallsGoJSON(t *testing.T) {
	assert.Equal(t, "go-json", wirecodec.CurrentJSONDriver().Name())

	v, err := wirecodec.ParseJSON([]byte(`{"a":[1,"b"]}`))
	assert.NoError(t, err)
	assert.Equal(t, `{"a":[1,"b"]}`, v.String())
}
