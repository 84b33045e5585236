package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info  map[string]any            `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, SwaggerInfo.Title, doc.Info["title"])

	for path, method := range map[string]string{
		"/health":                        "get",
		"/healthz":                       "get",
		"/lookup":                        "post",
		"/requests":                      "post",
		"/requests/{publicID}/documents": "post",
		"/requests/{publicID}/finalize":  "post",
		"/requests/{publicID}/upload":    "get",
		"/thank-you":                     "get",
	} {
		assert.Contains(t, doc.Paths[path], method, path)
	}
}
