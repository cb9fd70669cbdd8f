package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindNestedOrFlat binds the request body to obj. A body shaped as
// {"<key>": {...}} binds the nested object; anything else binds the whole body.
// The body is restored so later reads still see it.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var nestedMap map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &nestedMap); err == nil {
		if val, ok := nestedMap[key]; ok {
			return json.Unmarshal(val, obj)
		}
	}

	return json.Unmarshal(bodyBytes, obj)
}

// validate runs the `binding` struct tags against obj after a manual bind
func validate(obj interface{}) error {
	return binding.Validator.ValidateStruct(obj)
}

// bindOptionalJSON binds a JSON body when one was sent. An empty body leaves obj untouched.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
