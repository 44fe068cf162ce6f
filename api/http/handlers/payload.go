package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/useraccount/pkg/user"
)

var (
	errEmptyBody   = errors.New("request body is empty")
	errInvalidJSON = errors.New("invalid JSON payload")
)

// payload keeps the raw JSON members of a request object so handlers can
// tell an absent field from an empty one.
type payload map[string]json.RawMessage

// parsePayload decodes a JSON object body. A missing body, a non-JSON content
// type, null and {} all count as empty.
func parsePayload(c *fiber.Ctx) (payload, error) {
	if len(c.Body()) == 0 {
		return nil, errEmptyBody
	}
	if !c.Is("json") {
		return nil, errEmptyBody
	}
	var p payload
	if err := c.App().Config().JSONDecoder(c.Body(), &p); err != nil {
		return nil, errInvalidJSON
	}
	if len(p) == 0 {
		return nil, errEmptyBody
	}
	return p, nil
}

func (p payload) has(key string) bool {
	_, ok := p[key]
	return ok
}

// str returns the string member key. A missing member or JSON null reports
// present=false; any other non-string value is a validation error.
func (p payload) str(key string) (value string, present bool, err error) {
	raw, ok := p[key]
	if !ok || string(raw) == "null" {
		return "", false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false, &user.ValidationError{Field: key, Message: key + " must be a string"}
	}
	return value, true, nil
}

// hasQueryOrBody reports whether a request that must be bare carries query
// parameters or a message body.
func hasQueryOrBody(c *fiber.Ctx) bool {
	if len(c.Request().URI().QueryString()) > 0 {
		return true
	}
	return c.Request().Header.ContentLength() > 0 || len(c.Body()) > 0
}
