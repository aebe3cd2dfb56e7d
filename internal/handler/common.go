package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// actor is the authenticated identity for the current request, extracted
// from the context values stored by the JWT middleware. Every operation
// receives it explicitly instead of reading ambient session state.
type actor struct {
	ID   uint64
	Role string
	Name string
}

// getActor pulls the session triple out of echo.Context. The sub claim is
// decoded by the JWT library as float64; other types are tolerated for
// robustness.
func getActor(c echo.Context) (actor, error) {
	a := actor{}
	switch t := c.Get("user_id").(type) {
	case uint64:
		a.ID = t
	case int:
		a.ID = uint64(t)
	case int64:
		a.ID = uint64(t)
	case float64:
		a.ID = uint64(t)
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return a, errors.New("invalid user_id in context")
		}
		a.ID = n
	default:
		return a, errors.New("invalid user_id in context")
	}
	if role, ok := c.Get("role").(string); ok {
		a.Role = role
	}
	if name, ok := c.Get("name").(string); ok {
		a.Name = name
	}
	if a.ID == 0 || a.Role == "" {
		return a, errors.New("incomplete identity in context")
	}
	return a, nil
}

// pathID parses the numeric :id (or other named) path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
