package api

import (
	"context"
	"strings"

	"github.com/interpretive-systems/studybuddy/internal/types"
)

// CreateCourse asks the backend to create a course and returns it in
// canonical form.
func (c *Client) CreateCourse(ctx context.Context, name string) (types.Course, error) {
	const op = "create course"
	name = strings.TrimSpace(name)
	var env courseEnvelope
	if err := c.postJSON(ctx, op, c.endpoints.API+"/courses", map[string]string{"name": name}, &env); err != nil {
		return types.Course{}, err
	}
	course, err := normalizeCourse(env, name)
	if err != nil {
		return types.Course{}, &Error{Op: op, Err: err}
	}
	return course, nil
}
