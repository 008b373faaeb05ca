package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

// CourseResult is the outcome of a course creation job.
type CourseResult struct {
	Name   string
	Course types.Course
	Err    error
}

// Courses returns a copy of the course list.
func (c *Controller) Courses() []types.Course {
	out := make([]types.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// CurrentCourse returns the selected course.
func (c *Controller) CurrentCourse() (types.Course, bool) {
	return c.course(c.currentID)
}

// CurrentCourseID returns the selected course id, or "".
func (c *Controller) CurrentCourseID() string { return c.currentID }

// SelectedTopic returns the selected topic, or "".
func (c *Controller) SelectedTopic() string { return c.topic }

// Creating reports whether a course creation is in flight.
func (c *Controller) Creating() bool { return c.creating }

func (c *Controller) course(id string) (types.Course, bool) {
	if id == "" {
		return types.Course{}, false
	}
	for _, co := range c.courses {
		if co.ID == id {
			return co, true
		}
	}
	return types.Course{}, false
}

// SelectCourse makes id current and selects its first topic.
func (c *Controller) SelectCourse(id string) bool {
	co, ok := c.course(id)
	if !ok {
		return false
	}
	c.currentID = co.ID
	c.topic = co.FirstTopic()
	c.chat.Ensure(co.ID)
	return true
}

// SelectTopic sets the topic highlighted in the sidebar.
func (c *Controller) SelectTopic(topic string) {
	c.topic = topic
}

// BeginCreateCourse validates name and returns the job that creates the
// course remotely. It returns false when the trimmed name is empty or another
// creation is in flight.
func (c *Controller) BeginCreateCourse(name string) (func() CourseResult, bool) {
	name = strings.TrimSpace(name)
	if name == "" || c.creating || c.closed {
		return nil, false
	}
	if c.backend == nil {
		c.log.Warn("create course without backend", zap.String("name", name))
		return nil, false
	}
	c.creating = true
	backend := c.backend
	timeout := c.apiTimeout
	return func() CourseResult {
		ctx, cancel := c.callContext(timeout)
		defer cancel()
		co, err := backend.CreateCourse(ctx, name)
		return CourseResult{Name: name, Course: co, Err: err}
	}, true
}

// CompleteCreateCourse applies the result of a creation job.
func (c *Controller) CompleteCreateCourse(res CourseResult) {
	c.creating = false
	if c.closed {
		return
	}
	if res.Err != nil {
		c.log.Error("create course failed", zap.String("name", res.Name), zap.Error(res.Err))
		c.notify("Course creation failed", "We couldn't create the course. Please try again.", notify.VariantDestructive)
		return
	}
	co := res.Course
	if _, taken := c.course(co.ID); taken || co.ID == "" {
		c.log.Error("create course returned an unusable id", zap.String("name", res.Name), zap.String("id", co.ID))
		c.notify("Course creation failed", "We couldn't create the course. Please try again.", notify.VariantDestructive)
		return
	}
	if co.Content == nil {
		co.Content = []types.Unit{}
	}
	c.courses = append(c.courses, co)
	c.currentID = co.ID
	c.topic = co.FirstTopic()
	c.chat.Ensure(co.ID)
	c.log.Info("course created", zap.String("id", co.ID), zap.String("name", co.Name))
	c.notify("Course created", fmt.Sprintf("%s has been created successfully", co.Name), notify.VariantDefault)
}

// CreateCourse runs a creation synchronously. It returns false when the
// request was rejected locally.
func (c *Controller) CreateCourse(name string) (CourseResult, bool) {
	job, ok := c.BeginCreateCourse(name)
	if !ok {
		return CourseResult{}, false
	}
	res := job()
	c.CompleteCreateCourse(res)
	return res, true
}

// DeleteCourse removes a course together with its chat history and its
// materials. When it was current, the first remaining course takes over.
func (c *Controller) DeleteCourse(id string) bool {
	idx := -1
	for i, co := range c.courses {
		if co.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	removed := c.courses[idx]
	c.courses = append(c.courses[:idx:idx], c.courses[idx+1:]...)

	c.chat.DeleteHistory(id)
	dropped := c.removeMaterialsOf(id)

	if c.currentID == id {
		if len(c.courses) > 0 {
			next := c.courses[0]
			c.currentID = next.ID
			c.topic = next.FirstTopic()
			c.chat.Ensure(next.ID)
		} else {
			c.currentID = ""
			c.topic = ""
		}
	}

	c.log.Info("course deleted", zap.String("id", id), zap.Int("materials", dropped))
	desc := fmt.Sprintf("%s and its chat history have been removed.", removed.Name)
	if dropped > 0 {
		desc = fmt.Sprintf("%s, its chat history and %s have been removed.", removed.Name, plural(dropped, "material"))
	}
	c.notify("Course deleted", desc, notify.VariantDefault)
	return true
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
