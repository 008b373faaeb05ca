// Package app owns the client state: courses, materials, chat histories, the
// upload queue and panel layout. Every mutation goes through Controller.
//
// Operations that reach the network are split in two. A Begin method checks
// the guards, updates local state and returns a job closure; the job performs
// the call without touching controller state and its result is handed back to
// the matching Complete method. The terminal UI runs jobs as tea.Cmds; the CLI
// and tests use the synchronous wrappers.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/api"
	"github.com/interpretive-systems/studybuddy/internal/chat"
	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/resize"
	"github.com/interpretive-systems/studybuddy/internal/types"
	"github.com/interpretive-systems/studybuddy/internal/uploadq"
)

// Backend is the subset of the API the controller needs.
type Backend interface {
	CreateCourse(ctx context.Context, name string) (types.Course, error)
	UploadDocument(ctx context.Context, courseID string, file types.UploadedFile) (api.UploadedDocument, error)
}

// Options configures a Controller. Zero values get defaults.
type Options struct {
	Backend   Backend
	Responder chat.Responder
	Notifier  notify.Notifier
	Logger    *zap.Logger

	// Courses seeds the course list.
	Courses []types.Course

	// UploadConcurrency bounds parallel uploads. 1 (the default) uploads
	// files one after another.
	UploadConcurrency int
	APITimeout        time.Duration
	ChatTimeout       time.Duration

	Panel resize.Bounds
	Dark  bool
}

// Controller is the single owner of client state. It is not safe for
// concurrent use; job closures are the only part that may run elsewhere.
type Controller struct {
	backend     Backend
	responder   chat.Responder
	notifier    notify.Notifier
	log         *zap.Logger
	concurrency int
	apiTimeout  time.Duration
	chatTimeout time.Duration

	courses   []types.Course
	currentID string
	topic     string
	materials []types.Material

	creating  bool
	uploading bool

	queue *uploadq.Queue
	chat  *chat.Store
	panel *resize.Controller
	demo  DemoLatch
	page  int

	dark           bool
	leftCollapsed  bool
	rightCollapsed bool

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	newID func() string
}

// New builds a controller. When seed courses are given the first becomes
// current.
func New(opts Options) *Controller {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Responder == nil {
		opts.Responder = chat.NewMockResponder()
	}
	if opts.UploadConcurrency < 1 {
		opts.UploadConcurrency = 1
	}
	if opts.APITimeout <= 0 {
		opts.APITimeout = 2 * time.Minute
	}
	if opts.ChatTimeout <= 0 {
		opts.ChatTimeout = 90 * time.Second
	}
	if opts.Panel == (resize.Bounds{}) {
		opts.Panel = resize.Bounds{Min: 32, Max: 96, Default: 48}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		backend:     opts.Backend,
		responder:   opts.Responder,
		notifier:    opts.Notifier,
		log:         opts.Logger,
		concurrency: opts.UploadConcurrency,
		apiTimeout:  opts.APITimeout,
		chatTimeout: opts.ChatTimeout,
		queue:       uploadq.New(opts.Notifier),
		chat:        chat.NewStore(),
		panel:       resize.New(opts.Panel),
		page:        1,
		dark:        opts.Dark,
		ctx:         ctx,
		cancel:      cancel,
		newID:       func() string { return uuid.NewString() },
	}
	c.courses = append(c.courses, opts.Courses...)
	if len(c.courses) > 0 {
		first := c.courses[0]
		c.currentID = first.ID
		c.topic = first.FirstTopic()
		c.chat.Ensure(first.ID)
	}
	return c
}

// Close cancels every outstanding job. Results delivered afterwards are
// ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
}

// Context is cancelled by Close. Work started outside the controller derives
// from it so it stops with the session.
func (c *Controller) Context() context.Context { return c.ctx }

// Closed reports whether Close was called.
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) callContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.ctx, timeout)
}

func (c *Controller) notify(title, desc string, v notify.Variant) {
	c.notifier.Notify(notify.Notification{Title: title, Description: desc, Variant: v})
}

// Queue exposes the upload queue for reading and drag handling. Use the
// controller's queue methods to change its contents.
func (c *Controller) Queue() *uploadq.Queue { return c.queue }

// Chat exposes the chat store for reading.
func (c *Controller) Chat() *chat.Store { return c.chat }

// Panel exposes the right panel resize controller.
func (c *Controller) Panel() *resize.Controller { return c.panel }

// Logger returns the controller's logger.
func (c *Controller) Logger() *zap.Logger { return c.log }

func (c *Controller) DarkMode() bool       { return c.dark }
func (c *Controller) SetDarkMode(on bool)  { c.dark = on }
func (c *Controller) ToggleDarkMode()      { c.dark = !c.dark }
func (c *Controller) LeftCollapsed() bool  { return c.leftCollapsed }
func (c *Controller) RightCollapsed() bool { return c.rightCollapsed }

func (c *Controller) SetLeftCollapsed(v bool)  { c.leftCollapsed = v }
func (c *Controller) SetRightCollapsed(v bool) { c.rightCollapsed = v }
func (c *Controller) ToggleLeftPanel()         { c.leftCollapsed = !c.leftCollapsed }
func (c *Controller) ToggleRightPanel()        { c.rightCollapsed = !c.rightCollapsed }
