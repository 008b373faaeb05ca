package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListVideos returns the lecture recording catalogue in backend order.
func (c *Client) ListVideos(ctx context.Context) ([]VideoRef, error) {
	var body struct {
		Videos []videoWire `json:"videos"`
	}
	if err := c.getJSON(ctx, "list videos", c.endpoints.Video+"/api/videos", &body); err != nil {
		return nil, err
	}
	return normalizeVideos(body.Videos), nil
}

// DeleteVideo removes a recording.
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	const op = "delete video"
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoints.Video+"/api/videos/"+url.PathEscape(id), nil)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	return c.do(op, req, nil)
}

// VideoFileURL is the playback source for a recording.
func (c *Client) VideoFileURL(id string) string {
	return c.endpoints.Video + "/api/videos/" + url.PathEscape(id) + "/file"
}
