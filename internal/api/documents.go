package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/interpretive-systems/studybuddy/internal/types"
)

// UploadDocument sends one file as multipart form data together with the
// owning course id.
func (c *Client) UploadDocument(ctx context.Context, courseID string, file types.UploadedFile) (UploadedDocument, error) {
	const op = "upload document"

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	ct := file.MimeType
	if ct == "" {
		ct = "application/pdf"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return UploadedDocument{}, &Error{Op: op, Err: err}
	}
	if _, err := part.Write(file.Data); err != nil {
		return UploadedDocument{}, &Error{Op: op, Err: err}
	}
	if err := w.WriteField("course_id", courseID); err != nil {
		return UploadedDocument{}, &Error{Op: op, Err: err}
	}
	if err := w.Close(); err != nil {
		return UploadedDocument{}, &Error{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.API+"/documents/upload", &buf)
	if err != nil {
		return UploadedDocument{}, &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var wire uploadWire
	if err := c.do(op, req, &wire); err != nil {
		return UploadedDocument{}, err
	}
	return normalizeUpload(wire), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// ListDocuments returns the backend document catalogue. Entries without any
// id are dropped.
func (c *Client) ListDocuments(ctx context.Context) ([]DocumentRef, error) {
	var body struct {
		Documents []documentWire `json:"documents"`
	}
	if err := c.getJSON(ctx, "list documents", c.endpoints.Backend+"/api/documents", &body); err != nil {
		return nil, err
	}
	return normalizeDocuments(body.Documents), nil
}

// DocumentFileURL is the download location of a stored document.
func (c *Client) DocumentFileURL(id string) string {
	return c.endpoints.Backend + "/api/documents/" + url.PathEscape(id) + "/file"
}

// FetchDocument opens the binary stream of a stored PDF. The caller must close
// the returned reader.
func (c *Client) FetchDocument(ctx context.Context, id string) (io.ReadCloser, error) {
	const op = "fetch document"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DocumentFileURL(id), nil)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	resp, err := c.send(op, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
