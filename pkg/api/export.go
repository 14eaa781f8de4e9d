package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// Export formats accepted by the backend.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Export downloads a rendered document and streams it into w. The blob
// is opaque to the client. Transient failures are retried with a fixed
// delay; client errors (bad format, unknown document, expired session)
// are not.
func (c *Client) Export(ctx context.Context, id int, format string, w io.Writer) error {
	if format != FormatPDF && format != FormatDOCX {
		return fmt.Errorf("unsupported export format %q", format)
	}

	// Attempts buffer the whole blob so a mid-stream failure cannot
	// leave a retried attempt appending to partial output.
	var blob bytes.Buffer
	err := retry.Do(
		func() error {
			blob.Reset()
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportURL(id, format), nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			c.setHeaders(req)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if err := checkStatus(resp); err != nil {
				if se, ok := err.(*StatusError); ok && se.Code >= 500 {
					return err
				}
				return retry.Unrecoverable(err)
			}

			_, err = io.Copy(&blob, resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("export document %d as %s: %w", id, format, err)
	}
	_, err = w.Write(blob.Bytes())
	return err
}
