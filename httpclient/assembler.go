package httpclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const readChunkSize = 32 * 1024

// assembleBody drains body chunk by chunk and returns one contiguous buffer
// sized exactly to the bytes received. progress, if set, runs after every
// non-empty chunk with the running total and the advertised length (0 if unknown).
func assembleBody(body io.Reader, header http.Header, progress func(received, total int64)) ([]byte, error) {
	if body == nil {
		return nil, NewEmptyBodyError()
	}
	total := contentLength(header)

	var (
		chunks   [][]byte
		received int64
		buf      = make([]byte, readChunkSize)
	)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			chunks = append(chunks, chunk)
			received += int64(n)
			if progress != nil {
				progress(received, total)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewTransportError(fmt.Errorf("read response body: %w", err))
		}
	}

	out := make([]byte, received)
	pos := 0
	for _, c := range chunks {
		pos += copy(out[pos:], c)
	}
	return out, nil
}

// contentLength parses the advisory Content-Length header.
func contentLength(header http.Header) int64 {
	n, err := strconv.ParseInt(header.Get("Content-Length"), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
